package errors

import "net/http"

// Response the wire form of a mapped error.
type Response struct {
	Error       error
	Description string
	URI         string
	StatusCode  int
	Header      http.Header
}

// NewResponse create the response pointer
func NewResponse(err error, statusCode int) *Response {
	return &Response{
		Error:      err,
		StatusCode: statusCode,
	}
}

// Map renders the RFC 6749 section 5.2 error body.
func (r *Response) Map() map[string]interface{} {
	data := map[string]interface{}{"error": r.Error.Error()}
	if r.Description != "" {
		data["error_description"] = r.Description
	}
	if r.URI != "" {
		data["error_uri"] = r.URI
	}
	return data
}

// SetHeader sets the header entry associated with key to the single element value.
func (r *Response) SetHeader(key, value string) {
	if r.Header == nil {
		r.Header = make(http.Header)
	}
	r.Header.Set(key, value)
}
