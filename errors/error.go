package errors

import (
	"errors"
	"net/http"
)

// New returns an error that formats as the given text.
var New = errors.New

// The closed error taxonomy. Each value's Error() string is the wire-level
// error code, so the boundary mapper can emit it directly.
var (
	ErrInvalidRequest          = New("invalid_request")
	ErrInvalidClient           = New("invalid_client")
	ErrUnauthorizedClient      = New("unauthorized_client")
	ErrAccessDenied            = New("access_denied")
	ErrUnsupportedResponseType = New("unsupported_response_type")
	ErrInvalidScope            = New("invalid_scope")
	ErrServerError             = New("server_error")
	ErrTemporarilyUnavailable  = New("temporarily_unavailable")
	ErrInvalidGrant            = New("invalid_grant")
	ErrUnsupportedGrantType    = New("unsupported_grant_type")

	// ErrInvalidToken is the resource-server-side rejection of a presented
	// access token (RFC 6750 section 3.1).
	ErrInvalidToken = New("invalid_token")
)

// Descriptions error description, worded per RFC 6749 section 4.1.2.1 / 5.2
// and RFC 6750 section 3.1.
var Descriptions = map[error]string{
	ErrInvalidRequest:          "The request is missing a required parameter, includes an invalid parameter value, includes a parameter more than once, or is otherwise malformed.",
	ErrInvalidClient:           "Client authentication failed.",
	ErrUnauthorizedClient:      "The client is not authorized to request an authorization code using this method.",
	ErrAccessDenied:            "The resource owner or authorization server denied the request.",
	ErrUnsupportedResponseType: "The authorization server does not support obtaining an authorization code using this method.",
	ErrInvalidScope:            "The requested scope is invalid, unknown, or malformed.",
	ErrServerError:             "The authorization server encountered an unexpected condition that prevented it from fulfilling the request.",
	ErrTemporarilyUnavailable:  "The authorization server is currently unable to handle the request due to a temporary overloading or maintenance of the server.",
	ErrInvalidGrant:            "The provided authorization grant (e.g., authorization code, resource owner credentials) or refresh token is invalid, expired, revoked, does not match the redirection URI used in the authorization request, or was issued to another client.",
	ErrUnsupportedGrantType:    "The authorization grant type is not supported by the authorization server.",
	ErrInvalidToken:            "The access token provided is expired, revoked, malformed, or invalid for other reasons.",
}

// StatusCodes the HTTP status per error kind.
var StatusCodes = map[error]int{
	ErrInvalidRequest:          http.StatusBadRequest,
	ErrInvalidClient:           http.StatusUnauthorized,
	ErrUnauthorizedClient:      http.StatusUnauthorized,
	ErrAccessDenied:            http.StatusForbidden,
	ErrUnsupportedResponseType: http.StatusBadRequest,
	ErrInvalidScope:            http.StatusBadRequest,
	ErrServerError:             http.StatusInternalServerError,
	ErrTemporarilyUnavailable:  http.StatusServiceUnavailable,
	ErrInvalidGrant:            http.StatusBadRequest,
	ErrUnsupportedGrantType:    http.StatusBadRequest,
	ErrInvalidToken:            http.StatusUnauthorized,
}
