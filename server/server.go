package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/grant"
	"github.com/legit-games/oauth2-server/resource"
	"github.com/legit-games/oauth2-server/response"
	"github.com/legit-games/oauth2-server/tokentype"
)

type (
	// UserAuthorizationHandler establishes the authenticated resource owner
	// for an authorize request. Returning an empty userID with a nil error
	// means a login flow has been written to w and the endpoint should stop.
	UserAuthorizationHandler func(w http.ResponseWriter, r *http.Request) (string, error)

	// ClientInfoHandler extracts client credentials from a token request.
	ClientInfoHandler func(r *http.Request) (clientID, clientSecret string, err error)
)

// NewServer create an authorization server with empty registries. Callers
// register handlers themselves; NewDefaultServer wires the standard set.
func NewServer(cfg *Config, factory oauth2.ModelManagerFactory) *Server {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Server{
		Config:            cfg,
		Factory:           factory,
		ResponseTypes:     oauth2.NewResponseTypeRegistry(),
		GrantTypes:        oauth2.NewGrantTypeRegistry(),
		TokenTypes:        oauth2.NewTokenTypeRegistry(),
		ResourceTypes:     oauth2.NewResourceTypeRegistry(),
		ClientInfoHandler: ClientBasicHandler,
	}
}

// NewDefaultServer create a server with the standard handlers registered:
// code and implicit response types, the four RFC 6749 grant types, bearer and
// MAC token types, and local-store resource validation.
func NewDefaultServer(cfg *Config, factory oauth2.ModelManagerFactory, users oauth2.UserProvider) *Server {
	srv := NewServer(cfg, factory)
	cfg = srv.Config

	accessGen := generates.NewAccessGenerate()

	srv.ResponseTypes.Register(oauth2.Code, response.NewCodeResponseTypeHandler(generates.NewAuthorizeGenerate(), cfg.CodeExp))
	srv.ResponseTypes.Register(oauth2.Token, response.NewTokenResponseTypeHandler())

	srv.GrantTypes.Register(oauth2.AuthorizationCode, grant.NewAuthorizationCodeGrantTypeHandler())
	srv.GrantTypes.Register(oauth2.ClientCredentials, grant.NewClientCredentialsGrantTypeHandler())
	srv.GrantTypes.Register(oauth2.PasswordCredentials, grant.NewPasswordGrantTypeHandler(users))
	srv.GrantTypes.Register(oauth2.Refreshing, grant.NewRefreshTokenGrantTypeHandler(cfg.RotateRefreshTokens))

	srv.TokenTypes.Register(oauth2.Bearer, tokentype.NewBearerTokenTypeHandler(accessGen, cfg.AccessTokenExp, cfg.RefreshTokenExp))
	srv.TokenTypes.Register(oauth2.MAC, tokentype.NewMacTokenTypeHandler(accessGen, cfg.AccessTokenExp, cfg.RefreshTokenExp, nil))

	srv.ResourceTypes.Register(oauth2.ResourceModel, resource.NewModelResourceTypeHandler())

	return srv
}

// Server dispatches the authorize, token and debug endpoints across the four
// handler registries.
type Server struct {
	Config        *Config
	Factory       oauth2.ModelManagerFactory
	ResponseTypes *oauth2.ResponseTypeRegistry
	GrantTypes    *oauth2.GrantTypeRegistry
	TokenTypes    *oauth2.TokenTypeRegistry
	ResourceTypes *oauth2.ResourceTypeRegistry

	UserAuthorizationHandler UserAuthorizationHandler
	ClientInfoHandler        ClientInfoHandler
}

// ClientBasicHandler reads client credentials from HTTP basic auth, falling
// back to the client_id/client_secret body parameters (RFC 6749 section
// 2.3.1).
func ClientBasicHandler(r *http.Request) (string, string, error) {
	if id, secret, ok := r.BasicAuth(); ok {
		return id, secret, nil
	}
	id := r.FormValue("client_id")
	if id == "" {
		return "", "", errors.ErrInvalidClient
	}
	return id, r.FormValue("client_secret"), nil
}

// GetErrorData maps any error onto the wire taxonomy: code, description,
// status and challenge headers. Unrecognized errors collapse into
// server_error so internals never leak.
func (s *Server) GetErrorData(err error) *errors.Response {
	re := &errors.Response{Error: errors.ErrServerError, StatusCode: http.StatusInternalServerError}
	if _, ok := errors.Descriptions[err]; ok {
		re.Error = err
		re.StatusCode = errors.StatusCodes[err]
	}
	re.Description = errors.Descriptions[re.Error]

	switch re.Error {
	case errors.ErrInvalidClient:
		re.SetHeader("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", s.realm()))
	case errors.ErrInvalidToken:
		re.SetHeader("WWW-Authenticate", fmt.Sprintf("Bearer realm=%q, error=%q", s.realm(), re.Error.Error()))
	}
	return re
}

func (s *Server) realm() string {
	if s.Config.Realm != "" {
		return s.Config.Realm
	}
	return "oauth2"
}

// directError writes an error as a JSON body, for failures that must not be
// delivered to an unverified redirect URI.
func (s *Server) directError(w http.ResponseWriter, err error) error {
	re := s.GetErrorData(err)
	return s.writeResponse(w, re.StatusCode, re.Header, re.Map())
}

// redirectError delivers an error to the trusted redirect URI, echoing state.
// server_error stays direct: internal failures are never the redirect
// target's business.
func (s *Server) redirectError(w http.ResponseWriter, req *oauth2.AuthorizeRequest, err error) error {
	re := s.GetErrorData(err)
	if re.Error == errors.ErrServerError {
		return s.writeResponse(w, re.StatusCode, re.Header, re.Map())
	}
	data := url.Values{"error": {re.Error.Error()}}
	if re.Description != "" {
		data.Set("error_description", re.Description)
	}
	return s.redirect(w, req, data)
}

// redirect sends a 302 to the trusted redirect URI with data attached: query
// parameters for the code flow, fragment for the implicit flow (RFC 6749
// section 4.2.2).
func (s *Server) redirect(w http.ResponseWriter, req *oauth2.AuthorizeRequest, data url.Values) error {
	u, err := url.Parse(req.RedirectURI)
	if err != nil {
		return s.directError(w, errors.ErrServerError)
	}
	if req.State != "" {
		data.Set("state", req.State)
	}

	if req.ResponseType == oauth2.Token {
		// keep any query component of the registered URI; only the
		// fragment carries the response
		u.Fragment = ""
		w.Header().Set("Location", u.String()+"#"+data.Encode())
	} else {
		q := u.Query()
		for k, vs := range data {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
		w.Header().Set("Location", u.String())
	}
	w.WriteHeader(http.StatusFound)
	return nil
}

// tokenError writes a token endpoint error per RFC 6749 section 5.2.
func (s *Server) tokenError(w http.ResponseWriter, err error) error {
	return s.directError(w, err)
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, header http.Header, body map[string]interface{}) error {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	for k, vs := range header {
		for _, v := range vs {
			w.Header().Set(k, v)
		}
	}
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
