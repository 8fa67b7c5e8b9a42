package server

import (
	"net/http"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// ValidationAuthorizeRequest validates an authorize request up to the point
// where the redirect URI is trusted. Failures before that point must be
// reported directly to the caller, never via redirect.
func (s *Server) ValidationAuthorizeRequest(r *http.Request) (*oauth2.AuthorizeRequest, error) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return nil, errors.ErrInvalidRequest
	}

	clientID := r.FormValue("client_id")
	if clientID == "" {
		return nil, errors.ErrInvalidRequest
	}

	cli, err := s.Factory.Client().GetByID(r.Context(), clientID)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrUnauthorizedClient
		}
		return nil, errors.ErrServerError
	}

	redirectURI := r.FormValue("redirect_uri")
	registered := cli.GetRedirectURIs()
	switch {
	case redirectURI != "":
		// Exact string match against the registered set.
		found := false
		for _, u := range registered {
			if u == redirectURI {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.ErrInvalidRequest
		}
	case len(registered) == 1:
		redirectURI = registered[0]
	default:
		return nil, errors.ErrInvalidRequest
	}
	if !oauth2.ValidateParam(redirectURI) {
		return nil, errors.ErrInvalidRequest
	}

	return &oauth2.AuthorizeRequest{
		ResponseType: oauth2.ResponseType(r.FormValue("response_type")),
		Client:       cli,
		RedirectURI:  redirectURI,
		State:        r.FormValue("state"),
	}, nil
}

// HandleAuthorizeRequest the authorization endpoint. Once the redirect URI is
// trusted, all further failures are delivered to it with state echoed.
func (s *Server) HandleAuthorizeRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	req, err := s.ValidationAuthorizeRequest(r)
	if err != nil {
		return s.directError(w, err)
	}

	if !oauth2.ValidateParam(req.State) || !oauth2.ValidateParam(r.FormValue("scope")) {
		return s.redirectError(w, req, errors.ErrInvalidRequest)
	}

	scope, err := oauth2.ResolveScope(ctx, s.Factory, req.Client, r.FormValue("scope"))
	if err != nil {
		return s.redirectError(w, req, err)
	}
	req.Scope = scope

	handler, err := s.ResponseTypes.Get(req.ResponseType)
	if err != nil {
		return s.redirectError(w, req, err)
	}

	userID, err := s.userAuthorization(w, r)
	if err != nil {
		return s.redirectError(w, req, err)
	}
	if userID == "" {
		// A login flow has been written; the client retries after it.
		return nil
	}
	req.UserID = userID

	tt, err := s.TokenTypes.Get(s.Config.TokenType)
	if err != nil {
		return s.redirectError(w, req, err)
	}

	data, err := handler.Handle(ctx, s.Factory, tt, req)
	if err != nil {
		return s.redirectError(w, req, err)
	}
	return s.redirect(w, req, data)
}

func (s *Server) userAuthorization(w http.ResponseWriter, r *http.Request) (string, error) {
	if s.UserAuthorizationHandler == nil {
		return "", errors.ErrAccessDenied
	}
	userID, err := s.UserAuthorizationHandler(w, r)
	if err != nil {
		return "", err
	}
	return userID, nil
}
