package server

import (
	"net/http"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// ValidationTokenRequest authenticates the client and assembles the grant
// parameters.
func (s *Server) ValidationTokenRequest(r *http.Request) (*oauth2.TokenRequest, error) {
	if r.Method != http.MethodPost &&
		!(s.Config.AllowGetAccessRequest && r.Method == http.MethodGet) {
		return nil, errors.ErrInvalidRequest
	}

	clientID, clientSecret, err := s.ClientInfoHandler(r)
	if err != nil {
		return nil, err
	}

	cli, err := s.Factory.Client().GetByID(r.Context(), clientID)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidClient
		}
		return nil, errors.ErrServerError
	}
	if cli.GetSecret() != clientSecret {
		return nil, errors.ErrInvalidClient
	}

	gt := oauth2.GrantType(r.FormValue("grant_type"))
	if gt == "" {
		return nil, errors.ErrInvalidRequest
	}
	if !oauth2.ValidateParam(r.FormValue("scope")) {
		return nil, errors.ErrInvalidRequest
	}

	return &oauth2.TokenRequest{
		GrantType:   gt,
		Client:      cli,
		Code:        r.FormValue("code"),
		RedirectURI: r.FormValue("redirect_uri"),
		Username:    r.FormValue("username"),
		Password:    r.FormValue("password"),
		Refresh:     r.FormValue("refresh_token"),
		Scope:       r.FormValue("scope"),
	}, nil
}

// HandleTokenRequest the token endpoint
func (s *Server) HandleTokenRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	req, err := s.ValidationTokenRequest(r)
	if err != nil {
		return s.tokenError(w, err)
	}

	handler, err := s.GrantTypes.Get(req.GrantType)
	if err != nil {
		return s.tokenError(w, err)
	}

	// The grant type must also be on the client's own allow list.
	if !s.clientAllowsGrant(req.Client, req.GrantType) {
		return s.tokenError(w, errors.ErrUnauthorizedClient)
	}

	tt, err := s.TokenTypes.Get(s.Config.TokenType)
	if err != nil {
		return s.tokenError(w, err)
	}

	data, err := handler.Handle(ctx, s.Factory, tt, req)
	if err != nil {
		return s.tokenError(w, err)
	}
	return s.writeResponse(w, http.StatusOK, nil, data)
}

func (s *Server) clientAllowsGrant(cli oauth2.ClientInfo, gt oauth2.GrantType) bool {
	allowed := cli.GetGrantTypes()
	// An empty allow list means the client is unrestricted.
	if len(allowed) == 0 {
		return true
	}
	for _, g := range allowed {
		if g == gt {
			return true
		}
	}
	return false
}
