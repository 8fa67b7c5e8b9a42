package server

import (
	"net/http"

	"github.com/legit-games/oauth2-server/errors"
)

// HandleDebugRequest the debug endpoint: resolves the presented access token
// through the configured resource type handler and reports its metadata. A
// debug_token parameter asks about that token instead of the presented one.
func (s *Server) HandleDebugRequest(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return s.tokenError(w, errors.ErrInvalidRequest)
	}

	tt, err := s.TokenTypes.Get(s.Config.TokenType)
	if err != nil {
		return s.tokenError(w, err)
	}

	accessToken, err := tt.GetAccessToken(r)
	if err != nil {
		return s.tokenError(w, err)
	}

	// The caller must itself present a valid token before asking about
	// another one.
	local, err := s.ResourceTypes.Get(s.Config.ResourceType)
	if err != nil {
		return s.tokenError(w, err)
	}
	if _, err := local.Handle(r.Context(), s.Factory, accessToken); err != nil {
		return s.tokenError(w, err)
	}

	subject := r.FormValue("debug_token")
	if subject == "" {
		subject = accessToken
	}

	token, err := local.Handle(r.Context(), s.Factory, subject)
	if err != nil {
		return s.tokenError(w, err)
	}

	return s.writeResponse(w, http.StatusOK, nil, map[string]interface{}{
		"access_token": token.GetAccess(),
		"token_type":   token.GetTokenType().String(),
		"client_id":    token.GetClientID(),
		"username":     token.GetUserID(),
		"expires":      token.GetExpires().Unix(),
		"scope":        token.GetScope(),
	})
}
