package grant

import (
	"context"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// NewPasswordGrantTypeHandler create the resource owner password credentials
// grant type handler
func NewPasswordGrantTypeHandler(users oauth2.UserProvider) *PasswordGrantTypeHandler {
	return &PasswordGrantTypeHandler{Users: users}
}

// PasswordGrantTypeHandler exchanges resource owner credentials for tokens.
// Credential verification is delegated to the UserProvider, which must not
// reveal whether the username or the password was wrong.
type PasswordGrantTypeHandler struct {
	Users oauth2.UserProvider
}

func (h *PasswordGrantTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.TokenRequest) (map[string]interface{}, error) {
	if req.Username == "" || req.Password == "" {
		return nil, errors.ErrInvalidRequest
	}
	if h.Users == nil {
		return nil, errors.ErrUnsupportedGrantType
	}

	user, err := h.Users.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	scope, err := oauth2.ResolveScope(ctx, mm, req.Client, req.Scope)
	if err != nil {
		return nil, err
	}

	return tt.CreateToken(ctx, mm, req.Client.GetID(), user.GetID(), scope, true)
}
