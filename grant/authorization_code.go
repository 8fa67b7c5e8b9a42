package grant

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// NewAuthorizationCodeGrantTypeHandler create the authorization code grant
// type handler
func NewAuthorizationCodeGrantTypeHandler() *AuthorizationCodeGrantTypeHandler {
	return &AuthorizationCodeGrantTypeHandler{}
}

// AuthorizationCodeGrantTypeHandler redeems authorization codes for tokens.
// A code is single use: redemption marks it consumed before any token is
// minted, so two racing requests can never both succeed.
type AuthorizationCodeGrantTypeHandler struct{}

func (h *AuthorizationCodeGrantTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.TokenRequest) (map[string]interface{}, error) {
	if req.Code == "" || req.RedirectURI == "" {
		return nil, errors.ErrInvalidRequest
	}

	code, err := mm.Code().GetByCode(ctx, req.Code)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidGrant
		}
		return nil, err
	}

	switch {
	case code.GetClientID() != req.Client.GetID():
		return nil, errors.ErrInvalidGrant
	case code.GetRedirectURI() != req.RedirectURI:
		return nil, errors.ErrInvalidGrant
	case code.IsUsed():
		return nil, errors.ErrInvalidGrant
	case time.Now().After(code.GetExpires()):
		return nil, errors.ErrInvalidGrant
	}

	// Consume first. Exactly one concurrent redeemer wins; losers observe
	// the code as already spent.
	if err := mm.Code().MarkUsed(ctx, req.Code); err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidGrant
		}
		return nil, err
	}

	return tt.CreateToken(ctx, mm, code.GetClientID(), code.GetUserID(), code.GetScope(), true)
}
