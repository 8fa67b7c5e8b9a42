package response

import (
	"context"
	"fmt"
	"net/url"

	"github.com/legit-games/oauth2-server"
)

// NewTokenResponseTypeHandler create the implicit grant response type handler
func NewTokenResponseTypeHandler() *TokenResponseTypeHandler {
	return &TokenResponseTypeHandler{}
}

// TokenResponseTypeHandler implements the implicit grant: the access token is
// issued straight from the authorize endpoint. No refresh token is minted
// (RFC 6749 section 4.2.2).
type TokenResponseTypeHandler struct{}

func (h *TokenResponseTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.AuthorizeRequest) (url.Values, error) {
	data, err := tt.CreateToken(ctx, mm, req.Client.GetID(), req.UserID, req.Scope, false)
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	for k, v := range data {
		values.Set(k, fmt.Sprint(v))
	}
	return values, nil
}
