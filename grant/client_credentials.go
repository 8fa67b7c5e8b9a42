package grant

import (
	"context"

	"github.com/legit-games/oauth2-server"
)

// NewClientCredentialsGrantTypeHandler create the client credentials grant
// type handler
func NewClientCredentialsGrantTypeHandler() *ClientCredentialsGrantTypeHandler {
	return &ClientCredentialsGrantTypeHandler{}
}

// ClientCredentialsGrantTypeHandler issues tokens to the client acting on its
// own behalf. The client itself is recorded as the resource owner and no
// refresh token is included (RFC 6749 section 4.4.3).
type ClientCredentialsGrantTypeHandler struct{}

func (h *ClientCredentialsGrantTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.TokenRequest) (map[string]interface{}, error) {
	scope, err := oauth2.ResolveScope(ctx, mm, req.Client, req.Scope)
	if err != nil {
		return nil, err
	}

	return tt.CreateToken(ctx, mm, req.Client.GetID(), req.Client.GetID(), scope, false)
}
