package resource

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// NewModelResourceTypeHandler create the local-store resource type handler
func NewModelResourceTypeHandler() *ModelResourceTypeHandler {
	return &ModelResourceTypeHandler{}
}

// ModelResourceTypeHandler validates presented access tokens against the local
// access token manager.
type ModelResourceTypeHandler struct{}

func (h *ModelResourceTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, accessToken string) (oauth2.TokenInfo, error) {
	token, err := mm.AccessToken().GetByAccess(ctx, accessToken)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidToken
		}
		return nil, err
	}
	if time.Now().After(token.GetExpires()) {
		return nil, errors.ErrInvalidToken
	}
	return token, nil
}
