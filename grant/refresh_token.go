package grant

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
)

// NewRefreshTokenGrantTypeHandler create the refresh token grant type handler
func NewRefreshTokenGrantTypeHandler(rotate bool) *RefreshTokenGrantTypeHandler {
	return &RefreshTokenGrantTypeHandler{Rotate: rotate}
}

// RefreshTokenGrantTypeHandler exchanges a live refresh token for a fresh
// access token. With Rotate set, the presented refresh token is retired and a
// replacement is issued alongside the access token.
type RefreshTokenGrantTypeHandler struct {
	Rotate bool
}

func (h *RefreshTokenGrantTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, tt oauth2.TokenTypeHandler, req *oauth2.TokenRequest) (map[string]interface{}, error) {
	if req.Refresh == "" {
		return nil, errors.ErrInvalidRequest
	}

	refresh, err := mm.RefreshToken().GetByRefresh(ctx, req.Refresh)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidGrant
		}
		return nil, err
	}

	switch {
	case refresh.GetClientID() != req.Client.GetID():
		return nil, errors.ErrInvalidGrant
	case time.Now().After(refresh.GetExpires()):
		return nil, errors.ErrInvalidGrant
	}

	// A narrower scope may be requested, never a wider one
	// (RFC 6749 section 6).
	scope := refresh.GetScope()
	if req.Scope != "" {
		if !oauth2.ScopeContains(oauth2.ScopeFields(scope), oauth2.ScopeFields(req.Scope)) {
			return nil, errors.ErrInvalidScope
		}
		scope = req.Scope
	}

	data, err := tt.CreateToken(ctx, mm, refresh.GetClientID(), refresh.GetUserID(), scope, h.Rotate)
	if err != nil {
		return nil, err
	}

	if h.Rotate {
		if err := mm.RefreshToken().Delete(ctx, req.Refresh); err != nil && err != oauth2.ErrNotFound {
			return nil, err
		}
	} else {
		data["refresh_token"] = req.Refresh
	}
	return data, nil
}
