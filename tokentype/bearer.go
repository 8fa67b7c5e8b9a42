package tokentype

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/models"
)

// NewBearerTokenTypeHandler create the bearer token type handler
func NewBearerTokenTypeHandler(ag generates.AccessGenerate, accessExp, refreshExp time.Duration) *BearerTokenTypeHandler {
	return &BearerTokenTypeHandler{
		AccessGenerate:  ag,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
	}
}

// BearerTokenTypeHandler issues opaque bearer tokens (RFC 6750). Presentation
// is validated by exact match plus expiry only.
type BearerTokenTypeHandler struct {
	AccessGenerate  generates.AccessGenerate
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

func (h *BearerTokenTypeHandler) Type() oauth2.TokenType {
	return oauth2.Bearer
}

// CreateToken generates and persists the access token, plus a refresh token
// when the grant calls for one, and returns the wire fields.
func (h *BearerTokenTypeHandler) CreateToken(ctx context.Context, mm oauth2.ModelManagerFactory, clientID, userID, scope string, withRefresh bool) (map[string]interface{}, error) {
	now := time.Now()
	access, refresh, err := h.AccessGenerate.Token(ctx, clientID, userID, scope, now, withRefresh)
	if err != nil {
		return nil, err
	}

	if err := mm.AccessToken().Create(ctx, &models.AccessToken{
		Access:    access,
		ClientID:  clientID,
		UserID:    userID,
		TokenType: oauth2.Bearer,
		Scope:     scope,
		Expires:   now.Add(h.AccessTokenExp),
	}); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"access_token": access,
		"token_type":   oauth2.Bearer.String(),
		"expires_in":   int64(h.AccessTokenExp / time.Second),
	}
	if scope != "" {
		data["scope"] = scope
	}

	if withRefresh {
		if err := mm.RefreshToken().Create(ctx, &models.RefreshToken{
			Refresh:  refresh,
			ClientID: clientID,
			UserID:   userID,
			Scope:    scope,
			Expires:  now.Add(h.RefreshTokenExp),
		}); err != nil {
			return nil, err
		}
		data["refresh_token"] = refresh
	}

	return data, nil
}

// GetAccessToken extracts the presented bearer token from the Authorization
// header or, failing that, the access_token parameter (RFC 6750 section 2).
func (h *BearerTokenTypeHandler) GetAccessToken(r *http.Request) (string, error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		prefix := "Bearer "
		if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
			return auth[len(prefix):], nil
		}
		return "", errors.ErrInvalidRequest
	}
	if token := r.FormValue("access_token"); token != "" {
		return token, nil
	}
	return "", errors.ErrInvalidRequest
}
