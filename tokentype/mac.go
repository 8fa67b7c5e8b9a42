package tokentype

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/models"
)

// MacAlgorithm the algorithm identifier returned with issued MAC tokens.
const MacAlgorithm = "hmac-sha-256"

// SignatureVerifier checks a MAC-signed request and returns the token id it
// vouches for. Verification internals (nonce handling, normalization) are a
// deployment concern behind this strategy.
type SignatureVerifier interface {
	Verify(r *http.Request) (string, error)
}

// NewMacTokenTypeHandler create the MAC token type handler
func NewMacTokenTypeHandler(ag generates.AccessGenerate, accessExp, refreshExp time.Duration, verifier SignatureVerifier) *MacTokenTypeHandler {
	return &MacTokenTypeHandler{
		AccessGenerate:  ag,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		Verifier:        verifier,
	}
}

// MacTokenTypeHandler issues MAC tokens: the token response additionally
// carries the session key and algorithm identifier.
type MacTokenTypeHandler struct {
	AccessGenerate  generates.AccessGenerate
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
	Verifier        SignatureVerifier
}

func (h *MacTokenTypeHandler) Type() oauth2.TokenType {
	return oauth2.MAC
}

func (h *MacTokenTypeHandler) CreateToken(ctx context.Context, mm oauth2.ModelManagerFactory, clientID, userID, scope string, withRefresh bool) (map[string]interface{}, error) {
	now := time.Now()
	access, refresh, err := h.AccessGenerate.Token(ctx, clientID, userID, scope, now, withRefresh)
	if err != nil {
		return nil, err
	}

	if err := mm.AccessToken().Create(ctx, &models.AccessToken{
		Access:    access,
		ClientID:  clientID,
		UserID:    userID,
		TokenType: oauth2.MAC,
		Scope:     scope,
		Expires:   now.Add(h.AccessTokenExp),
	}); err != nil {
		return nil, err
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"access_token":  access,
		"token_type":    oauth2.MAC.String(),
		"expires_in":    int64(h.AccessTokenExp / time.Second),
		"mac_key":       hex.EncodeToString(key),
		"mac_algorithm": MacAlgorithm,
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

// GetAccessToken delegates signature verification to the configured strategy.
// Without one, MAC presentation cannot be honored.
func (h *MacTokenTypeHandler) GetAccessToken(r *http.Request) (string, error) {
	if h.Verifier == nil {
		return "", errors.ErrTemporarilyUnavailable
	}
	return h.Verifier.Verify(r)
}
