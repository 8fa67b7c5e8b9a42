package generates

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTAccessClaims jwt claims
type JWTAccessClaims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id,omitempty"`
	Scope    string `json:"scope,omitempty"` // Space-separated scopes per RFC 6749
}

// NewJWTAccessGenerate create to generate the jwt access token instance
func NewJWTAccessGenerate(kid string, key []byte, method jwt.SigningMethod, expiresIn time.Duration) *JWTAccessGenerate {
	return &JWTAccessGenerate{
		SignedKeyID:  kid,
		SignedKey:    key,
		SignedMethod: method,
		ExpiresIn:    expiresIn,
	}
}

// JWTAccessGenerate generate the jwt access token. The token value is
// self-describing but is still persisted through the access token manager, so
// introspection and expiry checks behave exactly like the opaque form.
type JWTAccessGenerate struct {
	SignedKeyID  string
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
	ExpiresIn    time.Duration
}

// Token signs claims derived from the issuance request; the refresh token
// stays opaque.
func (a *JWTAccessGenerate) Token(ctx context.Context, clientID, userID, scope string, createAt time.Time, genRefresh bool) (string, string, error) {
	claims := &JWTAccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{clientID},
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(createAt),
			ExpiresAt: jwt.NewNumericDate(createAt.Add(a.ExpiresIn)),
			ID:        uuid.Must(uuid.NewRandom()).String(),
		},
		ClientID: clientID,
		Scope:    scope,
	}

	token := jwt.NewWithClaims(a.SignedMethod, claims)
	if a.SignedKeyID != "" {
		token.Header["kid"] = a.SignedKeyID
	}
	access, err := token.SignedString(a.SignedKey)
	if err != nil {
		return "", "", err
	}

	refresh := ""
	if genRefresh {
		refresh, _, err = NewAccessGenerate().Token(ctx, clientID, userID, scope, createAt, false)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}
