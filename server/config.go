package server

import (
	"time"

	"github.com/legit-games/oauth2-server"
)

// Config endpoint configuration
type Config struct {
	// TokenType selects the token type handler used when issuing and
	// presenting tokens.
	TokenType oauth2.TokenType
	// ResourceType selects the resource type handler the debug endpoint
	// consults.
	ResourceType oauth2.ResourceType
	// Realm is echoed in WWW-Authenticate challenges.
	Realm string
	// AllowGetAccessRequest also accepts GET on the token endpoint.
	AllowGetAccessRequest bool
	// RotateRefreshTokens retires a presented refresh token and issues a
	// replacement on every refresh exchange.
	RotateRefreshTokens bool

	CodeExp         time.Duration
	AccessTokenExp  time.Duration
	RefreshTokenExp time.Duration
}

// NewConfig create a default configuration: opaque bearer tokens validated
// against the local store, with conventional lifetimes.
func NewConfig() *Config {
	return &Config{
		TokenType:       oauth2.Bearer,
		ResourceType:    oauth2.ResourceModel,
		Realm:           "oauth2",
		CodeExp:         10 * time.Minute,
		AccessTokenExp:  2 * time.Hour,
		RefreshTokenExp: 72 * time.Hour,
	}
}
