package oauth2

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by model managers when no record matches the filter.
var ErrNotFound = errors.New("record not found")

type (
	// ClientInfo the client information model interface
	ClientInfo interface {
		GetID() string
		GetSecret() string
		GetRedirectURIs() []string
		GetGrantTypes() []GrantType
		// GetScope returns the client's allowed scope names.
		GetScope() []string
		// GetDefaultScope returns the scope granted when the request names none.
		GetDefaultScope() []string
	}

	// ScopeInfo the scope registry entry interface
	ScopeInfo interface {
		GetName() string
		GetDescription() string
		IsDefault() bool
	}

	// CodeInfo the authorization code model interface
	CodeInfo interface {
		GetCode() string
		GetClientID() string
		GetRedirectURI() string
		GetUserID() string
		GetScope() string
		GetExpires() time.Time
		IsUsed() bool
	}

	// TokenInfo the access token model interface
	TokenInfo interface {
		GetAccess() string
		GetClientID() string
		GetUserID() string
		GetTokenType() TokenType
		GetScope() string
		GetExpires() time.Time
	}

	// RefreshInfo the refresh token model interface
	RefreshInfo interface {
		GetRefresh() string
		GetClientID() string
		GetUserID() string
		GetScope() string
		GetExpires() time.Time
	}

	// UserInfo the resource owner model interface. Credentials stay opaque to
	// the engine; verification is the user provider's business.
	UserInfo interface {
		GetID() string
		GetUsername() string
	}
)

type (
	// ClientManager manages client persistence
	ClientManager interface {
		Create(ctx context.Context, cli ClientInfo) error
		GetByID(ctx context.Context, id string) (ClientInfo, error)
		Update(ctx context.Context, cli ClientInfo) error
		Delete(ctx context.Context, id string) error
	}

	// ScopeManager manages the scope registry
	ScopeManager interface {
		Create(ctx context.Context, scope ScopeInfo) error
		GetByName(ctx context.Context, name string) (ScopeInfo, error)
		Update(ctx context.Context, scope ScopeInfo) error
		Delete(ctx context.Context, name string) error
	}

	// CodeManager manages authorization codes. MarkUsed must be atomic:
	// concurrent calls for the same code yield exactly one nil return, all
	// others get ErrNotFound. The single-use invariant rests on this.
	CodeManager interface {
		Create(ctx context.Context, code CodeInfo) error
		GetByCode(ctx context.Context, code string) (CodeInfo, error)
		MarkUsed(ctx context.Context, code string) error
		Delete(ctx context.Context, code string) error
	}

	// AccessTokenManager manages access tokens
	AccessTokenManager interface {
		Create(ctx context.Context, token TokenInfo) error
		GetByAccess(ctx context.Context, access string) (TokenInfo, error)
		Update(ctx context.Context, token TokenInfo) error
		Delete(ctx context.Context, access string) error
	}

	// RefreshTokenManager manages refresh tokens
	RefreshTokenManager interface {
		Create(ctx context.Context, token RefreshInfo) error
		GetByRefresh(ctx context.Context, refresh string) (RefreshInfo, error)
		Delete(ctx context.Context, refresh string) error
	}

	// UserManager manages resource owners
	UserManager interface {
		Create(ctx context.Context, user UserInfo) error
		GetByUsername(ctx context.Context, username string) (UserInfo, error)
		Update(ctx context.Context, user UserInfo) error
		Delete(ctx context.Context, id string) error
	}
)

// ModelManagerFactory returns a typed manager per entity. The engine never
// persists anything directly; storage lifetime and concurrency discipline
// (unique constraints, atomic code redemption) belong to the implementation.
type ModelManagerFactory interface {
	Client() ClientManager
	Scope() ScopeManager
	Code() CodeManager
	AccessToken() AccessTokenManager
	RefreshToken() RefreshTokenManager
	User() UserManager
}

// UserProvider verifies resource-owner credentials for the password grant.
// Implementations live outside the engine (database, LDAP, ...).
type UserProvider interface {
	Authenticate(ctx context.Context, username, password string) (UserInfo, error)
}
