package oauth2

import (
	"context"
	"net/http"
	"net/url"

	"github.com/legit-games/oauth2-server/errors"
)

// AuthorizeRequest is an authorization request that already passed endpoint
// validation: the client is resolved and the redirect URI is trusted.
type AuthorizeRequest struct {
	ResponseType ResponseType
	Client       ClientInfo
	RedirectURI  string
	Scope        string
	State        string
	// UserID is the authenticated resource owner, established by the
	// embedding application's security layer before the endpoint runs.
	UserID string
}

// TokenRequest is a token request with an authenticated client. Grant-specific
// parameters are populated by the token endpoint before dispatch.
type TokenRequest struct {
	GrantType   GrantType
	Client      ClientInfo
	Code        string
	RedirectURI string
	Username    string
	Password    string
	Refresh     string
	Scope       string
}

type (
	// ResponseTypeHandler turns a validated authorize request into the grant
	// artifact delivered as redirect parameters.
	ResponseTypeHandler interface {
		Handle(ctx context.Context, mm ModelManagerFactory, tt TokenTypeHandler, req *AuthorizeRequest) (url.Values, error)
	}

	// GrantTypeHandler turns a validated token request into issued tokens,
	// shaped by the configured token type handler.
	GrantTypeHandler interface {
		Handle(ctx context.Context, mm ModelManagerFactory, tt TokenTypeHandler, req *TokenRequest) (map[string]interface{}, error)
	}

	// TokenTypeHandler shapes issued tokens into their wire representation and
	// extracts presented tokens on resource access.
	TokenTypeHandler interface {
		Type() TokenType
		CreateToken(ctx context.Context, mm ModelManagerFactory, clientID, userID, scope string, withRefresh bool) (map[string]interface{}, error)
		GetAccessToken(r *http.Request) (string, error)
	}

	// ResourceTypeHandler resolves a presented access token to its stored
	// metadata, possibly via remote introspection.
	ResourceTypeHandler interface {
		Handle(ctx context.Context, mm ModelManagerFactory, accessToken string) (TokenInfo, error)
	}
)

// ResponseTypeRegistry maps response type names to handlers.
type ResponseTypeRegistry struct {
	handlers map[ResponseType]ResponseTypeHandler
}

func NewResponseTypeRegistry() *ResponseTypeRegistry {
	return &ResponseTypeRegistry{handlers: make(map[ResponseType]ResponseTypeHandler)}
}

func (r *ResponseTypeRegistry) Register(t ResponseType, h ResponseTypeHandler) {
	r.handlers[t] = h
}

func (r *ResponseTypeRegistry) Get(t ResponseType) (ResponseTypeHandler, error) {
	if h, ok := r.handlers[t]; ok {
		return h, nil
	}
	return nil, errors.ErrUnsupportedResponseType
}

// GrantTypeRegistry maps grant type names to handlers.
type GrantTypeRegistry struct {
	handlers map[GrantType]GrantTypeHandler
}

func NewGrantTypeRegistry() *GrantTypeRegistry {
	return &GrantTypeRegistry{handlers: make(map[GrantType]GrantTypeHandler)}
}

func (r *GrantTypeRegistry) Register(t GrantType, h GrantTypeHandler) {
	r.handlers[t] = h
}

func (r *GrantTypeRegistry) Get(t GrantType) (GrantTypeHandler, error) {
	if h, ok := r.handlers[t]; ok {
		return h, nil
	}
	return nil, errors.ErrUnsupportedGrantType
}

// TokenTypeRegistry maps token type names to handlers. An unknown token type
// is a server misconfiguration, not a caller mistake.
type TokenTypeRegistry struct {
	handlers map[TokenType]TokenTypeHandler
}

func NewTokenTypeRegistry() *TokenTypeRegistry {
	return &TokenTypeRegistry{handlers: make(map[TokenType]TokenTypeHandler)}
}

func (r *TokenTypeRegistry) Register(t TokenType, h TokenTypeHandler) {
	r.handlers[t] = h
}

func (r *TokenTypeRegistry) Get(t TokenType) (TokenTypeHandler, error) {
	if h, ok := r.handlers[t]; ok {
		return h, nil
	}
	return nil, errors.ErrServerError
}

// ResourceTypeRegistry maps resource type names to handlers.
type ResourceTypeRegistry struct {
	handlers map[ResourceType]ResourceTypeHandler
}

func NewResourceTypeRegistry() *ResourceTypeRegistry {
	return &ResourceTypeRegistry{handlers: make(map[ResourceType]ResourceTypeHandler)}
}

func (r *ResourceTypeRegistry) Register(t ResourceType, h ResourceTypeHandler) {
	r.handlers[t] = h
}

func (r *ResourceTypeRegistry) Get(t ResourceType) (ResourceTypeHandler, error) {
	if h, ok := r.handlers[t]; ok {
		return h, nil
	}
	return nil, errors.ErrServerError
}
