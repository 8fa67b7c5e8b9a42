package resource

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/models"
)

// DebugScope the scope the handler requests for its own introspection token.
const DebugScope = "debug"

// TokenIssuer obtains a client credentials access token from an authorization
// server's token endpoint.
type TokenIssuer interface {
	IssueToken(ctx context.Context, tokenPath, clientID, clientSecret, scope string) (string, error)
}

// Introspector calls an authorization server's debug endpoint, presenting a
// bearer token of its own and asking about debugToken.
type Introspector interface {
	Introspect(ctx context.Context, debugPath, bearerToken, debugToken string) (*DebugResponse, error)
}

// DebugResponse is the token metadata the debug endpoint reports.
type DebugResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Expires     int64  `json:"expires"`
	Scope       string `json:"scope"`
}

// DebugEndpointOptions configures the remote authorization server to consult.
// All four endpoint/credential fields are required.
type DebugEndpointOptions struct {
	TokenPath    string
	DebugPath    string
	ClientID     string
	ClientSecret string
	// DisableCache skips the local access token manager lookup, forcing the
	// remote round trips on every presentation. Caching is on by default.
	DisableCache bool
}

// NewDebugEndpointResourceTypeHandler create the remote-introspection resource
// type handler.
func NewDebugEndpointResourceTypeHandler(issuer TokenIssuer, introspector Introspector, opts DebugEndpointOptions) *DebugEndpointResourceTypeHandler {
	return &DebugEndpointResourceTypeHandler{Issuer: issuer, Introspector: introspector, Options: opts}
}

// DebugEndpointResourceTypeHandler validates access tokens issued by another
// authorization server by asking that server's debug endpoint. It first
// obtains its own client credentials token, then introspects the presented
// one, caching the verified metadata locally.
type DebugEndpointResourceTypeHandler struct {
	Issuer       TokenIssuer
	Introspector Introspector
	Options      DebugEndpointOptions
}

func (h *DebugEndpointResourceTypeHandler) Handle(ctx context.Context, mm oauth2.ModelManagerFactory, accessToken string) (oauth2.TokenInfo, error) {
	if h.Options.TokenPath == "" || h.Options.DebugPath == "" ||
		h.Options.ClientID == "" || h.Options.ClientSecret == "" {
		return nil, errors.ErrServerError
	}

	if !h.Options.DisableCache {
		if cached, err := mm.AccessToken().GetByAccess(ctx, accessToken); err == nil {
			if time.Now().Before(cached.GetExpires()) {
				return cached, nil
			}
		}
	}

	// Failure to reach or authenticate against the remote server is our
	// misconfiguration, not the caller's.
	bearer, err := h.Issuer.IssueToken(ctx, h.Options.TokenPath, h.Options.ClientID, h.Options.ClientSecret, DebugScope)
	if err != nil {
		return nil, errors.ErrServerError
	}

	resp, err := h.Introspector.Introspect(ctx, h.Options.DebugPath, bearer, accessToken)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	token := &models.AccessToken{
		Access:    resp.AccessToken,
		ClientID:  resp.ClientID,
		UserID:    resp.Username,
		TokenType: oauth2.TokenType(resp.TokenType),
		Scope:     resp.Scope,
		Expires:   time.Unix(resp.Expires, 0),
	}
	if time.Now().After(token.Expires) {
		return nil, errors.ErrInvalidToken
	}

	// The verified record always lands in the local manager; DisableCache
	// only stops the lookup above from short-circuiting.
	if err := mm.AccessToken().Create(ctx, token); err != nil {
		return nil, errors.ErrServerError
	}
	return token, nil
}
