package server

import (
	"context"
	"fmt"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/resource"
)

// LocalIssuer runs the client credentials exchange and token introspection
// in process against a Server, satisfying resource.TokenIssuer and
// resource.Introspector. It lets the debug-endpoint resource handler federate
// with a co-located authorization server without a network round trip.
type LocalIssuer struct {
	Server *Server
}

func (l *LocalIssuer) IssueToken(ctx context.Context, tokenPath, clientID, clientSecret, scope string) (string, error) {
	cli, err := l.Server.Factory.Client().GetByID(ctx, clientID)
	if err != nil {
		return "", err
	}
	if cli.GetSecret() != clientSecret {
		return "", errors.ErrInvalidClient
	}

	handler, err := l.Server.GrantTypes.Get(oauth2.ClientCredentials)
	if err != nil {
		return "", err
	}
	tt, err := l.Server.TokenTypes.Get(l.Server.Config.TokenType)
	if err != nil {
		return "", err
	}

	data, err := handler.Handle(ctx, l.Server.Factory, tt, &oauth2.TokenRequest{
		GrantType: oauth2.ClientCredentials,
		Client:    cli,
		Scope:     scope,
	})
	if err != nil {
		return "", err
	}

	access, _ := data["access_token"].(string)
	if access == "" {
		return "", fmt.Errorf("no access token issued")
	}
	return access, nil
}

func (l *LocalIssuer) Introspect(ctx context.Context, debugPath, bearerToken, debugToken string) (*resource.DebugResponse, error) {
	local, err := l.Server.ResourceTypes.Get(l.Server.Config.ResourceType)
	if err != nil {
		return nil, err
	}
	if _, err := local.Handle(ctx, l.Server.Factory, bearerToken); err != nil {
		return nil, err
	}

	token, err := local.Handle(ctx, l.Server.Factory, debugToken)
	if err != nil {
		return nil, err
	}
	if time.Now().After(token.GetExpires()) {
		return nil, errors.ErrInvalidToken
	}

	return &resource.DebugResponse{
		AccessToken: token.GetAccess(),
		TokenType:   token.GetTokenType().String(),
		ClientID:    token.GetClientID(),
		Username:    token.GetUserID(),
		Expires:     token.GetExpires().Unix(),
		Scope:       token.GetScope(),
	}, nil
}
