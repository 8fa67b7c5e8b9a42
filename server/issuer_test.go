package server

import (
	"net/http"
	"testing"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"github.com/legit-games/oauth2-server/resource"
	"github.com/legit-games/oauth2-server/store"
)

// Two servers: an authority issuing tokens, and a relying server that
// validates presented tokens by introspecting against the authority through
// the debug-endpoint resource handler.
func TestDebugEndpointFederation(t *testing.T) {
	authority := newTestEnv(t)

	// the relying server's own credentials at the authority
	if err := authority.factory.Client().Create(t.Context(), &models.Client{
		ID:         "relying",
		Secret:     "relyingsecret",
		GrantTypes: []oauth2.GrantType{oauth2.ClientCredentials},
		Scope:      []string{"debug"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := authority.factory.Scope().Create(t.Context(), &models.Scope{Name: "debug"}); err != nil {
		t.Fatal(err)
	}

	relyingFactory := store.NewMemoryFactory()
	relying := NewDefaultServer(NewConfig(), relyingFactory, nil)
	issuer := &LocalIssuer{Server: authority.srv}
	relying.ResourceTypes.Register(oauth2.ResourceDebugEndpoint,
		resource.NewDebugEndpointResourceTypeHandler(issuer, issuer, resource.DebugEndpointOptions{
			TokenPath:    "/token",
			DebugPath:    "/debug",
			ClientID:     "relying",
			ClientSecret: "relyingsecret",
		}))
	relying.Config.ResourceType = oauth2.ResourceDebugEndpoint

	// a resource owner token minted at the authority
	e := authority.expect(t)
	access := e.POST("/token").
		WithBasicAuth(testClientID, testClientSecret).
		WithFormField("grant_type", "password").
		WithFormField("username", testUsername).
		WithFormField("password", testPassword).
		Expect().Status(http.StatusOK).JSON().Object().
		Value("access_token").String().Raw()

	rh, err := relying.ResourceTypes.Get(oauth2.ResourceDebugEndpoint)
	if err != nil {
		t.Fatal(err)
	}
	token, err := rh.Handle(t.Context(), relying.Factory, access)
	if err != nil {
		t.Fatal(err)
	}
	if token.GetClientID() != testClientID || token.GetUserID() != testUserID {
		t.Fatalf("introspected token = %+v", token)
	}

	// the verified metadata is now cached locally
	if _, err := relyingFactory.AccessToken().GetByAccess(t.Context(), access); err != nil {
		t.Fatalf("expected cached token, got %v", err)
	}

	// a token the authority never issued fails closed
	if _, err := rh.Handle(t.Context(), relying.Factory, "forged"); err == nil {
		t.Fatal("forged token accepted")
	}
}
