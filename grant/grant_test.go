package grant

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/models"
	"github.com/legit-games/oauth2-server/store"
	"github.com/legit-games/oauth2-server/tokentype"
)

var testClient = &models.Client{
	ID:           "client1",
	Secret:       "secret1",
	RedirectURIs: []string{"http://client1.example/cb"},
	Scope:        []string{"read", "write"},
	DefaultScope: []string{"read"},
}

func newFixture(t *testing.T) (oauth2.ModelManagerFactory, oauth2.TokenTypeHandler) {
	t.Helper()
	f := store.NewMemoryFactory()
	ctx := context.Background()
	if err := f.Client().Create(ctx, testClient); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"read", "write"} {
		if err := f.Scope().Create(ctx, &models.Scope{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	tt := tokentype.NewBearerTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, 24*time.Hour)
	return f, tt
}

func storeCode(t *testing.T, f oauth2.ModelManagerFactory, code *models.AuthorizationCode) {
	t.Helper()
	if err := f.Code().Create(context.Background(), code); err != nil {
		t.Fatal(err)
	}
}

func TestAuthorizationCodeGrant(t *testing.T) {
	f, tt := newFixture(t)
	h := NewAuthorizationCodeGrantTypeHandler()
	ctx := context.Background()

	storeCode(t, f, &models.AuthorizationCode{
		Code: "good", ClientID: "client1", RedirectURI: "http://client1.example/cb",
		UserID: "user1", Scope: "read", Expires: time.Now().Add(time.Minute),
	})

	data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{
		Client: testClient, Code: "good", RedirectURI: "http://client1.example/cb",
	})
	if err != nil {
		t.Fatal(err)
	}
	if data["access_token"] == "" {
		t.Fatal("no access token issued")
	}
	if data["refresh_token"] == "" {
		t.Fatal("code grant should issue a refresh token")
	}
	if data["scope"] != "read" {
		t.Fatalf("scope = %v, want read", data["scope"])
	}

	// second redemption of the same code fails
	if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{
		Client: testClient, Code: "good", RedirectURI: "http://client1.example/cb",
	}); err != errors.ErrInvalidGrant {
		t.Fatalf("second redemption: err = %v, want invalid_grant", err)
	}
}

func TestAuthorizationCodeGrantRejections(t *testing.T) {
	f, tt := newFixture(t)
	h := NewAuthorizationCodeGrantTypeHandler()
	ctx := context.Background()

	storeCode(t, f, &models.AuthorizationCode{
		Code: "c1", ClientID: "client1", RedirectURI: "http://client1.example/cb",
		Expires: time.Now().Add(time.Minute),
	})
	storeCode(t, f, &models.AuthorizationCode{
		Code: "stale", ClientID: "client1", RedirectURI: "http://client1.example/cb",
		Expires: time.Now().Add(-time.Minute),
	})

	otherClient := &models.Client{ID: "client2", Secret: "s2"}

	cases := []struct {
		name string
		req  *oauth2.TokenRequest
		want error
	}{
		{"missing code", &oauth2.TokenRequest{Client: testClient, RedirectURI: "http://client1.example/cb"}, errors.ErrInvalidRequest},
		{"missing redirect", &oauth2.TokenRequest{Client: testClient, Code: "c1"}, errors.ErrInvalidRequest},
		{"unknown code", &oauth2.TokenRequest{Client: testClient, Code: "nope", RedirectURI: "http://client1.example/cb"}, errors.ErrInvalidGrant},
		{"wrong client", &oauth2.TokenRequest{Client: otherClient, Code: "c1", RedirectURI: "http://client1.example/cb"}, errors.ErrInvalidGrant},
		{"wrong redirect", &oauth2.TokenRequest{Client: testClient, Code: "c1", RedirectURI: "http://client1.example/other"}, errors.ErrInvalidGrant},
		{"expired", &oauth2.TokenRequest{Client: testClient, Code: "stale", RedirectURI: "http://client1.example/cb"}, errors.ErrInvalidGrant},
	}
	for _, tc := range cases {
		if _, err := h.Handle(ctx, f, tt, tc.req); err != tc.want {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestClientCredentialsGrant(t *testing.T) {
	f, tt := newFixture(t)
	h := NewClientCredentialsGrantTypeHandler()
	ctx := context.Background()

	data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient})
	if err != nil {
		t.Fatal(err)
	}
	if data["scope"] != "read" {
		t.Fatalf("scope = %v, want the client default", data["scope"])
	}
	if _, ok := data["refresh_token"]; ok {
		t.Fatal("client credentials must not issue a refresh token")
	}

	// the client itself is the resource owner
	token, err := f.AccessToken().GetByAccess(ctx, data["access_token"].(string))
	if err != nil {
		t.Fatal(err)
	}
	if token.GetUserID() != "client1" {
		t.Fatalf("user id = %q, want the client id", token.GetUserID())
	}

	if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Scope: "admin"}); err != errors.ErrInvalidScope {
		t.Fatalf("unknown scope: err = %v, want invalid_scope", err)
	}
}

func TestPasswordGrant(t *testing.T) {
	f, tt := newFixture(t)
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err := f.User().Create(ctx, &models.User{ID: "u1", Username: "alice", PasswordHash: string(hash)}); err != nil {
		t.Fatal(err)
	}
	h := NewPasswordGrantTypeHandler(store.NewMemoryUserProvider(f.(*store.MemoryFactory)))

	data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{
		Client: testClient, Username: "alice", Password: "pw", Scope: "read write",
	})
	if err != nil {
		t.Fatal(err)
	}
	if data["scope"] != "read write" {
		t.Fatalf("scope = %v", data["scope"])
	}

	if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{
		Client: testClient, Username: "alice", Password: "wrong",
	}); err != errors.ErrInvalidGrant {
		t.Fatalf("bad password: err = %v, want invalid_grant", err)
	}
	if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{
		Client: testClient, Username: "alice",
	}); err != errors.ErrInvalidRequest {
		t.Fatalf("missing password: err = %v, want invalid_request", err)
	}
}

func TestRefreshTokenGrant(t *testing.T) {
	f, tt := newFixture(t)
	ctx := context.Background()

	seed := func(token string) {
		if err := f.RefreshToken().Create(ctx, &models.RefreshToken{
			Refresh: token, ClientID: "client1", UserID: "u1",
			Scope: "read write", Expires: time.Now().Add(time.Hour),
		}); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("without rotation the token survives", func(t *testing.T) {
		seed("r1")
		h := NewRefreshTokenGrantTypeHandler(false)

		data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "r1"})
		if err != nil {
			t.Fatal(err)
		}
		if data["refresh_token"] != "r1" {
			t.Fatalf("refresh_token = %v, want the original", data["refresh_token"])
		}
		if data["scope"] != "read write" {
			t.Fatalf("scope = %v, want the original grant", data["scope"])
		}
	})

	t.Run("rotation retires the presented token", func(t *testing.T) {
		seed("r2")
		h := NewRefreshTokenGrantTypeHandler(true)

		data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "r2"})
		if err != nil {
			t.Fatal(err)
		}
		if data["refresh_token"] == "r2" || data["refresh_token"] == "" {
			t.Fatalf("refresh_token = %v, want a replacement", data["refresh_token"])
		}
		if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "r2"}); err != errors.ErrInvalidGrant {
			t.Fatalf("retired token: err = %v, want invalid_grant", err)
		}
	})

	t.Run("scope may narrow but not widen", func(t *testing.T) {
		seed("r3")
		h := NewRefreshTokenGrantTypeHandler(false)

		data, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "r3", Scope: "read"})
		if err != nil {
			t.Fatal(err)
		}
		if data["scope"] != "read" {
			t.Fatalf("scope = %v", data["scope"])
		}
		if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "r3", Scope: "read admin"}); err != errors.ErrInvalidScope {
			t.Fatalf("widened scope: err = %v, want invalid_scope", err)
		}
	})

	t.Run("foreign and expired tokens are rejected", func(t *testing.T) {
		seed("r4")
		if err := f.RefreshToken().Create(ctx, &models.RefreshToken{
			Refresh: "old", ClientID: "client1", Expires: time.Now().Add(-time.Minute),
		}); err != nil {
			t.Fatal(err)
		}
		h := NewRefreshTokenGrantTypeHandler(false)

		other := &models.Client{ID: "client2"}
		if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: other, Refresh: "r4"}); err != errors.ErrInvalidGrant {
			t.Fatalf("foreign client: err = %v, want invalid_grant", err)
		}
		if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient, Refresh: "old"}); err != errors.ErrInvalidGrant {
			t.Fatalf("expired: err = %v, want invalid_grant", err)
		}
		if _, err := h.Handle(ctx, f, tt, &oauth2.TokenRequest{Client: testClient}); err != errors.ErrInvalidRequest {
			t.Fatalf("missing token: err = %v, want invalid_request", err)
		}
	})
}
