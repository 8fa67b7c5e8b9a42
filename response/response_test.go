package response

import (
	"context"
	"testing"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/models"
	"github.com/legit-games/oauth2-server/store"
	"github.com/legit-games/oauth2-server/tokentype"
)

func newAuthorizeRequest() *oauth2.AuthorizeRequest {
	return &oauth2.AuthorizeRequest{
		ResponseType: oauth2.Code,
		Client:       &models.Client{ID: "client1", Secret: "secret1"},
		RedirectURI:  "http://client1.example/cb",
		Scope:        "read",
		State:        "s",
		UserID:       "user1",
	}
}

func TestCodeResponseTypeHandler(t *testing.T) {
	f := store.NewMemoryFactory()
	tt := tokentype.NewBearerTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour)
	h := NewCodeResponseTypeHandler(generates.NewAuthorizeGenerate(), 10*time.Minute)
	ctx := context.Background()

	values, err := h.Handle(ctx, f, tt, newAuthorizeRequest())
	if err != nil {
		t.Fatal(err)
	}
	code := values.Get("code")
	if code == "" {
		t.Fatal("no code returned")
	}

	stored, err := f.Code().GetByCode(ctx, code)
	if err != nil {
		t.Fatal(err)
	}
	if stored.GetClientID() != "client1" || stored.GetRedirectURI() != "http://client1.example/cb" ||
		stored.GetUserID() != "user1" || stored.GetScope() != "read" {
		t.Fatalf("stored code mismatch: %+v", stored)
	}
	if stored.IsUsed() {
		t.Fatal("new code must not be marked used")
	}
	if !stored.GetExpires().After(time.Now().Add(9 * time.Minute)) {
		t.Fatalf("expiry too soon: %v", stored.GetExpires())
	}
}

func TestTokenResponseTypeHandler(t *testing.T) {
	f := store.NewMemoryFactory()
	tt := tokentype.NewBearerTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour)
	h := NewTokenResponseTypeHandler()
	ctx := context.Background()

	req := newAuthorizeRequest()
	req.ResponseType = oauth2.Token

	values, err := h.Handle(ctx, f, tt, req)
	if err != nil {
		t.Fatal(err)
	}
	if values.Get("access_token") == "" {
		t.Fatal("no access token")
	}
	if values.Get("token_type") != "bearer" {
		t.Fatalf("token_type = %q", values.Get("token_type"))
	}
	if values.Get("refresh_token") != "" {
		t.Fatal("implicit grant must not issue a refresh token")
	}
}
