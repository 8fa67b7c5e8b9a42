package tokentype

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/generates"
	"github.com/legit-games/oauth2-server/store"
)

func TestBearerCreateToken(t *testing.T) {
	f := store.NewMemoryFactory()
	h := NewBearerTokenTypeHandler(generates.NewAccessGenerate(), 2*time.Hour, 72*time.Hour)
	ctx := context.Background()

	data, err := h.CreateToken(ctx, f, "client1", "user1", "read", true)
	if err != nil {
		t.Fatal(err)
	}
	if data["token_type"] != "bearer" {
		t.Fatalf("token_type = %v", data["token_type"])
	}
	if data["expires_in"] != int64(7200) {
		t.Fatalf("expires_in = %v", data["expires_in"])
	}

	access := data["access_token"].(string)
	token, err := f.AccessToken().GetByAccess(ctx, access)
	if err != nil {
		t.Fatal(err)
	}
	if token.GetClientID() != "client1" || token.GetUserID() != "user1" || token.GetScope() != "read" {
		t.Fatalf("persisted token mismatch: %+v", token)
	}

	refresh := data["refresh_token"].(string)
	if _, err := f.RefreshToken().GetByRefresh(ctx, refresh); err != nil {
		t.Fatalf("refresh token not persisted: %v", err)
	}

	// withRefresh=false omits the field entirely
	data, err = h.CreateToken(ctx, f, "client1", "user1", "", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := data["refresh_token"]; ok {
		t.Fatal("unexpected refresh_token")
	}
	if _, ok := data["scope"]; ok {
		t.Fatal("empty scope should be omitted")
	}
}

func TestBearerGetAccessToken(t *testing.T) {
	h := NewBearerTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/resource", nil)
	r.Header.Set("Authorization", "Bearer tok123")
	if got, err := h.GetAccessToken(r); err != nil || got != "tok123" {
		t.Fatalf("header token = %q, err = %v", got, err)
	}

	form := url.Values{"access_token": {"formtok"}}
	r = httptest.NewRequest(http.MethodPost, "/resource", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if got, err := h.GetAccessToken(r); err != nil || got != "formtok" {
		t.Fatalf("form token = %q, err = %v", got, err)
	}

	r = httptest.NewRequest(http.MethodGet, "/resource", nil)
	r.Header.Set("Authorization", "MAC id=\"x\"")
	if _, err := h.GetAccessToken(r); err != errors.ErrInvalidRequest {
		t.Fatalf("wrong scheme: err = %v, want invalid_request", err)
	}

	r = httptest.NewRequest(http.MethodGet, "/resource", nil)
	if _, err := h.GetAccessToken(r); err != errors.ErrInvalidRequest {
		t.Fatalf("no token: err = %v, want invalid_request", err)
	}
}

func TestMacCreateToken(t *testing.T) {
	f := store.NewMemoryFactory()
	h := NewMacTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour, nil)
	ctx := context.Background()

	data, err := h.CreateToken(ctx, f, "client1", "user1", "read", false)
	if err != nil {
		t.Fatal(err)
	}
	if data["token_type"] != "mac" {
		t.Fatalf("token_type = %v", data["token_type"])
	}
	if data["mac_algorithm"] != MacAlgorithm {
		t.Fatalf("mac_algorithm = %v", data["mac_algorithm"])
	}
	key := data["mac_key"].(string)
	if len(key) != 64 {
		t.Fatalf("mac_key length = %d, want 64 hex chars", len(key))
	}
}

type staticVerifier struct{ token string }

func (v staticVerifier) Verify(r *http.Request) (string, error) { return v.token, nil }

func TestMacGetAccessToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/resource", nil)

	h := NewMacTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour, nil)
	if _, err := h.GetAccessToken(r); err != errors.ErrTemporarilyUnavailable {
		t.Fatalf("no verifier: err = %v, want temporarily_unavailable", err)
	}

	h = NewMacTokenTypeHandler(generates.NewAccessGenerate(), time.Hour, time.Hour, staticVerifier{token: "mactok"})
	if got, err := h.GetAccessToken(r); err != nil || got != "mactok" {
		t.Fatalf("verified token = %q, err = %v", got, err)
	}
}
