package resource

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/models"
	"github.com/legit-games/oauth2-server/store"
)

func TestModelResourceTypeHandler(t *testing.T) {
	f := store.NewMemoryFactory()
	h := NewModelResourceTypeHandler()
	ctx := context.Background()

	if err := f.AccessToken().Create(ctx, &models.AccessToken{
		Access: "live", ClientID: "c1", UserID: "u1",
		TokenType: oauth2.Bearer, Scope: "read", Expires: time.Now().Add(time.Hour),
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.AccessToken().Create(ctx, &models.AccessToken{
		Access: "dead", Expires: time.Now().Add(-time.Minute),
	}); err != nil {
		t.Fatal(err)
	}

	token, err := h.Handle(ctx, f, "live")
	if err != nil {
		t.Fatal(err)
	}
	if token.GetClientID() != "c1" {
		t.Fatalf("client id = %q", token.GetClientID())
	}

	if _, err := h.Handle(ctx, f, "dead"); err != errors.ErrInvalidToken {
		t.Fatalf("expired: err = %v, want invalid_token", err)
	}
	if _, err := h.Handle(ctx, f, "unknown"); err != errors.ErrInvalidToken {
		t.Fatalf("unknown: err = %v, want invalid_token", err)
	}
}

type fakeIssuer struct {
	token string
	err   error
	calls int
}

func (i *fakeIssuer) IssueToken(ctx context.Context, tokenPath, clientID, clientSecret, scope string) (string, error) {
	i.calls++
	if i.err != nil {
		return "", i.err
	}
	if scope != DebugScope {
		return "", fmt.Errorf("unexpected scope %q", scope)
	}
	return i.token, nil
}

type fakeIntrospector struct {
	resp  *DebugResponse
	err   error
	calls int
}

func (in *fakeIntrospector) Introspect(ctx context.Context, debugPath, bearerToken, debugToken string) (*DebugResponse, error) {
	in.calls++
	if in.err != nil {
		return nil, in.err
	}
	return in.resp, nil
}

func debugOptions() DebugEndpointOptions {
	return DebugEndpointOptions{
		TokenPath:    "http://auth.example/oauth2/token",
		DebugPath:    "http://auth.example/oauth2/debug",
		ClientID:     "relying",
		ClientSecret: "relyingsecret",
	}
}

func TestDebugEndpointHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("missing options fail as server_error", func(t *testing.T) {
		f := store.NewMemoryFactory()
		h := NewDebugEndpointResourceTypeHandler(&fakeIssuer{}, &fakeIntrospector{}, DebugEndpointOptions{})
		if _, err := h.Handle(ctx, f, "tok"); err != errors.ErrServerError {
			t.Fatalf("err = %v, want server_error", err)
		}
	})

	t.Run("remote verification populates the cache", func(t *testing.T) {
		f := store.NewMemoryFactory()
		issuer := &fakeIssuer{token: "localtok"}
		intro := &fakeIntrospector{resp: &DebugResponse{
			AccessToken: "remotetok", TokenType: "bearer", ClientID: "remote-client",
			Username: "remote-user", Expires: time.Now().Add(time.Hour).Unix(), Scope: "demoscope1",
		}}
		h := NewDebugEndpointResourceTypeHandler(issuer, intro, debugOptions())

		token, err := h.Handle(ctx, f, "remotetok")
		if err != nil {
			t.Fatal(err)
		}
		if token.GetClientID() != "remote-client" || token.GetUserID() != "remote-user" {
			t.Fatalf("token = %+v", token)
		}

		// second presentation is served from the cache
		if _, err := h.Handle(ctx, f, "remotetok"); err != nil {
			t.Fatal(err)
		}
		if issuer.calls != 1 || intro.calls != 1 {
			t.Fatalf("remote calls = %d/%d, want 1/1", issuer.calls, intro.calls)
		}
	})

	t.Run("disabled cache always goes remote", func(t *testing.T) {
		f := store.NewMemoryFactory()
		// a live local entry that must not be served
		if err := f.AccessToken().Create(ctx, &models.AccessToken{
			Access: "remotetok", ClientID: "stale-client", Expires: time.Now().Add(time.Hour),
		}); err != nil {
			t.Fatal(err)
		}
		issuer := &fakeIssuer{token: "localtok"}
		intro := &fakeIntrospector{resp: &DebugResponse{
			AccessToken: "remotetok", TokenType: "bearer", ClientID: "remote-client",
			Expires: time.Now().Add(time.Hour).Unix(),
		}}
		opts := debugOptions()
		opts.DisableCache = true
		h := NewDebugEndpointResourceTypeHandler(issuer, intro, opts)

		for i := 0; i < 2; i++ {
			token, err := h.Handle(ctx, f, "remotetok")
			if err != nil {
				t.Fatal(err)
			}
			if token.GetClientID() != "remote-client" {
				t.Fatalf("served local entry instead of remote metadata: %q", token.GetClientID())
			}
		}
		if issuer.calls != 2 || intro.calls != 2 {
			t.Fatalf("remote calls = %d/%d, want 2/2", issuer.calls, intro.calls)
		}
	})

	t.Run("expired cache entries trigger re-verification", func(t *testing.T) {
		f := store.NewMemoryFactory()
		if err := f.AccessToken().Create(ctx, &models.AccessToken{
			Access: "remotetok", Expires: time.Now().Add(-time.Minute),
		}); err != nil {
			t.Fatal(err)
		}
		issuer := &fakeIssuer{token: "localtok"}
		intro := &fakeIntrospector{resp: &DebugResponse{
			AccessToken: "remotetok", TokenType: "bearer", ClientID: "remote-client",
			Expires: time.Now().Add(time.Hour).Unix(),
		}}
		h := NewDebugEndpointResourceTypeHandler(issuer, intro, debugOptions())

		if _, err := h.Handle(ctx, f, "remotetok"); err != nil {
			t.Fatal(err)
		}
		if issuer.calls != 1 {
			t.Fatalf("expired cache entry should not short-circuit, calls = %d", issuer.calls)
		}
	})

	t.Run("issuer failure is server_error", func(t *testing.T) {
		f := store.NewMemoryFactory()
		h := NewDebugEndpointResourceTypeHandler(
			&fakeIssuer{err: fmt.Errorf("connection refused")},
			&fakeIntrospector{},
			debugOptions())
		if _, err := h.Handle(ctx, f, "tok"); err != errors.ErrServerError {
			t.Fatalf("err = %v, want server_error", err)
		}
	})

	t.Run("introspection failure is invalid_request", func(t *testing.T) {
		f := store.NewMemoryFactory()
		h := NewDebugEndpointResourceTypeHandler(
			&fakeIssuer{token: "localtok"},
			&fakeIntrospector{err: fmt.Errorf("401 from remote")},
			debugOptions())
		if _, err := h.Handle(ctx, f, "tok"); err != errors.ErrInvalidRequest {
			t.Fatalf("err = %v, want invalid_request", err)
		}
	})

	t.Run("remotely expired tokens are invalid_token", func(t *testing.T) {
		f := store.NewMemoryFactory()
		h := NewDebugEndpointResourceTypeHandler(
			&fakeIssuer{token: "localtok"},
			&fakeIntrospector{resp: &DebugResponse{
				AccessToken: "tok", Expires: time.Now().Add(-time.Minute).Unix(),
			}},
			debugOptions())
		if _, err := h.Handle(ctx, f, "tok"); err != errors.ErrInvalidToken {
			t.Fatalf("err = %v, want invalid_token", err)
		}
	})
}
