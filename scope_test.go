package oauth2

import (
	"context"
	"testing"

	"github.com/legit-games/oauth2-server/errors"
)

func TestValidateParam(t *testing.T) {
	valid := []string{"", "abc", "xyz-123_~", "a b c", "demoscope1 demoscope2"}
	for _, v := range valid {
		if !ValidateParam(v) {
			t.Errorf("ValidateParam(%q) = false, want true", v)
		}
	}
	invalid := []string{"a\x00b", "tab\tchar", "new\nline", `quo"te`, `back\slash`, "high\x80byte", "\x7f"}
	for _, v := range invalid {
		if ValidateParam(v) {
			t.Errorf("ValidateParam(%q) = true, want false", v)
		}
	}
}

func TestScopeContains(t *testing.T) {
	set := []string{"read", "write"}
	if !ScopeContains(set, []string{"read"}) {
		t.Error("subset rejected")
	}
	if !ScopeContains(set, nil) {
		t.Error("empty subset rejected")
	}
	if ScopeContains(set, []string{"read", "admin"}) {
		t.Error("superset accepted")
	}
}

type scopeFixture struct {
	ModelManagerFactory
	scopes map[string]bool
}

type fixtureScopeManager struct{ scopes map[string]bool }

func (m *fixtureScopeManager) Create(ctx context.Context, s ScopeInfo) error { return nil }
func (m *fixtureScopeManager) GetByName(ctx context.Context, name string) (ScopeInfo, error) {
	if m.scopes[name] {
		return nil, nil
	}
	return nil, ErrNotFound
}
func (m *fixtureScopeManager) Update(ctx context.Context, s ScopeInfo) error { return nil }
func (m *fixtureScopeManager) Delete(ctx context.Context, name string) error { return nil }

func (f *scopeFixture) Scope() ScopeManager { return &fixtureScopeManager{scopes: f.scopes} }

type fixtureClient struct {
	scope        []string
	defaultScope []string
}

func (c *fixtureClient) GetID() string              { return "c" }
func (c *fixtureClient) GetSecret() string          { return "" }
func (c *fixtureClient) GetRedirectURIs() []string  { return nil }
func (c *fixtureClient) GetGrantTypes() []GrantType { return nil }
func (c *fixtureClient) GetScope() []string         { return c.scope }
func (c *fixtureClient) GetDefaultScope() []string  { return c.defaultScope }

func TestResolveScope(t *testing.T) {
	mm := &scopeFixture{scopes: map[string]bool{"read": true, "write": true, "other": true}}
	cli := &fixtureClient{scope: []string{"read", "write"}, defaultScope: []string{"read"}}
	ctx := context.Background()

	got, err := ResolveScope(ctx, mm, cli, "read write")
	if err != nil || got != "read write" {
		t.Fatalf("got %q, err %v", got, err)
	}

	// empty request falls back to the client default
	got, err = ResolveScope(ctx, mm, cli, "")
	if err != nil || got != "read" {
		t.Fatalf("default: got %q, err %v", got, err)
	}

	// unknown scope name
	if _, err := ResolveScope(ctx, mm, cli, "missing"); err != errors.ErrInvalidScope {
		t.Fatalf("unknown name: err = %v, want invalid_scope", err)
	}

	// registered but outside the client's allowed set
	if _, err := ResolveScope(ctx, mm, cli, "other"); err != errors.ErrInvalidScope {
		t.Fatalf("outside allowed set: err = %v, want invalid_scope", err)
	}
}
