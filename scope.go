package oauth2

import (
	"context"
	"strings"

	"github.com/legit-games/oauth2-server/errors"
)

// ValidateParam reports whether v is safe to echo into a redirect: printable
// ASCII only, no control characters, no DQUOTE, no backslash.
func ValidateParam(v string) bool {
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c < 0x20 || c >= 0x7f || c == '"' || c == '\\' {
			return false
		}
	}
	return true
}

// ScopeFields splits a space-delimited scope parameter into its names.
func ScopeFields(scope string) []string {
	return strings.Fields(scope)
}

// ScopeContains reports whether every name in sub appears in set.
func ScopeContains(set []string, sub []string) bool {
	for _, name := range sub {
		found := false
		for _, s := range set {
			if s == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ResolveScope validates a requested scope against the scope registry and the
// client's allowed set, per RFC 6749 section 3.3. An empty request resolves to
// the client's default scope. Each explicitly requested name must exist in the
// registry; requested or defaulted names must all be within the client's
// allowed set. Returns the normalized space-delimited scope.
func ResolveScope(ctx context.Context, mm ModelManagerFactory, cli ClientInfo, requested string) (string, error) {
	names := ScopeFields(requested)
	if len(names) == 0 {
		names = cli.GetDefaultScope()
	} else {
		for _, name := range names {
			if _, err := mm.Scope().GetByName(ctx, name); err != nil {
				if err == ErrNotFound {
					return "", errors.ErrInvalidScope
				}
				return "", errors.ErrServerError
			}
		}
	}

	if !ScopeContains(cli.GetScope(), names) {
		return "", errors.ErrInvalidScope
	}
	return strings.Join(names, " "), nil
}
