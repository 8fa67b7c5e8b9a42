package store

import "github.com/legit-games/oauth2-server"

// NewCacheFactory overlays a replacement access token manager on top of a base
// factory, leaving the other managers untouched. Used to keep access tokens
// (and debug-endpoint introspection results) in a TTL-aware store like BuntDB
// or Valkey while the rest of the model lives elsewhere.
func NewCacheFactory(base oauth2.ModelManagerFactory, access oauth2.AccessTokenManager) *CacheFactory {
	return &CacheFactory{base: base, access: access}
}

type CacheFactory struct {
	base   oauth2.ModelManagerFactory
	access oauth2.AccessTokenManager
}

func (f *CacheFactory) Client() oauth2.ClientManager             { return f.base.Client() }
func (f *CacheFactory) Scope() oauth2.ScopeManager               { return f.base.Scope() }
func (f *CacheFactory) Code() oauth2.CodeManager                 { return f.base.Code() }
func (f *CacheFactory) AccessToken() oauth2.AccessTokenManager   { return f.access }
func (f *CacheFactory) RefreshToken() oauth2.RefreshTokenManager { return f.base.RefreshToken() }
func (f *CacheFactory) User() oauth2.UserManager                 { return f.base.User() }
