package store

import (
	"github.com/legit-games/oauth2-server"
	"gorm.io/gorm"
)

// NewDBFactory create a Postgres-backed model manager factory. Uniqueness and
// atomic code redemption ride on the schema's primary keys and a guarded
// UPDATE, so the single-use invariant holds across processes.
func NewDBFactory(db *gorm.DB) *DBFactory {
	return &DBFactory{
		client:  &DBClientStore{DB: db},
		scope:   &DBScopeStore{DB: db},
		code:    &DBCodeStore{DB: db},
		access:  &DBAccessTokenStore{DB: db},
		refresh: &DBRefreshTokenStore{DB: db},
		user:    &DBUserStore{DB: db},
	}
}

// DBFactory database-backed model manager factory
type DBFactory struct {
	client  *DBClientStore
	scope   *DBScopeStore
	code    *DBCodeStore
	access  *DBAccessTokenStore
	refresh *DBRefreshTokenStore
	user    *DBUserStore
}

func (f *DBFactory) Client() oauth2.ClientManager             { return f.client }
func (f *DBFactory) Scope() oauth2.ScopeManager               { return f.scope }
func (f *DBFactory) Code() oauth2.CodeManager                 { return f.code }
func (f *DBFactory) AccessToken() oauth2.AccessTokenManager   { return f.access }
func (f *DBFactory) RefreshToken() oauth2.RefreshTokenManager { return f.refresh }
func (f *DBFactory) User() oauth2.UserManager                 { return f.user }
