package store

import (
	"context"
	"sync"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/models"
	"golang.org/x/crypto/bcrypt"
)

// NewMemoryFactory create an in-memory model manager factory. Intended for
// tests and the example server; all managers are safe for concurrent use.
func NewMemoryFactory() *MemoryFactory {
	return &MemoryFactory{
		client:  &ClientStore{data: make(map[string]oauth2.ClientInfo)},
		scope:   &ScopeStore{data: make(map[string]oauth2.ScopeInfo)},
		code:    &CodeStore{data: make(map[string]*models.AuthorizationCode)},
		access:  &AccessTokenStore{data: make(map[string]oauth2.TokenInfo)},
		refresh: &RefreshTokenStore{data: make(map[string]oauth2.RefreshInfo)},
		user:    &UserStore{data: make(map[string]*models.User)},
	}
}

// MemoryFactory in-memory model manager factory
type MemoryFactory struct {
	client  *ClientStore
	scope   *ScopeStore
	code    *CodeStore
	access  *AccessTokenStore
	refresh *RefreshTokenStore
	user    *UserStore
}

func (f *MemoryFactory) Client() oauth2.ClientManager             { return f.client }
func (f *MemoryFactory) Scope() oauth2.ScopeManager               { return f.scope }
func (f *MemoryFactory) Code() oauth2.CodeManager                 { return f.code }
func (f *MemoryFactory) AccessToken() oauth2.AccessTokenManager   { return f.access }
func (f *MemoryFactory) RefreshToken() oauth2.RefreshTokenManager { return f.refresh }
func (f *MemoryFactory) User() oauth2.UserManager                 { return f.user }

// ClientStore client information store (in-memory)
type ClientStore struct {
	sync.RWMutex
	data map[string]oauth2.ClientInfo
}

func (cs *ClientStore) Create(ctx context.Context, cli oauth2.ClientInfo) error {
	cs.Lock()
	defer cs.Unlock()
	cs.data[cli.GetID()] = cli
	return nil
}

// GetByID according to the ID for the client information
func (cs *ClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	cs.RLock()
	defer cs.RUnlock()
	if c, ok := cs.data[id]; ok {
		return c, nil
	}
	return nil, oauth2.ErrNotFound
}

func (cs *ClientStore) Update(ctx context.Context, cli oauth2.ClientInfo) error {
	return cs.Create(ctx, cli)
}

func (cs *ClientStore) Delete(ctx context.Context, id string) error {
	cs.Lock()
	defer cs.Unlock()
	delete(cs.data, id)
	return nil
}

// ScopeStore scope registry store (in-memory)
type ScopeStore struct {
	sync.RWMutex
	data map[string]oauth2.ScopeInfo
}

func (ss *ScopeStore) Create(ctx context.Context, scope oauth2.ScopeInfo) error {
	ss.Lock()
	defer ss.Unlock()
	ss.data[scope.GetName()] = scope
	return nil
}

func (ss *ScopeStore) GetByName(ctx context.Context, name string) (oauth2.ScopeInfo, error) {
	ss.RLock()
	defer ss.RUnlock()
	if s, ok := ss.data[name]; ok {
		return s, nil
	}
	return nil, oauth2.ErrNotFound
}

func (ss *ScopeStore) Update(ctx context.Context, scope oauth2.ScopeInfo) error {
	return ss.Create(ctx, scope)
}

func (ss *ScopeStore) Delete(ctx context.Context, name string) error {
	ss.Lock()
	defer ss.Unlock()
	delete(ss.data, name)
	return nil
}

// CodeStore authorization code store (in-memory). Codes are copied on write so
// redemption state never leaks through shared pointers.
type CodeStore struct {
	sync.Mutex
	data map[string]*models.AuthorizationCode
}

func (cs *CodeStore) Create(ctx context.Context, code oauth2.CodeInfo) error {
	cs.Lock()
	defer cs.Unlock()
	cs.data[code.GetCode()] = &models.AuthorizationCode{
		Code:        code.GetCode(),
		ClientID:    code.GetClientID(),
		RedirectURI: code.GetRedirectURI(),
		UserID:      code.GetUserID(),
		Scope:       code.GetScope(),
		Expires:     code.GetExpires(),
		Used:        code.IsUsed(),
	}
	return nil
}

func (cs *CodeStore) GetByCode(ctx context.Context, code string) (oauth2.CodeInfo, error) {
	cs.Lock()
	defer cs.Unlock()
	if c, ok := cs.data[code]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, oauth2.ErrNotFound
}

// MarkUsed flips the used flag under the store lock. Exactly one concurrent
// caller observes used=false and wins; the rest get ErrNotFound.
func (cs *CodeStore) MarkUsed(ctx context.Context, code string) error {
	cs.Lock()
	defer cs.Unlock()
	c, ok := cs.data[code]
	if !ok || c.Used {
		return oauth2.ErrNotFound
	}
	c.Used = true
	return nil
}

func (cs *CodeStore) Delete(ctx context.Context, code string) error {
	cs.Lock()
	defer cs.Unlock()
	delete(cs.data, code)
	return nil
}

// AccessTokenStore access token store (in-memory)
type AccessTokenStore struct {
	sync.RWMutex
	data map[string]oauth2.TokenInfo
}

func (ts *AccessTokenStore) Create(ctx context.Context, token oauth2.TokenInfo) error {
	ts.Lock()
	defer ts.Unlock()
	ts.data[token.GetAccess()] = token
	return nil
}

func (ts *AccessTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	ts.RLock()
	defer ts.RUnlock()
	if t, ok := ts.data[access]; ok {
		return t, nil
	}
	return nil, oauth2.ErrNotFound
}

func (ts *AccessTokenStore) Update(ctx context.Context, token oauth2.TokenInfo) error {
	return ts.Create(ctx, token)
}

func (ts *AccessTokenStore) Delete(ctx context.Context, access string) error {
	ts.Lock()
	defer ts.Unlock()
	delete(ts.data, access)
	return nil
}

// RefreshTokenStore refresh token store (in-memory)
type RefreshTokenStore struct {
	sync.RWMutex
	data map[string]oauth2.RefreshInfo
}

func (ts *RefreshTokenStore) Create(ctx context.Context, token oauth2.RefreshInfo) error {
	ts.Lock()
	defer ts.Unlock()
	ts.data[token.GetRefresh()] = token
	return nil
}

func (ts *RefreshTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.RefreshInfo, error) {
	ts.RLock()
	defer ts.RUnlock()
	if t, ok := ts.data[refresh]; ok {
		return t, nil
	}
	return nil, oauth2.ErrNotFound
}

func (ts *RefreshTokenStore) Delete(ctx context.Context, refresh string) error {
	ts.Lock()
	defer ts.Unlock()
	delete(ts.data, refresh)
	return nil
}

// UserStore resource owner store (in-memory), keyed by username.
type UserStore struct {
	sync.RWMutex
	data map[string]*models.User
}

func (us *UserStore) Create(ctx context.Context, user oauth2.UserInfo) error {
	us.Lock()
	defer us.Unlock()
	if u, ok := user.(*models.User); ok {
		us.data[u.Username] = u
		return nil
	}
	us.data[user.GetUsername()] = &models.User{ID: user.GetID(), Username: user.GetUsername()}
	return nil
}

func (us *UserStore) GetByUsername(ctx context.Context, username string) (oauth2.UserInfo, error) {
	us.RLock()
	defer us.RUnlock()
	if u, ok := us.data[username]; ok {
		return u, nil
	}
	return nil, oauth2.ErrNotFound
}

func (us *UserStore) Update(ctx context.Context, user oauth2.UserInfo) error {
	return us.Create(ctx, user)
}

func (us *UserStore) Delete(ctx context.Context, id string) error {
	us.Lock()
	defer us.Unlock()
	for name, u := range us.data {
		if u.ID == id {
			delete(us.data, name)
		}
	}
	return nil
}

// NewMemoryUserProvider create a bcrypt-verifying user provider over the
// factory's user store, for the password grant.
func NewMemoryUserProvider(f *MemoryFactory) *MemoryUserProvider {
	return &MemoryUserProvider{users: f.user}
}

// MemoryUserProvider verifies credentials against in-memory users.
type MemoryUserProvider struct {
	users *UserStore
}

func (p *MemoryUserProvider) Authenticate(ctx context.Context, username, password string) (oauth2.UserInfo, error) {
	p.users.RLock()
	u, ok := p.users.data[username]
	p.users.RUnlock()
	if !ok {
		return nil, errors.ErrInvalidGrant
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidGrant
	}
	return u, nil
}
