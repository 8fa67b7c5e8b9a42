package store

import (
	"context"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/errors"
	"github.com/legit-games/oauth2-server/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DBUserStore persistent resource owner store
type DBUserStore struct{ DB *gorm.DB }

func (s *DBUserStore) Create(ctx context.Context, user oauth2.UserInfo) error {
	hash := ""
	if u, ok := user.(*models.User); ok {
		hash = u.PasswordHash
	}
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO users(id, username, password_hash) VALUES(?,?,?)
		 ON CONFLICT(id) DO UPDATE SET username=excluded.username, password_hash=excluded.password_hash`,
		user.GetID(), user.GetUsername(), hash,
	).Error
}

func (s *DBUserStore) GetByUsername(ctx context.Context, username string) (oauth2.UserInfo, error) {
	row, err := s.readOne(ctx, username)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *DBUserStore) Update(ctx context.Context, user oauth2.UserInfo) error {
	return s.Create(ctx, user)
}

func (s *DBUserStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM users WHERE id=?`, id).Error
}

func (s *DBUserStore) readOne(ctx context.Context, username string) (*models.User, error) {
	var row struct {
		ID           string
		Username     string
		PasswordHash string
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT id, username, password_hash FROM users WHERE username=?`, username,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, oauth2.ErrNotFound
	}
	return &models.User{ID: row.ID, Username: row.Username, PasswordHash: row.PasswordHash}, nil
}

// NewDBUserProvider create a bcrypt-verifying user provider backed by the
// users table.
func NewDBUserProvider(db *gorm.DB) *DBUserProvider {
	return &DBUserProvider{users: &DBUserStore{DB: db}}
}

// DBUserProvider verifies resource owner credentials for the password grant.
type DBUserProvider struct {
	users *DBUserStore
}

// Authenticate resolves the user and compares the bcrypt hash. Both unknown
// user and bad password collapse into invalid_grant, per RFC 6749 section 5.2.
func (p *DBUserProvider) Authenticate(ctx context.Context, username, password string) (oauth2.UserInfo, error) {
	u, err := p.users.readOne(ctx, username)
	if err != nil {
		if err == oauth2.ErrNotFound {
			return nil, errors.ErrInvalidGrant
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.ErrInvalidGrant
	}
	return u, nil
}
