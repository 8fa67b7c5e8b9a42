package store

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"gorm.io/gorm"
)

// DBAccessTokenStore persistent access token store
type DBAccessTokenStore struct{ DB *gorm.DB }

func (s *DBAccessTokenStore) Create(ctx context.Context, token oauth2.TokenInfo) error {
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO oauth2_access_tokens(access, client_id, user_id, token_type, scope, expires) VALUES(?,?,?,?,?,?)
		 ON CONFLICT(access) DO UPDATE SET client_id=excluded.client_id, user_id=excluded.user_id, token_type=excluded.token_type, scope=excluded.scope, expires=excluded.expires`,
		token.GetAccess(), token.GetClientID(), token.GetUserID(), token.GetTokenType().String(), token.GetScope(), token.GetExpires(),
	).Error
}

func (s *DBAccessTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var row struct {
		Access    string
		ClientID  string
		UserID    string
		TokenType string
		Scope     string
		Expires   time.Time
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT access, client_id, user_id, token_type, scope, expires FROM oauth2_access_tokens WHERE access=?`, access,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Access == "" {
		return nil, oauth2.ErrNotFound
	}
	return &models.AccessToken{
		Access:    row.Access,
		ClientID:  row.ClientID,
		UserID:    row.UserID,
		TokenType: oauth2.TokenType(row.TokenType),
		Scope:     row.Scope,
		Expires:   row.Expires,
	}, nil
}

func (s *DBAccessTokenStore) Update(ctx context.Context, token oauth2.TokenInfo) error {
	return s.Create(ctx, token)
}

func (s *DBAccessTokenStore) Delete(ctx context.Context, access string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM oauth2_access_tokens WHERE access=?`, access).Error
}

// DBRefreshTokenStore persistent refresh token store
type DBRefreshTokenStore struct{ DB *gorm.DB }

func (s *DBRefreshTokenStore) Create(ctx context.Context, token oauth2.RefreshInfo) error {
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO oauth2_refresh_tokens(refresh, client_id, user_id, scope, expires) VALUES(?,?,?,?,?)`,
		token.GetRefresh(), token.GetClientID(), token.GetUserID(), token.GetScope(), token.GetExpires(),
	).Error
}

func (s *DBRefreshTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.RefreshInfo, error) {
	var row struct {
		Refresh  string
		ClientID string
		UserID   string
		Scope    string
		Expires  time.Time
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT refresh, client_id, user_id, scope, expires FROM oauth2_refresh_tokens WHERE refresh=?`, refresh,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Refresh == "" {
		return nil, oauth2.ErrNotFound
	}
	return &models.RefreshToken{
		Refresh:  row.Refresh,
		ClientID: row.ClientID,
		UserID:   row.UserID,
		Scope:    row.Scope,
		Expires:  row.Expires,
	}, nil
}

func (s *DBRefreshTokenStore) Delete(ctx context.Context, refresh string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM oauth2_refresh_tokens WHERE refresh=?`, refresh).Error
}
