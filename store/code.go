package store

import (
	"context"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"gorm.io/gorm"
)

// DBCodeStore persistent authorization code store
type DBCodeStore struct{ DB *gorm.DB }

func (s *DBCodeStore) Create(ctx context.Context, code oauth2.CodeInfo) error {
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO oauth2_codes(code, client_id, redirect_uri, user_id, scope, expires, used) VALUES(?,?,?,?,?,?,?)`,
		code.GetCode(), code.GetClientID(), code.GetRedirectURI(), code.GetUserID(), code.GetScope(), code.GetExpires(), code.IsUsed(),
	).Error
}

func (s *DBCodeStore) GetByCode(ctx context.Context, code string) (oauth2.CodeInfo, error) {
	var row struct {
		Code        string
		ClientID    string
		RedirectURI string
		UserID      string
		Scope       string
		Expires     time.Time
		Used        bool
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT code, client_id, redirect_uri, user_id, scope, expires, used FROM oauth2_codes WHERE code=?`, code,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Code == "" {
		return nil, oauth2.ErrNotFound
	}
	return &models.AuthorizationCode{
		Code:        row.Code,
		ClientID:    row.ClientID,
		RedirectURI: row.RedirectURI,
		UserID:      row.UserID,
		Scope:       row.Scope,
		Expires:     row.Expires,
		Used:        row.Used,
	}, nil
}

// MarkUsed is a guarded UPDATE: the WHERE used=FALSE predicate makes
// concurrent redemption race to a single affected row.
func (s *DBCodeStore) MarkUsed(ctx context.Context, code string) error {
	tx := s.DB.WithContext(ctx).Exec(`UPDATE oauth2_codes SET used=TRUE WHERE code=? AND used=FALSE`, code)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return oauth2.ErrNotFound
	}
	return nil
}

func (s *DBCodeStore) Delete(ctx context.Context, code string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM oauth2_codes WHERE code=?`, code).Error
}
