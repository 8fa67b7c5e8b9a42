package store

import (
	"context"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"gorm.io/gorm"
)

// DBScopeStore persistent scope registry
type DBScopeStore struct{ DB *gorm.DB }

func (s *DBScopeStore) Create(ctx context.Context, scope oauth2.ScopeInfo) error {
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO oauth2_scopes(name, description, is_default) VALUES(?,?,?)
		 ON CONFLICT(name) DO UPDATE SET description=excluded.description, is_default=excluded.is_default`,
		scope.GetName(), scope.GetDescription(), scope.IsDefault(),
	).Error
}

func (s *DBScopeStore) GetByName(ctx context.Context, name string) (oauth2.ScopeInfo, error) {
	var row struct {
		Name        string
		Description string
		IsDefault   bool
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT name, description, is_default FROM oauth2_scopes WHERE name=?`, name,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.Name == "" {
		return nil, oauth2.ErrNotFound
	}
	return &models.Scope{Name: row.Name, Description: row.Description, Default: row.IsDefault}, nil
}

func (s *DBScopeStore) Update(ctx context.Context, scope oauth2.ScopeInfo) error {
	return s.Create(ctx, scope)
}

func (s *DBScopeStore) Delete(ctx context.Context, name string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM oauth2_scopes WHERE name=?`, name).Error
}
