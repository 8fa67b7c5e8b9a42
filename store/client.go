package store

import (
	"context"
	"encoding/json"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"gorm.io/gorm"
)

// DBClientStore persistent client store
type DBClientStore struct{ DB *gorm.DB }

// Create inserts or replaces a client, list columns stored as jsonb.
func (s *DBClientStore) Create(ctx context.Context, cli oauth2.ClientInfo) error {
	uris, _ := json.Marshal(cli.GetRedirectURIs())
	grants, _ := json.Marshal(cli.GetGrantTypes())
	scope, _ := json.Marshal(cli.GetScope())
	defScope, _ := json.Marshal(cli.GetDefaultScope())
	return s.DB.WithContext(ctx).Exec(
		`INSERT INTO oauth2_clients(id, secret, redirect_uris, grant_types, scope, default_scope)
		 VALUES(?,?,?::jsonb,?::jsonb,?::jsonb,?::jsonb)
		 ON CONFLICT(id) DO UPDATE SET secret=excluded.secret, redirect_uris=excluded.redirect_uris, grant_types=excluded.grant_types, scope=excluded.scope, default_scope=excluded.default_scope`,
		cli.GetID(), cli.GetSecret(), string(uris), string(grants), string(scope), string(defScope),
	).Error
}

// GetByID according to the ID for the client information
func (s *DBClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var row struct {
		ID           string
		Secret       string
		RedirectURIs string
		GrantTypes   string
		Scope        string
		DefaultScope string
	}
	if err := s.DB.WithContext(ctx).Raw(
		`SELECT id, secret, redirect_uris::text AS redirect_uris, grant_types::text AS grant_types, scope::text AS scope, default_scope::text AS default_scope FROM oauth2_clients WHERE id=?`, id,
	).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == "" {
		return nil, oauth2.ErrNotFound
	}

	cli := &models.Client{ID: row.ID, Secret: row.Secret}
	_ = json.Unmarshal([]byte(row.RedirectURIs), &cli.RedirectURIs)
	_ = json.Unmarshal([]byte(row.GrantTypes), &cli.GrantTypes)
	_ = json.Unmarshal([]byte(row.Scope), &cli.Scope)
	_ = json.Unmarshal([]byte(row.DefaultScope), &cli.DefaultScope)
	return cli, nil
}

func (s *DBClientStore) Update(ctx context.Context, cli oauth2.ClientInfo) error {
	return s.Create(ctx, cli)
}

func (s *DBClientStore) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Exec(`DELETE FROM oauth2_clients WHERE id=?`, id).Error
}
