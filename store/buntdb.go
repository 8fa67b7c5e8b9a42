package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	"github.com/tidwall/buntdb"
)

// NewBuntAccessTokenStore create an embedded access token manager backed by
// BuntDB. Pass ":memory:" or a file path. Entries expire via BuntDB's TTL in
// addition to the engine's expiry-on-read check, so the debug endpoint cache
// never grows without bound.
func NewBuntAccessTokenStore(path string) (*BuntAccessTokenStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}
	return &BuntAccessTokenStore{db: db}, nil
}

// BuntAccessTokenStore access token store on BuntDB
type BuntAccessTokenStore struct {
	db *buntdb.DB
}

// Close releases the underlying database.
func (ts *BuntAccessTokenStore) Close() error {
	return ts.db.Close()
}

func (ts *BuntAccessTokenStore) Create(ctx context.Context, token oauth2.TokenInfo) error {
	jv, err := json.Marshal(&models.AccessToken{
		Access:    token.GetAccess(),
		ClientID:  token.GetClientID(),
		UserID:    token.GetUserID(),
		TokenType: token.GetTokenType(),
		Scope:     token.GetScope(),
		Expires:   token.GetExpires(),
	})
	if err != nil {
		return err
	}

	var opts *buntdb.SetOptions
	if ttl := time.Until(token.GetExpires()); ttl > 0 {
		opts = &buntdb.SetOptions{Expires: true, TTL: ttl}
	}
	return ts.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("access:"+token.GetAccess(), string(jv), opts)
		return err
	})
}

func (ts *BuntAccessTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var jv string
	err := ts.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get("access:" + access)
		if err != nil {
			return err
		}
		jv = v
		return nil
	})
	if err != nil {
		if err == buntdb.ErrNotFound {
			return nil, oauth2.ErrNotFound
		}
		return nil, err
	}

	var token models.AccessToken
	if err := json.Unmarshal([]byte(jv), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (ts *BuntAccessTokenStore) Update(ctx context.Context, token oauth2.TokenInfo) error {
	return ts.Create(ctx, token)
}

func (ts *BuntAccessTokenStore) Delete(ctx context.Context, access string) error {
	return ts.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete("access:" + access)
		if err == buntdb.ErrNotFound {
			return nil
		}
		return err
	})
}
