package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/legit-games/oauth2-server"
	"github.com/legit-games/oauth2-server/models"
	valkey "github.com/valkey-io/valkey-go"
)

// NewValkeyAccessTokenStore creates a Valkey (Redis-compatible) backed access
// token manager, suitable as a shared debug-endpoint cache across instances.
// addr example: "127.0.0.1:6379"; prefix helps namespace keys.
func NewValkeyAccessTokenStore(addr string, prefix string) (*ValkeyAccessTokenStore, error) {
	cli, err := valkey.NewClient(valkey.ClientOption{InitAddress: []string{addr}})
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		prefix = "oauth2:"
	}
	return &ValkeyAccessTokenStore{client: cli, prefix: prefix}, nil
}

// ValkeyAccessTokenStore access token store on Valkey. Keys carry a sha256 of
// the token value so raw tokens never appear in the keyspace.
type ValkeyAccessTokenStore struct {
	client valkey.Client
	prefix string
}

func (ts *ValkeyAccessTokenStore) key(access string) string {
	sum := sha256.Sum256([]byte(access))
	return ts.prefix + "access:" + hex.EncodeToString(sum[:])
}

func (ts *ValkeyAccessTokenStore) Create(ctx context.Context, token oauth2.TokenInfo) error {
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

	ttl := time.Until(token.GetExpires())
	if ttl <= 0 {
		ttl = time.Second
	}
	return ts.client.Do(ctx, ts.client.B().Set().Key(ts.key(token.GetAccess())).Value(string(jv)).Ex(ttl).Build()).Error()
}

func (ts *ValkeyAccessTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	resp := ts.client.Do(ctx, ts.client.B().Get().Key(ts.key(access)).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, oauth2.ErrNotFound
		}
		return nil, err
	}
	jv, err := resp.ToString()
	if err != nil {
		return nil, err
	}

	var token models.AccessToken
	if err := json.Unmarshal([]byte(jv), &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (ts *ValkeyAccessTokenStore) Update(ctx context.Context, token oauth2.TokenInfo) error {
	return ts.Create(ctx, token)
}

func (ts *ValkeyAccessTokenStore) Delete(ctx context.Context, access string) error {
	return ts.client.Do(ctx, ts.client.B().Del().Key(ts.key(access)).Build()).Error()
}
