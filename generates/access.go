package generates

import (
	"bytes"
	"context"
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccessGenerate an access/refresh token value generator. Values must be
// collision resistant; managers additionally enforce uniqueness at creation.
type AccessGenerate interface {
	Token(ctx context.Context, clientID, userID, scope string, createAt time.Time, genRefresh bool) (access, refresh string, err error)
}

// NewAccessGenerate create to generate the opaque access token instance
func NewAccessGenerate() *OpaqueAccessGenerate {
	return &OpaqueAccessGenerate{}
}

// OpaqueAccessGenerate generate opaque bearer token values
type OpaqueAccessGenerate struct{}

// Token based on the UUID generated token
func (ag *OpaqueAccessGenerate) Token(ctx context.Context, clientID, userID, scope string, createAt time.Time, genRefresh bool) (string, string, error) {
	buf := bytes.NewBufferString(clientID)
	buf.WriteString(userID)
	buf.WriteString(strconv.FormatInt(createAt.UnixNano(), 10))

	access := base64.URLEncoding.EncodeToString([]byte(uuid.NewMD5(uuid.Must(uuid.NewRandom()), buf.Bytes()).String()))
	access = strings.ToUpper(strings.TrimRight(access, "="))
	refresh := ""
	if genRefresh {
		refresh = base64.URLEncoding.EncodeToString([]byte(uuid.NewSHA1(uuid.Must(uuid.NewRandom()), buf.Bytes()).String()))
		refresh = strings.ToUpper(strings.TrimRight(refresh, "="))
	}

	return access, refresh, nil
}
