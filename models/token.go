package models

import (
	"time"

	"github.com/legit-games/oauth2-server"
)

// AccessToken access token model
type AccessToken struct {
	Access    string
	ClientID  string
	UserID    string
	TokenType oauth2.TokenType
	Scope     string
	Expires   time.Time
}

// GetAccess the token value
func (t *AccessToken) GetAccess() string {
	return t.Access
}

// GetClientID the client the token was issued to
func (t *AccessToken) GetClientID() string {
	return t.ClientID
}

// GetUserID the resource owner the token acts for
func (t *AccessToken) GetUserID() string {
	return t.UserID
}

// GetTokenType the wire shape of the token
func (t *AccessToken) GetTokenType() oauth2.TokenType {
	return t.TokenType
}

// GetScope the granted scope
func (t *AccessToken) GetScope() string {
	return t.Scope
}

// GetExpires expiry instant, checked against wall clock on every use
func (t *AccessToken) GetExpires() time.Time {
	return t.Expires
}

// RefreshToken refresh token model
type RefreshToken struct {
	Refresh  string
	ClientID string
	UserID   string
	Scope    string
	Expires  time.Time
}

// GetRefresh the token value
func (t *RefreshToken) GetRefresh() string {
	return t.Refresh
}

// GetClientID the client the token was issued to
func (t *RefreshToken) GetClientID() string {
	return t.ClientID
}

// GetUserID the resource owner the token acts for
func (t *RefreshToken) GetUserID() string {
	return t.UserID
}

// GetScope the granted scope
func (t *RefreshToken) GetScope() string {
	return t.Scope
}

// GetExpires expiry instant
func (t *RefreshToken) GetExpires() time.Time {
	return t.Expires
}
