package models

import "time"

// AuthorizationCode authorization code model. Redeemable exactly once; the
// Used flag is flipped atomically by the code manager.
type AuthorizationCode struct {
	Code        string
	ClientID    string
	RedirectURI string
	UserID      string
	Scope       string
	Expires     time.Time
	Used        bool
}

// GetCode the code value
func (c *AuthorizationCode) GetCode() string {
	return c.Code
}

// GetClientID the client the code was issued to
func (c *AuthorizationCode) GetClientID() string {
	return c.ClientID
}

// GetRedirectURI the redirect URI the code is bound to
func (c *AuthorizationCode) GetRedirectURI() string {
	return c.RedirectURI
}

// GetUserID the resource owner who approved the grant
func (c *AuthorizationCode) GetUserID() string {
	return c.UserID
}

// GetScope the granted scope
func (c *AuthorizationCode) GetScope() string {
	return c.Scope
}

// GetExpires expiry instant
func (c *AuthorizationCode) GetExpires() time.Time {
	return c.Expires
}

// IsUsed whether the code was already redeemed
func (c *AuthorizationCode) IsUsed() bool {
	return c.Used
}
