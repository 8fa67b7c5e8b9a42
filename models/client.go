package models

import (
	"github.com/legit-games/oauth2-server"
)

// Client client model. The ID may be a URI or an opaque string; a secret is
// required for confidential grant types.
type Client struct {
	ID           string
	Secret       string
	RedirectURIs []string
	GrantTypes   []oauth2.GrantType
	Scope        []string
	DefaultScope []string
}

// GetID client id
func (c *Client) GetID() string {
	return c.ID
}

// GetSecret client secret
func (c *Client) GetSecret() string {
	return c.Secret
}

// GetRedirectURIs registered redirect URIs
func (c *Client) GetRedirectURIs() []string {
	return c.RedirectURIs
}

// GetGrantTypes allowed grant types
func (c *Client) GetGrantTypes() []oauth2.GrantType {
	return c.GrantTypes
}

// GetScope allowed scope names
func (c *Client) GetScope() []string {
	return c.Scope
}

// GetDefaultScope scope granted when the request names none
func (c *Client) GetDefaultScope() []string {
	return c.DefaultScope
}
