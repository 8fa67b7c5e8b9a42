package oauth2

// ResponseType the type of authorization request
type ResponseType string

// define the type of authorization request
const (
	Code  ResponseType = "code"
	Token ResponseType = "token"
)

func (rt ResponseType) String() string {
	return string(rt)
}

// GrantType authorization model
type GrantType string

// define authorization model
const (
	AuthorizationCode   GrantType = "authorization_code"
	ClientCredentials   GrantType = "client_credentials"
	PasswordCredentials GrantType = "password"
	Refreshing          GrantType = "refresh_token"
)

func (gt GrantType) String() string {
	return string(gt)
}

// TokenType the wire shape of an issued token
type TokenType string

// define token types
const (
	Bearer TokenType = "bearer"
	MAC    TokenType = "mac"
)

func (tt TokenType) String() string {
	return string(tt)
}

// ResourceType the strategy used to resolve a presented access token
type ResourceType string

// define resource types
const (
	ResourceModel         ResourceType = "model"
	ResourceDebugEndpoint ResourceType = "debug_endpoint"
)

func (rt ResourceType) String() string {
	return string(rt)
}
