package resource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewHTTPTokenIssuer create a token issuer over plain HTTP. A nil client gets
// a sane default timeout.
func NewHTTPTokenIssuer(client *http.Client) *HTTPTokenIssuer {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTokenIssuer{Client: client}
}

// HTTPTokenIssuer performs the client credentials exchange against a remote
// token endpoint, authenticating with HTTP basic.
type HTTPTokenIssuer struct {
	Client *http.Client
}

func (i *HTTPTokenIssuer) IssueToken(ctx context.Context, tokenPath, clientID, clientSecret, scope string) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	if scope != "" {
		form.Set("scope", scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(clientID, clientSecret)

	resp, err := i.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", fmt.Errorf("token endpoint error: %s", payload.Error)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}
	return payload.AccessToken, nil
}

// NewHTTPIntrospector create an introspector over plain HTTP.
func NewHTTPIntrospector(client *http.Client) *HTTPIntrospector {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPIntrospector{Client: client}
}

// HTTPIntrospector asks a remote debug endpoint about a presented token.
type HTTPIntrospector struct {
	Client *http.Client
}

func (in *HTTPIntrospector) Introspect(ctx context.Context, debugPath, bearerToken, debugToken string) (*DebugResponse, error) {
	u, err := url.Parse(debugPath)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("debug_token", debugToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := in.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("debug endpoint returned %d: %s", resp.StatusCode, body)
	}

	var payload DebugResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("debug endpoint returned no token metadata")
	}
	return &payload, nil
}
