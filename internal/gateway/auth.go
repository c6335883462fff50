package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// TokenResponse is the auth server's password-grant reply.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role,omitempty"`
}

// CurrentUserResponse is the /api/users/me payload.
type CurrentUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// PasswordGrant exchanges credentials for an access token. The auth server
// speaks the form-encoded OAuth2 password grant on this endpoint only;
// everything else is JSON.
func (c *Client) PasswordGrant(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	raw, err := c.do(req, "/api/auth/token")
	if err != nil {
		return nil, err
	}

	var token TokenResponse
	if err := decodeInto(raw, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the logged-in user and role claim.
func (c *Client) CurrentUser(ctx context.Context, token string) (*CurrentUserResponse, error) {
	raw, err := c.request(ctx, http.MethodGet, "/api/users/me", token, nil)
	if err != nil {
		return nil, err
	}

	var user CurrentUserResponse
	if err := decodeInto(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
