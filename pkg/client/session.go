package client

import (
	"context"
	"errors"
	"net/http"
)

// Register creates an account and starts a session with the returned
// bearer token
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*Token, error) {
	var token Token
	if err := c.post(ctx, "/api/register", req, &token); err != nil {
		return nil, err
	}
	c.SetToken(token.AccessToken)
	return &token, nil
}

// Login authenticates and starts a session with the returned bearer
// token
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	req := map[string]string{"username": username, "password": password}
	var token Token
	if err := c.post(ctx, "/api/login", req, &token); err != nil {
		return nil, err
	}
	c.SetToken(token.AccessToken)
	return &token, nil
}

// Logout drops the session token. The token itself stays valid until
// it expires; the server keeps no session state.
func (c *Client) Logout() {
	c.ClearToken()
}

// Profile fetches the current user's profile. A rejected token ends
// the session.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var profile User
	if err := c.get(ctx, "/api/profile", nil, &profile); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			c.ClearToken()
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the current user's display fields
func (c *Client) UpdateProfile(ctx context.Context, req *ProfileUpdateRequest) (*User, error) {
	var profile User
	if err := c.put(ctx, "/api/profile", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
