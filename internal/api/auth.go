package api

import (
	"context"
	"net/http"

	"github.com/existflow/plotline/internal/model"
)

// AuthResponse is returned by the login endpoints
type AuthResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Register creates an account. The response carries the user but no token.
func (c *Client) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	req, err := jsonRequest(http.MethodPost, "/auth/register", "", reg)
	if err != nil {
		return model.User{}, err
	}

	var result struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, req, &result); err != nil {
		return model.User{}, err
	}
	return result.User, nil
}

// Login authenticates a regular user
func (c *Client) Login(ctx context.Context, creds model.Credentials) (AuthResponse, error) {
	return c.login(ctx, "/auth/login", creds)
}

// LoginAdmin authenticates against the admin-specific endpoint
func (c *Client) LoginAdmin(ctx context.Context, creds model.Credentials) (AuthResponse, error) {
	return c.login(ctx, "/admin/auth/login", creds)
}

func (c *Client) login(ctx context.Context, path string, creds model.Credentials) (AuthResponse, error) {
	req, err := jsonRequest(http.MethodPost, path, "", creds)
	if err != nil {
		return AuthResponse{}, err
	}

	var result AuthResponse
	if err := c.do(ctx, req, &result); err != nil {
		return AuthResponse{}, err
	}
	return result, nil
}

// ListUsers returns every registered account. Requires an admin token.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.Account, error) {
	if token == "" {
		return nil, model.ErrNoToken
	}

	var raw jsonListOrObject
	if err := c.do(ctx, request{method: http.MethodGet, path: "/admin/auth/users", token: token}, &raw); err != nil {
		return nil, err
	}

	var users []model.Account
	if err := raw.decode("users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SubmitInquiry posts the contact form
func (c *Client) SubmitInquiry(ctx context.Context, inquiry model.Inquiry) error {
	req, err := jsonRequest(http.MethodPost, "/contact", "", inquiry)
	if err != nil {
		return err
	}
	return c.do(ctx, req, nil)
}
