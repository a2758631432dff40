package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/talemy/client-go/internal/model"
)

// AuthResponse is returned by login and register
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	return &resp, nil
}

// RegisterParams is the payload for creating a new account
type RegisterParams struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Name     string     `json:"name"`
	Surname  string     `json:"surname"`
	Role     model.Role `json:"role"`
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, params RegisterParams) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", params, &resp); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	return &resp, nil
}

// Me fetches the authenticated user behind the current token
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var resp struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch me: %w", err)
	}

	return &resp.User, nil
}
