package client

import (
	"context"

	"tusep-web/internal/models"
)

func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.post(ctx, "/auth/login", creds, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	var out models.User
	err := c.post(ctx, "/auth/register", reg, &out)
	return out, err
}

// Me returns the identity bound to the current token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var out models.User
	err := c.get(ctx, "/auth/me", nil, &out)
	return out, err
}

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.get(ctx, "/users", nil, &out)
	return out, err
}

func (c *Client) Technicians(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.get(ctx, "/users/technicians", nil, &out)
	return out, err
}
