package api

import (
	"context"
	"fmt"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

type credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, email, password string) (string, models.User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials{Email: email, Password: password}).
		Post("/auth/login")
	if err != nil {
		return "", models.User{}, fmt.Errorf("login request failed: %w", err)
	}

	var payload authPayload
	if err := c.decode(resp, &payload); err != nil {
		return "", models.User{}, err
	}
	return payload.Token, payload.User, nil
}

// Register creates an account and returns the fresh session token and
// profile.
func (c *Client) Register(ctx context.Context, username, email, password string) (string, models.User, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials{Username: username, Email: email, Password: password}).
		Post("/auth/register")
	if err != nil {
		return "", models.User{}, fmt.Errorf("register request failed: %w", err)
	}

	var payload authPayload
	if err := c.decode(resp, &payload); err != nil {
		return "", models.User{}, err
	}
	return payload.Token, payload.User, nil
}

// Me returns the current user profile for the active token.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/auth/me")
	if err != nil {
		return models.User{}, fmt.Errorf("profile request failed: %w", err)
	}

	var payload struct {
		User models.User `json:"user"`
	}
	if err := c.decode(resp, &payload); err != nil {
		return models.User{}, err
	}
	return payload.User, nil
}
