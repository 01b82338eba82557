package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Error taxonomy for backend responses. 401 is terminal for the session,
// 403 and 404 are terminal for the current view, everything else surfaces
// as a plain error with the backend message.
var (
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
)

// TokenSource provides the current bearer token. The session store
// implements it.
type TokenSource interface {
	Token() string
}

// Client wraps all outbound calls to the Sentinel backend: it injects the
// bearer token, applies the 10-second client timeout, decodes the standard
// response envelope, and normalizes 401 responses into a forced logout.
type Client struct {
	http     *resty.Client
	tokens   TokenSource
	onLogout func()
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewClient creates a backend client. onLogout is invoked once per 401
// response; the caller wires it to the session store's Clear.
func NewClient(baseURL string, tokens TokenSource, onLogout func()) *Client {
	c := &Client{
		http:     resty.New().SetBaseURL(baseURL).SetTimeout(10 * time.Second),
		tokens:   tokens,
		onLogout: onLogout,
	}

	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := tokens.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	return c
}

// decode maps the HTTP status to the error taxonomy and unmarshals the
// envelope data into out (which may be nil for calls without a payload).
func (c *Client) decode(resp *resty.Response, out interface{}) error {
	switch resp.StatusCode() {
	case 401:
		logrus.Warn("Backend returned 401, purging session")
		if c.onLogout != nil {
			c.onLogout()
		}
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode(), err)
	}

	if resp.StatusCode() >= 400 || !env.Success {
		if env.Message != "" {
			return fmt.Errorf("backend error: %s", env.Message)
		}
		return fmt.Errorf("backend returned status %d", resp.StatusCode())
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
