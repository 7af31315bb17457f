// Package api is the HTTP client for a novaq server. The session token is
// kept in ~/.novaq/session.json alongside the server URL.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/novaqhq/novaq/internal/config"
)

// Session holds the persisted login state
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
}

// Client talks to the novaq server
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// NewClient creates a client, loading any saved session
func NewClient(cfg *config.Config) (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(home, ".novaq", "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}

	c.loadSession(cfg.ServerURL)

	return c, nil
}

func (c *Client) loadSession(fallbackURL string) {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = &Session{ServerURL: fallbackURL}
		return
	}

	c.session = &Session{}
	json.Unmarshal(data, c.session)
	if c.session.ServerURL == "" {
		c.session.ServerURL = fallbackURL
	}
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.sessionPath, data, 0600)
}

// SetServer sets the server URL
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = url
	return c.saveSession()
}

// LoggedIn returns true if a session token exists
func (c *Client) LoggedIn() bool {
	return c.session.Token != ""
}

// UserID returns the authenticated user's identifier, empty when logged out.
func (c *Client) UserID() string {
	return c.session.UserID
}

// ServerURL returns the configured server URL.
func (c *Client) ServerURL() string {
	return c.session.ServerURL
}

type authResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// Register creates a new account
func (c *Client) Register(email, password string) error {
	var result authResponse
	err := c.post(context.Background(), "/api/v1/register", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	c.session.Email = email
	return c.saveSession()
}

// Login authenticates with email and password
func (c *Client) Login(email, password string) error {
	var result authResponse
	err := c.post(context.Background(), "/api/v1/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	c.session.Email = email
	return c.saveSession()
}

// RequestMagicLink asks the server to issue a one-time login code for email.
// The server delivers the code out of band.
func (c *Client) RequestMagicLink(email string) error {
	return c.post(context.Background(), "/api/v1/magic-link", map[string]string{
		"email": email,
	}, nil)
}

// RedeemMagicLink exchanges a one-time code for a session
func (c *Client) RedeemMagicLink(email, code string) error {
	var result authResponse
	err := c.post(context.Background(), "/api/v1/magic-link/redeem", map[string]string{
		"email": email,
		"code":  code,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.UserID
	c.session.Email = email
	return c.saveSession()
}

// Logout revokes the server-side session and clears the saved one. The
// local session is cleared even when the server call fails.
func (c *Client) Logout() error {
	if c.session.Token != "" {
		c.post(context.Background(), "/api/v1/logout", nil, nil)
	}
	c.session.Token = ""
	c.session.UserID = ""
	c.session.Email = ""
	return c.saveSession()
}

// do sends an authenticated request and decodes the JSON response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.session.ServerURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &ServerError{Status: resp.StatusCode, Body: string(respBody)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ServerError is a non-2xx response from the server
type ServerError struct {
	Status int
	Body   string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Body)
}

// Unauthorized reports whether the error is a 401, meaning the session
// token has expired or been revoked.
func (e *ServerError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}
