// Package backend is the HTTP client for the remote Harper authentication API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no backend base URL has been configured.
// Any action that needs the backend fails fast with this error.
var ErrNotConfigured = errors.New("backend base URL not configured")

// TenantHeader carries the resolved tenant slug on backend calls.
const TenantHeader = "X-Tenant-Slug"

// UpstreamError reports a non-success response from the backend.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

// Credentials are the login inputs forwarded to the backend.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens is the backend's token response. Both the camelCase and snake_case
// field conventions are accepted.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

func (t *Tokens) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken       string `json:"accessToken"`
		AccessTokenSnake  string `json:"access_token"`
		RefreshToken      string `json:"refreshToken"`
		RefreshTokenSnake string `json:"refresh_token"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.AccessToken = raw.AccessToken
	if t.AccessToken == "" {
		t.AccessToken = raw.AccessTokenSnake
	}
	t.RefreshToken = raw.RefreshToken
	if t.RefreshToken == "" {
		t.RefreshToken = raw.RefreshTokenSnake
	}
	return nil
}

// Client calls the remote authentication backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Configured reports whether a base URL was provided.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Login exchanges credentials for session tokens. The tenant slug, when
// present, is forwarded as a request header.
func (c *Client) Login(ctx context.Context, tenantSlug string, creds Credentials) (Tokens, error) {
	if !c.Configured() {
		return Tokens{}, ErrNotConfigured
	}

	body, err := json.Marshal(creds)
	if err != nil {
		return Tokens{}, fmt.Errorf("[backend Login] failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return Tokens{}, fmt.Errorf("[backend Login] failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tenantSlug != "" {
		req.Header.Set(TenantHeader, tenantSlug)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Tokens{}, fmt.Errorf("[backend Login] request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Tokens{}, fmt.Errorf("[backend Login] failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Tokens{}, &UpstreamError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var tokens Tokens
	if err := json.Unmarshal(respBody, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("[backend Login] failed to decode response: %w", err)
	}
	if tokens.AccessToken == "" {
		return Tokens{}, errors.New("[backend Login] response contained no access token")
	}

	return tokens, nil
}

// Logout revokes the session on the backend with bearer authentication.
// Callers treat failures as best-effort; the local session is cleared
// regardless of the outcome.
func (c *Client) Logout(ctx context.Context, tenantSlug, accessToken string) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("[backend Logout] failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if tenantSlug != "" {
		req.Header.Set(TenantHeader, tenantSlug)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("[backend Logout] request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
