package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrEmailConfirmationRequired is returned by Register when the
// upstream accepts the account but issues no access token yet.
var ErrEmailConfirmationRequired = errors.New("confirm your email to finish registration")

// UpstreamClient talks to the remote auth API. The storefront only
// consumes the resulting user object and access token; credential
// validation is entirely the collaborator's business.
type UpstreamClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewUpstreamClient creates a client for the remote auth API. A zero
// timeout falls back to 10 seconds.
func NewUpstreamClient(baseURL string, timeout time.Duration) *UpstreamClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &UpstreamClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

type credentialsPayload struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type upstreamResponse struct {
	User    User `json:"user"`
	Session struct {
		AccessToken string `json:"access_token"`
	} `json:"session"`
	Message string `json:"message"`
}

// Login exchanges credentials for a user object and an access token.
func (c *UpstreamClient) Login(ctx context.Context, email, password string) (*User, string, error) {
	resp, err := c.post(ctx, "/login", credentialsPayload{Email: email, Password: password})
	if err != nil {
		return nil, "", err
	}
	return &resp.User, resp.Session.AccessToken, nil
}

// Register creates an account on the upstream. Some deployments defer
// the token until the email address is confirmed.
func (c *UpstreamClient) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	resp, err := c.post(ctx, "/register", credentialsPayload{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, "", err
	}
	if resp.Session.AccessToken == "" {
		return nil, "", ErrEmailConfirmationRequired
	}
	return &resp.User, resp.Session.AccessToken, nil
}

func (c *UpstreamClient) post(ctx context.Context, path string, payload credentialsPayload) (*upstreamResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	var parsed upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("auth request failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode auth response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// The upstream sends a human-readable message with error
		// responses; surface it as the form-level error.
		if parsed.Message != "" {
			return nil, errors.New(parsed.Message)
		}
		return nil, fmt.Errorf("auth request failed with status %d", resp.StatusCode)
	}

	return &parsed, nil
}
