package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"hireboard-api/internal/config"
	"hireboard-api/internal/logging"
	"hireboard-api/internal/logging/types"
)

// SupabaseClient talks to a Supabase-hosted GoTrue auth service over HTTP.
// It implements SessionProvider and also carries the signup/signin flows.
type SupabaseClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     types.Logger
}

// NewSupabaseClient creates a new auth client from configuration
func NewSupabaseClient(cfg *config.Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.Auth.BaseURL, "/"),
		anonKey:    cfg.Auth.AnonKey,
		httpClient: &http.Client{Timeout: cfg.Auth.Timeout},
		logger:     logging.GetGlobalLogger(),
	}
}

var _ SessionProvider = (*SupabaseClient)(nil)

// GetCurrentUser resolves the identity behind the access token. Any failure
// (network, non-200 status, malformed body) collapses into
// ErrUnauthenticated: downstream gateways never see a partial identity.
func (c *SupabaseClient) GetCurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrUnauthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	c.setHeaders(req, accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Auth service unreachable", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var identity Identity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	if identity.ID == "" {
		return nil, ErrUnauthenticated
	}

	return &identity, nil
}

// SignUp creates an account with the hosted auth service and relays the
// session it returns.
func (c *SupabaseClient) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.postCredentials(ctx, "/auth/v1/signup", email, password)
}

// SignInWithPassword performs the password grant against the hosted auth
// service and relays the session it returns.
func (c *SupabaseClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	return c.postCredentials(ctx, "/auth/v1/token?grant_type=password", email, password)
}

func (c *SupabaseClient) postCredentials(ctx context.Context, path, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, "")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth service response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service rejected credentials: %s", upstreamErrorMessage(body, resp.StatusCode))
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode auth service response: %w", err)
	}

	return &session, nil
}

func (c *SupabaseClient) setHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
}

// upstreamErrorMessage pulls a human-readable message out of a GoTrue error
// body, falling back to the status code.
func upstreamErrorMessage(body []byte, statusCode int) string {
	var parsed struct {
		Message          string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.ErrorDescription != "" {
			return parsed.ErrorDescription
		}
	}
	return fmt.Sprintf("status %d", statusCode)
}
