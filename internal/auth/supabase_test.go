package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireboard-api/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *SupabaseClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Auth.BaseURL = server.URL
	cfg.Auth.AnonKey = "anon-key"
	cfg.Auth.Timeout = 5 * time.Second

	return NewSupabaseClient(cfg)
}

func TestGetCurrentUserResolvesIdentity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"user-1","email":"dev@example.com"}`))
	})

	identity, err := client.GetCurrentUser(context.Background(), "token-123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.ID)
	assert.Equal(t, "dev@example.com", identity.Email)
}

func TestGetCurrentUserRejectsEmptyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("auth service must not be called without a token")
	})

	_, err := client.GetCurrentUser(context.Background(), "")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetCurrentUserUpstreamRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetCurrentUser(context.Background(), "expired-token")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestGetCurrentUserMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"dev@example.com"}`))
	})

	_, err := client.GetCurrentUser(context.Background(), "token-123")

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSignInWithPasswordRelaysSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))

		w.Write([]byte(`{"access_token":"jwt","token_type":"bearer","expires_in":3600,"user":{"id":"user-1","email":"dev@example.com"}}`))
	})

	session, err := client.SignInWithPassword(context.Background(), "dev@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "jwt", session.AccessToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestSignInWithPasswordRelaysUpstreamMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "dev@example.com", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignUpRelaysSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Write([]byte(`{"access_token":"jwt","user":{"id":"user-2","email":"new@example.com"}}`))
	})

	session, err := client.SignUp(context.Background(), "new@example.com", "hunter22")

	require.NoError(t, err)
	assert.Equal(t, "jwt", session.AccessToken)
}
