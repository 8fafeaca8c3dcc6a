package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acp/web/internal/domain/shared"
	"github.com/acp/web/internal/infrastructure/cache"
	"github.com/acp/web/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenServer(t *testing.T, calls *atomic.Int32, expiresIn string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/oauth/token", r.URL.Path)
		assert.Equal(t, "client_credentials", r.URL.Query().Get("grant_type"))

		id, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", id)
		assert.Equal(t, "client-secret", secret)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"system-` + r.URL.Query().Get("username") + `","token_type":"bearer","expires_in":` + expiresIn + `}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func authConfig(url string) config.AuthConfig {
	return config.AuthConfig{
		URL:                url,
		SystemClientID:     "client-id",
		SystemClientSecret: "client-secret",
		Timeout:            5 * time.Second,
	}
}

func TestSystemTokenClient_CachesPerUsername(t *testing.T) {
	var calls atomic.Int32
	srv := newTokenServer(t, &calls, "3600")
	store := cache.NewInMemoryStore()
	defer store.Close()

	client := NewSystemTokenClient(authConfig(srv.URL), store)

	token, err := client.GetSystemClientToken(context.Background(), "BOB")
	require.NoError(t, err)
	assert.Equal(t, "system-BOB", token)

	token, err = client.GetSystemClientToken(context.Background(), "BOB")
	require.NoError(t, err)
	assert.Equal(t, "system-BOB", token)
	assert.Equal(t, int32(1), calls.Load())

	cached, err := store.Get(context.Background(), SystemTokenPrefix+"BOB")
	require.NoError(t, err)
	assert.Equal(t, "system-BOB", string(cached))

	_, err = client.GetSystemClientToken(context.Background(), "ANN")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSystemTokenClient_ShortLivedTokenNotCached(t *testing.T) {
	var calls atomic.Int32
	srv := newTokenServer(t, &calls, "30")
	store := cache.NewInMemoryStore()
	defer store.Close()

	client := NewSystemTokenClient(authConfig(srv.URL), store)
	for i := 0; i < 2; i++ {
		_, err := client.GetSystemClientToken(context.Background(), "BOB")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestSystemTokenClient_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad client", http.StatusUnauthorized)
	}))
	defer srv.Close()
	store := cache.NewInMemoryStore()
	defer store.Close()

	_, err := NewSystemTokenClient(authConfig(srv.URL), store).GetSystemClientToken(context.Background(), "BOB")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrUpstream))
	assert.Equal(t, http.StatusUnauthorized, StatusCodeOf(err))
}
