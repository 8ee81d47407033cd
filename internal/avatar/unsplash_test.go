package avatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/config"
)

func TestUnsplashClient_RandomImageURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Client-ID key-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","urls":{"raw":"https://img/raw","regular":"https://img/regular"}}`))
	}))
	defer srv.Close()

	client := NewUnsplashClient(srv.URL, "key-1", time.Second)
	url, err := client.RandomImageURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://img/regular", url)
}

func TestUnsplashClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, payload: `{"errors":["OAuth error"]}`},
		{name: "rate limited", status: http.StatusForbidden, payload: `Rate Limit Exceeded`},
		{name: "no url", status: http.StatusOK, payload: `{"urls":{}}`},
		{name: "not json", status: http.StatusOK, payload: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.payload))
			}))
			defer srv.Close()

			url, err := NewUnsplashClient(srv.URL, "k", time.Second).RandomImageURL(context.Background())
			assert.Error(t, err)
			assert.Empty(t, url)
		})
	}
}

func TestUnsplashClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := NewUnsplashClient(endpoint, "k", 200*time.Millisecond).RandomImageURL(context.Background())
	assert.Error(t, err)
}

func TestUnsplashClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewUnsplashClient("http://127.0.0.1:1", "k", time.Second).RandomImageURL(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnsplashClient_ExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := NewUnsplashClient("http://127.0.0.1:1", "k", time.Second).RandomImageURL(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUnsplashClient_CancelAbortsInFlightLookup(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		_, _ = w.Write([]byte(`{"urls":{"regular":"https://img/late"}}`))
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := NewUnsplashClient(srv.URL, "k", 10*time.Second).RandomImageURL(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestUnsplashClient_ZeroTimeoutStillBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"urls":{"regular":"https://img/r"}}`))
	}))
	defer srv.Close()

	url, err := NewUnsplashClient(srv.URL, "k", 0).RandomImageURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://img/r", url)
}

func TestNewProvider(t *testing.T) {
	_, isNoop := NewProvider(config.AvatarConfig{}).(Noop)
	assert.True(t, isNoop)

	_, err := Noop{}.RandomImageURL(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, isUnsplash := NewProvider(config.AvatarConfig{AccessKey: "k", Endpoint: "http://x"}).(*UnsplashClient)
	assert.True(t, isUnsplash)
}
