// Package avatar looks up a decorative profile image for new accounts.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/config"
)

// ErrNotConfigured is returned by Noop.
var ErrNotConfigured = errors.New("avatar provider not configured")

// Provider returns the URL of a random image.
type Provider interface {
	RandomImageURL(ctx context.Context) (string, error)
}

// Noop is used when no access key is configured.
type Noop struct{}

func (Noop) RandomImageURL(context.Context) (string, error) {
	return "", ErrNotConfigured
}

type randomPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// UnsplashClient fetches random photos from the Unsplash API.
type UnsplashClient struct {
	endpoint  string
	accessKey string
	timeout   time.Duration
}

// NewProvider returns an Unsplash client, or Noop without an access key.
func NewProvider(cfg config.AvatarConfig) Provider {
	if cfg.AccessKey == "" {
		return Noop{}
	}
	return NewUnsplashClient(cfg.Endpoint, cfg.AccessKey, cfg.Timeout())
}

// NewUnsplashClient builds a client for endpoint.
func NewUnsplashClient(endpoint, accessKey string, timeout time.Duration) *UnsplashClient {
	return &UnsplashClient{endpoint: endpoint, accessKey: accessKey, timeout: timeout}
}

const defaultTimeout = 5 * time.Second

type lookupResult struct {
	url string
	err error
}

// RandomImageURL returns urls.regular of a random photo. The request is
// bounded by the client timeout and the context deadline, whichever is
// sooner, and is abandoned as soon as ctx ends.
func (u *UnsplashClient) RandomImageURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timeout := u.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return "", context.DeadlineExceeded
		}
		if left < timeout {
			timeout = left
		}
	}

	done := make(chan lookupResult, 1)
	go func() {
		url, err := u.fetch(timeout)
		done <- lookupResult{url: url, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.url, res.err
	}
}

func (u *UnsplashClient) fetch(timeout time.Duration) (string, error) {
	agent := fiber.Get(u.endpoint)
	agent.Set(fiber.HeaderAuthorization, "Client-ID "+u.accessKey)
	agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	agent.Timeout(timeout)

	var photo randomPhoto
	code, _, errs := agent.Struct(&photo)
	if code != 0 && (code < fiber.StatusOK || code >= fiber.StatusMultipleChoices) {
		return "", fmt.Errorf("unsplash: unexpected status %d", code)
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("unsplash: %w", errors.Join(errs...))
	}
	if photo.URLs.Regular == "" {
		return "", errors.New("unsplash: response has no image url")
	}
	return photo.URLs.Regular, nil
}
