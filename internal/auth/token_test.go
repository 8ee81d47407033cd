package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/user-service/pkg/util"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newClockedManager(t *testing.T, secret string) (*TokenManager, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	tm, err := NewTokenManager(secret, DefaultTokenTTL, WithClock(clock.Now))
	require.NoError(t, err)
	return tm, clock
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	tm, err := NewTokenManager("", time.Hour)
	assert.Nil(t, tm)
	assert.True(t, apperrors.IsConfigurationError(err))
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm, err := NewTokenManager("k", 0)
	require.NoError(t, err)
	assert.Equal(t, 86400*time.Second, tm.TTL())
}

func TestIssueAndParse(t *testing.T) {
	tm, clock := newClockedManager(t, "super-secret")

	token, exp, err := tm.Issue("user-123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, clock.now.Add(24*time.Hour), exp)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.PrincipalID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.WithinDuration(t, clock.now, claims.IssuedAt.Time, 0)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, 0)
}

func TestParse_ExpiryBoundary(t *testing.T) {
	tm, clock := newClockedManager(t, "super-secret")
	issued := clock.now

	token, _, err := tm.Issue("u1")
	require.NoError(t, err)

	clock.now = issued.Add(DefaultTokenTTL - time.Second)
	_, err = tm.Parse(token)
	assert.NoError(t, err, "valid one second before expiry")

	clock.now = issued.Add(DefaultTokenTTL)
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired, "invalid at the expiry instant")

	clock.now = issued.Add(DefaultTokenTTL + time.Second)
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired, "invalid after expiry")
}

func TestParse_WrongSecret(t *testing.T) {
	issuer, _ := newClockedManager(t, "right-secret")
	verifier, _ := newClockedManager(t, "wrong-secret")

	token, _, err := issuer.Issue("u2")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParse_Malformed(t *testing.T) {
	tm, _ := newClockedManager(t, "k")

	for _, raw := range []string{"", "not.a.jwt", "abc"} {
		_, err := tm.Parse(raw)
		assert.Error(t, err, raw)
	}
}

func TestParse_RejectsOtherAlgorithms(t *testing.T) {
	tm, clock := newClockedManager(t, "k")

	claims := &Claims{
		PrincipalID: "u3",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
		},
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Parse(none)
	assert.Error(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = tm.Parse(hs512)
	assert.Error(t, err)
}

func TestParse_RequiresExpiry(t *testing.T) {
	tm, _ := newClockedManager(t, "k")

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{PrincipalID: "u4"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = tm.Parse(raw)
	assert.Error(t, err)
}

func TestParse_RequiresPrincipal(t *testing.T) {
	tm, clock := newClockedManager(t, "k")

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))},
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = tm.Parse(raw)
	assert.Error(t, err)
}
