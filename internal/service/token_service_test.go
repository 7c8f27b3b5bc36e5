package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shades-shop/internal/cache"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("", DefaultTokenTTL)
	assert.Error(t, err)

	_, err = NewTokenService("  ", DefaultTokenTTL)
	assert.Error(t, err)

	_, err = NewTokenService(testSecret, 0)
	assert.Error(t, err)
}

func TestIssueValidateRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)

	token, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	claims, err := svc.Validate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "yellowleopard753", claims.UserName)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, DefaultTokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueIsDeterministicForSameInstant(t *testing.T) {
	now := time.Now()
	svc, err := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(now)))
	require.NoError(t, err)

	first, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestValidateHeaderErrors(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = svc.Validate("Bearer")
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = svc.Validate("Bearer ")
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = svc.Validate("Bearer not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	other, err := NewTokenService("invalid_key", DefaultTokenTTL)
	require.NoError(t, err)
	token, err := other.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)

	_, err = svc.Validate("Bearer " + token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "signature")
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-48 * time.Hour)
	issuer, err := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt)))
	require.NoError(t, err)
	token, err := issuer.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)

	_, err = svc.Validate("Bearer " + token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateAcceptsUntilExpiry(t *testing.T) {
	issuedAt := time.Now().Truncate(time.Second)
	issuer, err := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt)))
	require.NoError(t, err)
	token, err := issuer.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	justBefore, err := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt.Add(DefaultTokenTTL-time.Second))))
	require.NoError(t, err)
	_, err = justBefore.Validate("Bearer " + token)
	assert.NoError(t, err)

	after, err := NewTokenService(testSecret, DefaultTokenTTL, WithClock(fixedClock(issuedAt.Add(DefaultTokenTTL+time.Second))))
	require.NoError(t, err)
	_, err = after.Validate("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsOtherSigningMethods(t *testing.T) {
	claims := Claims{
		UserName: "yellowleopard753",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)
	_, err = svc.Validate("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRequiresUserNameAndExpiry(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Validate("Bearer " + noUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userName": "yellowleopard753",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Validate("Bearer " + noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateIgnoresScheme(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTokenTTL)
	require.NoError(t, err)
	token, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)

	claims, err := svc.Validate("Token " + token)
	require.NoError(t, err)
	assert.Equal(t, "yellowleopard753", claims.UserName)
}

func TestIssueWithCacheReturnsSameToken(t *testing.T) {
	now := time.Now()
	tokenCache := cache.NewMemoryTokenCache()
	svc, err := NewTokenService(testSecret, DefaultTokenTTL,
		WithTokenCache(tokenCache),
		WithClock(func() time.Time {
			now = now.Add(2 * time.Second)
			return now
		}),
	)
	require.NoError(t, err)

	first, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "yellowleopard753")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := svc.Issue(context.Background(), "lazywolf342")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestIssueWithCacheConcurrentLoginsAgree(t *testing.T) {
	svc, err := NewTokenService(testSecret, DefaultTokenTTL, WithTokenCache(cache.NewMemoryTokenCache()))
	require.NoError(t, err)

	const n = 20
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := svc.Issue(context.Background(), "yellowleopard753")
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	for _, tok := range tokens {
		assert.Equal(t, tokens[0], tok)
	}
}
