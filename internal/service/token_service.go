package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"shades-shop/internal/cache"
)

var (
	// ErrMissingHeader indicates the request carried no Authorization header.
	ErrMissingHeader = errors.New("auth header not provided")
	// ErrMalformedHeader indicates the Authorization header has no token after the scheme.
	ErrMalformedHeader = errors.New("header not formatted correctly")
	// ErrInvalidToken wraps signature, expiry and claim failures reported by the verifier.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload of an access token.
type Claims struct {
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, username string) (string, error)
	Validate(authorization string) (*Claims, error)
}

// TokenOption customizes a TokenService.
type TokenOption func(*tokenService)

// WithTokenCache makes Issue hand out one token per user until it expires instead of signing
// a fresh one on every call.
func WithTokenCache(c cache.TokenCache) TokenOption {
	return func(s *tokenService) {
		s.cache = c
	}
}

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(s *tokenService) {
		if now != nil {
			s.now = now
		}
	}
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
	cache  cache.TokenCache
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, opts ...TokenOption) (TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	s := &tokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *tokenService) Issue(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", errors.New("username is required")
	}

	if s.cache != nil {
		token, ok, err := s.cache.Get(ctx, username)
		if err != nil {
			return "", fmt.Errorf("lookup cached token: %w", err)
		}
		if ok {
			return token, nil
		}
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	signed, err := s.sign(username, now, expiresAt)
	if err != nil {
		return "", err
	}

	if s.cache == nil {
		return signed, nil
	}

	stored, err := s.cache.SetIfAbsent(ctx, username, signed, s.ttl)
	if err != nil {
		return "", fmt.Errorf("cache token: %w", err)
	}
	if stored {
		return signed, nil
	}

	// lost a race with a concurrent login; the first stored token wins
	winner, ok, err := s.cache.Get(ctx, username)
	if err != nil {
		return "", fmt.Errorf("lookup cached token: %w", err)
	}
	if ok {
		return winner, nil
	}
	return signed, nil
}

func (s *tokenService) Validate(authorization string) (*Claims, error) {
	if authorization == "" {
		return nil, ErrMissingHeader
	}

	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return nil, ErrMalformedHeader
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserName == "" {
		return nil, fmt.Errorf("%w: userName claim missing", ErrInvalidToken)
	}
	return claims, nil
}

func (s *tokenService) sign(username string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		UserName: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
