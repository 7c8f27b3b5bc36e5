package service

import (
	"context"
	"errors"
	"fmt"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

// ErrUnknownUser indicates a valid token names a user the directory does not know.
var ErrUnknownUser = errors.New("unknown user")

// AuthRequest carries the only part of an incoming request the gate looks at.
type AuthRequest struct {
	Authorization string
}

// RequestGate authorizes requests to user-scoped resources.
type RequestGate interface {
	Authorize(ctx context.Context, req AuthRequest) (*domain.User, error)
}

type requestGate struct {
	tokens TokenService
	users  repository.UserRepository
}

func NewRequestGate(tokens TokenService, users repository.UserRepository) RequestGate {
	return &requestGate{tokens: tokens, users: users}
}

// Authorize validates the bearer token and resolves its userName claim. Errors are one of
// ErrMissingHeader, ErrMalformedHeader, ErrInvalidToken or ErrUnknownUser, possibly wrapped.
func (g *requestGate) Authorize(ctx context.Context, req AuthRequest) (*domain.User, error) {
	claims, err := g.tokens.Validate(req.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := g.users.GetByUsername(ctx, claims.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, claims.UserName)
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return sanitizeUser(user), nil
}
