package repository

import (
	"context"
	"errors"

	"shades-shop/internal/domain"
)

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository is the user directory: users keyed by username, each owning one cart.
// Implementations hand out copies; callers persist changes through Upsert or SaveCart.
type UserRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, user domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	SaveCart(ctx context.Context, username string, cart domain.Cart) error
}
