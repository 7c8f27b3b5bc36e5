package memory

import (
	"context"
	"fmt"
	"sync"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

// UserRepository keeps users in a process-local table keyed by username.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() repository.UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Init(ctx context.Context) error {
	return nil
}

func (r *UserRepository) Upsert(ctx context.Context, user domain.User) error {
	if user.Username == "" {
		return fmt.Errorf("upsert user: username is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.Username] = user.Clone()
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
	}
	out := user.Clone()
	return &out, nil
}

func (r *UserRepository) SaveCart(ctx context.Context, username string, cart domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[username]
	if !ok {
		return fmt.Errorf("user %q: %w", username, repository.ErrNotFound)
	}
	user.Cart = cart.Clone()
	r.users[username] = user
	return nil
}
