package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

var (
	// ErrEmptyPayload indicates an add request that named no product.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrUnknownProduct indicates the product id is not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
	// ErrNotInCart indicates a catalog product that is absent from the user's cart.
	ErrNotInCart = errors.New("product not in cart")
	// ErrInvalidQuantity is returned in strict mode for quantities below 1.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartService applies cart mutations for an authenticated user and returns the resulting cart.
type CartService interface {
	GetCart(ctx context.Context, username string) (domain.Cart, error)
	AddItem(ctx context.Context, username, productID string) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, username, productID string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, username, productID string) (domain.Cart, error)
}

// CartOptions tunes validation.
type CartOptions struct {
	// StrictQuantity rejects quantity updates below 1. Off by default: any value is stored.
	StrictQuantity bool
}

type cartService struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	opts    CartOptions
	locks   userLocks
}

func NewCartService(users repository.UserRepository, catalog repository.CatalogRepository, opts CartOptions) CartService {
	return &cartService{
		users:   users,
		catalog: catalog,
		opts:    opts,
	}
}

func (s *cartService) GetCart(ctx context.Context, username string) (domain.Cart, error) {
	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Cart.Clone(), nil
}

func (s *cartService) AddItem(ctx context.Context, username, productID string) (domain.Cart, error) {
	if productID == "" {
		return nil, ErrEmptyPayload
	}

	product, err := s.lookupProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(username)
	defer unlock()

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	cart := user.Cart.Add(*product)
	return s.save(ctx, username, cart)
}

func (s *cartService) UpdateQuantity(ctx context.Context, username, productID string, quantity int) (domain.Cart, error) {
	if _, err := s.lookupProduct(ctx, productID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(username)
	defer unlock()

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if !user.Cart.Contains(productID) {
		return nil, ErrNotInCart
	}
	if s.opts.StrictQuantity && quantity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	cart := user.Cart
	cart.SetQuantity(productID, quantity)
	return s.save(ctx, username, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, username, productID string) (domain.Cart, error) {
	if _, err := s.lookupProduct(ctx, productID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(username)
	defer unlock()

	user, err := s.loadUser(ctx, username)
	if err != nil {
		return nil, err
	}

	cart, ok := user.Cart.Remove(productID)
	if !ok {
		return nil, ErrNotInCart
	}
	return s.save(ctx, username, cart)
}

func (s *cartService) lookupProduct(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
		}
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	return product, nil
}

func (s *cartService) loadUser(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownUser, username)
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (s *cartService) save(ctx context.Context, username string, cart domain.Cart) (domain.Cart, error) {
	if err := s.users.SaveCart(ctx, username, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart.Clone(), nil
}

// userLocks serializes cart read-modify-write cycles per user.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *userLocks) lock(username string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[username]
	if !ok {
		m = &sync.Mutex{}
		l.locks[username] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
