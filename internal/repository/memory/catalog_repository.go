package memory

import (
	"context"
	"fmt"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

// CatalogRepository serves brands and products from slices fixed at construction.
// Listing order is the order the records were supplied in.
type CatalogRepository struct {
	brands     []domain.Brand
	products   []domain.Product
	brandIdx   map[string]int
	productIdx map[string]int
}

func NewCatalogRepository(brands []domain.Brand, products []domain.Product) (*CatalogRepository, error) {
	r := &CatalogRepository{
		brands:     make([]domain.Brand, len(brands)),
		products:   make([]domain.Product, len(products)),
		brandIdx:   make(map[string]int, len(brands)),
		productIdx: make(map[string]int, len(products)),
	}
	copy(r.brands, brands)
	copy(r.products, products)

	for i, b := range r.brands {
		if _, dup := r.brandIdx[b.ID]; dup {
			return nil, fmt.Errorf("duplicate brand id %q", b.ID)
		}
		r.brandIdx[b.ID] = i
	}
	for i, p := range r.products {
		if _, dup := r.productIdx[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		r.productIdx[p.ID] = i
	}
	return r, nil
}

func (r *CatalogRepository) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	out := make([]domain.Brand, len(r.brands))
	copy(out, r.brands)
	return out, nil
}

func (r *CatalogRepository) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	i, ok := r.brandIdx[id]
	if !ok {
		return nil, fmt.Errorf("brand %q: %w", id, repository.ErrNotFound)
	}
	b := r.brands[i]
	return &b, nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	i, ok := r.productIdx[id]
	if !ok {
		return nil, fmt.Errorf("product %q: %w", id, repository.ErrNotFound)
	}
	p := r.products[i]
	return &p, nil
}
