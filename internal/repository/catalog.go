package repository

import (
	"context"

	"shades-shop/internal/domain"
)

// CatalogRepository exposes the read-only brand and product catalog.
type CatalogRepository interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}
