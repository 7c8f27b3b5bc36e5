package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
)

// ErrBrandNotFound indicates the requested brand does not exist.
var ErrBrandNotFound = errors.New("brand not found")

// CatalogService answers read-only brand and product queries.
type CatalogService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ProductsByBrand(ctx context.Context, brandID string) ([]domain.Product, error)
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
}

type catalogService struct {
	catalog repository.CatalogRepository
}

func NewCatalogService(catalog repository.CatalogRepository) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.catalog.ListBrands(ctx)
}

// ProductsByBrand returns the products whose category is brandID. A known brand without
// products yields an empty slice, an unknown brand ErrBrandNotFound.
func (s *catalogService) ProductsByBrand(ctx context.Context, brandID string) ([]domain.Product, error) {
	if _, err := s.catalog.GetBrand(ctx, brandID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBrandNotFound, brandID)
		}
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.CategoryID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

// SearchProducts filters products by a case-sensitive substring of the name.
// An empty term matches everything.
func (s *catalogService) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if term == "" {
		return products, nil
	}

	out := make([]domain.Product, 0)
	for _, p := range products {
		if strings.Contains(p.Name, term) {
			out = append(out, p)
		}
	}
	return out, nil
}
