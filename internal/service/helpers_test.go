package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shades-shop/internal/domain"
	"shades-shop/internal/repository"
	"shades-shop/internal/repository/memory"
)

const testSecret = "test-secret"

var testBrands = []domain.Brand{
	{ID: "1", Name: "Oakley"},
	{ID: "2", Name: "Ray Ban"},
	{ID: "4", Name: "DKNY"},
	{ID: "6", Name: "Gucci"},
}

var testProducts = []domain.Product{
	{ID: "1", CategoryID: "1", Name: "Superglasses", Description: "The best glasses in the world", Price: 150, ImageURLs: []string{"a.jpg"}},
	{ID: "2", CategoryID: "1", Name: "Black Sunglasses", Description: "The best glasses in the world", Price: 100, ImageURLs: []string{"b.jpg"}},
	{ID: "4", CategoryID: "2", Name: "Better glasses", Description: "The best glasses in the world", Price: 1500},
	{ID: "5", CategoryID: "2", Name: "Glasses", Description: "The most normal glasses in the world", Price: 2000},
	{ID: "8", CategoryID: "4", Name: "Coke cans", Description: "The best glasses in the world", Price: 110},
}

func newTestUsers(t *testing.T) repository.UserRepository {
	t.Helper()

	users := memory.NewUserRepository()
	require.NoError(t, users.Upsert(context.Background(), domain.User{Username: "yellowleopard753", Password: "jonjon"}))
	require.NoError(t, users.Upsert(context.Background(), domain.User{Username: "lazywolf342", Password: "tucker"}))
	return users
}

func newTestCatalog(t *testing.T) repository.CatalogRepository {
	t.Helper()

	catalog, err := memory.NewCatalogRepository(testBrands, testProducts)
	require.NoError(t, err)
	return catalog
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
