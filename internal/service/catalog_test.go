package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/models"
	"github.com/mvolkova/kids_shop/internal/repo"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	// nil Producer and nil Search are the disabled variants.
	return &CatalogService{Repo: newTestRepo(t)}
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		product models.Product
	}{
		{name: "missing name", product: models.Product{Slug: "x", Price: 1}},
		{name: "missing slug", product: models.Product{Name: "X", Price: 1}},
		{name: "negative price", product: models.Product{Name: "X", Slug: "x", Price: -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := tt.product
			err := svc.CreateProduct(ctx, &p)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	p := models.Product{Name: "Dino Tee", Slug: "dino-tee", Price: 14.50}
	require.NoError(t, svc.CreateProduct(ctx, &p))

	updated, err := svc.UpdateProduct(ctx, p.ID, func(p *models.Product) {
		p.Price = 12.00
	})
	require.NoError(t, err)
	assert.Equal(t, 12.00, updated.Price)

	_, err = svc.UpdateProduct(ctx, p.ID, func(p *models.Product) {
		p.Price = -5
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProduct(ctx, 9999, func(p *models.Product) {})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogService_SeedDemo_Idempotent(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	first, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Greater(t, first, 0)

	second, err := svc.SeedDemo(ctx)
	require.NoError(t, err)
	assert.Zero(t, second)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(first), count)
}

func TestWishlistService_AddUnknownProduct(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	catalog := &CatalogService{Repo: r}
	wishlist := &WishlistService{Repo: r}
	ctx := context.Background()

	err := wishlist.Add(ctx, 1, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	p := models.Product{Name: "Dino Tee", Slug: "dino-tee", Price: 14.50}
	require.NoError(t, catalog.CreateProduct(ctx, &p))

	require.NoError(t, wishlist.Add(ctx, 1, p.ID))
	require.NoError(t, wishlist.Add(ctx, 1, p.ID))

	items, err := wishlist.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "dino-tee", items[0].Slug)
}

func TestCatalogService_ListProducts_FallsBackToSQL(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.CreateProduct(ctx, &models.Product{Name: "Cloud Hoodie", Slug: "cloud-hoodie", Price: 34.90}))
	require.NoError(t, svc.CreateProduct(ctx, &models.Product{Name: "Dino Tee", Slug: "dino-tee", Price: 14.50}))

	items, err := svc.ListProducts(ctx, repo.ProductFilter{Query: "hoodie"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "cloud-hoodie", items[0].Slug)
}
