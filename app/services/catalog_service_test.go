package services

import (
	"context"
	"testing"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildHomeFeedListsAreIndependent(t *testing.T) {
	// Newest first, as the repository returns them.
	recent := []models.Product{
		product(6, "F", withClicks(1)),
		product(5, "E", withClicks(10), withPrice(10000, salePtr(8000))),
		product(4, "D", withClicks(3)),
		product(3, "C", withClicks(7)),
		product(2, "B", withClicks(0), withPrice(10000, salePtr(9000))),
		product(1, "A", withClicks(7)),
	}

	feed := BuildHomeFeed(recent)
	assert.Equal(t, []int64{5, 2}, productIDs(feed.Offers))
	assert.Equal(t, []int64{5, 3, 1, 4}, productIDs(feed.Popular))
	assert.Equal(t, []int64{6, 5, 4, 3}, productIDs(feed.New))
}

func TestCatalogServiceHome(t *testing.T) {
	var products []models.Product
	for i := int64(1); i <= 25; i++ {
		products = append(products, product(i, "P", withClicks(int(i%4))))
	}
	products = append(products, product(30, "Vendido", withStatus(models.StatusSold), withClicks(100)))

	svc := NewCatalogService(repositories.NewInMemoryProductRepository(products...), testCategories())
	feed, err := svc.Home(context.Background())
	require.NoError(t, err)

	assert.Len(t, feed.New, 4)
	assert.Equal(t, int64(25), feed.New[0].ID)
	assert.Len(t, feed.Popular, 4)
	for _, p := range feed.Popular {
		assert.NotEqual(t, int64(30), p.ID)
		assert.GreaterOrEqual(t, p.ID, int64(6), "only the 20 newest available products are considered")
	}
	assert.Len(t, feed.Categories, 2)
}

func TestCatalogServiceCategoryPage(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository(
		product(1, "Polera", withCategory(1, 11), withPrice(5000, nil)),
		product(2, "Vestido", withCategory(1, 10), withPrice(3000, nil)),
		product(3, "Vestido vendido", withCategory(1, 10), withStatus(models.StatusSold)),
	)
	svc := NewCatalogService(repo, testCategories())
	ctx := context.Background()

	page, err := svc.CategoryPage(ctx, 1, 0, SortPrice)
	require.NoError(t, err)
	assert.Equal(t, "Mujer", page.Category.Name)
	assert.Len(t, page.Subcategories, 2)
	assert.Equal(t, []int64{2, 1}, productIDs(page.Listing.Products))

	page, err = svc.CategoryPage(ctx, 1, 10, SortPopular)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, productIDs(page.Listing.Products))

	_, err = svc.CategoryPage(ctx, 99, 0, SortPopular)
	assert.True(t, models.IsNotFound(err))
}

func TestCatalogServiceProductDetailHidesSold(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository(
		product(1, "Polera"),
		product(2, "Vendido", withStatus(models.StatusSold)),
		product(3, "Reservado", withStatus(models.StatusReserved)),
	)
	svc := NewCatalogService(repo, testCategories())
	ctx := context.Background()

	p, err := svc.ProductDetail(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Polera", p.Name)

	_, err = svc.ProductDetail(ctx, 2)
	assert.True(t, models.IsNotFound(err))

	_, err = svc.ProductDetail(ctx, 404)
	assert.True(t, models.IsNotFound(err))

	p, err = svc.ProductDetail(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, p.Status)
}

func TestCatalogServiceOffersAndSoldLookup(t *testing.T) {
	var products []models.Product
	for i := int64(1); i <= 60; i++ {
		products = append(products, product(i, "Vendido", withStatus(models.StatusSold)))
	}
	products = append(products,
		product(100, "Oferta", withPrice(10000, salePtr(5000))),
		product(101, "Oferta vendida", withPrice(10000, salePtr(5000)), withStatus(models.StatusSold)),
	)
	svc := NewCatalogService(repositories.NewInMemoryProductRepository(products...), testCategories())
	ctx := context.Background()

	offers, err := svc.Offers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{100}, productIDs(offers.Products))

	sold, err := svc.SoldLookup(ctx)
	require.NoError(t, err)
	assert.Len(t, sold, 50)
	assert.Equal(t, int64(101), sold[0].ID)
}

func TestCatalogServiceAdminListing(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository(
		product(1, "Polera"),
		product(2, "Vestido", withStatus(models.StatusSold)),
		product(3, "Falda", withLocation("Bodega")),
	)
	svc := NewCatalogService(repo, testCategories())

	listing, all, err := svc.AdminListing(context.Background(), ProductQuery{Search: "bodega"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, []int64{3}, productIDs(listing.Products))

	listing, _, err = svc.AdminListing(context.Background(), ProductQuery{Status: models.StatusSold})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, productIDs(listing.Products))
}

func TestCatalogServiceAdminProductIncludesSold(t *testing.T) {
	repo := repositories.NewInMemoryProductRepository(product(2, "Vendido", withStatus(models.StatusSold)))
	svc := NewCatalogService(repo, testCategories())

	p, err := svc.AdminProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, p.Status)

	_, err = svc.AdminProduct(context.Background(), 3)
	assert.True(t, models.IsNotFound(err))
}
