package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/paoluke/tienda/app/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inventoryFixture struct {
	repo    *repositories.InMemoryProductRepository
	photos  *storage.MemoryStorage
	list    *ProductList
	service *InventoryService
	now     time.Time
}

func newInventoryFixture(t *testing.T, products ...models.Product) *inventoryFixture {
	t.Helper()
	f := &inventoryFixture{
		repo:   repositories.NewInMemoryProductRepository(products...),
		photos: storage.NewMemoryStorage(),
		now:    time.Date(2025, 4, 2, 15, 30, 0, 0, time.UTC),
	}
	f.service = NewInventoryService(f.repo, testCategories(), f.photos, validator.New())
	f.service.now = func() time.Time { return f.now }

	all, err := f.repo.GetAll(context.Background())
	require.NoError(t, err)
	f.list = NewProductList(all)
	return f
}

func TestChangeStatusSetsAndClearsSoldAt(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera"))
	ctx := context.Background()

	require.NoError(t, f.service.ChangeStatus(ctx, f.list, 1, models.StatusSold))

	stored, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSold, stored.Status)
	require.NotNil(t, stored.SoldAt)
	assert.True(t, f.now.Equal(*stored.SoldAt))

	cached, ok := f.list.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.StatusSold, cached.Status)
	require.NotNil(t, cached.SoldAt)

	require.NoError(t, f.service.ChangeStatus(ctx, f.list, 1, models.StatusReserved))
	stored, err = f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReserved, stored.Status)
	assert.Nil(t, stored.SoldAt)

	cached, _ = f.list.Get(1)
	assert.Nil(t, cached.SoldAt)
}

func TestChangeStatusRejectsUnknownStatus(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera"))

	err := f.service.ChangeStatus(context.Background(), f.list, 1, "perdido")
	assert.True(t, models.IsValidation(err))

	cached, _ := f.list.Get(1)
	assert.Equal(t, models.StatusAvailable, cached.Status)
}

func TestChangeStatusRepositoryFailureKeepsList(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera"))
	f.service.productRepo = &failingProductRepo{ProductRepositoryImpl: f.repo, failStatus: true}

	err := f.service.ChangeStatus(context.Background(), f.list, 1, models.StatusSold)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errDatabaseDown))

	cached, _ := f.list.Get(1)
	assert.Equal(t, models.StatusAvailable, cached.Status)
	assert.Nil(t, cached.SoldAt)
}

func TestDeleteProductRequiresConfirmation(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera", withPhotos("polera-1.jpg")))
	ctx := context.Background()

	err := f.service.DeleteProduct(ctx, f.list, 1, false)
	assert.ErrorIs(t, err, models.ErrConfirmationRequired)

	assert.Empty(t, f.photos.Removed())
	stored, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, 1, f.list.Len())
}

func TestDeleteProductRemovesOnlyInternalPhotos(t *testing.T) {
	f := newInventoryFixture(t,
		product(1, "Polera", withPhotos("polera-a.jpg", "https://cdn.example.com/x.jpg", "polera-b.png")),
		product(2, "Vestido"),
	)
	ctx := context.Background()

	require.NoError(t, f.service.DeleteProduct(ctx, f.list, 1, true))

	assert.Equal(t, []string{"polera-a.jpg", "polera-b.png"}, f.photos.Removed())
	stored, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored)
	_, ok := f.list.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 1, f.list.Len())
}

func TestDeleteProductWithOnlyExternalPhotosSkipsStorage(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera", withPhotos("https://cdn.example.com/x.jpg")))

	require.NoError(t, f.service.DeleteProduct(context.Background(), f.list, 1, true))
	assert.Empty(t, f.photos.Removed())
}

func TestDeleteProductStorageFailureDoesNotBlock(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera", withPhotos("polera-a.jpg")))
	f.photos.RemoveErr = errors.New("bucket unavailable")
	ctx := context.Background()

	require.NoError(t, f.service.DeleteProduct(ctx, f.list, 1, true))

	stored, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.Equal(t, 0, f.list.Len())
}

func TestDeleteProductRepositoryFailureKeepsList(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera"))
	f.service.productRepo = &failingProductRepo{ProductRepositoryImpl: f.repo, failDelete: true}

	err := f.service.DeleteProduct(context.Background(), f.list, 1, true)
	require.Error(t, err)
	assert.Equal(t, 1, f.list.Len())
}

func TestDeleteProductNotFound(t *testing.T) {
	f := newInventoryFixture(t)
	err := f.service.DeleteProduct(context.Background(), f.list, 42, true)
	assert.True(t, models.IsNotFound(err))
}

func TestRecordClick(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera", withClicks(3)))
	ctx := context.Background()

	f.service.RecordClick(ctx, 1)
	f.service.RecordClick(ctx, 1)

	stored, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.WhatsAppClicks)

	f.service.productRepo = &failingProductRepo{ProductRepositoryImpl: f.repo, failClicks: true}
	assert.NotPanics(t, func() { f.service.RecordClick(ctx, 1) })
}

func TestSaveProductCreatesAvailableProduct(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera"))

	saved, err := f.service.SaveProduct(context.Background(), f.list, ProductForm{
		Name:          "  Vestido Floral ",
		Price:         "12990",
		SalePrice:     "9990",
		CategoryID:    1,
		SubcategoryID: 10,
		Location:      "Caja 3",
		Variants: []models.Variant{
			{Size: "S", Stock: 1},
			{Size: " ", Stock: 4},
			{Size: "M", Stock: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), saved.ID)
	assert.Equal(t, "Vestido Floral", saved.Name)
	assert.Equal(t, models.StatusAvailable, saved.Status)
	assert.Equal(t, "9990", saved.SalePrice.String())
	assert.Equal(t, []models.Variant{{Size: "S", Stock: 1}, {Size: "M", Stock: 2}}, saved.Variants)
	assert.True(t, f.now.Equal(saved.CreatedAt))

	snapshot := f.list.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, int64(2), snapshot[0].ID)
}

func TestSaveProductUpdateKeepsStatusAndClicks(t *testing.T) {
	f := newInventoryFixture(t, product(1, "Polera", withClicks(8), withStatus(models.StatusReserved)))

	form := FormFromProduct(product(1, "Polera"))
	form.Name = "Polera Oversize"
	form.Price = "15000"

	saved, err := f.service.SaveProduct(context.Background(), f.list, form)
	require.NoError(t, err)
	assert.Equal(t, "Polera Oversize", saved.Name)
	assert.Equal(t, models.StatusReserved, saved.Status)
	assert.Equal(t, 8, saved.WhatsAppClicks)

	stored, err := f.repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "15000", stored.Price.String())
	assert.Equal(t, 8, stored.WhatsAppClicks)
}

func TestSaveProductValidation(t *testing.T) {
	tests := []struct {
		name  string
		form  ProductForm
		field string
	}{
		{"missing name", ProductForm{Price: "1000", CategoryID: 1}, "name"},
		{"missing price", ProductForm{Name: "Polera", CategoryID: 1}, "price"},
		{"zero price", ProductForm{Name: "Polera", Price: "0", CategoryID: 1}, "price"},
		{"sale above price", ProductForm{Name: "Polera", Price: "1000", SalePrice: "1500", CategoryID: 1}, "saleprice"},
		{"missing category", ProductForm{Name: "Polera", Price: "1000"}, "categoryid"},
		{"unknown category", ProductForm{Name: "Polera", Price: "1000", CategoryID: 9}, "categoryid"},
		{"foreign subcategory", ProductForm{Name: "Polera", Price: "1000", CategoryID: 1, SubcategoryID: 20}, "subcategoryid"},
		{"duplicate size", ProductForm{Name: "Polera", Price: "1000", CategoryID: 1, Variants: []models.Variant{{Size: "M", Stock: 1}, {Size: "m", Stock: 1}}}, "variants"},
		{"negative stock", ProductForm{Name: "Polera", Price: "1000", CategoryID: 1, Variants: []models.Variant{{Size: "M", Stock: -1}}}, "variants"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInventoryFixture(t)
			_, err := f.service.SaveProduct(context.Background(), f.list, tt.form)

			var fieldErrs FieldErrors
			require.True(t, errors.As(err, &fieldErrs), "got %v", err)
			assert.Contains(t, fieldErrs, tt.field)
			assert.Equal(t, 0, f.list.Len())
		})
	}
}

func TestSaveProductCreateFailureKeepsList(t *testing.T) {
	f := newInventoryFixture(t)
	f.service.productRepo = &failingProductRepo{ProductRepositoryImpl: f.repo, failCreate: true}

	_, err := f.service.SaveProduct(context.Background(), f.list, ProductForm{Name: "Polera", Price: "1000", CategoryID: 1})
	require.Error(t, err)
	assert.Equal(t, 0, f.list.Len())
}

func TestUploadPhoto(t *testing.T) {
	f := newInventoryFixture(t)

	key, err := f.service.UploadPhoto(context.Background(), "Vestido Floral Ñandú", "IMG_01.JPG", "image/jpeg", strings.NewReader("jpeg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "vestido-floral-nandu-"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.Equal(t, []string{key}, f.photos.Keys())

	_, err = f.service.UploadPhoto(context.Background(), "Vestido", "notas.pdf", "application/pdf", strings.NewReader("pdf"))
	assert.True(t, models.IsValidation(err))
}

func TestStats(t *testing.T) {
	products := []models.Product{
		product(1, "A", withVariants(models.Variant{Size: "M", Stock: 1})),
		product(2, "B", withVariants(models.Variant{Size: "M", Stock: 5})),
		product(3, "C", withStatus(models.StatusReserved)),
		product(4, "D", withStatus(models.StatusSold), withVariants()),
		product(5, "E"),
		product(6, "F"),
		product(7, "G"),
	}

	stats := Stats(products)
	assert.Equal(t, 5, stats.Available)
	assert.Equal(t, 1, stats.Reserved)
	assert.Equal(t, 1, stats.Sold)
	assert.Equal(t, 1, stats.LowStock)
	assert.Equal(t, []int64{7, 6, 5, 4, 3}, productIDs(stats.Recent))
}
