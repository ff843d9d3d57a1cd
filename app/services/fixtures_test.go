package services

import (
	"context"
	"errors"
	"time"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/shopspring/decimal"
)

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func price(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func salePtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func product(id int64, name string, opts ...func(*models.Product)) models.Product {
	p := models.Product{
		ID:         id,
		Name:       name,
		Price:      price(10000),
		CategoryID: 1,
		Status:     models.StatusAvailable,
		Variants:   []models.Variant{{Size: "M", Stock: 3}},
		CreatedAt:  baseTime.Add(time.Duration(id) * time.Hour),
	}
	for _, o := range opts {
		o(&p)
	}
	return p
}

func withClicks(n int) func(*models.Product) {
	return func(p *models.Product) { p.WhatsAppClicks = n }
}

func withStatus(s models.ProductStatus) func(*models.Product) {
	return func(p *models.Product) { p.Status = s }
}

func withPrice(list int64, sale *decimal.Decimal) func(*models.Product) {
	return func(p *models.Product) {
		p.Price = price(list)
		p.SalePrice = sale
	}
}

func withCategory(cat, sub int64) func(*models.Product) {
	return func(p *models.Product) {
		p.CategoryID = cat
		p.SubcategoryID = sub
	}
}

func withVariants(v ...models.Variant) func(*models.Product) {
	return func(p *models.Product) { p.Variants = v }
}

func withPhotos(photos ...string) func(*models.Product) {
	return func(p *models.Product) { p.Photos = photos }
}

func withLocation(loc string) func(*models.Product) {
	return func(p *models.Product) { p.Location = loc }
}

func productIDs(products []models.Product) []int64 {
	out := make([]int64, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func testCategories() *repositories.InMemoryCategoryRepository {
	return repositories.NewInMemoryCategoryRepository(
		models.Category{ID: 1, Name: "Mujer", Emoji: "👗", Active: true, Order: 1, Subcategories: []models.Subcategory{
			{ID: 10, Name: "Vestidos"},
			{ID: 11, Name: "Poleras"},
		}},
		models.Category{ID: 2, Name: "Hombre", Active: true, Order: 2, Subcategories: []models.Subcategory{
			{ID: 20, Name: "Camisas"},
		}},
	)
}

var errDatabaseDown = errors.New("database down")

// failingProductRepo fails the selected write operations.
type failingProductRepo struct {
	repositories.ProductRepositoryImpl
	failDelete bool
	failStatus bool
	failClicks bool
	failCreate bool
}

func (f *failingProductRepo) Delete(ctx context.Context, id int64) error {
	if f.failDelete {
		return errDatabaseDown
	}
	return f.ProductRepositoryImpl.Delete(ctx, id)
}

func (f *failingProductRepo) UpdateStatus(ctx context.Context, id int64, status models.ProductStatus, soldAt *time.Time) error {
	if f.failStatus {
		return errDatabaseDown
	}
	return f.ProductRepositoryImpl.UpdateStatus(ctx, id, status, soldAt)
}

func (f *failingProductRepo) IncrementClicks(ctx context.Context, id int64) error {
	if f.failClicks {
		return errDatabaseDown
	}
	return f.ProductRepositoryImpl.IncrementClicks(ctx, id)
}

func (f *failingProductRepo) Create(ctx context.Context, p *models.Product) error {
	if f.failCreate {
		return errDatabaseDown
	}
	return f.ProductRepositoryImpl.Create(ctx, p)
}

type staticConfig struct {
	cfg models.StoreConfig
	err error
}

func (s staticConfig) Current(ctx context.Context) (models.StoreConfig, error) {
	return s.cfg, s.err
}
