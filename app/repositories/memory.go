package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/paoluke/tienda/app/models"
)

// InMemoryProductRepository is a thread-safe ProductRepositoryImpl used by
// tests and by the demo server when no database is configured.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]models.Product
	nextID   int64
	now      func() time.Time
}

var _ ProductRepositoryImpl = (*InMemoryProductRepository)(nil)

func NewInMemoryProductRepository(products ...models.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[int64]models.Product),
		now:      time.Now,
	}
	for _, p := range products {
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
		r.products[p.ID] = cloneProduct(p)
	}
	return r
}

func cloneProduct(p models.Product) models.Product {
	if p.Photos != nil {
		p.Photos = append([]string(nil), p.Photos...)
	}
	if p.Variants != nil {
		p.Variants = append([]models.Variant(nil), p.Variants...)
	}
	if p.SalePrice != nil {
		sale := *p.SalePrice
		p.SalePrice = &sale
	}
	if p.SoldAt != nil {
		soldAt := *p.SoldAt
		p.SoldAt = &soldAt
	}
	return p
}

// sorted returns the products matching keep, newest first.
func (r *InMemoryProductRepository) sorted(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (r *InMemoryProductRepository) Recent(ctx context.Context, status *models.ProductStatus, limit int) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := r.sorted(func(p models.Product) bool {
		return status == nil || p.Status == *status
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return r.Recent(ctx, nil, 0)
}

func (r *InMemoryProductRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sorted(func(p models.Product) bool {
		return p.CategoryID == categoryID && p.Status != models.StatusSold
	}), nil
}

func (r *InMemoryProductRepository) GetOffers(ctx context.Context) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sorted(func(p models.Product) bool {
		return p.SalePrice != nil && p.Status != models.StatusSold
	}), nil
}

func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *InMemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	if product.CreatedAt.IsZero() {
		product.CreatedAt = r.now()
	}
	if product.Status == "" {
		product.Status = models.StatusAvailable
	}
	r.products[product.ID] = cloneProduct(*product)
	return nil
}

func (r *InMemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.products[product.ID]
	if !ok {
		return models.NewNotFoundError("product", product.ID)
	}
	updated := cloneProduct(*product)
	updated.Status = current.Status
	updated.SoldAt = current.SoldAt
	updated.WhatsAppClicks = current.WhatsAppClicks
	updated.CreatedAt = current.CreatedAt
	r.products[product.ID] = updated
	return nil
}

func (r *InMemoryProductRepository) UpdateStatus(ctx context.Context, id int64, status models.ProductStatus, soldAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.NewNotFoundError("product", id)
	}
	p.Status = status
	p.SoldAt = soldAt
	r.products[id] = cloneProduct(p)
	return nil
}

func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.NewNotFoundError("product", id)
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) IncrementClicks(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.NewNotFoundError("product", id)
	}
	p.WhatsAppClicks++
	r.products[id] = p
	return nil
}

type InMemoryCategoryRepository struct {
	mu         sync.RWMutex
	categories []models.Category
	nextID     int64
	nextSubID  int64
}

var _ CategoryRepositoryImpl = (*InMemoryCategoryRepository)(nil)

func NewInMemoryCategoryRepository(categories ...models.Category) *InMemoryCategoryRepository {
	r := &InMemoryCategoryRepository{}
	for _, c := range categories {
		c := c
		r.add(&c)
	}
	return r
}

func (r *InMemoryCategoryRepository) add(category *models.Category) {
	if category.ID == 0 {
		r.nextID++
		category.ID = r.nextID
	} else if category.ID > r.nextID {
		r.nextID = category.ID
	}
	for i := range category.Subcategories {
		sub := &category.Subcategories[i]
		sub.CategoryID = category.ID
		if sub.ID == 0 {
			r.nextSubID++
			sub.ID = r.nextSubID
		} else if sub.ID > r.nextSubID {
			r.nextSubID = sub.ID
		}
	}
	stored := *category
	stored.Subcategories = append([]models.Subcategory(nil), category.Subcategories...)
	r.categories = append(r.categories, stored)
	sort.SliceStable(r.categories, func(i, j int) bool {
		return r.categories[i].Order < r.categories[j].Order
	})
}

func (r *InMemoryCategoryRepository) GetActive(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Category
	for _, c := range r.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Category(nil), r.categories...), nil
}

func (r *InMemoryCategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (r *InMemoryCategoryRepository) GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		for _, s := range c.Subcategories {
			if s.ID == id {
				s := s
				return &s, nil
			}
		}
	}
	return nil, nil
}

func (r *InMemoryCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.add(category)
	return nil
}

type InMemoryConfigRepository struct {
	mu  sync.RWMutex
	cfg *models.StoreConfig
}

var _ ConfigRepositoryImpl = (*InMemoryConfigRepository)(nil)

func NewInMemoryConfigRepository(cfg *models.StoreConfig) *InMemoryConfigRepository {
	r := &InMemoryConfigRepository{}
	if cfg != nil {
		c := *cfg
		r.cfg = &c
	}
	return r
}

func (r *InMemoryConfigRepository) Get(ctx context.Context) (*models.StoreConfig, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return nil, nil
	}
	c := *r.cfg
	return &c, nil
}

func (r *InMemoryConfigRepository) Save(ctx context.Context, cfg *models.StoreConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if cfg.ID == 0 {
		cfg.ID = 1
	}
	c := *cfg
	r.cfg = &c
	return nil
}
