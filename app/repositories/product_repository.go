package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/paoluke/tienda/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	// Recent returns up to limit products, newest first. A nil status
	// returns every status.
	Recent(ctx context.Context, status *models.ProductStatus, limit int) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	GetOffers(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	UpdateStatus(ctx context.Context, id int64, status models.ProductStatus, soldAt *time.Time) error
	Delete(ctx context.Context, id int64) error
	IncrementClicks(ctx context.Context, id int64) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) newest(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Model(&models.Product{}).Order("created_at DESC").Order("id DESC")
}

func (p *productRepository) Recent(ctx context.Context, status *models.ProductStatus, limit int) ([]models.Product, error) {
	var products []models.Product
	q := p.newest(ctx)
	if status != nil {
		q = q.Where("estado = ?", *status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return p.Recent(ctx, nil, 0)
}

func (p *productRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	var products []models.Product
	err := p.newest(ctx).
		Where("categoria_id = ?", categoryID).
		Where("estado <> ?", models.StatusSold).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetOffers(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.newest(ctx).
		Where("precio_oferta IS NOT NULL").
		Where("estado <> ?", models.StatusSold).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	result := p.db.WithContext(ctx).
		Model(&models.Product{ID: product.ID}).
		Select("nombre", "precio", "precio_oferta", "fotos", "categoria_id", "subcategoria_id", "variantes", "ubicacion", "destacado").
		Updates(product)
	return rowsOrNotFound(result, "product", product.ID)
}

func (p *productRepository) UpdateStatus(ctx context.Context, id int64, status models.ProductStatus, soldAt *time.Time) error {
	result := p.db.WithContext(ctx).
		Model(&models.Product{ID: id}).
		Updates(map[string]interface{}{"estado": status, "vendido_at": soldAt})
	return rowsOrNotFound(result, "product", id)
}

func (p *productRepository) Delete(ctx context.Context, id int64) error {
	result := p.db.WithContext(ctx).Delete(&models.Product{}, id)
	return rowsOrNotFound(result, "product", id)
}

// IncrementClicks bumps the counter in SQL so concurrent clicks never lose
// an increment.
func (p *productRepository) IncrementClicks(ctx context.Context, id int64) error {
	result := p.db.WithContext(ctx).
		Model(&models.Product{ID: id}).
		UpdateColumn("clicks_whatsapp", gorm.Expr("clicks_whatsapp + ?", 1))
	return rowsOrNotFound(result, "product", id)
}

func rowsOrNotFound(result *gorm.DB, entity string, id int64) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(entity, id)
	}
	return nil
}
