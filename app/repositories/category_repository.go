package repositories

import (
	"context"
	"errors"

	"github.com/paoluke/tienda/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	GetActive(ctx context.Context) ([]models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error)
	Create(ctx context.Context, category *models.Category) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) withSubcategories(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("nombre ASC")
		}).
		Order("orden ASC").Order("id ASC")
}

func (r *categoryRepository) GetActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.withSubcategories(ctx).Where("activa = ?", true).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.withSubcategories(ctx).Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	err := r.withSubcategories(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetSubcategory(ctx context.Context, id int64) (*models.Subcategory, error) {
	var sub models.Subcategory
	err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sub, nil
}

// Create inserts the category together with its subcategories.
func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}
