package repositories

import (
	"context"
	"errors"

	"github.com/paoluke/tienda/app/models"
	"gorm.io/gorm"
)

type ConfigRepositoryImpl interface {
	Get(ctx context.Context) (*models.StoreConfig, error)
	Save(ctx context.Context, cfg *models.StoreConfig) error
}

type configRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) ConfigRepositoryImpl {
	return &configRepository{db: db}
}

// Get returns the singleton row, or nil when the store was never configured.
func (r *configRepository) Get(ctx context.Context) (*models.StoreConfig, error) {
	var cfg models.StoreConfig
	err := r.db.WithContext(ctx).Order("id ASC").First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (r *configRepository) Save(ctx context.Context, cfg *models.StoreConfig) error {
	if cfg.ID == 0 {
		existing, err := r.Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			cfg.ID = existing.ID
		}
	}
	return r.db.WithContext(ctx).Save(cfg).Error
}
