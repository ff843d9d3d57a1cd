package migrations

import (
	"github.com/paoluke/tienda/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.Subcategory{}, &models.Product{}, &models.StoreConfig{})
}
