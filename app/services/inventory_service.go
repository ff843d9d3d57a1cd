package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/paoluke/tienda/app/storage"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/shopspring/decimal"
)

const (
	lowStockThreshold = 2
	dashboardRecent   = 5
)

var allowedPhotoExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// FieldErrors carries per-field messages for the admin product form.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+": "+v)
	}
	sort.Strings(parts)
	return "invalid product: " + strings.Join(parts, "; ")
}

type ProductForm struct {
	ID            int64
	Name          string `validate:"required,min=2,max=255"`
	Price         string `validate:"required"`
	SalePrice     string
	CategoryID    int64  `validate:"required,gt=0"`
	SubcategoryID int64  `validate:"gte=0"`
	Location      string `validate:"max=100"`
	Featured      bool
	Photos        []string
	Variants      []models.Variant
}

// FormFromProduct pre-fills the edit form.
func FormFromProduct(p models.Product) ProductForm {
	form := ProductForm{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.StringFixed(0),
		CategoryID:    p.CategoryID,
		SubcategoryID: p.SubcategoryID,
		Location:      p.Location,
		Featured:      p.Featured,
		Photos:        append([]string(nil), p.Photos...),
		Variants:      append([]models.Variant(nil), p.Variants...),
	}
	if p.SalePrice != nil {
		form.SalePrice = p.SalePrice.StringFixed(0)
	}
	return form
}

type DashboardStats struct {
	Available int
	Reserved  int
	Sold      int
	LowStock  int
	Recent    []models.Product
}

type InventoryService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	photos       storage.PhotoStorage
	validator    *validator.Validate
	now          func() time.Time
}

func NewInventoryService(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	photos storage.PhotoStorage,
	validator *validator.Validate,
) *InventoryService {
	return &InventoryService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		photos:       photos,
		validator:    validator,
		now:          time.Now,
	}
}

func (s *InventoryService) ChangeStatus(ctx context.Context, list *ProductList, id int64, status models.ProductStatus) error {
	if !status.Valid() {
		return models.NewValidationError("estado", fmt.Sprintf("Estado desconocido: %q", status))
	}

	var soldAt *time.Time
	if status == models.StatusSold {
		now := s.now()
		soldAt = &now
	}

	if err := s.productRepo.UpdateStatus(ctx, id, status, soldAt); err != nil {
		return fmt.Errorf("failed to update status of product %d: %w", id, err)
	}

	list.update(id, func(p *models.Product) {
		p.Status = status
		p.SoldAt = soldAt
	})
	log.Printf("ChangeStatus: product %d is now %s", id, status)
	return nil
}

// DeleteProduct removes the product's stored photos and then its row. A
// storage failure only logs; photos are not restored if the row delete
// fails afterwards.
func (s *InventoryService) DeleteProduct(ctx context.Context, list *ProductList, id int64, confirmed bool) error {
	if !confirmed {
		return models.ErrConfirmationRequired
	}

	product, ok := list.Get(id)
	if !ok {
		found, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load product %d: %w", id, err)
		}
		if found == nil {
			return models.NewNotFoundError("product", id)
		}
		product = *found
	}

	if keys := storage.InternalKeys(product.Photos); len(keys) > 0 {
		if err := s.photos.Remove(ctx, keys); err != nil {
			log.Printf("DeleteProduct: WARN failed to remove photos of product %d: %v", id, err)
		}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	list.remove(id)
	log.Printf("DeleteProduct: product %d deleted", id)
	return nil
}

// RecordClick never fails the caller; the counter is best effort.
func (s *InventoryService) RecordClick(ctx context.Context, id int64) {
	if err := s.productRepo.IncrementClicks(ctx, id); err != nil {
		log.Printf("RecordClick: WARN failed to count click for product %d: %v", id, err)
	}
}

func (s *InventoryService) validateForm(ctx context.Context, form *ProductForm) (decimal.Decimal, *decimal.Decimal, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Location = strings.TrimSpace(form.Location)

	fieldErrs := FieldErrors{}
	if err := s.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return decimal.Zero, nil, err
		}
		for k, v := range helpers.FormatValidationErrors(verrs) {
			fieldErrs[k] = v
		}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(form.Price))
	if err != nil || !price.IsPositive() {
		if _, exists := fieldErrs["price"]; !exists {
			fieldErrs["price"] = "El precio debe ser un número mayor que 0."
		}
	}

	var salePrice *decimal.Decimal
	if v := strings.TrimSpace(form.SalePrice); v != "" {
		sale, err := decimal.NewFromString(v)
		switch {
		case err != nil || !sale.IsPositive():
			fieldErrs["saleprice"] = "El precio de oferta debe ser un número mayor que 0."
		case price.IsPositive() && !sale.LessThan(price):
			fieldErrs["saleprice"] = "El precio de oferta debe ser menor que el precio."
		default:
			salePrice = &sale
		}
	}

	seen := map[string]bool{}
	variants := make([]models.Variant, 0, len(form.Variants))
	for _, v := range form.Variants {
		v.Size = strings.TrimSpace(v.Size)
		if v.Size == "" {
			continue
		}
		key := strings.ToLower(v.Size)
		if seen[key] {
			fieldErrs["variants"] = fmt.Sprintf("La talla %s está repetida.", v.Size)
		}
		if v.Stock < 0 {
			fieldErrs["variants"] = fmt.Sprintf("El stock de la talla %s no puede ser negativo.", v.Size)
		}
		seen[key] = true
		variants = append(variants, v)
	}
	form.Variants = variants

	if form.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(ctx, form.CategoryID)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("failed to load category %d: %w", form.CategoryID, err)
		}
		if category == nil {
			fieldErrs["categoryid"] = "La categoría no existe."
		}
	}
	if form.SubcategoryID > 0 {
		sub, err := s.categoryRepo.GetSubcategory(ctx, form.SubcategoryID)
		if err != nil {
			return decimal.Zero, nil, fmt.Errorf("failed to load subcategory %d: %w", form.SubcategoryID, err)
		}
		if sub == nil || sub.CategoryID != form.CategoryID {
			fieldErrs["subcategoryid"] = "La subcategoría no pertenece a la categoría."
		}
	}

	if len(fieldErrs) > 0 {
		return decimal.Zero, nil, fieldErrs
	}
	return price, salePrice, nil
}

// SaveProduct creates the product when form.ID is zero and updates it
// otherwise. New products start available.
func (s *InventoryService) SaveProduct(ctx context.Context, list *ProductList, form ProductForm) (*models.Product, error) {
	price, salePrice, err := s.validateForm(ctx, &form)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:            form.ID,
		Name:          form.Name,
		Price:         price,
		SalePrice:     salePrice,
		Photos:        form.Photos,
		CategoryID:    form.CategoryID,
		SubcategoryID: form.SubcategoryID,
		Variants:      form.Variants,
		Location:      form.Location,
		Featured:      form.Featured,
	}
	if product.Photos == nil {
		product.Photos = []string{}
	}
	if product.Variants == nil {
		product.Variants = []models.Variant{}
	}

	if product.ID == 0 {
		product.Status = models.StatusAvailable
		product.CreatedAt = s.now()
		if err := s.productRepo.Create(ctx, &product); err != nil {
			return nil, fmt.Errorf("failed to create product: %w", err)
		}
		list.prepend(product)
		log.Printf("SaveProduct: created product %d", product.ID)
		return &product, nil
	}

	if err := s.productRepo.Update(ctx, &product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}

	list.update(product.ID, func(p *models.Product) {
		p.Name = product.Name
		p.Price = product.Price
		p.SalePrice = product.SalePrice
		p.Photos = product.Photos
		p.CategoryID = product.CategoryID
		p.SubcategoryID = product.SubcategoryID
		p.Variants = product.Variants
		p.Location = product.Location
		p.Featured = product.Featured
		product = *p
	})
	log.Printf("SaveProduct: updated product %d", product.ID)
	return &product, nil
}

// UploadPhoto stores an uploaded image and returns its storage key.
func (s *InventoryService) UploadPhoto(ctx context.Context, productName, filename, contentType string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedPhotoExt[ext] {
		return "", models.NewValidationError("foto", "Formato de imagen no soportado.")
	}

	base := slug.Make(productName)
	if base == "" {
		base = "producto"
	}
	key := fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)

	if err := s.photos.Upload(ctx, key, contentType, body); err != nil {
		return "", fmt.Errorf("failed to upload photo %s: %w", filename, err)
	}
	return key, nil
}

// Stats summarizes the inventory for the dashboard.
func Stats(products []models.Product) DashboardStats {
	var stats DashboardStats
	for _, p := range products {
		switch p.Status {
		case models.StatusAvailable:
			stats.Available++
			if calc.TotalStock(p.Variants) <= lowStockThreshold {
				stats.LowStock++
			}
		case models.StatusReserved:
			stats.Reserved++
		case models.StatusSold:
			stats.Sold++
		}
	}

	recent := append([]models.Product(nil), products...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	stats.Recent = firstN(recent, dashboardRecent)
	return stats
}
