package seeders

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/paoluke/tienda/app/db/fakers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Catalog is the yaml seed file. Products reference their category and
// subcategory by name.
type Catalog struct {
	Categories []models.Category `yaml:"categorias"`
	Products   []CatalogProduct  `yaml:"productos"`
	Config     *CatalogConfig    `yaml:"config"`
}

type CatalogProduct struct {
	Name        string           `yaml:"nombre"`
	Price       int64            `yaml:"precio"`
	SalePrice   int64            `yaml:"precio_oferta"`
	Category    string           `yaml:"categoria"`
	Subcategory string           `yaml:"subcategoria"`
	Variants    []models.Variant `yaml:"variantes"`
	Photos      []string         `yaml:"fotos"`
	Location    string           `yaml:"ubicacion"`
	Status      string           `yaml:"estado"`
	Featured    bool             `yaml:"destacado"`
}

type CatalogConfig struct {
	StoreName         string `yaml:"nombre_tienda"`
	Description       string `yaml:"descripcion"`
	Address           string `yaml:"direccion"`
	Hours             string `yaml:"horario"`
	WhatsApp          string `yaml:"whatsapp"`
	Email             string `yaml:"email"`
	Instagram         string `yaml:"instagram"`
	Facebook          string `yaml:"facebook"`
	BannerActive      bool   `yaml:"banner_activo"`
	BannerText        string `yaml:"banner_texto"`
	BannerSubtext     string `yaml:"banner_subtexto"`
	BannerEmoji       string `yaml:"banner_emoji"`
	MessageTemplate   string `yaml:"mensaje_whatsapp_template"`
	HideSoldAfterDays int    `yaml:"dias_ocultar_vendidos"`
}

func (c CatalogConfig) StoreConfig() models.StoreConfig {
	return models.StoreConfig{
		StoreName:         c.StoreName,
		Description:       c.Description,
		Address:           c.Address,
		Hours:             c.Hours,
		WhatsApp:          c.WhatsApp,
		Email:             c.Email,
		Instagram:         c.Instagram,
		Facebook:          c.Facebook,
		BannerActive:      c.BannerActive,
		BannerText:        c.BannerText,
		BannerSubtext:     c.BannerSubtext,
		BannerEmoji:       c.BannerEmoji,
		MessageTemplate:   c.MessageTemplate,
		HideSoldAfterDays: c.HideSoldAfterDays,
	}
}

func LoadCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &catalog, nil
}

type Repositories struct {
	Categories repositories.CategoryRepositoryImpl
	Products   repositories.ProductRepositoryImpl
	Config     repositories.ConfigRepositoryImpl
}

func (c CatalogProduct) product(categories map[string]*models.Category) (*models.Product, error) {
	category, ok := categories[strings.ToLower(c.Category)]
	if !ok {
		return nil, fmt.Errorf("product %q: unknown category %q", c.Name, c.Category)
	}

	p := &models.Product{
		Name:       c.Name,
		Price:      decimal.NewFromInt(c.Price),
		Photos:     c.Photos,
		CategoryID: category.ID,
		Variants:   c.Variants,
		Location:   c.Location,
		Status:     models.ProductStatus(c.Status),
		Featured:   c.Featured,
		CreatedAt:  time.Now(),
	}
	if c.SalePrice > 0 {
		sale := decimal.NewFromInt(c.SalePrice)
		p.SalePrice = &sale
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("product %q: unknown status %q", c.Name, c.Status)
	}
	if p.Status == models.StatusSold {
		now := time.Now()
		p.SoldAt = &now
	}
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if p.Variants == nil {
		p.Variants = []models.Variant{}
	}

	if c.Subcategory != "" {
		for _, sub := range category.Subcategories {
			if strings.EqualFold(sub.Name, c.Subcategory) {
				p.SubcategoryID = sub.ID
			}
		}
		if p.SubcategoryID == 0 {
			return nil, fmt.Errorf("product %q: unknown subcategory %q in %s", c.Name, c.Subcategory, category.Name)
		}
	}
	return p, nil
}

// Seed inserts the catalog. Categories are created first so products can
// resolve their names to ids.
func Seed(ctx context.Context, repos Repositories, catalog *Catalog) error {
	byName := make(map[string]*models.Category, len(catalog.Categories))
	for i := range catalog.Categories {
		category := &catalog.Categories[i]
		if err := repos.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Name, err)
		}
		byName[strings.ToLower(category.Name)] = category
	}
	log.Printf("Seed: %d categories created", len(catalog.Categories))

	for _, item := range catalog.Products {
		product, err := item.product(byName)
		if err != nil {
			return err
		}
		if err := repos.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product %s: %w", product.Name, err)
		}
	}
	log.Printf("Seed: %d products created", len(catalog.Products))

	if catalog.Config != nil {
		cfg := catalog.Config.StoreConfig()
		if err := repos.Config.Save(ctx, &cfg); err != nil {
			return fmt.Errorf("failed to save store config: %w", err)
		}
		log.Printf("Seed: store config saved")
	}
	return nil
}

// SeedFake fills an empty store with n random products spread over a few
// generated categories.
func SeedFake(ctx context.Context, repos Repositories, n int) error {
	categories := make([]*models.Category, 0, 3)
	for i := 0; i < 3; i++ {
		category := fakers.CategoryFaker(i)
		if err := repos.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category %s: %w", category.Name, err)
		}
		categories = append(categories, category)
	}

	for i := 0; i < n; i++ {
		product := fakers.ProductFaker(*categories[i%len(categories)])
		if err := repos.Products.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product %s: %w", product.Name, err)
		}
	}

	log.Printf("SeedFake: %d categories and %d products created", len(categories), n)
	return nil
}
