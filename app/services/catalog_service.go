package services

import (
	"context"
	"fmt"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/repositories"
)

const (
	homeFeedSize    = 20
	homeSectionSize = 4
	soldLookupSize  = 50
)

type HomeFeed struct {
	Offers     []models.Product
	Popular    []models.Product
	New        []models.Product
	Categories []models.Category
}

type CategoryPage struct {
	Category      models.Category
	Subcategories []models.Subcategory
	SubcategoryID int64
	Sort          SortKey
	Listing       ProductListing
}

type CatalogService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
}

func NewCatalogService(productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// BuildHomeFeed derives the three home sections from the newest products.
// The sections are independent and may share products.
func BuildHomeFeed(recent []models.Product) HomeFeed {
	feed := HomeFeed{
		Offers: FilterProducts(recent, ProductQuery{Scope: ScopeStorefront, OffersOnly: true, Sort: SortRecent}).Products,
	}

	popular := FilterProducts(recent, ProductQuery{Scope: ScopeStorefront, Sort: SortPopular}).Products
	feed.Popular = firstN(popular, homeSectionSize)

	newest := FilterProducts(recent, ProductQuery{Scope: ScopeStorefront, Sort: SortRecent}).Products
	feed.New = firstN(newest, homeSectionSize)

	return feed
}

func firstN(products []models.Product, n int) []models.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func (s *CatalogService) Home(ctx context.Context) (*HomeFeed, error) {
	available := models.StatusAvailable
	recent, err := s.productRepo.Recent(ctx, &available, homeFeedSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent products: %w", err)
	}

	feed := BuildHomeFeed(recent)

	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	feed.Categories = categories

	return &feed, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return categories, nil
}

func (s *CatalogService) CategoryPage(ctx context.Context, categoryID, subcategoryID int64, sortKey SortKey) (*CategoryPage, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category %d: %w", categoryID, err)
	}
	if category == nil {
		return nil, models.NewNotFoundError("category", categoryID)
	}

	products, err := s.productRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load products for category %d: %w", categoryID, err)
	}

	listing := FilterProducts(products, ProductQuery{
		Scope:         ScopeStorefront,
		CategoryID:    categoryID,
		SubcategoryID: subcategoryID,
		Sort:          sortKey,
	})

	return &CategoryPage{
		Category:      *category,
		Subcategories: category.Subcategories,
		SubcategoryID: subcategoryID,
		Sort:          sortKey,
		Listing:       listing,
	}, nil
}

// ProductDetail hides sold products from shoppers.
func (s *CatalogService) ProductDetail(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if product == nil || product.Status == models.StatusSold {
		return nil, models.NewNotFoundError("product", id)
	}
	return product, nil
}

// AdminProduct loads any product regardless of status.
func (s *CatalogService) AdminProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if product == nil {
		return nil, models.NewNotFoundError("product", id)
	}
	return product, nil
}

func (s *CatalogService) Offers(ctx context.Context) (ProductListing, error) {
	products, err := s.productRepo.GetOffers(ctx)
	if err != nil {
		return ProductListing{}, fmt.Errorf("failed to load offers: %w", err)
	}
	return FilterProducts(products, ProductQuery{Scope: ScopeStorefront, OffersOnly: true, Sort: SortRecent}), nil
}

// AdminListing loads every product newest first and applies the admin
// search and status filter.
func (s *CatalogService) AdminListing(ctx context.Context, q ProductQuery) (ProductListing, []models.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return ProductListing{}, nil, fmt.Errorf("failed to load products: %w", err)
	}
	q.Scope = ScopeAdmin
	q.Sort = SortRecent
	return FilterProducts(products, q), products, nil
}

func (s *CatalogService) SoldLookup(ctx context.Context) ([]models.Product, error) {
	sold := models.StatusSold
	products, err := s.productRepo.Recent(ctx, &sold, soldLookupSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load sold products: %w", err)
	}
	return products, nil
}
