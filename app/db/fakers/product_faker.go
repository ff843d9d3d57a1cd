package fakers

import (
	"math/rand"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/paoluke/tienda/app/models"
	"github.com/shopspring/decimal"
)

var (
	categoryNames = []string{"Mujer", "Hombre", "Niños", "Accesorios", "Calzado"}
	categoryEmoji = []string{"👗", "👔", "🧸", "👜", "👟"}
	garments      = []string{"Polera", "Chaqueta", "Pantalón", "Vestido", "Polerón", "Falda", "Camisa", "Jeans"}
	sizes         = []string{"XS", "S", "M", "L", "XL"}
	locations     = []string{"Caja 1", "Caja 2", "Estante A", "Estante B", "Bodega"}
)

// CategoryFaker builds a category with two subcategories. Ids are left for
// the repository to assign.
func CategoryFaker(order int) *models.Category {
	i := order % len(categoryNames)
	name := categoryNames[i]
	if order >= len(categoryNames) {
		name += " " + strings.Title(faker.Word())
	}

	return &models.Category{
		Name:   name,
		Emoji:  categoryEmoji[i],
		Active: true,
		Order:  order,
		Subcategories: []models.Subcategory{
			{Name: garments[rand.Intn(len(garments))], DefaultSizes: []string{"S", "M", "L"}},
			{Name: "Temporada " + faker.YearString(), DefaultSizes: []string{"Única"}},
		},
	}
}

func ProductFaker(category models.Category) *models.Product {
	name := garments[rand.Intn(len(garments))] + " " + strings.Title(faker.Word())

	price := decimal.NewFromInt(int64(rand.Intn(50)+5) * 1000).Sub(decimal.NewFromInt(10))

	var salePrice *decimal.Decimal
	if rand.Intn(4) == 0 {
		sale := price.Mul(decimal.NewFromFloat(0.7)).Round(-1).Sub(decimal.NewFromInt(10))
		salePrice = &sale
	}

	variants := make([]models.Variant, 0, 3)
	for _, i := range rand.Perm(len(sizes))[:rand.Intn(3)+1] {
		variants = append(variants, models.Variant{Size: sizes[i], Stock: rand.Intn(4)})
	}

	var subcategoryID int64
	if len(category.Subcategories) > 0 {
		subcategoryID = category.Subcategories[rand.Intn(len(category.Subcategories))].ID
	}

	status := models.StatusAvailable
	var soldAt *time.Time
	switch rand.Intn(10) {
	case 0:
		status = models.StatusReserved
	case 1:
		status = models.StatusSold
		now := time.Now()
		soldAt = &now
	}

	return &models.Product{
		Name:           name,
		Price:          price,
		SalePrice:      salePrice,
		Photos:         []string{"https://picsum.photos/seed/" + slug.Make(name) + "/600/800"},
		CategoryID:     category.ID,
		SubcategoryID:  subcategoryID,
		Variants:       variants,
		Location:       locations[rand.Intn(len(locations))],
		Status:         status,
		Featured:       rand.Intn(8) == 0,
		WhatsAppClicks: rand.Intn(40),
		CreatedAt:      time.Now().Add(-time.Duration(rand.Intn(24*30)) * time.Hour),
		SoldAt:         soldAt,
	}
}
