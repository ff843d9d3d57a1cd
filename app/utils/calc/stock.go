package calc

import "github.com/paoluke/tienda/app/models"

func TotalStock(variants []models.Variant) int {
	total := 0
	for _, v := range variants {
		total += v.Stock
	}
	return total
}

// IsSoldOut reports whether the product has no units left in any size.
func IsSoldOut(p models.Product) bool {
	return TotalStock(p.Variants) == 0
}
