package calc

import (
	"github.com/paoluke/tienda/app/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EffectivePrice is what the shopper pays: the sale price when one is set.
func EffectivePrice(p models.Product) decimal.Decimal {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// DiscountPercent returns round((list - sale) / list * 100). The bool is
// false when there is no sale price or the list price is not positive.
func DiscountPercent(listPrice decimal.Decimal, salePrice *decimal.Decimal) (int, bool) {
	if salePrice == nil || !listPrice.IsPositive() {
		return 0, false
	}
	pct := listPrice.Sub(*salePrice).Div(listPrice).Mul(hundred).Round(0)
	return int(pct.IntPart()), true
}

func CalculateDiscount(baseTotal, discountPercent decimal.Decimal) decimal.Decimal {
	return baseTotal.Mul(discountPercent).Div(hundred)
}
