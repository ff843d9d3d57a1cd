package format

import (
	"fmt"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var peso = accounting.Accounting{Symbol: "$", Precision: 0, Thousand: ".", Decimal: ","}

// FormatPrice renders a peso amount as "$12.990". Zero, negative and
// unparseable amounts render as "$0".
func FormatPrice(amount interface{}) string {
	var decAmount decimal.Decimal
	switch v := amount.(type) {
	case decimal.Decimal:
		decAmount = v
	case *decimal.Decimal:
		if v == nil {
			return "$0"
		}
		decAmount = *v
	case float64:
		decAmount = decimal.NewFromFloat(v)
	case int:
		decAmount = decimal.NewFromInt(int64(v))
	case int64:
		decAmount = decimal.NewFromInt(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return "$0"
		}
		decAmount = parsed
	default:
		return "$0"
	}

	if !decAmount.IsPositive() {
		return "$0"
	}
	return peso.FormatMoneyInt(int(decAmount.Round(0).IntPart()))
}

// FormatSku renders a product id as its visible SKU, "#00042".
func FormatSku(id int64) string {
	return fmt.Sprintf("#%05d", id)
}
