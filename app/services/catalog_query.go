package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/paoluke/tienda/app/utils/format"
)

type Scope int

const (
	ScopeStorefront Scope = iota
	ScopeAdmin
)

type SortKey string

const (
	SortPrice   SortKey = "precio"
	SortPopular SortKey = "popular"
	SortRecent  SortKey = "reciente"
)

// ParseSort maps the ?orden= value to a sort key; anything unknown sorts by
// popularity.
func ParseSort(v string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortPrice:
		return SortPrice
	case SortRecent:
		return SortRecent
	default:
		return SortPopular
	}
}

type ProductQuery struct {
	Scope Scope
	// Status narrows the admin listing. Empty or "todos" keeps every status.
	Status        models.ProductStatus
	CategoryID    int64
	SubcategoryID int64
	Search        string
	OffersOnly    bool
	Sort          SortKey
}

type ProductListing struct {
	Products []models.Product
	Count    int
}

func (l ProductListing) Empty() bool { return l.Count == 0 }

// FilterProducts applies status scoping, category, search, offers and sort
// in that order. The input slice is not modified.
func FilterProducts(products []models.Product, q ProductQuery) ProductListing {
	search := normalizeSearch(q.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !keepStatus(p, q) {
			continue
		}
		if q.CategoryID != 0 && p.CategoryID != q.CategoryID {
			continue
		}
		if q.SubcategoryID != 0 && p.SubcategoryID != q.SubcategoryID {
			continue
		}
		if q.Scope == ScopeAdmin && search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.OffersOnly && p.SalePrice == nil {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, q.Sort)

	return ProductListing{Products: out, Count: len(out)}
}

func keepStatus(p models.Product, q ProductQuery) bool {
	if q.Scope == ScopeStorefront {
		return p.Status != models.StatusSold
	}
	if q.Status == "" || q.Status == "todos" {
		return true
	}
	return p.Status == q.Status
}

func normalizeSearch(s string) string {
	s = strings.ReplaceAll(s, "#", "")
	return strings.ToLower(strings.TrimSpace(s))
}

func matchesSearch(p models.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strconv.FormatInt(p.ID, 10), q) {
		return true
	}
	if strings.Contains(strings.TrimPrefix(format.FormatSku(p.ID), "#"), q) {
		return true
	}
	return p.Location != "" && strings.Contains(strings.ToLower(p.Location), q)
}

func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortRecent:
		return
	case SortPrice:
		sort.SliceStable(products, func(i, j int) bool {
			return calc.EffectivePrice(products[i]).LessThan(calc.EffectivePrice(products[j]))
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].WhatsAppClicks > products[j].WhatsAppClicks
		})
	}
}
