package renderer

import (
	"html/template"
	"strings"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/paoluke/tienda/app/utils/format"
	"github.com/paoluke/tienda/web"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

// Options tunes the renderer per environment. PhotoURL resolves a stored
// photo reference into something an <img> can load.
type Options struct {
	Development bool
	PhotoURL    func(ref string) string
}

func New(opts Options) *render.Render {
	photoURL := opts.PhotoURL
	if photoURL == nil {
		photoURL = func(ref string) string { return ref }
	}

	return render.New(render.Options{
		Directory:     "templates",
		FileSystem:    &render.EmbedFileSystem{FS: web.Templates},
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: opts.Development,
		Funcs: []template.FuncMap{
			{
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"formatPrice": func(v interface{}) string {
					return format.FormatPrice(v)
				},
				"formatSku": format.FormatSku,
				"status":    format.StatusPresentation,
				"effectivePrice": func(p models.Product) decimal.Decimal {
					return calc.EffectivePrice(p)
				},
				"discount": func(p models.Product) int {
					pct, _ := calc.DiscountPercent(p.Price, p.SalePrice)
					return pct
				},
				"totalStock": func(p models.Product) int {
					return calc.TotalStock(p.Variants)
				},
				"firstPhoto": func(p models.Product) string {
					if len(p.Photos) == 0 {
						return ""
					}
					return photoURL(p.Photos[0])
				},
				"photoURL": photoURL,
				"safeHTML": func(s string) template.HTML {
					return template.HTML(s)
				},
				"join": strings.Join,
			},
		},
	})
}
