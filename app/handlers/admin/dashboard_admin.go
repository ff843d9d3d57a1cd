package admin

import (
	"log"
	"net/http"

	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
)

// refreshProducts reloads the cached product list. On failure the previous
// snapshot stays in place.
func (h *AdminHandler) refreshProducts(r *http.Request, q services.ProductQuery) (services.ProductListing, error) {
	listing, all, err := h.catalog.AdminListing(r.Context(), q)
	if err != nil {
		q.Scope = services.ScopeAdmin
		q.Sort = services.SortRecent
		return services.FilterProducts(h.products.Snapshot(), q), err
	}
	h.products.Reset(all)
	return listing, nil
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := &AdminPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Panel"
	data.Breadcrumbs = breadcrumb.Trail()

	if _, err := h.refreshProducts(r, services.ProductQuery{}); err != nil {
		log.Printf("Dashboard: Failed to load products: %v", err)
		data.Message = "No pudimos actualizar el inventario. Se muestran los últimos datos cargados."
		data.MessageStatus = "error"
	}
	data.Stats = services.Stats(h.products.Snapshot())

	_ = h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
