package admin

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/models/other"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/sessions"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	validator    *validator.Validate
	sessions     sessions.SessionStore
	categoryRepo repositories.CategoryRepositoryImpl
	catalog      *services.CatalogService
	inventory    *services.InventoryService
	config       *services.ConfigService
	products     *services.ProductList
	passwordHash string
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	sessions sessions.SessionStore,
	categoryRepo repositories.CategoryRepositoryImpl,
	catalog *services.CatalogService,
	inventory *services.InventoryService,
	config *services.ConfigService,
	passwordHash string,
) *AdminHandler {
	return &AdminHandler{
		render:       render,
		validator:    validator,
		sessions:     sessions,
		categoryRepo: categoryRepo,
		catalog:      catalog,
		inventory:    inventory,
		config:       config,
		products:     services.NewProductList(nil),
		passwordHash: passwordHash,
	}
}

type AdminPageData struct {
	other.BasePageData
	Stats services.DashboardStats
}

type AdminProductsPageData struct {
	other.BasePageData
	Listing  services.ProductListing
	Search   string
	Status   string
	Statuses []models.ProductStatus
	Total    int
}

type AdminProductFormPageData struct {
	other.BasePageData
	Form        services.ProductForm
	VariantRows []models.Variant
	Errors      map[string]string
	IsEdit      bool
	FormAction  string
	Status      models.ProductStatus
}

type AdminConfigPageData struct {
	other.BasePageData
	Config models.StoreConfig
	Errors map[string]string
}

type AdminTicketPageData struct {
	other.BasePageData
	Ticket   models.Ticket
	Total    decimal.Decimal
	CanPrint bool
	Carriers []string
	Sold     []models.Product
}

func (h *AdminHandler) populateBaseDataForAdmin(r *http.Request, base *other.BasePageData) {
	helpers.GetBaseData(r, base)
	base.IsLoggedIn = h.sessions.IsAdmin(r)
	base.IsAdminPage = true

	if cfg, err := h.config.Current(r.Context()); err == nil {
		base.Store = cfg
	}
}
