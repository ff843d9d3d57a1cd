package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/models/other"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/unrolled/render"
)

type StoreHandler struct {
	render    *render.Render
	catalog   *services.CatalogService
	inventory *services.InventoryService
	contact   *services.ContactService
	config    *services.ConfigService
}

func NewStoreHandler(
	render *render.Render,
	catalog *services.CatalogService,
	inventory *services.InventoryService,
	contact *services.ContactService,
	config *services.ConfigService,
) *StoreHandler {
	return &StoreHandler{
		render:    render,
		catalog:   catalog,
		inventory: inventory,
		contact:   contact,
		config:    config,
	}
}

type HomePageData struct {
	other.BasePageData
	Feed *services.HomeFeed
}

type CategoriesPageData struct {
	other.BasePageData
}

type CategoryPageData struct {
	other.BasePageData
	Page *services.CategoryPage
}

type OffersPageData struct {
	other.BasePageData
	Listing services.ProductListing
}

type ProductPageData struct {
	other.BasePageData
	Product models.Product
	SoldOut bool
}

type ErrorPageData struct {
	other.BasePageData
	Code    int
	Heading string
	Detail  string
}

// populateBaseData adds the live store config and the category menu to the
// shared page fields. Both are best effort.
func (h *StoreHandler) populateBaseData(r *http.Request, base *other.BasePageData) {
	helpers.GetBaseData(r, base)

	cfg, err := h.config.Current(r.Context())
	if err != nil {
		log.Printf("populateBaseData: WARN store config unavailable: %v", err)
	} else {
		base.Store = cfg
	}

	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		log.Printf("populateBaseData: WARN categories unavailable: %v", err)
	} else {
		base.Categories = categories
	}
}

func (h *StoreHandler) renderError(w http.ResponseWriter, r *http.Request, code int, heading, detail string) {
	data := &ErrorPageData{Code: code, Heading: heading, Detail: detail}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = heading
	_ = h.render.HTML(w, code, "error", data)
}

func (h *StoreHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "Página no encontrada", "Lo que buscas ya no está disponible.")
}

func (h *StoreHandler) Home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.catalog.Home(r.Context())
	if err != nil {
		log.Printf("Home: Failed to load home feed: %v", err)
		h.renderError(w, r, http.StatusInternalServerError, "No pudimos cargar la tienda", "Intenta nuevamente en unos minutos.")
		return
	}

	data := &HomePageData{Feed: feed}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = "Inicio"

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

func (h *StoreHandler) Categories(w http.ResponseWriter, r *http.Request) {
	data := &CategoriesPageData{}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = "Categorías"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
	}

	_ = h.render.HTML(w, http.StatusOK, "categorias", data)
}

func (h *StoreHandler) Category(w http.ResponseWriter, r *http.Request) {
	categoryID := helpers.ParseID(mux.Vars(r)["id"])
	query := r.URL.Query()
	sortKey := services.ParseSort(query.Get("orden"))

	page, err := h.catalog.CategoryPage(r.Context(), categoryID, helpers.ParseID(query.Get("sub")), sortKey)
	if err != nil {
		if models.IsNotFound(err) {
			h.NotFound(w, r)
			return
		}
		log.Printf("Category: Failed to load category %d: %v", categoryID, err)
		h.renderError(w, r, http.StatusInternalServerError, "No pudimos cargar la categoría", "Intenta nuevamente en unos minutos.")
		return
	}

	data := &CategoryPageData{Page: page}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = page.Category.Name
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Categorías", URL: "/categorias"},
		{Name: page.Category.Name, URL: r.URL.Path},
	}

	_ = h.render.HTML(w, http.StatusOK, "categoria", data)
}

func (h *StoreHandler) Offers(w http.ResponseWriter, r *http.Request) {
	listing, err := h.catalog.Offers(r.Context())
	if err != nil {
		log.Printf("Offers: Failed to load offers: %v", err)
		h.renderError(w, r, http.StatusInternalServerError, "No pudimos cargar las ofertas", "Intenta nuevamente en unos minutos.")
		return
	}

	data := &OffersPageData{Listing: listing}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = "Ofertas"
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: "Ofertas", URL: "/ofertas"},
	}

	_ = h.render.HTML(w, http.StatusOK, "ofertas", data)
}

func (h *StoreHandler) loadProduct(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id := helpers.ParseID(mux.Vars(r)["id"])

	product, err := h.catalog.ProductDetail(r.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			h.NotFound(w, r)
			return nil, false
		}
		log.Printf("loadProduct: Failed to load product %d: %v", id, err)
		h.renderError(w, r, http.StatusInternalServerError, "No pudimos cargar el producto", "Intenta nuevamente en unos minutos.")
		return nil, false
	}
	return product, true
}

func (h *StoreHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	data := &ProductPageData{Product: *product}
	h.populateBaseData(r, &data.BasePageData)
	data.Title = product.Name
	data.SoldOut = calc.IsSoldOut(*product)
	data.Breadcrumbs = []breadcrumb.Breadcrumb{
		{Name: "Inicio", URL: "/"},
		{Name: product.Name, URL: r.URL.Path},
	}

	_ = h.render.HTML(w, http.StatusOK, "producto", data)
}

// ContactPost sends the shopper to WhatsApp and counts the click after the
// redirect is written.
func (h *StoreHandler) ContactPost(w http.ResponseWriter, r *http.Request) {
	product, ok := h.loadProduct(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Printf("ContactPost: Error parsing form: %v", err)
	}

	link, err := h.contact.Compose(r.Context(), *product, r.PostFormValue("talla"))
	if err != nil {
		back := "/producto/" + mux.Vars(r)["id"]
		if errors.Is(err, models.ErrSoldOut) {
			helpers.RedirectWithMessage(w, r, back, "error", "Este producto está agotado.")
			return
		}
		if models.IsValidation(err) {
			helpers.RedirectWithMessage(w, r, back, "error", models.UserMessage(err, ""))
			return
		}
		log.Printf("ContactPost: Failed to compose message for product %d: %v", product.ID, err)
		helpers.RedirectWithMessage(w, r, back, "error", "No pudimos preparar el mensaje.")
		return
	}

	http.Redirect(w, r, link.URL, http.StatusSeeOther)

	go h.inventory.RecordClick(context.WithoutCancel(r.Context()), product.ID)
}
