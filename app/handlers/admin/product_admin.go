package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
	"github.com/paoluke/tienda/app/utils/format"
)

const (
	maxUploadMemory = 32 << 20
	blankVariantRow = 3
)

func (h *AdminHandler) ProductsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	data := &AdminProductsPageData{
		Search:   query.Get("q"),
		Status:   query.Get("estado"),
		Statuses: models.ProductStatuses,
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Productos"
	data.Breadcrumbs = breadcrumb.Trail(breadcrumb.Breadcrumb{Name: "Productos", URL: "/admin/productos"})

	listing, err := h.refreshProducts(r, services.ProductQuery{
		Search: data.Search,
		Status: models.ProductStatus(data.Status),
	})
	if err != nil {
		log.Printf("ProductsPage: Failed to load products: %v", err)
		data.Message = "No pudimos actualizar el inventario. Se muestran los últimos datos cargados."
		data.MessageStatus = "error"
	}
	data.Listing = listing
	data.Total = h.products.Len()

	_ = h.render.HTML(w, http.StatusOK, "admin/productos", data)
}

// renderProductForm shows the form again with the submitted values. A
// non-empty failure is shown as an error flash.
func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, form services.ProductForm, errs map[string]string, failure string) {
	data := &AdminProductFormPageData{
		Form:   form,
		Errors: errs,
		IsEdit: form.ID != 0,
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	if failure != "" {
		data.Message = failure
		data.MessageStatus = "error"
	}

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("renderProductForm: Failed to load categories: %v", err)
		data.Message = "No pudimos cargar las categorías."
		data.MessageStatus = "error"
	}
	data.Categories = categories

	data.VariantRows = append([]models.Variant(nil), form.Variants...)
	for i := 0; i < blankVariantRow; i++ {
		data.VariantRows = append(data.VariantRows, models.Variant{})
	}

	if data.IsEdit {
		data.FormAction = fmt.Sprintf("/admin/producto/%d", form.ID)
		data.Title = "Editar " + format.FormatSku(form.ID)
		if p, ok := h.products.Get(form.ID); ok {
			data.Status = p.Status
		}
	} else {
		data.FormAction = "/admin/producto/nuevo"
		data.Title = "Nuevo producto"
	}
	data.Breadcrumbs = breadcrumb.Trail(
		breadcrumb.Breadcrumb{Name: "Productos", URL: "/admin/productos"},
		breadcrumb.Breadcrumb{Name: data.Title, URL: data.FormAction},
	)

	_ = h.render.HTML(w, http.StatusOK, "admin/producto_form", data)
}

func (h *AdminHandler) NewProductPage(w http.ResponseWriter, r *http.Request) {
	h.renderProductForm(w, r, services.ProductForm{}, map[string]string{}, "")
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id := helpers.ParseID(mux.Vars(r)["id"])

	product, err := h.catalog.AdminProduct(r.Context(), id)
	if err != nil {
		if models.IsNotFound(err) {
			helpers.RedirectWithMessage(w, r, "/admin/productos", "error", "El producto ya no existe.")
			return
		}
		log.Printf("EditProductPage: Failed to load product %d: %v", id, err)
		helpers.RedirectWithMessage(w, r, "/admin/productos", "error", "No pudimos cargar el producto.")
		return
	}

	h.renderProductForm(w, r, services.FormFromProduct(*product), map[string]string{}, "")
}

func (h *AdminHandler) NewProductPost(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, 0)
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, helpers.ParseID(mux.Vars(r)["id"]))
}

// parseProductForm reads the admin product form. Sizes and stocks arrive as
// parallel talla/stock fields.
func parseProductForm(r *http.Request) (services.ProductForm, map[string]string) {
	errs := map[string]string{}

	form := services.ProductForm{
		Name:          r.PostFormValue("nombre"),
		Price:         strings.TrimSpace(r.PostFormValue("precio")),
		SalePrice:     strings.TrimSpace(r.PostFormValue("precio_oferta")),
		CategoryID:    helpers.ParseID(r.PostFormValue("categoria_id")),
		SubcategoryID: helpers.ParseID(r.PostFormValue("subcategoria_id")),
		Location:      r.PostFormValue("ubicacion"),
		Featured:      r.PostFormValue("destacado") == "on",
	}

	for _, ref := range r.PostForm["fotos"] {
		if ref = strings.TrimSpace(ref); ref != "" {
			form.Photos = append(form.Photos, ref)
		}
	}

	sizes := r.PostForm["talla"]
	stocks := r.PostForm["stock"]
	for i, size := range sizes {
		if strings.TrimSpace(size) == "" {
			continue
		}
		stock := 0
		if i < len(stocks) && strings.TrimSpace(stocks[i]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(stocks[i]))
			if err != nil {
				errs["variants"] = fmt.Sprintf("El stock de la talla %s debe ser un número.", size)
				continue
			}
			stock = n
		}
		form.Variants = append(form.Variants, models.Variant{Size: size, Stock: stock})
	}

	return form, errs
}

func (h *AdminHandler) uploadPhotos(r *http.Request, productName string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var keys []string
	for _, fh := range r.MultipartForm.File["fotos_nuevas"] {
		file, err := fh.Open()
		if err != nil {
			return keys, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
		}
		key, err := h.inventory.UploadPhoto(r.Context(), productName, fh.Filename, fh.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Printf("saveProduct: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/productos", "error", "No pudimos leer el formulario.")
		return
	}

	form, errs := parseProductForm(r)
	form.ID = id

	keys, err := h.uploadPhotos(r, form.Name)
	form.Photos = append(form.Photos, keys...)
	if err != nil {
		if models.IsValidation(err) {
			errs["fotos"] = models.UserMessage(err, "")
		} else {
			log.Printf("saveProduct: Failed to upload photos: %v", err)
			errs["fotos"] = "No pudimos subir las fotos."
		}
	}

	if len(errs) > 0 {
		h.renderProductForm(w, r, form, errs, "")
		return
	}

	saved, err := h.inventory.SaveProduct(r.Context(), h.products, form)
	if err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			h.renderProductForm(w, r, form, fieldErrs, "")
			return
		}
		if models.IsNotFound(err) {
			helpers.RedirectWithMessage(w, r, "/admin/productos", "error", "El producto ya no existe.")
			return
		}
		log.Printf("saveProduct: Failed to save product %d: %v", id, err)
		h.renderProductForm(w, r, form, map[string]string{}, "No pudimos guardar el producto. Intenta nuevamente.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/productos", "success", fmt.Sprintf("Producto %s guardado.", format.FormatSku(saved.ID)))
}

// backTo keeps the listing filters after an action. Only admin paths are
// accepted.
func backTo(r *http.Request) string {
	if back := r.PostFormValue("volver"); strings.HasPrefix(back, "/admin/") && !strings.HasPrefix(back, "//") {
		return back
	}
	return "/admin/productos"
}

func (h *AdminHandler) ChangeStatusPost(w http.ResponseWriter, r *http.Request) {
	id := helpers.ParseID(mux.Vars(r)["id"])
	if err := r.ParseForm(); err != nil {
		log.Printf("ChangeStatusPost: Error parsing form: %v", err)
	}
	back := backTo(r)
	status := models.ProductStatus(r.PostFormValue("estado"))

	if err := h.inventory.ChangeStatus(r.Context(), h.products, id, status); err != nil {
		switch {
		case models.IsValidation(err):
			helpers.RedirectWithMessage(w, r, back, "error", models.UserMessage(err, ""))
		case models.IsNotFound(err):
			helpers.RedirectWithMessage(w, r, back, "error", "El producto ya no existe.")
		default:
			log.Printf("ChangeStatusPost: Failed to change status of product %d: %v", id, err)
			helpers.RedirectWithMessage(w, r, back, "error", "No pudimos cambiar el estado. Intenta nuevamente.")
		}
		return
	}

	helpers.RedirectWithMessage(w, r, back, "success",
		fmt.Sprintf("%s ahora está %s.", format.FormatSku(id), strings.ToLower(format.StatusPresentation(status).Label)))
}

func (h *AdminHandler) DeleteProductPost(w http.ResponseWriter, r *http.Request) {
	id := helpers.ParseID(mux.Vars(r)["id"])
	if err := r.ParseForm(); err != nil {
		log.Printf("DeleteProductPost: Error parsing form: %v", err)
	}
	back := backTo(r)
	confirmed := r.PostFormValue("confirm") == "yes"

	if err := h.inventory.DeleteProduct(r.Context(), h.products, id, confirmed); err != nil {
		switch {
		case errors.Is(err, models.ErrConfirmationRequired):
			helpers.RedirectWithMessage(w, r, back, "error", "Marca la casilla de confirmación para eliminar.")
		case models.IsNotFound(err):
			helpers.RedirectWithMessage(w, r, back, "error", "El producto ya no existe.")
		default:
			log.Printf("DeleteProductPost: Failed to delete product %d: %v", id, err)
			helpers.RedirectWithMessage(w, r, back, "error", "No pudimos eliminar el producto. Intenta nuevamente.")
		}
		return
	}

	helpers.RedirectWithMessage(w, r, back, "success", fmt.Sprintf("Producto %s eliminado.", format.FormatSku(id)))
}
