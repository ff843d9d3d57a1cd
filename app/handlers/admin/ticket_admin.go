package admin

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
	"github.com/shopspring/decimal"
)

func (h *AdminHandler) renderTicket(w http.ResponseWriter, r *http.Request, composer *services.TicketComposer, failure string) {
	data := &AdminTicketPageData{
		Ticket:   composer.Ticket(),
		Total:    composer.Total(),
		CanPrint: composer.CanPrint(),
		Carriers: models.Carriers,
	}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Ticket de venta"
	data.Breadcrumbs = breadcrumb.Trail(breadcrumb.Breadcrumb{Name: "Ticket", URL: "/admin/ticket"})

	sold, err := h.catalog.SoldLookup(r.Context())
	if err != nil {
		log.Printf("renderTicket: Failed to load sold products: %v", err)
		failure = "No pudimos cargar los productos vendidos."
	}
	data.Sold = sold

	if failure != "" {
		data.Message = failure
		data.MessageStatus = "error"
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/ticket", data)
}

func (h *AdminHandler) TicketPage(w http.ResponseWriter, r *http.Request) {
	h.renderTicket(w, r, services.NewTicketComposer(), "")
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}

// parseTicket rebuilds the ticket from the form; each line posts its
// fields as parallel linea_* values.
func parseTicket(r *http.Request) models.Ticket {
	ticket := models.Ticket{
		Customer: r.PostFormValue("cliente"),
		Phone:    r.PostFormValue("fono"),
		Address:  r.PostFormValue("direccion"),
		Carrier:  r.PostFormValue("envio"),
	}

	form := r.PostForm
	for i, raw := range form["linea_id"] {
		id, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || id <= 0 {
			continue
		}
		line := models.TicketLineItem{
			ID:       id,
			Name:     strings.TrimSpace(valueAt(form["linea_nombre"], i)),
			Sku:      strings.TrimSpace(valueAt(form["linea_sku"], i)),
			Size:     strings.TrimSpace(valueAt(form["linea_talla"], i)),
			Quantity: 1,
		}
		if price, err := decimal.NewFromString(strings.TrimSpace(valueAt(form["linea_precio"], i))); err == nil {
			line.Price = price
		}
		if qty, err := strconv.Atoi(strings.TrimSpace(valueAt(form["linea_cantidad"], i))); err == nil {
			line.Quantity = qty
		}
		if productID := helpers.ParseID(valueAt(form["linea_producto"], i)); productID > 0 {
			line.ProductID = &productID
		}
		ticket.Lines = append(ticket.Lines, line)
	}

	return ticket
}

// TicketPost applies one form action (add, remove:<id>, select:<id>,
// update, print) to the posted ticket.
func (h *AdminHandler) TicketPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("TicketPost: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/ticket", "error", "No pudimos leer el formulario.")
		return
	}

	ticket := parseTicket(r)
	composer := services.ComposerFromTicket(ticket)
	composer.SetCustomer(ticket.Customer, ticket.Phone, ticket.Address)

	action, target, _ := strings.Cut(r.PostFormValue("accion"), ":")
	lineID, _ := strconv.Atoi(target)

	switch action {
	case "add":
		composer.AddLine()
	case "remove":
		composer.RemoveLine(lineID)
	case "select":
		productID := helpers.ParseID(r.PostFormValue(fmt.Sprintf("vendido_%d", lineID)))
		if productID == 0 {
			h.renderTicket(w, r, composer, "Elige un producto vendido para esa línea.")
			return
		}
		product, err := h.catalog.AdminProduct(r.Context(), productID)
		if err != nil {
			log.Printf("TicketPost: Failed to load product %d: %v", productID, err)
			h.renderTicket(w, r, composer, "No pudimos cargar el producto elegido.")
			return
		}
		composer.SelectSoldProduct(lineID, *product)
	case "print":
		h.printTicket(w, r, composer)
		return
	}

	h.renderTicket(w, r, composer, "")
}

func (h *AdminHandler) printTicket(w http.ResponseWriter, r *http.Request, composer *services.TicketComposer) {
	if err := composer.Validate(); err != nil {
		h.renderTicket(w, r, composer, models.UserMessage(err, "No se puede imprimir el ticket."))
		return
	}

	var store *models.StoreConfig
	if cfg, err := h.config.Current(r.Context()); err == nil {
		store = &cfg
	} else {
		log.Printf("printTicket: WARN store config unavailable, printing defaults: %v", err)
	}

	doc := composer.Render(store, time.Now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `inline; filename="ticket.txt"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("printTicket: Failed to write ticket: %v", err)
	}
}
