package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/paoluke/tienda/app/helpers"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
)

func (h *AdminHandler) renderConfig(w http.ResponseWriter, r *http.Request, cfg models.StoreConfig, errs map[string]string, failure string) {
	data := &AdminConfigPageData{Config: cfg, Errors: errs}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	if failure != "" {
		data.Message = failure
		data.MessageStatus = "error"
	}
	data.Title = "Configuración"
	data.Breadcrumbs = breadcrumb.Trail(breadcrumb.Breadcrumb{Name: "Configuración", URL: "/admin/config"})

	_ = h.render.HTML(w, http.StatusOK, "admin/config", data)
}

func (h *AdminHandler) ConfigPage(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.config.Current(r.Context())
	if err != nil {
		if models.IsNotFound(err) {
			h.renderConfig(w, r, models.StoreConfig{
				StoreName:       "PaoLUKE",
				MessageTemplate: services.DefaultMessageTemplate,
			}, map[string]string{}, "")
			return
		}
		log.Printf("ConfigPage: Failed to load store config: %v", err)
		h.renderConfig(w, r, models.StoreConfig{}, map[string]string{}, "No pudimos cargar la configuración.")
		return
	}

	h.renderConfig(w, r, cfg, map[string]string{}, "")
}

func parseConfigForm(r *http.Request) (models.StoreConfig, map[string]string) {
	errs := map[string]string{}

	cfg := models.StoreConfig{
		StoreName:       r.PostFormValue("nombre_tienda"),
		Description:     strings.TrimSpace(r.PostFormValue("descripcion")),
		Address:         strings.TrimSpace(r.PostFormValue("direccion")),
		Hours:           strings.TrimSpace(r.PostFormValue("horario")),
		WhatsApp:        r.PostFormValue("whatsapp"),
		Email:           r.PostFormValue("email"),
		Instagram:       r.PostFormValue("instagram"),
		Facebook:        strings.TrimSpace(r.PostFormValue("facebook")),
		BannerActive:    r.PostFormValue("banner_activo") == "on",
		BannerText:      strings.TrimSpace(r.PostFormValue("banner_texto")),
		BannerSubtext:   strings.TrimSpace(r.PostFormValue("banner_subtexto")),
		BannerEmoji:     strings.TrimSpace(r.PostFormValue("banner_emoji")),
		MessageTemplate: r.PostFormValue("mensaje_whatsapp_template"),
		LogoSVG:         strings.TrimSpace(r.PostFormValue("logo_svg")),
	}

	if days := strings.TrimSpace(r.PostFormValue("dias_ocultar_vendidos")); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			errs["hidesoldafterdays"] = "Los días deben ser un número entero."
		} else {
			cfg.HideSoldAfterDays = n
		}
	}

	return cfg, errs
}

func (h *AdminHandler) ConfigPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("ConfigPost: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/config", "error", "No pudimos leer el formulario.")
		return
	}

	cfg, errs := parseConfigForm(r)
	if current, err := h.config.Current(r.Context()); err == nil {
		cfg.ID = current.ID
	}

	if len(errs) > 0 {
		h.renderConfig(w, r, cfg, errs, "")
		return
	}

	if _, err := h.config.Save(r.Context(), cfg); err != nil {
		var fieldErrs services.FieldErrors
		if errors.As(err, &fieldErrs) {
			h.renderConfig(w, r, cfg, fieldErrs, "")
			return
		}
		log.Printf("ConfigPost: Failed to save store config: %v", err)
		h.renderConfig(w, r, cfg, map[string]string{}, "No pudimos guardar la configuración. Intenta nuevamente.")
		return
	}

	helpers.RedirectWithMessage(w, r, "/admin/config", "success", "Configuración guardada.")
}
