package admin

import (
	"log"
	"net/http"

	"github.com/paoluke/tienda/app/helpers"
)

func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.sessions.IsAdmin(r) {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := &AdminPageData{}
	h.populateBaseDataForAdmin(r, &data.BasePageData)
	data.Title = "Ingresar"

	_ = h.render.HTML(w, http.StatusOK, "admin/login", data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		log.Printf("LoginPost: Error parsing form: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/login", "error", "No pudimos leer el formulario.")
		return
	}

	if h.passwordHash == "" {
		log.Printf("LoginPost: ADMIN_PASSWORD_HASH is not set, refusing login")
		helpers.RedirectWithMessage(w, r, "/admin/login", "error", "El acceso de administración no está configurado.")
		return
	}

	if !helpers.PasswordCompare(h.passwordHash, []byte(r.PostFormValue("password"))) {
		helpers.RedirectWithMessage(w, r, "/admin/login", "error", "Contraseña incorrecta.")
		return
	}

	if err := h.sessions.SetAdmin(w, r); err != nil {
		log.Printf("LoginPost: Error setting admin session: %v", err)
		helpers.RedirectWithMessage(w, r, "/admin/login", "error", "No pudimos iniciar la sesión.")
		return
	}

	log.Printf("LoginPost: admin session started from %s", r.RemoteAddr)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) LogoutPost(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.ClearSession(w, r); err != nil {
		log.Printf("LogoutPost: Error clearing session: %v", err)
	}
	helpers.RedirectWithMessage(w, r, "/admin/login", "success", "Sesión cerrada.")
}
