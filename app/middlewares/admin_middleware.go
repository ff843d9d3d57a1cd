package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/paoluke/tienda/app/utils/sessions"
)

func AdminAuthMiddleware(store sessions.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.IsAdmin(r) {
				log.Printf("AdminAuthMiddleware: no admin session for %s %s. Redirecting to login.", r.Method, r.URL.Path)
				http.Redirect(w, r, "/admin/login?status=error&message="+url.QueryEscape("Debes iniciar sesión para entrar al panel."), http.StatusFound)
				return
			}

			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
