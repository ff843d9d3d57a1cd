package routes

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/paoluke/tienda/app/configs"
	"github.com/paoluke/tienda/app/handlers"
	"github.com/paoluke/tienda/app/handlers/admin"
	"github.com/paoluke/tienda/app/middlewares"
	"github.com/paoluke/tienda/app/utils/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	Store    *handlers.StoreHandler
	Admin    *admin.AdminHandler
	Sessions sessions.SessionStore
	// CSRFKey must be 32 bytes.
	CSRFKey []byte
	Secure  bool
	// UploadDir is served under /uploads/ when photos live on local disk.
	UploadDir string
}

func NewRouter(opts Options) http.Handler {
	router := mux.NewRouter()
	router.Use(middlewares.RecoverMiddleware, middlewares.LoggingMiddleware)

	store := opts.Store
	router.HandleFunc("/", store.Home).Methods("GET")
	router.HandleFunc("/categorias", store.Categories).Methods("GET")
	router.HandleFunc("/categoria/{id:[0-9]+}", store.Category).Methods("GET")
	router.HandleFunc("/ofertas", store.Offers).Methods("GET")
	router.HandleFunc("/producto/{id:[0-9]+}", store.Product).Methods("GET")
	router.HandleFunc("/producto/{id:[0-9]+}/whatsapp", store.ContactPost).Methods("POST")
	router.HandleFunc("/config/stream", store.ConfigStream).Methods("GET")
	router.HandleFunc("/healthz", store.Healthz).Methods("GET")

	if opts.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))),
		).Methods("GET")
	}

	router.NotFoundHandler = http.HandlerFunc(store.NotFound)

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(csrf.Protect(
		opts.CSRFKey,
		csrf.Secure(opts.Secure),
		csrf.Path("/admin"),
		csrf.FieldName("csrf_token"),
	))

	h := opts.Admin
	adminRouter.HandleFunc("/login", h.LoginPage).Methods("GET")
	adminRouter.HandleFunc("/login", h.LoginPost).Methods("POST")

	protected := adminRouter.NewRoute().Subrouter()
	protected.Use(middlewares.AdminAuthMiddleware(opts.Sessions))

	protected.HandleFunc("", h.Dashboard).Methods("GET")
	protected.HandleFunc("/", h.Dashboard).Methods("GET")
	protected.HandleFunc("/logout", h.LogoutPost).Methods("POST")

	protected.HandleFunc("/productos", h.ProductsPage).Methods("GET")
	protected.HandleFunc("/producto/nuevo", h.NewProductPage).Methods("GET")
	protected.HandleFunc("/producto/nuevo", h.NewProductPost).Methods("POST")
	protected.HandleFunc("/producto/{id:[0-9]+}", h.EditProductPage).Methods("GET")
	protected.HandleFunc("/producto/{id:[0-9]+}", h.EditProductPost).Methods("POST")
	protected.HandleFunc("/producto/{id:[0-9]+}/estado", h.ChangeStatusPost).Methods("POST")
	protected.HandleFunc("/producto/{id:[0-9]+}/eliminar", h.DeleteProductPost).Methods("POST")

	protected.HandleFunc("/config", h.ConfigPage).Methods("GET")
	protected.HandleFunc("/config", h.ConfigPost).Methods("POST")

	protected.HandleFunc("/ticket", h.TicketPage).Methods("GET")
	protected.HandleFunc("/ticket", h.TicketPost).Methods("POST")

	return otelhttp.NewHandler(router, configs.ServiceName)
}
