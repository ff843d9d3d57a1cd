package routes

import (
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/handlers"
	"github.com/paoluke/tienda/app/handlers/admin"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/realtime"
	"github.com/paoluke/tienda/app/repositories"
	"github.com/paoluke/tienda/app/services"
	"github.com/paoluke/tienda/app/storage"
	"github.com/paoluke/tienda/app/utils/renderer"
	"github.com/paoluke/tienda/app/utils/sessions"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csrfField = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	products := repositories.NewInMemoryProductRepository(models.Product{
		ID: 1, Name: "Vestido floral", Price: decimal.NewFromInt(10000), CategoryID: 1,
		Variants: []models.Variant{{Size: "M", Stock: 1}}, Status: models.StatusAvailable, CreatedAt: time.Now(),
	})
	categories := repositories.NewInMemoryCategoryRepository(models.Category{ID: 1, Name: "Mujer", Active: true})
	configRepo := repositories.NewInMemoryConfigRepository(&models.StoreConfig{ID: 1, StoreName: "PaoLUKE", WhatsApp: "56912345678"})

	validate := validator.New()
	configSvc := services.NewConfigService(configRepo, realtime.NewMemoryFeed(), validate)
	catalog := services.NewCatalogService(products, categories)
	inventory := services.NewInventoryService(products, categories, storage.NewMemoryStorage(), validate)
	render := renderer.New(renderer.Options{})

	key := []byte("0123456789abcdef0123456789abcdef")
	store := sessions.NewCookieSessionStore(false, key)

	return NewRouter(Options{
		Store:    handlers.NewStoreHandler(render, catalog, inventory, services.NewContactService(configSvc), configSvc),
		Admin:    admin.NewAdminHandler(render, validate, store, categories, catalog, inventory, configSvc, ""),
		Sessions: store,
		CSRFKey:  key,
	})
}

func TestRouterStorefront(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method   string
		target   string
		wantCode int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/categorias", http.StatusOK},
		{http.MethodGet, "/categoria/1", http.StatusOK},
		{http.MethodGet, "/ofertas", http.StatusOK},
		{http.MethodGet, "/producto/1", http.StatusOK},
		{http.MethodGet, "/producto/abc", http.StatusNotFound},
		{http.MethodGet, "/no-existe", http.StatusNotFound},
		{http.MethodGet, "/healthz", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouterAdminRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{"/admin", "/admin/productos", "/admin/config", "/admin/ticket", "/admin/producto/1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/admin/login"), target)
	}
}

func TestRouterAdminLoginCSRF(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	match := csrfField.FindStringSubmatch(rec.Body.String())
	require.Len(t, match, 2, "login form carries a csrf token")

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		for _, c := range rec.Result().Cookies() {
			req.AddCookie(c)
		}
		out := httptest.NewRecorder()
		router.ServeHTTP(out, req)
		return out
	}

	assert.Equal(t, http.StatusForbidden, post(url.Values{"password": {"x"}}).Code)

	withToken := post(url.Values{"password": {"x"}, "csrf_token": {html.UnescapeString(match[1])}})
	assert.Equal(t, http.StatusSeeOther, withToken.Code)
	assert.Contains(t, withToken.Header().Get("Location"), "/admin/login?status=error")
}
