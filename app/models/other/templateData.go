package other

import (
	"net/url"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
)

type BasePageData struct {
	Title         string
	IsLoggedIn    bool
	CSRFToken     string
	Message       string
	MessageStatus string
	Query         url.Values
	Breadcrumbs   []breadcrumb.Breadcrumb
	IsAdminPage   bool
	CurrentPath   string
	Store         models.StoreConfig
	Categories    []models.Category
}
