package helpers

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/paoluke/tienda/app/models/other"
	"github.com/paoluke/tienda/app/utils/breadcrumb"
)

// GetBaseData fills the fields every page shares: the flash message carried
// in ?status=&message=, the CSRF token and the current path.
func GetBaseData(r *http.Request, base *other.BasePageData) {
	query := r.URL.Query()

	base.Query = query
	base.Message = query.Get("message")
	base.MessageStatus = query.Get("status")
	base.CSRFToken = csrf.Token(r)
	base.CurrentPath = r.URL.Path
	base.IsAdminPage = strings.HasPrefix(r.URL.Path, "/admin")

	if base.Breadcrumbs == nil {
		base.Breadcrumbs = []breadcrumb.Breadcrumb{}
	}
}
