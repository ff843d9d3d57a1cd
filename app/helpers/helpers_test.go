package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/paoluke/tienda/app/models/other"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"omitempty,email"`
		Phone string `validate:"number"`
		Days  int    `validate:"min=0"`
	}

	err := validator.New().Struct(form{Email: "nope", Phone: "+56", Days: -1})
	require.Error(t, err)

	msgs := FormatValidationErrors(err.(validator.ValidationErrors))
	assert.Equal(t, "Name es obligatorio.", msgs["name"])
	assert.Equal(t, "Email debe ser un correo válido.", msgs["email"])
	assert.Equal(t, "Phone solo admite dígitos.", msgs["phone"])
	assert.Equal(t, "Days debe ser al menos 0.", msgs["days"])
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secreto")
	require.NoError(t, err)

	assert.True(t, PasswordCompare(hash, []byte("secreto")))
	assert.False(t, PasswordCompare(hash, []byte("otro")))
	assert.False(t, PasswordCompare("", []byte("secreto")))
}

func TestRedirectWithMessage(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/admin/config", nil)

	w := httptest.NewRecorder()
	RedirectWithMessage(w, r, "/admin/productos", "success", "Producto guardado")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/productos?status=success&message=Producto+guardado", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	RedirectWithMessage(w, r, "/admin/productos?estado=vendido", "error", "Falló")
	assert.Equal(t, "/admin/productos?estado=vendido&status=error&message=Fall%C3%B3", w.Header().Get("Location"))
}

func TestParseID(t *testing.T) {
	assert.Equal(t, int64(42), ParseID(" 42 "))
	assert.Equal(t, int64(0), ParseID("-3"))
	assert.Equal(t, int64(0), ParseID("abc"))
	assert.Equal(t, int64(0), ParseID(""))
}

func TestGetBaseData(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin/productos?status=error&message=Sin+conexi%C3%B3n", nil)

	var base other.BasePageData
	GetBaseData(r, &base)

	assert.Equal(t, "error", base.MessageStatus)
	assert.Equal(t, "Sin conexión", base.Message)
	assert.Equal(t, "/admin/productos", base.CurrentPath)
	assert.True(t, base.IsAdminPage)
	assert.Empty(t, base.CSRFToken)
	assert.NotNil(t, base.Breadcrumbs)
}
