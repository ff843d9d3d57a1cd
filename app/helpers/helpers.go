package helpers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	errorMessages := make(map[string]string)
	for _, err := range errs {
		field := strings.ToLower(err.Field())
		switch err.Tag() {
		case "required":
			errorMessages[field] = fmt.Sprintf("%s es obligatorio.", err.Field())
		case "email":
			errorMessages[field] = fmt.Sprintf("%s debe ser un correo válido.", err.Field())
		case "numeric", "number":
			errorMessages[field] = fmt.Sprintf("%s solo admite dígitos.", err.Field())
		case "min", "gte":
			errorMessages[field] = fmt.Sprintf("%s debe ser al menos %s.", err.Field(), err.Param())
		case "max", "lte":
			errorMessages[field] = fmt.Sprintf("%s no puede superar %s.", err.Field(), err.Param())
		case "gt":
			errorMessages[field] = fmt.Sprintf("%s debe ser mayor que %s.", err.Field(), err.Param())
		case "oneof":
			errorMessages[field] = fmt.Sprintf("%s debe ser uno de: %s.", err.Field(), err.Param())
		default:
			errorMessages[field] = fmt.Sprintf("Validación %s falló en %s.", err.Tag(), err.Field())
		}
	}
	return errorMessages
}

func PasswordCompare(hashPass string, password []byte) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashPass), password)
	if err != nil {
		log.Printf("PasswordCompare: password does not match or error: %v", err)
		return false
	}
	return true
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// RedirectWithMessage sends the user to target with a flash message in the
// query string, the way every page reads it back.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, target, status, message string) {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, fmt.Sprintf("%s%sstatus=%s&message=%s", target, sep, status, url.QueryEscape(message)), http.StatusSeeOther)
}

// ParseID reads a positive integer id; zero means absent or invalid.
func ParseID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
