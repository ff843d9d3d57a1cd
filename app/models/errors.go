package models

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a category, product or the config row is absent.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: id=%d", e.Entity, e.ID)
}

// Is makes every NotFoundError match errors.Is(err, &NotFoundError{}).
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

func NewNotFoundError(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError blocks an action before anything is written. Message is
// shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

var (
	ErrSoldOut              = errors.New("product is sold out")
	ErrSizeRequired         = &ValidationError{Field: "talla", Message: "Por favor selecciona una talla antes de continuar"}
	ErrConfirmationRequired = errors.New("deletion requires explicit confirmation")
)

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage returns the user-facing text of a validation error, or the
// fallback for anything else.
func UserMessage(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return fallback
}
