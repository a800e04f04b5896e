package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Amorizz/portfolio/internal/content"
)

// ErrInvalidCredentials indicates a wrong admin password.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPageNotFound indicates a route parameter naming nothing, such as an unknown project slug.
type ErrPageNotFound struct {
	Path string
}

func (e *ErrPageNotFound) Error() string {
	return fmt.Sprintf("page not found: %s", e.Path)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidCreds *ErrInvalidCredentials
		validation   *ErrValidation
		notFound     *ErrPageNotFound
		unsupported  *content.UnsupportedLangError
	)
	switch {
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound), errors.As(err, &unsupported), errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
