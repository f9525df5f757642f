package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-wizard/internal/enhance"
	"github.com/jonathan/resume-wizard/internal/forms"
	"github.com/jonathan/resume-wizard/internal/llm"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var fieldErr *forms.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return http.StatusBadRequest
	case errors.Is(err, enhance.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, llm.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
