package v1

import (
	"errors"
	"net/http"

	"github.com/triz-financeiro/backend/internal/media"
	"github.com/triz-financeiro/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no transaction matching your query"`
}

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, models.ErrCategoryNameNotUnique) || errors.Is(err, models.ErrEmailNotUnique) {
		return http.StatusConflict
	}

	if errors.Is(err, media.ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}

	return http.StatusBadRequest
}

// User errors
var (
	errNameRequired          = errors.New("the name must not be empty")
	errEmailInvalid          = errors.New("a valid email is required")
	errCurrencyInvalid       = errors.New("the currency must be a valid ISO 4217 code")
	errPasswordFieldsMissing = errors.New("the current and the new password must both be set")
	errPasswordTooShort      = errors.New("the new password must have at least 8 characters")
	errPasswordIncorrect     = errors.New("the current password is incorrect")
	errNoPasswordAccount     = errors.New("this account does not use password login")
	errPasswordUnchanged     = errors.New("the new password must differ from the current password")
)

// Upload errors
var (
	errPublicIDRequired = errors.New("the publicId parameter must be set")
)
