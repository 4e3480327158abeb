package controller

import (
	"errors"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
)

// statusFor maps a service failure to an HTTP status. Validation
// responses are identified by message because model validation returns
// plain errors; everything else dispatches on the error taxonomy.
func statusFor(message string, err error) int {
	if message == "validation failed" {
		return http.StatusBadRequest
	}

	var notFound *domain.AccountNotFoundError
	switch {
	case errors.As(err, &notFound),
		errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrAccountInactive):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAccountNumberTaken),
		errors.Is(err, domain.ErrAccountHasTransactions):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTransientStore):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
