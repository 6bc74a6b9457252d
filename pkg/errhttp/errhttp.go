// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/fieldops/pkg/httpx"
	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, invdomain.ErrItemNotFound),
		errors.Is(err, invdomain.ErrInstanceNotFound),
		errors.Is(err, invdomain.ErrBatchNotFound),
		errors.Is(err, crewdomain.ErrCrewNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, invdomain.ErrItemAlreadyExists),
		errors.Is(err, invdomain.ErrDuplicateInstance):
		return http.StatusConflict // 409
	case errors.Is(err, invdomain.ErrInvalidItemCode):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, invdomain.ErrInsufficientStock),
		errors.Is(err, invdomain.ErrInvalidTransition),
		errors.Is(err, invdomain.ErrNotEquipment),
		errors.Is(err, invdomain.ErrNotBulkItem),
		errors.Is(err, invdomain.ErrNotMetres),
		errors.Is(err, invdomain.ErrInvalidQuantity),
		errors.Is(err, invdomain.ErrInstanceNotDeletable),
		errors.Is(err, crewdomain.ErrCrewInactive):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
