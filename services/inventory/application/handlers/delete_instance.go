package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
)

// DeleteInstanceHandler handles DELETE /inventory/instances requests.
type DeleteInstanceHandler struct {
	svc *appsvcs.Services
}

// NewDeleteInstanceHandler returns a DeleteInstanceHandler backed by the given services.
func NewDeleteInstanceHandler(svc *appsvcs.Services) *DeleteInstanceHandler {
	return &DeleteInstanceHandler{svc: svc}
}

// Execute removes an instance that never left stock.
//
//	@Summary		Delete equipment instance
//	@Description	Deletes an in-stock serialized unit; units with assignment or installation history cannot be deleted
//	@Tags			inventory
//	@Produce		json
//	@Param			inventory_id	query	string	true	"Item ID"
//	@Param			unique_id		query	string	true	"Instance unique ID"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/inventory/instances [delete]
func (h *DeleteInstanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.URL.Query().Get("inventory_id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid inventory_id")
		return
	}
	uniqueID := r.URL.Query().Get("unique_id")
	if uniqueID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "unique_id is required")
		return
	}

	if err := h.svc.Inventory.DeleteInstance(r.Context(), itemID, uniqueID); err != nil {
		errhttp.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
