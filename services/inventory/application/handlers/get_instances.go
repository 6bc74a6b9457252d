package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// ListInstancesResponse is the instance listing for one item.
type ListInstancesResponse struct {
	Instances []InstanceResponse `json:"instances"`
} // @name ListInstancesResponse

// GetInstancesHandler handles both forms of the instance-listing endpoint:
// path-scoped (GET /inventory/{id}/instances) and query-scoped
// (GET /inventory/instances?inventory_id=).
type GetInstancesHandler struct {
	svc *appsvcs.Services
}

// NewGetInstancesHandler returns a GetInstancesHandler backed by the given services.
func NewGetInstancesHandler(svc *appsvcs.Services) *GetInstancesHandler {
	return &GetInstancesHandler{svc: svc}
}

// ByPath lists an item's instances with the item id taken from the URL path.
//
//	@Summary	List equipment instances
//	@Tags		inventory
//	@Produce	json
//	@Param		id		path		string	true	"Item ID"
//	@Param		status	query		string	false	"Status filter"	Enums(in-stock, assigned, installed, damaged, retired)
//	@Success	200		{object}	ListInstancesResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/inventory/{id}/instances [get]
func (h *GetInstancesHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}
	h.list(w, r, itemID)
}

// ByQuery lists an item's instances with the item id taken from the query string.
//
//	@Summary	List equipment instances by query
//	@Tags		inventory
//	@Produce	json
//	@Param		inventory_id	query		string	true	"Item ID"
//	@Param		status			query		string	false	"Status filter"
//	@Success	200				{object}	ListInstancesResponse
//	@Failure	404				{object}	ErrorResponse
//	@Router		/inventory/instances [get]
func (h *GetInstancesHandler) ByQuery(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(r.URL.Query().Get("inventory_id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid inventory_id")
		return
	}
	h.list(w, r, itemID)
}

func (h *GetInstancesHandler) list(w http.ResponseWriter, r *http.Request, itemID uuid.UUID) {
	var status *models.InstanceStatus
	if v := r.URL.Query().Get("status"); v != "" {
		s := models.InstanceStatus(v)
		status = &s
	}

	instances, err := h.svc.Inventory.ListInstances(r.Context(), itemID, status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ListInstancesResponse{Instances: toInstanceResponses(instances)})
}
