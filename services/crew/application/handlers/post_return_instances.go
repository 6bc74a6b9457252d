package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/auth"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/crew/application/services"
)

// ReturnInstancesRequest is the request body for
// POST /crews/{id}/equipment-instances/return.
type ReturnInstancesRequest struct {
	InstanceIDs []string `json:"instance_ids" validate:"required,min=1,dive,min=1,max=64"`
	Reason      string   `json:"reason" validate:"max=255"`
} // @name ReturnInstancesRequest

// ReturnInstancesResponse reports how many instances were actually returned.
// IDs not held by the crew are skipped, not errors.
type ReturnInstancesResponse struct {
	Returned  int `json:"returned"`
	Requested int `json:"requested"`
} // @name ReturnInstancesResponse

// PostReturnInstancesHandler handles equipment returns from a crew. The
// operation itself belongs to the inventory context; this endpoint routes it
// under the crew resource.
type PostReturnInstancesHandler struct {
	svc *appsvcs.Services
}

// NewPostReturnInstancesHandler returns a handler backed by the given services.
func NewPostReturnInstancesHandler(svc *appsvcs.Services) *PostReturnInstancesHandler {
	return &PostReturnInstancesHandler{svc: svc}
}

// Execute returns serialized units held by a crew back to warehouse stock.
//
//	@Summary		Return equipment instances
//	@Description	Transitions instances assigned to the crew back to in-stock; unmatched ids are skipped
//	@Tags			crews
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Crew ID"
//	@Param			request	body		ReturnInstancesRequest	true	"Instances to return"
//	@Success		200		{object}	ReturnInstancesResponse
//	@Failure		400		{object}	CrewErrorResponse
//	@Failure		422		{object}	CrewErrorResponse
//	@Router			/crews/{id}/equipment-instances/return [post]
func (h *PostReturnInstancesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	crewID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid crew id")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[ReturnInstancesRequest](w, r)
	if !ok {
		return
	}

	reason := req.Reason
	if reason == "" {
		reason = "devolución de equipos"
	}

	returned, err := h.svc.Inventory.ReturnInstances(r.Context(), crewID, req.InstanceIDs, reason, auth.ActorFromCtx(r.Context()))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ReturnInstancesResponse{
		Returned:  returned,
		Requested: len(req.InstanceIDs),
	})
}
