package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/auth"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
)

// NewInstanceRequest describes one serialized unit in a registration batch.
type NewInstanceRequest struct {
	UniqueID     string `json:"unique_id" validate:"required,min=1,max=64" example:"SN001"`
	SerialNumber string `json:"serial_number" validate:"max=64"`
	MACAddress   string `json:"mac_address" validate:"max=32"`
	Notes        string `json:"notes" validate:"max=500"`
} // @name NewInstanceRequest

// AddInstancesRequest is the request body for POST /inventory/instances.
type AddInstancesRequest struct {
	InventoryID uuid.UUID            `json:"inventory_id" validate:"required"`
	Instances   []NewInstanceRequest `json:"instances" validate:"required,min=1,dive"`
} // @name AddInstancesRequest

// AddInstancesResponse is returned on successful registration.
type AddInstancesResponse struct {
	Instances []InstanceResponse `json:"instances"`
} // @name AddInstancesResponse

// PostInstancesHandler handles POST /inventory/instances requests.
type PostInstancesHandler struct {
	svc *appsvcs.Services
}

// NewPostInstancesHandler returns a PostInstancesHandler backed by the given services.
func NewPostInstancesHandler(svc *appsvcs.Services) *PostInstancesHandler {
	return &PostInstancesHandler{svc: svc}
}

// Execute registers a batch of serialized units on an equipment item.
//
//	@Summary		Register equipment instances
//	@Description	Registers serialized units in-stock; one duplicate rejects the whole batch
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddInstancesRequest	true	"Instances to register"
//	@Success		201		{object}	AddInstancesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/inventory/instances [post]
func (h *PostInstancesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddInstancesRequest](w, r)
	if !ok {
		return
	}

	inputs := make([]appsvcs.NewInstanceInput, len(req.Instances))
	for i, in := range req.Instances {
		inputs[i] = appsvcs.NewInstanceInput{
			UniqueID:     in.UniqueID,
			SerialNumber: in.SerialNumber,
			MACAddress:   in.MACAddress,
			Notes:        in.Notes,
		}
	}

	instances, err := h.svc.Inventory.AddInstances(r.Context(), req.InventoryID, inputs, auth.ActorFromCtx(r.Context()))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AddInstancesResponse{Instances: toInstanceResponses(instances)})
}
