package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// AssignmentUpdate carries assignment details for a status change to assigned.
type AssignmentUpdate struct {
	CrewID  uuid.UUID `json:"crew_id" validate:"required"`
	OrderID string    `json:"order_id" validate:"max=64"`
} // @name AssignmentUpdate

// InstallationUpdate carries installation details for a status change to installed.
type InstallationUpdate struct {
	OrderID       string     `json:"order_id" validate:"required,max=64"`
	InstalledDate *time.Time `json:"installed_date"`
	Location      string     `json:"location" validate:"max=255"`
} // @name InstallationUpdate

// InstanceUpdates is the partial-update payload for one instance.
type InstanceUpdates struct {
	Status       *string             `json:"status" validate:"omitempty,oneof=in-stock assigned installed damaged retired"`
	Notes        *string             `json:"notes" validate:"omitempty,max=500"`
	Assignment   *AssignmentUpdate   `json:"assignment"`
	Installation *InstallationUpdate `json:"installation"`
} // @name InstanceUpdates

// UpdateInstanceRequest is the request body for PUT /inventory/instances.
type UpdateInstanceRequest struct {
	InventoryID uuid.UUID       `json:"inventory_id" validate:"required"`
	UniqueID    string          `json:"unique_id" validate:"required,min=1,max=64"`
	Updates     InstanceUpdates `json:"updates" validate:"required"`
} // @name UpdateInstanceRequest

// PutInstanceHandler handles PUT /inventory/instances requests.
type PutInstanceHandler struct {
	svc *appsvcs.Services
}

// NewPutInstanceHandler returns a PutInstanceHandler backed by the given services.
func NewPutInstanceHandler(svc *appsvcs.Services) *PutInstanceHandler {
	return &PutInstanceHandler{svc: svc}
}

// Execute applies a partial update to one instance. Status changes go through
// the lifecycle state machine.
//
//	@Summary		Update equipment instance
//	@Description	Patches status, notes, assignment or installation of a serialized unit
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateInstanceRequest	true	"Instance update"
//	@Success		200		{object}	InstanceResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/inventory/instances [put]
func (h *PutInstanceHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateInstanceRequest](w, r)
	if !ok {
		return
	}

	patch := models.InstancePatch{Notes: req.Updates.Notes}
	if req.Updates.Status != nil {
		status := models.InstanceStatus(*req.Updates.Status)
		patch.Status = &status
	}
	if req.Updates.Assignment != nil {
		patch.Assignment = &models.Assignment{
			CrewID:     req.Updates.Assignment.CrewID,
			OrderID:    req.Updates.Assignment.OrderID,
			AssignedAt: time.Now().UTC(),
		}
	}
	if req.Updates.Installation != nil {
		installedDate := time.Now().UTC()
		if req.Updates.Installation.InstalledDate != nil {
			installedDate = req.Updates.Installation.InstalledDate.UTC()
		}
		patch.Installation = &models.Installation{
			OrderID:       req.Updates.Installation.OrderID,
			InstalledDate: installedDate,
			Location:      req.Updates.Installation.Location,
		}
	}

	inst, err := h.svc.Inventory.UpdateInstance(r.Context(), req.InventoryID, req.UniqueID, patch)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toInstanceResponse(inst))
}
