package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/auth"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// UpdateBatchRequest is the request body for PUT /inventory/batches/update.
type UpdateBatchRequest struct {
	BatchCode       string    `json:"batch_code" validate:"required,min=1,max=64" example:"BOB-042"`
	ItemID          uuid.UUID `json:"item_id" validate:"required"`
	CurrentQuantity int       `json:"current_quantity" validate:"gte=0"`
} // @name UpdateBatchRequest

// BatchResponse is the JSON shape of a cable batch.
type BatchResponse struct {
	ID              uuid.UUID  `json:"id"`
	BatchCode       string     `json:"batch_code" example:"BOB-042"`
	ItemID          uuid.UUID  `json:"item_id"`
	InitialQuantity int        `json:"initial_quantity"`
	CurrentQuantity int        `json:"current_quantity"`
	Location        string     `json:"location" example:"warehouse"`
	CrewID          *uuid.UUID `json:"crew_id,omitempty"`
	Status          string     `json:"status" example:"active"`
	UpdatedAt       time.Time  `json:"updated_at"`
} // @name BatchResponse

// PutBatchHandler handles PUT /inventory/batches/update requests.
type PutBatchHandler struct {
	svc *appsvcs.Services
}

// NewPutBatchHandler returns a PutBatchHandler backed by the given services.
func NewPutBatchHandler(svc *appsvcs.Services) *PutBatchHandler {
	return &PutBatchHandler{svc: svc}
}

// Execute edits a cable batch's remaining length. The batch status is
// rederived and the parent item's stock adjusted by the delta, in one
// transaction.
//
//	@Summary		Update cable batch
//	@Description	Edits the remaining metres of a batch; parent stock adjusts by the delta
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UpdateBatchRequest	true	"Batch update"
//	@Success		200		{object}	BatchResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/inventory/batches/update [put]
func (h *PutBatchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateBatchRequest](w, r)
	if !ok {
		return
	}

	batch, err := h.svc.Inventory.UpdateBatch(r.Context(), req.BatchCode, req.ItemID, req.CurrentQuantity, auth.ActorFromCtx(r.Context()))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toBatchResponse(batch))
}

func toBatchResponse(b *models.Batch) BatchResponse {
	return BatchResponse{
		ID:              b.ID,
		BatchCode:       b.BatchCode,
		ItemID:          b.ItemID,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: b.CurrentQuantity,
		Location:        string(b.Location),
		CrewID:          b.CrewID,
		Status:          string(b.Status),
		UpdatedAt:       b.UpdatedAt,
	}
}
