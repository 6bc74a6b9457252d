package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/auth"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// StockLineRequest is one {item, quantity} pair in a movement request.
type StockLineRequest struct {
	ItemID   uuid.UUID `json:"item_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,gt=0"`
} // @name StockLineRequest

// MovementRequest is the action-dispatch envelope for POST /inventory/movements.
type MovementRequest struct {
	Action string          `json:"action" validate:"required,oneof=restock assign"`
	Data   json.RawMessage `json:"data" validate:"required"`
} // @name MovementRequest

// RestockData is the payload for the restock action.
type RestockData struct {
	Items  []StockLineRequest `json:"items" validate:"required,min=1,dive"`
	Reason string             `json:"reason" validate:"max=255"`
} // @name RestockData

// AssignData is the payload for the assign action.
type AssignData struct {
	CrewID uuid.UUID          `json:"crew_id" validate:"required"`
	Items  []StockLineRequest `json:"items" validate:"required,min=1,dive"`
} // @name AssignData

// MovementResponse acknowledges a processed movement action.
type MovementResponse struct {
	Action string `json:"action" example:"restock"`
	Lines  int    `json:"lines"`
} // @name MovementResponse

// PostMovementsHandler handles POST /inventory/movements requests.
type PostMovementsHandler struct {
	svc *appsvcs.Services
}

// NewPostMovementsHandler returns a PostMovementsHandler backed by the given services.
func NewPostMovementsHandler(svc *appsvcs.Services) *PostMovementsHandler {
	return &PostMovementsHandler{svc: svc}
}

// Execute dispatches a bulk-stock movement: restock into the warehouse or
// assignment of stock to a crew. Each action is all-or-nothing.
//
//	@Summary		Record stock movement
//	@Description	Dispatches restock or crew-assignment of bulk stock
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		MovementRequest	true	"Movement action envelope"
//	@Success		200		{object}	MovementResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/inventory/movements [post]
func (h *PostMovementsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[MovementRequest](w, r)
	if !ok {
		return
	}
	actor := auth.ActorFromCtx(r.Context())

	switch req.Action {
	case "restock":
		var data RestockData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON in data")
			return
		}
		if err := pkgvalidator.Validate(&data); err != nil {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "Validation failed",
				"fields": pkgvalidator.FormatValidationErrors(err),
			})
			return
		}
		reason := data.Reason
		if reason == "" {
			reason = "reposición de stock"
		}
		if err := h.svc.Inventory.Restock(r.Context(), toStockLines(data.Items), reason, actor); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, MovementResponse{Action: req.Action, Lines: len(data.Items)})

	case "assign":
		var data AssignData
		if err := json.Unmarshal(req.Data, &data); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON in data")
			return
		}
		if err := pkgvalidator.Validate(&data); err != nil {
			httpx.JSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":  "Validation failed",
				"fields": pkgvalidator.FormatValidationErrors(err),
			})
			return
		}
		if err := h.svc.Inventory.AssignToCrew(r.Context(), data.CrewID, toStockLines(data.Items), actor); err != nil {
			errhttp.WriteError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, MovementResponse{Action: req.Action, Lines: len(data.Items)})

	default:
		httpx.JSONError(w, http.StatusBadRequest, "unknown action")
	}
}

func toStockLines(lines []StockLineRequest) []repositories.StockLine {
	out := make([]repositories.StockLine, len(lines))
	for i, l := range lines {
		out[i] = repositories.StockLine{ItemID: l.ItemID, Quantity: l.Quantity}
	}
	return out
}
