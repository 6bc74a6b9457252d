package handlers

import (
	"net/http"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// CreateItemRequest is the request body for POST /inventory/items.
type CreateItemRequest struct {
	Code         string `json:"code" validate:"required,min=2,max=32" example:"EQ-01"`
	Description  string `json:"description" validate:"required,max=255" example:"ONT router"`
	Unit         string `json:"unit" validate:"required,max=32" example:"unidades"`
	Type         string `json:"type" validate:"required,oneof=material equipment tool" example:"equipment"`
	MinimumStock int    `json:"minimum_stock" validate:"gte=0"`
} // @name CreateItemRequest

// PostItemHandler handles POST /inventory/items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

// NewPostItemHandler returns a PostItemHandler backed by the given services.
func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute creates a new catalog item.
//
//	@Summary		Create inventory item
//	@Description	Creates a new catalog item (material, equipment or tool)
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateItemRequest	true	"Item creation request"
//	@Success		201		{object}	ItemResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/inventory/items [post]
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Inventory.CreateItem(r.Context(), req.Code, req.Description, req.Unit, models.ItemType(req.Type), req.MinimumStock)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toItemResponse(item))
}
