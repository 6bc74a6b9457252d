package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// ListItemsResponse is the paginated catalog listing.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
} // @name ListItemsResponse

// GetItemHandler handles single-item and catalog-listing reads.
type GetItemHandler struct {
	svc *appsvcs.Services
}

// NewGetItemHandler returns a GetItemHandler backed by the given services.
func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute retrieves one catalog item by ID.
//
//	@Summary	Get inventory item
//	@Tags		inventory
//	@Produce	json
//	@Param		id	path		string	true	"Item ID"
//	@Success	200	{object}	ItemResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/inventory/items/{id} [get]
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := h.svc.Inventory.GetItem(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toItemResponse(item))
}

// List returns a page of catalog items.
//
//	@Summary	List inventory items
//	@Tags		inventory
//	@Produce	json
//	@Param		limit	query		int	false	"Page size (default 50, max 500)"
//	@Param		offset	query		int	false	"Offset"
//	@Success	200		{object}	ListItemsResponse
//	@Router		/inventory/items [get]
func (h *GetItemHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := repositories.QueryOpts{Limit: 50}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			opts.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			opts.Offset = n
		}
	}

	items, total, err := h.svc.Inventory.ListItems(r.Context(), opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListItemsResponse{Items: make([]ItemResponse, len(items)), Total: total}
	for i, item := range items {
		resp.Items[i] = toItemResponse(item)
	}
	httpx.JSON(w, http.StatusOK, resp)
}
