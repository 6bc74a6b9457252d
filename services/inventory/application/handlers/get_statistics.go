package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
)

// GetStatisticsHandler handles GET /inventory/statistics.
type GetStatisticsHandler struct {
	svc *appsvcs.Services
}

// NewGetStatisticsHandler returns a GetStatisticsHandler backed by the given services.
func NewGetStatisticsHandler(svc *appsvcs.Services) *GetStatisticsHandler {
	return &GetStatisticsHandler{svc: svc}
}

// Execute aggregates movement history over a date range, optionally filtered
// by crew and item. Without date parameters the range defaults to the last
// five business days.
//
//	@Summary	Inventory usage statistics
//	@Tags		inventory
//	@Produce	json
//	@Param		start_date	query		string	false	"Range start (YYYY-MM-DD)"
//	@Param		end_date	query		string	false	"Range end (YYYY-MM-DD)"
//	@Param		crew_id		query		string	false	"Crew filter"
//	@Param		item_id		query		string	false	"Item filter"
//	@Success	200			{object}	services.Statistics
//	@Failure	400			{object}	ErrorResponse
//	@Router		/inventory/statistics [get]
func (h *GetStatisticsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	var crewID, itemID *uuid.UUID
	if v := r.URL.Query().Get("crew_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid crew_id")
			return
		}
		crewID = &id
	}
	if v := r.URL.Query().Get("item_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid item_id")
			return
		}
		itemID = &id
	}

	stats, err := h.svc.Statistics.Compute(r.Context(), from, to, crewID, itemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, stats)
}
