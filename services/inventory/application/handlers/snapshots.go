package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/calendar"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	appsvcs "github.com/ghuser/fieldops/services/inventory/application/services"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// SnapshotResponse is the JSON shape of one inventory snapshot.
type SnapshotResponse struct {
	ID                  uuid.UUID              `json:"id"`
	SnapshotDate        string                 `json:"snapshot_date" example:"2026-08-28"`
	WarehouseInventory  []models.WarehouseLine `json:"warehouse_inventory"`
	CrewInventories     []models.CrewInventory `json:"crew_inventories"`
	TotalItems          int                    `json:"total_items"`
	TotalWarehouseStock int                    `json:"total_warehouse_stock"`
	CreatedAt           time.Time              `json:"created_at"`
} // @name SnapshotResponse

// ListSnapshotsResponse is the range listing of snapshots.
type ListSnapshotsResponse struct {
	Snapshots []SnapshotResponse `json:"snapshots"`
} // @name ListSnapshotsResponse

// SnapshotsHandler handles GET and POST /inventory/snapshots.
type SnapshotsHandler struct {
	svc *appsvcs.Services
}

// NewSnapshotsHandler returns a SnapshotsHandler backed by the given services.
func NewSnapshotsHandler(svc *appsvcs.Services) *SnapshotsHandler {
	return &SnapshotsHandler{svc: svc}
}

// Create takes a snapshot of the current inventory state.
//
//	@Summary		Create inventory snapshot
//	@Description	Stores an immutable point-in-time copy of warehouse and per-crew inventory
//	@Tags			inventory
//	@Produce		json
//	@Success		201	{object}	SnapshotResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/inventory/snapshots [post]
func (h *SnapshotsHandler) Create(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.svc.Snapshots.Create(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toSnapshotResponse(snapshot))
}

// List returns snapshots in a date range. Without parameters the range
// defaults to the last five business days.
//
//	@Summary	List inventory snapshots
//	@Tags		inventory
//	@Produce	json
//	@Param		start_date	query		string	false	"Range start (YYYY-MM-DD)"
//	@Param		end_date	query		string	false	"Range end (YYYY-MM-DD)"
//	@Success	200			{object}	ListSnapshotsResponse
//	@Failure	400			{object}	ErrorResponse
//	@Router		/inventory/snapshots [get]
func (h *SnapshotsHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	snapshots, err := h.svc.Snapshots.ListByRange(r.Context(), from, to)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListSnapshotsResponse{Snapshots: make([]SnapshotResponse, len(snapshots))}
	for i, s := range snapshots {
		resp.Snapshots[i] = toSnapshotResponse(s)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func toSnapshotResponse(s *models.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:                  s.ID,
		SnapshotDate:        s.SnapshotDate.Format("2006-01-02"),
		WarehouseInventory:  s.WarehouseInventory,
		CrewInventories:     s.CrewInventories,
		TotalItems:          s.TotalItems,
		TotalWarehouseStock: s.TotalWarehouseStock,
		CreatedAt:           s.CreatedAt,
	}
}

// parseDateRange reads start_date/end_date query params (YYYY-MM-DD).
// Both missing: defaults to the last five business days ending today.
func parseDateRange(r *http.Request) (from, to time.Time, err error) {
	q := r.URL.Query()
	start, end := q.Get("start_date"), q.Get("end_date")

	if start == "" && end == "" {
		to = time.Now().UTC()
		from = calendar.BusinessDaysBefore(to, 5)
		return from, to, nil
	}

	from, err = time.Parse("2006-01-02", start)
	if err != nil {
		return from, to, errInvalidDate("start_date")
	}
	to, err = time.Parse("2006-01-02", end)
	if err != nil {
		return from, to, errInvalidDate("end_date")
	}
	// include the whole end day
	to = to.Add(24*time.Hour - time.Nanosecond)
	return from, to, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string { return string(e) + " must be YYYY-MM-DD" }
