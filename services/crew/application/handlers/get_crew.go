package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/crew/application/services"
	"github.com/ghuser/fieldops/services/crew/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"crew not found"`
} // @name CrewErrorResponse

// AssignedLineResponse is one assigned-inventory row.
type AssignedLineResponse struct {
	ItemID   uuid.UUID `json:"item_id"`
	ItemCode string    `json:"item_code" example:"CBL-DROP"`
	Quantity int       `json:"quantity"`
} // @name AssignedLineResponse

// CrewResponse is the JSON shape of a crew.
type CrewResponse struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name" example:"Cuadrilla Norte"`
	Active            bool                   `json:"active"`
	AssignedInventory []AssignedLineResponse `json:"assigned_inventory,omitempty"`
	CreatedAt         time.Time              `json:"created_at"`
} // @name CrewResponse

// ListCrewsResponse lists all crews.
type ListCrewsResponse struct {
	Crews []CrewResponse `json:"crews"`
} // @name ListCrewsResponse

// CreateCrewRequest is the request body for POST /crews.
type CreateCrewRequest struct {
	Name string `json:"name" validate:"required,min=2,max=128" example:"Cuadrilla Norte"`
} // @name CreateCrewRequest

// CrewHandler handles crew reads and creation.
type CrewHandler struct {
	svc *appsvcs.Services
}

// NewCrewHandler returns a CrewHandler backed by the given services.
func NewCrewHandler(svc *appsvcs.Services) *CrewHandler {
	return &CrewHandler{svc: svc}
}

// Get retrieves one crew with its assigned inventory.
//
//	@Summary	Get crew
//	@Tags		crews
//	@Produce	json
//	@Param		id	path		string	true	"Crew ID"
//	@Success	200	{object}	CrewResponse
//	@Failure	404	{object}	CrewErrorResponse
//	@Router		/crews/{id} [get]
func (h *CrewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid crew id")
		return
	}

	crew, err := h.svc.Crew.Get(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCrewResponse(crew))
}

// List returns all crews.
//
//	@Summary	List crews
//	@Tags		crews
//	@Produce	json
//	@Success	200	{object}	ListCrewsResponse
//	@Router		/crews [get]
func (h *CrewHandler) List(w http.ResponseWriter, r *http.Request) {
	crews, err := h.svc.Crew.List(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ListCrewsResponse{Crews: make([]CrewResponse, len(crews))}
	for i, c := range crews {
		resp.Crews[i] = toCrewResponse(c)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Create registers a new crew.
//
//	@Summary	Create crew
//	@Tags		crews
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateCrewRequest	true	"Crew creation request"
//	@Success	201		{object}	CrewResponse
//	@Failure	422		{object}	CrewErrorResponse
//	@Router		/crews [post]
func (h *CrewHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateCrewRequest](w, r)
	if !ok {
		return
	}

	crew, err := h.svc.Crew.Create(r.Context(), req.Name)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toCrewResponse(crew))
}

func toCrewResponse(c *models.Crew) CrewResponse {
	resp := CrewResponse{
		ID:        c.ID,
		Name:      c.Name,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
	for _, line := range c.AssignedInventory {
		resp.AssignedInventory = append(resp.AssignedInventory, AssignedLineResponse{
			ItemID:   line.ItemID,
			ItemCode: line.ItemCode,
			Quantity: line.Quantity,
		})
	}
	return resp
}
