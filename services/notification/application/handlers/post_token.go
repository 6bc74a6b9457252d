package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/auth"
	"github.com/ghuser/fieldops/pkg/errhttp"
	"github.com/ghuser/fieldops/pkg/httpx"
	pkgvalidator "github.com/ghuser/fieldops/pkg/validator"
	appsvcs "github.com/ghuser/fieldops/services/notification/application/services"
	"github.com/ghuser/fieldops/services/notification/domain/models"
)

// RegisterTokenRequest is the request body for POST /notifications/tokens.
type RegisterTokenRequest struct {
	Token    string `json:"token" validate:"required,min=8,max=512"`
	Platform string `json:"platform" validate:"required,oneof=ios android" example:"android"`
} // @name RegisterTokenRequest

// RegisterTokenResponse acknowledges a token registration.
type RegisterTokenResponse struct {
	ID         uuid.UUID `json:"id"`
	LastSeenAt time.Time `json:"last_seen_at"`
} // @name RegisterTokenResponse

// PostTokenHandler handles POST /notifications/tokens requests.
type PostTokenHandler struct {
	svc *appsvcs.Services
}

// NewPostTokenHandler returns a PostTokenHandler backed by the given services.
func NewPostTokenHandler(svc *appsvcs.Services) *PostTokenHandler {
	return &PostTokenHandler{svc: svc}
}

// Execute registers or refreshes the caller's device token.
//
//	@Summary		Register device token
//	@Description	Registers a push token for the authenticated user, refreshing last-seen on repeat calls
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterTokenRequest	true	"Token registration"
//	@Success		200		{object}	RegisterTokenResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/notifications/tokens [post]
func (h *PostTokenHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RegisterTokenRequest](w, r)
	if !ok {
		return
	}

	dt, err := h.svc.Notification.RegisterToken(r.Context(), identity.UserID, req.Token, models.Platform(req.Platform))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, RegisterTokenResponse{ID: dt.ID, LastSeenAt: dt.LastSeenAt})
}

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
} // @name NotificationErrorResponse
