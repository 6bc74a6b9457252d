package repositories

import (
	"context"
	"time"

	"github.com/ghuser/fieldops/services/notification/domain/models"
)

// DeviceTokenRepository is the persistence interface for push registrations.
// The domain layer owns this interface; infrastructure implements it.
type DeviceTokenRepository interface {
	// Upsert registers a token or refreshes its last-seen timestamp when the
	// token string already exists.
	Upsert(ctx context.Context, token *models.DeviceToken) error

	// DeleteUnseenSince removes tokens whose LastSeenAt is before cutoff and
	// returns how many were removed.
	DeleteUnseenSince(ctx context.Context, cutoff time.Time) (int, error)
}

// NotificationRepository persists recorded alerts.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
}
