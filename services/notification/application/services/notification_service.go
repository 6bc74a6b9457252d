package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/notification/domain/models"
	"github.com/ghuser/fieldops/services/notification/domain/repositories"
)

// TokenTTL is how long a device token survives without being refreshed.
const TokenTTL = 60 * 24 * time.Hour

// NotificationService handles device-token bookkeeping and alert recording.
// Actual push delivery is an external provider's job.
type NotificationService struct {
	tokens        repositories.DeviceTokenRepository
	notifications repositories.NotificationRepository
	now           func() time.Time
}

// NewNotificationService returns a NotificationService wired with the given repositories.
func NewNotificationService(tokens repositories.DeviceTokenRepository, notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{tokens: tokens, notifications: notifications, now: time.Now}
}

// RegisterToken registers or refreshes a device token for a user.
func (s *NotificationService) RegisterToken(ctx context.Context, userID uuid.UUID, token string, platform models.Platform) (*models.DeviceToken, error) {
	dt, err := models.NewDeviceToken(userID, token, platform)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Upsert(ctx, dt); err != nil {
		return nil, fmt.Errorf("register token: %w", err)
	}
	return dt, nil
}

// PurgeStaleTokens removes tokens unseen for longer than TokenTTL and
// returns how many were removed.
func (s *NotificationService) PurgeStaleTokens(ctx context.Context) (int, error) {
	n, err := s.tokens.DeleteUnseenSince(ctx, s.now().UTC().Add(-TokenTTL))
	if err != nil {
		return 0, fmt.Errorf("purge tokens: %w", err)
	}
	return n, nil
}

// RecordLowStock records a low-stock alert for an item.
func (s *NotificationService) RecordLowStock(ctx context.Context, itemID uuid.UUID, itemCode string, stock, minimum int) error {
	body := fmt.Sprintf("stock de %s por debajo del mínimo: %d < %d", itemCode, stock, minimum)
	if err := s.notifications.Create(ctx, models.NewLowStockNotification(itemID, body)); err != nil {
		return fmt.Errorf("record low-stock alert: %w", err)
	}
	return nil
}
