package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/services/notification/domain/models"
)

// DeviceTokenRepository implements repositories.DeviceTokenRepository.
type DeviceTokenRepository struct {
	db *database.Database
}

// NewDeviceTokenRepository returns a DeviceTokenRepository backed by the given pool.
func NewDeviceTokenRepository(db *database.Database) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// Upsert registers a token or refreshes an existing registration. A token
// string moving between users re-binds to the latest user.
func (r *DeviceTokenRepository) Upsert(ctx context.Context, token *models.DeviceToken) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO device_tokens (id, user_id, token, platform, last_seen_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, last_seen_at = EXCLUDED.last_seen_at`,
		token.ID, token.UserID, token.Token, token.Platform, token.LastSeenAt, token.CreatedAt,
	); err != nil {
		return fmt.Errorf("upsert device token: %w", err)
	}
	return nil
}

// DeleteUnseenSince purges tokens not refreshed since cutoff.
func (r *DeviceTokenRepository) DeleteUnseenSince(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.DB().ExecContext(ctx,
		`DELETE FROM device_tokens WHERE last_seen_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

// NotificationRepository implements repositories.NotificationRepository.
type NotificationRepository struct {
	db *database.Database
}

// NewNotificationRepository returns a NotificationRepository backed by the given pool.
func NewNotificationRepository(db *database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create persists one notification row.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO notifications (id, kind, item_id, crew_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.Kind, n.ItemID, n.CrewID, n.Body, n.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}
