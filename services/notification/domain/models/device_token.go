package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/fieldops/services/notification/domain"
)

// Platform is the mobile OS a device token belongs to.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// Valid reports whether p is a known platform.
func (p Platform) Valid() bool {
	return p == PlatformIOS || p == PlatformAndroid
}

// DeviceToken is one push-notification registration. Tokens unseen for the
// cleanup TTL are purged by the worker.
type DeviceToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Token      string
	Platform   Platform
	LastSeenAt time.Time
	CreatedAt  time.Time
}

// NewDeviceToken constructs a registration stamped with the current time.
func NewDeviceToken(userID uuid.UUID, token string, platform Platform) (*DeviceToken, error) {
	if !platform.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPlatform, platform)
	}
	now := time.Now().UTC()
	return &DeviceToken{
		ID:         uuid.New(),
		UserID:     userID,
		Token:      token,
		Platform:   platform,
		LastSeenAt: now,
		CreatedAt:  now,
	}, nil
}
