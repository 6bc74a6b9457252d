package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind classifies recorded notifications.
type NotificationKind string

const (
	KindLowStock NotificationKind = "low-stock"
)

// Notification is one recorded alert. Delivery to devices is handled by an
// external provider; this context only keeps the bookkeeping row.
type Notification struct {
	ID        uuid.UUID
	Kind      NotificationKind
	ItemID    *uuid.UUID
	CrewID    *uuid.UUID
	Body      string
	CreatedAt time.Time
}

// NewLowStockNotification records that an item's stock fell below its minimum.
func NewLowStockNotification(itemID uuid.UUID, body string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		Kind:      KindLowStock,
		ItemID:    &itemID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
}
