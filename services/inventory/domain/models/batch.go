package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/fieldops/services/inventory/domain"
)

// BatchStatus is the lifecycle state of a length-based stock batch.
type BatchStatus string

const (
	BatchActive   BatchStatus = "active"
	BatchDepleted BatchStatus = "depleted"
	BatchReturned BatchStatus = "returned"
)

// BatchLocation is where a batch physically sits.
type BatchLocation string

const (
	LocationWarehouse BatchLocation = "warehouse"
	LocationCrew      BatchLocation = "crew"
)

// Batch is a length-measured stock unit (cable reel / bobbin) belonging to one
// metres-unit item. CurrentQuantity never goes negative; status is derived
// from the remaining quantity on every edit.
type Batch struct {
	ID              uuid.UUID
	BatchCode       string // unique
	ItemID          uuid.UUID
	InitialQuantity int
	CurrentQuantity int
	Location        BatchLocation
	CrewID          *uuid.UUID // set only when Location == crew
	Status          BatchStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBatch constructs an active warehouse batch.
func NewBatch(batchCode string, itemID uuid.UUID, initialQuantity int) (*Batch, error) {
	if initialQuantity < 0 {
		return nil, fmt.Errorf("%w: initial quantity %d", domain.ErrInvalidQuantity, initialQuantity)
	}
	now := time.Now().UTC()
	return &Batch{
		ID:              uuid.New(),
		BatchCode:       batchCode,
		ItemID:          itemID,
		InitialQuantity: initialQuantity,
		CurrentQuantity: initialQuantity,
		Location:        LocationWarehouse,
		Status:          deriveBatchStatus(initialQuantity),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// SetQuantity edits the remaining length, rederives the status and returns the
// signed delta to apply to the parent item's aggregate stock.
func (b *Batch) SetQuantity(quantity int) (delta int, err error) {
	if quantity < 0 {
		return 0, fmt.Errorf("%w: quantity %d", domain.ErrInvalidQuantity, quantity)
	}
	delta = quantity - b.CurrentQuantity
	b.CurrentQuantity = quantity
	b.Status = deriveBatchStatus(quantity)
	b.UpdatedAt = time.Now().UTC()
	return delta, nil
}

func deriveBatchStatus(quantity int) BatchStatus {
	if quantity == 0 {
		return BatchDepleted
	}
	return BatchActive
}
