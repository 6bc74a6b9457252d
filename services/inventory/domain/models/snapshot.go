package models

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseLine is one denormalized item row inside a snapshot.
type WarehouseLine struct {
	ItemID      uuid.UUID `json:"item_id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
}

// CrewLine is one item a crew held at snapshot time.
type CrewLine struct {
	ItemID   uuid.UUID `json:"item_id"`
	Code     string    `json:"code"`
	Quantity int       `json:"quantity"`
}

// CrewInventory is the full holding of one crew at snapshot time.
type CrewInventory struct {
	CrewID   uuid.UUID  `json:"crew_id"`
	CrewName string     `json:"crew_name"`
	Items    []CrewLine `json:"items"`
}

// Snapshot is an immutable point-in-time copy of warehouse and per-crew
// inventory. Several snapshots may share a SnapshotDate; deduplication is the
// caller's responsibility.
type Snapshot struct {
	ID                  uuid.UUID
	SnapshotDate        time.Time // date component only, UTC
	WarehouseInventory  []WarehouseLine
	CrewInventories     []CrewInventory
	TotalItems          int
	TotalWarehouseStock int
	CreatedAt           time.Time
}

// NewSnapshot builds a snapshot from denormalized lines, computing the totals.
func NewSnapshot(at time.Time, warehouse []WarehouseLine, crews []CrewInventory) *Snapshot {
	total := 0
	for _, line := range warehouse {
		total += line.Quantity
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return &Snapshot{
		ID:                  uuid.New(),
		SnapshotDate:        day,
		WarehouseInventory:  warehouse,
		CrewInventories:     crews,
		TotalItems:          len(warehouse),
		TotalWarehouseStock: total,
		CreatedAt:           at.UTC(),
	}
}
