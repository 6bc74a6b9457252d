package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemType classifies a catalog entry.
type ItemType string

const (
	TypeMaterial  ItemType = "material"
	TypeEquipment ItemType = "equipment"
	TypeTool      ItemType = "tool"
)

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case TypeMaterial, TypeEquipment, TypeTool:
		return true
	}
	return false
}

// UnitMetres is the unit required for batch (bobbin) tracked items.
const UnitMetres = "metros"

// Item is the catalog aggregate root. For equipment items CurrentStock is
// always derived from the count of in-stock instances and is recomputed by the
// repository inside the same transaction as any instance mutation; there is no
// way to set it directly. For material and tool items it is authoritative and
// moves only through signed adjustments.
type Item struct {
	ID           uuid.UUID
	Code         ItemCode // unique, human-assigned
	Description  string
	Unit         string // e.g. "unidades", "metros"
	Type         ItemType
	CurrentStock int
	MinimumStock int // reorder threshold; movements below it raise low-stock alerts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem constructs a valid Item aggregate with generated ID and current timestamp.
func NewItem(code ItemCode, description, unit string, itemType ItemType, minimumStock int) (*Item, error) {
	now := time.Now().UTC()
	return &Item{
		ID:           uuid.New(),
		Code:         code,
		Description:  description,
		Unit:         unit,
		Type:         itemType,
		MinimumStock: minimumStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsEquipment reports whether the item carries serialized instances.
func (i *Item) IsEquipment() bool {
	return i.Type == TypeEquipment
}

// BelowMinimum reports whether current stock has fallen under the reorder threshold.
func (i *Item) BelowMinimum() bool {
	return i.CurrentStock < i.MinimumStock
}
