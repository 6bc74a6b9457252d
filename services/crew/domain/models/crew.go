package models

import (
	"time"

	"github.com/google/uuid"
)

// AssignedLine is one {item, quantity} entry in a crew's assigned inventory.
// Quantities are mutated only inside the inventory context's assignment and
// return transactions; the crew context reads them.
type AssignedLine struct {
	ItemID   uuid.UUID
	ItemCode string
	Quantity int
}

// Crew is a field team that can hold assigned material and serialized
// equipment instances.
type Crew struct {
	ID                uuid.UUID
	Name              string
	Active            bool
	AssignedInventory []AssignedLine
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewCrew constructs an active crew with generated ID and current timestamp.
func NewCrew(name string) *Crew {
	now := time.Now().UTC()
	return &Crew{
		ID:        uuid.New(),
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
