package models

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies an inventory history entry.
type MovementType string

const (
	MovementEntry      MovementType = "entry"       // inbound restock / instance import
	MovementAssignment MovementType = "assignment"  // outbound to a crew
	MovementReturn     MovementType = "return"      // back from a crew
	MovementUsageOrder MovementType = "usage_order" // consumed on a field order
	MovementAdjustment MovementType = "adjustment"  // manual correction / batch edit
)

// Valid reports whether t is one of the known movement types.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntry, MovementAssignment, MovementReturn, MovementUsageOrder, MovementAdjustment:
		return true
	}
	return false
}

// Movement is one append-only inventory history row. Immutable once written;
// the sole source of truth for reconstructing and auditing aggregate counts.
type Movement struct {
	ID             uuid.UUID
	ItemID         uuid.UUID
	Type           MovementType
	QuantityChange int // signed: positive inbound, negative outbound
	Reason         string
	CrewID         *uuid.UUID
	OrderID        string
	Actor          string // user attribution from the session or bearer token
	CreatedAt      time.Time
}

// NewMovement constructs a history row stamped with the current time.
func NewMovement(itemID uuid.UUID, movementType MovementType, quantityChange int, reason string) *Movement {
	return &Movement{
		ID:             uuid.New(),
		ItemID:         itemID,
		Type:           movementType,
		QuantityChange: quantityChange,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
}

// WithCrew attributes the movement to a crew.
func (m *Movement) WithCrew(crewID uuid.UUID) *Movement {
	m.CrewID = &crewID
	return m
}

// WithActor attributes the movement to a user.
func (m *Movement) WithActor(actor string) *Movement {
	m.Actor = actor
	return m
}
