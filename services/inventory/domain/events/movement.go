package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicMovementRecorded is the Watermill topic published whenever an inventory
// operation writes a history row. Published transactionally with the mutation.
const TopicMovementRecorded = "inventory.movement.recorded"

// MovementRecordedEvent is published after an inventory mutation commits.
// Consumers: low-stock alerting and the webhook export pipeline.
type MovementRecordedEvent struct {
	EventID        uuid.UUID  `json:"event_id"` // Unique publish-time identifier for deduplication
	Version        int        `json:"version"`  // Schema version; increment on breaking changes
	MovementID     uuid.UUID  `json:"movement_id"`
	ItemID         uuid.UUID  `json:"item_id"`
	ItemCode       string     `json:"item_code"`
	MovementType   string     `json:"movement_type"`
	QuantityChange int        `json:"quantity_change"`
	Reason         string     `json:"reason"`
	CrewID         *uuid.UUID `json:"crew_id,omitempty"`
	Actor          string     `json:"actor,omitempty"`
	ResultingStock int        `json:"resulting_stock"`
	MinimumStock   int        `json:"minimum_stock"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
