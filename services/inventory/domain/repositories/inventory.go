package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// StockLine is one {item, quantity} pair in a restock or crew-assignment batch.
type StockLine struct {
	ItemID   uuid.UUID
	Quantity int
}

// ItemRepository is the persistence interface for the inventory aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every mutating method runs as a single transaction covering the state
// change, the aggregate stock write, the history row and the transactional
// movement event, so callers never observe stock that disagrees with instance
// state. Batch methods are all-or-nothing except ReturnInstances, which is
// per-id tolerant by contract.
type ItemRepository interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetItemByCode(ctx context.Context, code models.ItemCode) (*models.Item, error)

	// ListItems retrieves a paginated item list plus the total count.
	ListItems(ctx context.Context, opts QueryOpts) ([]*models.Item, int, error)

	// AddInstances appends new in-stock instances to an equipment item,
	// recomputes its stock and writes one entry movement for the whole batch.
	// Fails with ErrDuplicateInstance if any unique id collides; nothing is
	// applied on failure.
	AddInstances(ctx context.Context, itemID uuid.UUID, instances []*models.Instance, reason, actor string) error

	// ListInstances returns an item's instances in insertion order, optionally
	// filtered by status.
	ListInstances(ctx context.Context, itemID uuid.UUID, status *models.InstanceStatus) ([]*models.Instance, error)

	// UpdateInstance applies a lifecycle-checked patch and recomputes stock.
	UpdateInstance(ctx context.Context, itemID uuid.UUID, uniqueID string, patch models.InstancePatch) (*models.Instance, error)

	// DeleteInstance removes an instance that never left stock.
	// Returns ErrInstanceNotDeletable for instances with assignment or
	// installation history.
	DeleteInstance(ctx context.Context, itemID uuid.UUID, uniqueID string) error

	// Restock increments material/tool stock for every line or none.
	Restock(ctx context.Context, lines []StockLine, reason, actor string) error

	// AssignToCrew decrements stock with an atomic conditional update, upserts
	// the crew's assigned-inventory rows and records assignment movements.
	// Fails with ErrInsufficientStock (whole batch rolled back) when any
	// line exceeds available stock.
	AssignToCrew(ctx context.Context, crewID uuid.UUID, lines []StockLine, actor string) error

	// ReturnInstances transitions instances assigned to crewID back to stock.
	// Ids not currently assigned to that crew are skipped, not failed; the
	// count actually returned is reported.
	ReturnInstances(ctx context.Context, crewID uuid.UUID, uniqueIDs []string, reason, actor string) (int, error)

	// GetBatch retrieves a batch by its code.
	GetBatch(ctx context.Context, batchCode string) (*models.Batch, error)

	// UpdateBatch edits a batch's remaining quantity, rederives its status and
	// adjusts the parent item's stock by the delta.
	UpdateBatch(ctx context.Context, batchCode string, itemID uuid.UUID, quantity int, actor string) (*models.Batch, error)
}

// UsageRow is one statistics bucket: total signed quantity change for an item
// and movement type over the queried range.
type UsageRow struct {
	ItemID       uuid.UUID
	Code         string
	MovementType models.MovementType
	Total        int
}

// MovementRepository reads the append-only history log.
// Writes happen inside ItemRepository transactions only.
type MovementRepository interface {
	// ListByRange returns movements with CreatedAt in [from, to], newest first,
	// optionally filtered by crew and item.
	ListByRange(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]*models.Movement, error)

	// SumByRange aggregates signed quantity change grouped by item and
	// movement type over [from, to], with the same optional filters.
	SumByRange(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]UsageRow, error)
}

// SnapshotRepository persists immutable inventory snapshots.
type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *models.Snapshot) error
	ListByRange(ctx context.Context, from, to time.Time) ([]*models.Snapshot, error)
}

// CrewHoldingsSource supplies per-crew assigned inventory for snapshots.
// Implemented by the crew context's repository.
type CrewHoldingsSource interface {
	ListHoldings(ctx context.Context) ([]models.CrewInventory, error)
}
