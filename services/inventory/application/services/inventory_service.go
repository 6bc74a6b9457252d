package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// InventoryService orchestrates catalog, instance-ledger and stock operations.
// Consistency is enforced by the repository layer: every mutation commits the
// state change, the derived stock and the history row in one transaction, and
// publishes the movement event on the same transaction (outbox pattern).
type InventoryService struct {
	repo repositories.ItemRepository
}

// NewInventoryService returns an InventoryService wired with the given repository.
func NewInventoryService(repo repositories.ItemRepository) *InventoryService {
	return &InventoryService{repo: repo}
}

// NewInstanceInput describes one serialized unit to register.
type NewInstanceInput struct {
	UniqueID     string
	SerialNumber string
	MACAddress   string
	Notes        string
}

// CreateItem validates and persists a catalog item.
func (s *InventoryService) CreateItem(ctx context.Context, code, description, unit string, itemType models.ItemType, minimumStock int) (*models.Item, error) {
	itemCode, err := models.NewItemCode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidItemCode, err)
	}
	if !itemType.Valid() {
		return nil, fmt.Errorf("%w: unknown item type %q", invdomain.ErrInvalidItemCode, itemType)
	}

	item, err := models.NewItem(itemCode, description, unit, itemType, minimumStock)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}
	return item, nil
}

// GetItem retrieves one catalog item by ID.
func (s *InventoryService) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// ListItems returns a paginated slice of catalog items plus total count.
func (s *InventoryService) ListItems(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	items, total, err := s.repo.ListItems(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return items, total, nil
}

// AddInstances registers new in-stock serialized units on an equipment item.
// All-or-nothing: one duplicate unique id rejects the whole batch.
func (s *InventoryService) AddInstances(ctx context.Context, itemID uuid.UUID, inputs []NewInstanceInput, actor string) ([]*models.Instance, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no instances given", invdomain.ErrInvalidQuantity)
	}
	instances := make([]*models.Instance, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.UniqueID]; dup {
			return nil, fmt.Errorf("%w: %s", invdomain.ErrDuplicateInstance, in.UniqueID)
		}
		seen[in.UniqueID] = struct{}{}

		inst, err := models.NewInstance(itemID, in.UniqueID, in.SerialNumber, in.MACAddress, in.Notes)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}

	if err := s.repo.AddInstances(ctx, itemID, instances, "alta de equipos", actor); err != nil {
		return nil, fmt.Errorf("add instances: %w", err)
	}
	return instances, nil
}

// ListInstances returns an item's instances, optionally filtered by status.
func (s *InventoryService) ListInstances(ctx context.Context, itemID uuid.UUID, status *models.InstanceStatus) ([]*models.Instance, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", invdomain.ErrInvalidTransition, *status)
	}
	instances, err := s.repo.ListInstances(ctx, itemID, status)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	return instances, nil
}

// UpdateInstance applies a partial update to one instance; status changes go
// through the lifecycle state machine and the aggregate stock is recomputed.
func (s *InventoryService) UpdateInstance(ctx context.Context, itemID uuid.UUID, uniqueID string, patch models.InstancePatch) (*models.Instance, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", invdomain.ErrInvalidTransition, *patch.Status)
	}
	inst, err := s.repo.UpdateInstance(ctx, itemID, uniqueID, patch)
	if err != nil {
		return nil, fmt.Errorf("update instance: %w", err)
	}
	return inst, nil
}

// DeleteInstance removes an instance that never left stock.
func (s *InventoryService) DeleteInstance(ctx context.Context, itemID uuid.UUID, uniqueID string) error {
	if err := s.repo.DeleteInstance(ctx, itemID, uniqueID); err != nil {
		return fmt.Errorf("delete instance: %w", err)
	}
	return nil
}

// Restock increments material/tool stock for every line or none.
func (s *InventoryService) Restock(ctx context.Context, lines []repositories.StockLine, reason, actor string) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no lines given", invdomain.ErrInvalidQuantity)
	}
	if err := s.repo.Restock(ctx, lines, reason, actor); err != nil {
		return fmt.Errorf("restock: %w", err)
	}
	return nil
}

// AssignToCrew moves material/tool stock to a crew, all-or-nothing.
func (s *InventoryService) AssignToCrew(ctx context.Context, crewID uuid.UUID, lines []repositories.StockLine, actor string) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: no lines given", invdomain.ErrInvalidQuantity)
	}
	if err := s.repo.AssignToCrew(ctx, crewID, lines, actor); err != nil {
		return fmt.Errorf("assign to crew: %w", err)
	}
	return nil
}

// ReturnInstances transitions instances held by crewID back to stock.
// Per-id tolerant: ids not assigned to that crew are skipped and the count
// actually returned is reported.
func (s *InventoryService) ReturnInstances(ctx context.Context, crewID uuid.UUID, uniqueIDs []string, reason, actor string) (int, error) {
	if len(uniqueIDs) == 0 {
		return 0, nil
	}
	count, err := s.repo.ReturnInstances(ctx, crewID, uniqueIDs, reason, actor)
	if err != nil {
		return 0, fmt.Errorf("return instances: %w", err)
	}
	return count, nil
}

// UpdateBatch edits a cable batch's remaining length, rederiving its status
// and adjusting the parent item's stock by the delta.
func (s *InventoryService) UpdateBatch(ctx context.Context, batchCode string, itemID uuid.UUID, quantity int, actor string) (*models.Batch, error) {
	batch, err := s.repo.UpdateBatch(ctx, batchCode, itemID, quantity, actor)
	if err != nil {
		return nil, fmt.Errorf("update batch: %w", err)
	}
	return batch, nil
}
