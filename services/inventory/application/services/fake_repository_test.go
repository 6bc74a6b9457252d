package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
	domsvcs "github.com/ghuser/fieldops/services/inventory/domain/services"
)

// fakeRepository is an in-memory ItemRepository + MovementRepository with the
// same contract as the Postgres implementation: batch mutations are
// all-or-nothing, equipment stock is derived from instances, returns are
// per-id tolerant.
type fakeRepository struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*models.Item
	instances map[uuid.UUID][]*models.Instance
	batches   map[string]*models.Batch
	movements []*models.Movement
	// uniqueIDs spans all items, mirroring the global unique constraint.
	uniqueIDs map[string]uuid.UUID
	// history tracks instances that ever held an assignment or installation,
	// mirroring the audit check DeleteInstance does against history rows.
	history map[string]bool
	// crews maps known crew ids to their active flag, mirroring the crew
	// lookup AssignToCrew does before moving stock.
	crews map[uuid.UUID]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		items:     make(map[uuid.UUID]*models.Item),
		instances: make(map[uuid.UUID][]*models.Instance),
		batches:   make(map[string]*models.Batch),
		uniqueIDs: make(map[string]uuid.UUID),
		history:   make(map[string]bool),
		crews:     make(map[uuid.UUID]bool),
	}
}

func (f *fakeRepository) addCrew(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.crews[id] = true
}

var _ repositories.ItemRepository = (*fakeRepository)(nil)
var _ repositories.MovementRepository = (*fakeRepository)(nil)

func (f *fakeRepository) record(itemID uuid.UUID, mt models.MovementType, qty int, reason, actor string, crewID *uuid.UUID) {
	m := models.NewMovement(itemID, mt, qty, reason).WithActor(actor)
	if crewID != nil {
		m.WithCrew(*crewID)
	}
	f.movements = append(f.movements, m)
}

func (f *fakeRepository) recomputeStock(item *models.Item) {
	item.CurrentStock = domsvcs.DeriveStock(f.instances[item.ID])
}

func (f *fakeRepository) CreateItem(_ context.Context, item *models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Code == item.Code {
			return invdomain.ErrItemAlreadyExists
		}
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepository) GetItem(_ context.Context, id uuid.UUID) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, invdomain.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepository) GetItemByCode(_ context.Context, code models.ItemCode) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.Code == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, invdomain.ErrItemNotFound
}

func (f *fakeRepository) ListItems(_ context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*models.Item, 0, len(f.items))
	for _, item := range f.items {
		copied := *item
		all = append(all, &copied)
	}
	total := len(all)
	if opts.Offset >= total {
		return nil, total, nil
	}
	end := total
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}
	return all[opts.Offset:end], total, nil
}

func (f *fakeRepository) AddInstances(_ context.Context, itemID uuid.UUID, instances []*models.Instance, reason, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return invdomain.ErrItemNotFound
	}
	if !item.IsEquipment() {
		return invdomain.ErrNotEquipment
	}
	for _, inst := range instances {
		if _, dup := f.uniqueIDs[inst.UniqueID]; dup {
			return fmt.Errorf("%w: %s", invdomain.ErrDuplicateInstance, inst.UniqueID)
		}
	}
	for _, inst := range instances {
		f.uniqueIDs[inst.UniqueID] = itemID
		f.instances[itemID] = append(f.instances[itemID], inst)
	}
	f.recomputeStock(item)
	f.record(itemID, models.MovementEntry, len(instances), reason, actor, nil)
	return nil
}

func (f *fakeRepository) ListInstances(_ context.Context, itemID uuid.UUID, status *models.InstanceStatus) ([]*models.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[itemID]; !ok {
		return nil, invdomain.ErrItemNotFound
	}
	var out []*models.Instance
	for _, inst := range f.instances[itemID] {
		if status == nil || inst.Status == *status {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (f *fakeRepository) UpdateInstance(_ context.Context, itemID uuid.UUID, uniqueID string, patch models.InstancePatch) (*models.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return nil, invdomain.ErrItemNotFound
	}
	for _, inst := range f.instances[itemID] {
		if inst.UniqueID != uniqueID {
			continue
		}
		before := inst.Status
		stockBefore := item.CurrentStock
		if err := inst.Apply(patch); err != nil {
			return nil, err
		}
		if inst.Status != before {
			f.history[uniqueID] = f.history[uniqueID] || inst.Status != models.StatusInStock
			f.recomputeStock(item)
			if delta := item.CurrentStock - stockBefore; delta != 0 {
				f.record(itemID, models.MovementAdjustment, delta, "cambio de estado", "", nil)
			}
		}
		return inst, nil
	}
	return nil, invdomain.ErrInstanceNotFound
}

func (f *fakeRepository) DeleteInstance(_ context.Context, itemID uuid.UUID, uniqueID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return invdomain.ErrItemNotFound
	}
	list := f.instances[itemID]
	for i, inst := range list {
		if inst.UniqueID != uniqueID {
			continue
		}
		if !inst.Deletable() || f.history[uniqueID] {
			return invdomain.ErrInstanceNotDeletable
		}
		f.instances[itemID] = append(list[:i], list[i+1:]...)
		delete(f.uniqueIDs, uniqueID)
		f.recomputeStock(item)
		return nil
	}
	return invdomain.ErrInstanceNotFound
}

func (f *fakeRepository) Restock(_ context.Context, lines []repositories.StockLine, reason, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// validate every line before applying any
	for _, line := range lines {
		item, ok := f.items[line.ItemID]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		if err := domsvcs.CheckBulkLine(item, line.Quantity); err != nil {
			return err
		}
	}
	for _, line := range lines {
		item := f.items[line.ItemID]
		item.CurrentStock += line.Quantity
		f.record(line.ItemID, models.MovementEntry, line.Quantity, reason, actor, nil)
	}
	return nil
}

func (f *fakeRepository) AssignToCrew(_ context.Context, crewID uuid.UUID, lines []repositories.StockLine, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	active, ok := f.crews[crewID]
	if !ok {
		return fmt.Errorf("%w: %s", crewdomain.ErrCrewNotFound, crewID)
	}
	if !active {
		return fmt.Errorf("%w: %s", crewdomain.ErrCrewInactive, crewID)
	}
	for _, line := range lines {
		item, ok := f.items[line.ItemID]
		if !ok {
			return invdomain.ErrItemNotFound
		}
		if err := domsvcs.CheckBulkLine(item, line.Quantity); err != nil {
			return err
		}
		if item.CurrentStock < line.Quantity {
			return fmt.Errorf("%w: item %s has %d, want %d", invdomain.ErrInsufficientStock, item.Code, item.CurrentStock, line.Quantity)
		}
	}
	for _, line := range lines {
		item := f.items[line.ItemID]
		item.CurrentStock -= line.Quantity
		f.record(line.ItemID, models.MovementAssignment, -line.Quantity, "asignación a cuadrilla", actor, &crewID)
	}
	return nil
}

func (f *fakeRepository) ReturnInstances(_ context.Context, crewID uuid.UUID, uniqueIDs []string, reason, actor string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	perItem := make(map[uuid.UUID]int)
	for _, uniqueID := range uniqueIDs {
		itemID, ok := f.uniqueIDs[uniqueID]
		if !ok {
			continue
		}
		for _, inst := range f.instances[itemID] {
			if inst.UniqueID == uniqueID && inst.AssignedToCrew(crewID) {
				if err := inst.ReturnToStock(); err != nil {
					return 0, err
				}
				perItem[itemID]++
			}
		}
	}
	total := 0
	for itemID, count := range perItem {
		f.recomputeStock(f.items[itemID])
		f.record(itemID, models.MovementReturn, count, reason, actor, &crewID)
		total += count
	}
	return total, nil
}

func (f *fakeRepository) GetBatch(_ context.Context, batchCode string) (*models.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch, ok := f.batches[batchCode]
	if !ok {
		return nil, invdomain.ErrBatchNotFound
	}
	copied := *batch
	return &copied, nil
}

func (f *fakeRepository) UpdateBatch(_ context.Context, batchCode string, itemID uuid.UUID, quantity int, actor string) (*models.Batch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch, ok := f.batches[batchCode]
	if !ok || batch.ItemID != itemID {
		return nil, invdomain.ErrBatchNotFound
	}
	item, ok := f.items[itemID]
	if !ok {
		return nil, invdomain.ErrItemNotFound
	}
	if item.Unit != models.UnitMetres {
		return nil, invdomain.ErrNotMetres
	}
	delta, err := batch.SetQuantity(quantity)
	if err != nil {
		return nil, err
	}
	if item.CurrentStock+delta < 0 {
		return nil, invdomain.ErrInsufficientStock
	}
	item.CurrentStock += delta
	if delta != 0 {
		f.record(itemID, models.MovementAdjustment, delta, fmt.Sprintf("edición de bobina %s", batchCode), actor, nil)
	}
	copied := *batch
	return &copied, nil
}

func (f *fakeRepository) ListByRange(_ context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]*models.Movement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Movement
	for _, m := range f.movements {
		if m.CreatedAt.Before(from) || m.CreatedAt.After(to) {
			continue
		}
		if crewID != nil && (m.CrewID == nil || *m.CrewID != *crewID) {
			continue
		}
		if itemID != nil && m.ItemID != *itemID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepository) SumByRange(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]repositories.UsageRow, error) {
	movements, err := f.ListByRange(ctx, from, to, crewID, itemID)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	type bucket struct {
		itemID uuid.UUID
		mt     models.MovementType
	}
	sums := make(map[bucket]int)
	var order []bucket
	for _, m := range movements {
		b := bucket{m.ItemID, m.Type}
		if _, ok := sums[b]; !ok {
			order = append(order, b)
		}
		sums[b] += m.QuantityChange
	}
	rows := make([]repositories.UsageRow, 0, len(order))
	for _, b := range order {
		code := ""
		if item, ok := f.items[b.itemID]; ok {
			code = item.Code.String()
		}
		rows = append(rows, repositories.UsageRow{ItemID: b.itemID, Code: code, MovementType: b.mt, Total: sums[b]})
	}
	return rows, nil
}
