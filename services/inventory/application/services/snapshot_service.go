package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/fieldops/services/inventory/domain/services"
)

// listPageSize is the page size used when walking the full catalog for a snapshot.
const listPageSize = 500

// SnapshotService produces immutable point-in-time copies of warehouse and
// per-crew inventory. Each call reflects current state; calls on the same day
// produce separate snapshot rows — scheduling-level idempotence is the
// caller's job.
type SnapshotService struct {
	items     repositories.ItemRepository
	snapshots repositories.SnapshotRepository
	crews     repositories.CrewHoldingsSource
	now       func() time.Time
}

// NewSnapshotService returns a SnapshotService reading catalog state from
// items, crew holdings from crews, and persisting through snapshots.
func NewSnapshotService(items repositories.ItemRepository, snapshots repositories.SnapshotRepository, crews repositories.CrewHoldingsSource) *SnapshotService {
	return &SnapshotService{items: items, snapshots: snapshots, crews: crews, now: time.Now}
}

// Create builds and persists a snapshot of the current inventory state.
// Equipment items are checked against their instance set first: a snapshot
// must not immortalize a stock figure that diverges from the ledger.
func (s *SnapshotService) Create(ctx context.Context) (*models.Snapshot, error) {
	var warehouse []models.WarehouseLine
	for offset := 0; ; offset += listPageSize {
		page, _, err := s.items.ListItems(ctx, repositories.QueryOpts{Limit: listPageSize, Offset: offset})
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		for _, item := range page {
			if item.IsEquipment() {
				instances, err := s.items.ListInstances(ctx, item.ID, nil)
				if err != nil {
					return nil, fmt.Errorf("read instances for %s: %w", item.Code, err)
				}
				if err := domainsvcs.VerifyStock(item, instances); err != nil {
					return nil, fmt.Errorf("inconsistent stock: %w", err)
				}
			}
			warehouse = append(warehouse, models.WarehouseLine{
				ItemID:      item.ID,
				Code:        item.Code.String(),
				Description: item.Description,
				Quantity:    item.CurrentStock,
			})
		}
		if len(page) < listPageSize {
			break
		}
	}

	holdings, err := s.crews.ListHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("read crew holdings: %w", err)
	}

	snapshot := models.NewSnapshot(s.now().UTC(), warehouse, holdings)
	if err := s.snapshots.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snapshot, nil
}

// ListByRange returns snapshots whose date falls in [from, to].
func (s *SnapshotService) ListByRange(ctx context.Context, from, to time.Time) ([]*models.Snapshot, error) {
	snapshots, err := s.snapshots.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snapshots, nil
}
