package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// SnapshotRepository implements repositories.SnapshotRepository. Snapshots are
// immutable: there is no update or delete, and snapshot_date carries no unique
// constraint, so repeated runs on one day coexist.
type SnapshotRepository struct {
	db *database.Database
}

// NewSnapshotRepository returns a SnapshotRepository backed by the given pool.
func NewSnapshotRepository(db *database.Database) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create persists one snapshot with its denormalized lines as JSONB.
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *models.Snapshot) error {
	warehouse, err := json.Marshal(snapshot.WarehouseInventory)
	if err != nil {
		return fmt.Errorf("marshal warehouse inventory: %w", err)
	}
	crews, err := json.Marshal(snapshot.CrewInventories)
	if err != nil {
		return fmt.Errorf("marshal crew inventories: %w", err)
	}
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO inventory_snapshots (id, snapshot_date, warehouse_inventory, crew_inventories, total_items, total_warehouse_stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		snapshot.ID, snapshot.SnapshotDate, warehouse, crews,
		snapshot.TotalItems, snapshot.TotalWarehouseStock, snapshot.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// ListByRange returns snapshots whose date falls in [from, to], oldest first.
func (r *SnapshotRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*models.Snapshot, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, snapshot_date, warehouse_inventory, crew_inventories, total_items, total_warehouse_stock, created_at
		FROM inventory_snapshots
		WHERE snapshot_date >= $1 AND snapshot_date <= $2
		ORDER BY snapshot_date, created_at`, from, to)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var snapshots []*models.Snapshot
	for rows.Next() {
		var (
			s         models.Snapshot
			warehouse []byte
			crews     []byte
		)
		if err := rows.Scan(&s.ID, &s.SnapshotDate, &warehouse, &crews, &s.TotalItems, &s.TotalWarehouseStock, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal(warehouse, &s.WarehouseInventory); err != nil {
			return nil, fmt.Errorf("unmarshal warehouse inventory: %w", err)
		}
		if err := json.Unmarshal(crews, &s.CrewInventories); err != nil {
			return nil, fmt.Errorf("unmarshal crew inventories: %w", err)
		}
		snapshots = append(snapshots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}
