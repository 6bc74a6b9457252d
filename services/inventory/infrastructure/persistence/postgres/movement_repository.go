package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

// MovementRepository implements repositories.MovementRepository against the
// append-only inventory_history table. It is read-only: rows are written
// exclusively inside ItemRepository transactions.
type MovementRepository struct {
	db *database.Database
}

// NewMovementRepository returns a MovementRepository backed by the given pool.
func NewMovementRepository(db *database.Database) *MovementRepository {
	return &MovementRepository{db: db}
}

// ListByRange returns movements with CreatedAt in [from, to], newest first,
// optionally filtered by crew and item.
func (r *MovementRepository) ListByRange(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]*models.Movement, error) {
	query := `
		SELECT id, item_id, movement_type, quantity_change, reason, crew_id, order_id, actor, created_at
		FROM inventory_history
		WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	query, args = appendFilters(query, args, "", crewID, itemID)
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movements: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var movements []*models.Movement
	for rows.Next() {
		var (
			m      models.Movement
			typ    string
			crewID sql.Null[uuid.UUID]
		)
		if err := rows.Scan(&m.ID, &m.ItemID, &typ, &m.QuantityChange, &m.Reason, &crewID, &m.OrderID, &m.Actor, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = models.MovementType(typ)
		if crewID.Valid {
			m.CrewID = &crewID.V
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movements: %w", err)
	}
	return movements, nil
}

// SumByRange aggregates signed quantity change grouped by item and movement
// type over [from, to], with the same optional filters as ListByRange.
func (r *MovementRepository) SumByRange(ctx context.Context, from, to time.Time, crewID, itemID *uuid.UUID) ([]repositories.UsageRow, error) {
	query := `
		SELECT h.item_id, i.code, h.movement_type, SUM(h.quantity_change)
		FROM inventory_history h
		JOIN inventory_items i ON i.id = h.item_id
		WHERE h.created_at >= $1 AND h.created_at <= $2`
	args := []any{from, to}
	query, args = appendFilters(query, args, "h.", crewID, itemID)
	query += ` GROUP BY h.item_id, i.code, h.movement_type ORDER BY i.code, h.movement_type`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate movements: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var usage []repositories.UsageRow
	for rows.Next() {
		var (
			row repositories.UsageRow
			typ string
		)
		if err := rows.Scan(&row.ItemID, &row.Code, &typ, &row.Total); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		row.MovementType = models.MovementType(typ)
		usage = append(usage, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return usage, nil
}

// appendFilters adds optional crew/item predicates. prefix qualifies the
// history table columns when the query joins other tables.
func appendFilters(query string, args []any, prefix string, crewID, itemID *uuid.UUID) (string, []any) {
	if crewID != nil {
		args = append(args, *crewID)
		query += fmt.Sprintf(" AND %screw_id = $%d", prefix, len(args))
	}
	if itemID != nil {
		args = append(args, *itemID)
		query += fmt.Sprintf(" AND %sitem_id = $%d", prefix, len(args))
	}
	return query, args
}
