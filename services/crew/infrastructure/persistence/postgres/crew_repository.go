package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/pkg/database"
	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	"github.com/ghuser/fieldops/services/crew/domain/models"
	invmodels "github.com/ghuser/fieldops/services/inventory/domain/models"
)

// CrewRepository implements repositories.CrewRepository against PostgreSQL.
// It also satisfies the inventory context's CrewHoldingsSource so the snapshot
// engine can read per-crew holdings without owning crew tables.
type CrewRepository struct {
	db *database.Database
}

// NewCrewRepository returns a CrewRepository backed by the given pool.
func NewCrewRepository(db *database.Database) *CrewRepository {
	return &CrewRepository{db: db}
}

// Save persists a new crew.
func (r *CrewRepository) Save(ctx context.Context, crew *models.Crew) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO crews (id, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		crew.ID, crew.Name, crew.Active, crew.CreatedAt, crew.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert crew: %w", err)
	}
	return nil
}

// GetByID retrieves a crew with its assigned-inventory lines populated.
// Returns ErrCrewNotFound if absent.
func (r *CrewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Crew, error) {
	var crew models.Crew
	err := r.db.DB().QueryRowContext(ctx, `
		SELECT id, name, active, created_at, updated_at FROM crews WHERE id = $1`, id,
	).Scan(&crew.ID, &crew.Name, &crew.Active, &crew.CreatedAt, &crew.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, crewdomain.ErrCrewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query crew: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT a.item_id, i.code, a.quantity
		FROM crew_assigned_inventory a
		JOIN inventory_items i ON i.id = a.item_id
		WHERE a.crew_id = $1 AND a.quantity > 0
		ORDER BY i.code`, id)
	if err != nil {
		return nil, fmt.Errorf("query crew inventory: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var line models.AssignedLine
		if err := rows.Scan(&line.ItemID, &line.ItemCode, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan crew inventory: %w", err)
		}
		crew.AssignedInventory = append(crew.AssignedInventory, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crew inventory: %w", err)
	}
	return &crew, nil
}

// List retrieves all crews ordered by name, without assigned-inventory lines.
func (r *CrewRepository) List(ctx context.Context) ([]*models.Crew, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, active, created_at, updated_at FROM crews ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query crews: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var crews []*models.Crew
	for rows.Next() {
		var crew models.Crew
		if err := rows.Scan(&crew.ID, &crew.Name, &crew.Active, &crew.CreatedAt, &crew.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crew: %w", err)
		}
		crews = append(crews, &crew)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crews: %w", err)
	}
	return crews, nil
}

// ListHoldings returns every crew's current assigned inventory, denormalized
// for the snapshot engine. Crews with nothing assigned are omitted.
func (r *CrewRepository) ListHoldings(ctx context.Context) ([]invmodels.CrewInventory, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT c.id, c.name, a.item_id, i.code, a.quantity
		FROM crews c
		JOIN crew_assigned_inventory a ON a.crew_id = c.id
		JOIN inventory_items i ON i.id = a.item_id
		WHERE a.quantity > 0
		ORDER BY c.name, i.code`)
	if err != nil {
		return nil, fmt.Errorf("query crew holdings: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var (
		holdings []invmodels.CrewInventory
		current  *invmodels.CrewInventory
	)
	for rows.Next() {
		var (
			crewID   uuid.UUID
			crewName string
			line     invmodels.CrewLine
		)
		if err := rows.Scan(&crewID, &crewName, &line.ItemID, &line.Code, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan crew holding: %w", err)
		}
		if current == nil || current.CrewID != crewID {
			holdings = append(holdings, invmodels.CrewInventory{CrewID: crewID, CrewName: crewName})
			current = &holdings[len(holdings)-1]
		}
		current.Items = append(current.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crew holdings: %w", err)
	}
	return holdings, nil
}
