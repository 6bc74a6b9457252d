package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/fieldops/pkg/database"
	"github.com/ghuser/fieldops/pkg/events"
	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
	domainevents "github.com/ghuser/fieldops/services/inventory/domain/events"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/fieldops/services/inventory/domain/services"
)

const pgUniqueViolation = "23505"

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
//
// Each mutating method runs one transaction spanning the instance/stock/batch
// write, the history insert and the movement event publish, so the stock
// invariant (equipment current_stock == count of in-stock instances) holds at
// every commit point. The owning item row is locked FOR UPDATE first, which
// serializes concurrent writers per item.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus publishes MovementRecordedEvents transactionally
// with each mutation (outbox pattern); pass nil to disable publishing.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// CreateItem persists a new catalog item.
// Returns ErrItemAlreadyExists on code collisions.
func (r *ItemRepository) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO inventory_items (id, code, description, unit, item_type, current_stock, minimum_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		item.ID, item.Code.String(), item.Description, item.Unit, string(item.Type),
		item.CurrentStock, item.MinimumStock, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return invdomain.ErrItemAlreadyExists
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return scanItem(r.db.DB().QueryRowContext(ctx, selectItem+` WHERE id = $1`, id))
}

// GetItemByCode retrieves an item by catalog code. Returns ErrItemNotFound if absent.
func (r *ItemRepository) GetItemByCode(ctx context.Context, code models.ItemCode) (*models.Item, error) {
	return scanItem(r.db.DB().QueryRowContext(ctx, selectItem+` WHERE code = $1`, code.String()))
}

// ListItems retrieves a paginated item list plus the total count.
func (r *ItemRepository) ListItems(ctx context.Context, opts repositories.QueryOpts) ([]*models.Item, int, error) {
	rows, err := r.db.DB().QueryContext(ctx, selectItem+` ORDER BY code LIMIT $1 OFFSET $2`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}
	return items, total, nil
}

// AddInstances appends new in-stock instances to an equipment item, recomputes
// its aggregate stock and writes one entry movement for the batch.
// All-or-nothing: a duplicate unique id anywhere rolls back the whole call.
func (r *ItemRepository) AddInstances(ctx context.Context, itemID uuid.UUID, instances []*models.Instance, reason, actor string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		existing, err := listInstanceIDs(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if err := domainsvcs.CheckNewInstances(item, existing, instances); err != nil {
			return err
		}

		for _, inst := range instances {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO equipment_instances (item_id, unique_id, serial_number, mac_address, status, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				itemID, inst.UniqueID, inst.SerialNumber, inst.MACAddress, string(inst.Status), inst.Notes, inst.CreatedAt,
			); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
					return fmt.Errorf("%w: %s", invdomain.ErrDuplicateInstance, inst.UniqueID)
				}
				return fmt.Errorf("insert instance %s: %w", inst.UniqueID, err)
			}
		}

		stock, err := recomputeStock(ctx, tx, itemID)
		if err != nil {
			return err
		}

		movement := models.NewMovement(itemID, models.MovementEntry, len(instances), reason).WithActor(actor)
		return r.recordMovement(ctx, tx, item, movement, stock)
	})
}

// ListInstances returns an item's instances in insertion order, optionally
// filtered by status. Returns ErrItemNotFound when the item does not exist.
func (r *ItemRepository) ListInstances(ctx context.Context, itemID uuid.UUID, status *models.InstanceStatus) ([]*models.Instance, error) {
	if _, err := r.GetItem(ctx, itemID); err != nil {
		return nil, err
	}

	query := selectInstance + ` WHERE item_id = $1`
	args := []any{itemID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY seq`

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query instances: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var instances []*models.Instance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instances: %w", err)
	}
	return instances, nil
}

// UpdateInstance applies a lifecycle-checked patch to one instance and
// recomputes the item's aggregate stock in the same transaction. A transition
// that moves the unit in or out of stock logs an adjustment movement with the
// stock delta, so statistics and low-stock consumers see the change.
func (r *ItemRepository) UpdateInstance(ctx context.Context, itemID uuid.UUID, uniqueID string, patch models.InstancePatch) (*models.Instance, error) {
	var updated *models.Instance
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}

		inst, err := lockInstance(ctx, tx, itemID, uniqueID)
		if err != nil {
			return err
		}
		if err := inst.Apply(patch); err != nil {
			return err
		}
		if err := writeInstance(ctx, tx, inst); err != nil {
			return err
		}
		stock, err := recomputeStock(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if delta := stock - item.CurrentStock; delta != 0 {
			movement := models.NewMovement(itemID, models.MovementAdjustment, delta, "cambio de estado")
			if err := r.recordMovement(ctx, tx, item, movement, stock); err != nil {
				return err
			}
		}
		updated = inst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteInstance removes an instance that never left stock and recomputes the
// aggregate. Instances with assignment or installation history are preserved
// for audit and fail with ErrInstanceNotDeletable.
func (r *ItemRepository) DeleteInstance(ctx context.Context, itemID uuid.UUID, uniqueID string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := lockItem(ctx, tx, itemID); err != nil {
			return err
		}
		inst, err := lockInstance(ctx, tx, itemID, uniqueID)
		if err != nil {
			return err
		}
		if !inst.Deletable() {
			return fmt.Errorf("%w: %s is %s", invdomain.ErrInstanceNotDeletable, uniqueID, inst.Status)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM equipment_instances WHERE item_id = $1 AND unique_id = $2`, itemID, uniqueID,
		); err != nil {
			return fmt.Errorf("delete instance: %w", err)
		}
		_, err = recomputeStock(ctx, tx, itemID)
		return err
	})
}

// Restock increments material/tool stock for every line or none, writing one
// entry movement per line.
func (r *ItemRepository) Restock(ctx context.Context, lines []repositories.StockLine, reason, actor string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, line := range lines {
			item, err := lockItem(ctx, tx, line.ItemID)
			if err != nil {
				return err
			}
			if err := domainsvcs.CheckBulkLine(item, line.Quantity); err != nil {
				return err
			}

			var stock int
			if err := tx.QueryRowContext(ctx, `
				UPDATE inventory_items SET current_stock = current_stock + $1, updated_at = NOW()
				WHERE id = $2 RETURNING current_stock`,
				line.Quantity, line.ItemID,
			).Scan(&stock); err != nil {
				return fmt.Errorf("restock item %s: %w", item.Code, err)
			}

			movement := models.NewMovement(line.ItemID, models.MovementEntry, line.Quantity, reason).WithActor(actor)
			if err := r.recordMovement(ctx, tx, item, movement, stock); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignToCrew moves material/tool stock to a crew. The stock check and the
// decrement are one conditional UPDATE, so two concurrent assignments whose
// combined quantity exceeds stock cannot both succeed. The whole batch rolls
// back on the first ErrInsufficientStock.
func (r *ItemRepository) AssignToCrew(ctx context.Context, crewID uuid.UUID, lines []repositories.StockLine, actor string) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := checkCrew(ctx, tx, crewID); err != nil {
			return err
		}
		for _, line := range lines {
			item, err := lockItem(ctx, tx, line.ItemID)
			if err != nil {
				return err
			}
			if err := domainsvcs.CheckBulkLine(item, line.Quantity); err != nil {
				return err
			}

			var stock int
			err = tx.QueryRowContext(ctx, `
				UPDATE inventory_items SET current_stock = current_stock - $1, updated_at = NOW()
				WHERE id = $2 AND current_stock >= $1 RETURNING current_stock`,
				line.Quantity, line.ItemID,
			).Scan(&stock)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: item %s has %d, requested %d",
					invdomain.ErrInsufficientStock, item.Code, item.CurrentStock, line.Quantity)
			}
			if err != nil {
				return fmt.Errorf("decrement stock for %s: %w", item.Code, err)
			}

			if _, err := tx.ExecContext(ctx, `
				INSERT INTO crew_assigned_inventory (crew_id, item_id, quantity, updated_at)
				VALUES ($1, $2, $3, NOW())
				ON CONFLICT (crew_id, item_id)
				DO UPDATE SET quantity = crew_assigned_inventory.quantity + EXCLUDED.quantity, updated_at = NOW()`,
				crewID, line.ItemID, line.Quantity,
			); err != nil {
				return fmt.Errorf("upsert crew inventory: %w", err)
			}

			movement := models.NewMovement(line.ItemID, models.MovementAssignment, -line.Quantity, "asignación a cuadrilla").
				WithCrew(crewID).WithActor(actor)
			if err := r.recordMovement(ctx, tx, item, movement, stock); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReturnInstances transitions instances assigned to crewID back to stock.
// Ids not found or not currently assigned to that crew are skipped rather than
// failing the call; the count actually returned is reported. One return
// movement is written per touched item with quantity = instances returned.
func (r *ItemRepository) ReturnInstances(ctx context.Context, crewID uuid.UUID, uniqueIDs []string, reason, actor string) (int, error) {
	returned := 0
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		// Resolve which items the ids touch before taking any row locks, then
		// lock item rows ahead of instance rows in a stable order. This keeps
		// the item→instance lock order of the other mutations; mixing orders
		// between concurrent transactions can deadlock.
		items := make(map[uuid.UUID]*models.Item)
		var itemIDs []uuid.UUID
		for _, uniqueID := range uniqueIDs {
			var itemID uuid.UUID
			err := tx.QueryRowContext(ctx,
				`SELECT item_id FROM equipment_instances WHERE unique_id = $1`, uniqueID,
			).Scan(&itemID)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("resolve instance %s: %w", uniqueID, err)
			}
			if _, seen := items[itemID]; !seen {
				items[itemID] = nil
				itemIDs = append(itemIDs, itemID)
			}
		}
		sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i].String() < itemIDs[j].String() })
		for _, itemID := range itemIDs {
			item, err := lockItem(ctx, tx, itemID)
			if err != nil {
				return err
			}
			items[itemID] = item
		}

		perItem := make(map[uuid.UUID]int)
		for _, uniqueID := range uniqueIDs {
			inst, err := lockInstanceByUniqueID(ctx, tx, uniqueID)
			if errors.Is(err, invdomain.ErrInstanceNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if !inst.AssignedToCrew(crewID) {
				continue
			}
			if err := inst.ReturnToStock(); err != nil {
				return err
			}
			if err := writeInstance(ctx, tx, inst); err != nil {
				return err
			}
			perItem[inst.ItemID]++
			returned++
		}

		for _, itemID := range itemIDs {
			count := perItem[itemID]
			if count == 0 {
				continue
			}
			stock, err := recomputeStock(ctx, tx, itemID)
			if err != nil {
				return err
			}
			movement := models.NewMovement(itemID, models.MovementReturn, count, reason).
				WithCrew(crewID).WithActor(actor)
			if err := r.recordMovement(ctx, tx, items[itemID], movement, stock); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return returned, nil
}

// GetBatch retrieves a batch by its code. Returns ErrBatchNotFound if absent.
func (r *ItemRepository) GetBatch(ctx context.Context, batchCode string) (*models.Batch, error) {
	return scanBatch(r.db.DB().QueryRowContext(ctx, selectBatch+` WHERE batch_code = $1`, batchCode))
}

// UpdateBatch edits a batch's remaining length, rederives its status and
// adjusts the parent item's stock by the delta, logging an adjustment movement.
func (r *ItemRepository) UpdateBatch(ctx context.Context, batchCode string, itemID uuid.UUID, quantity int, actor string) (*models.Batch, error) {
	var updated *models.Batch
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		item, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.Unit != models.UnitMetres {
			return fmt.Errorf("%w: item %s unit is %s", invdomain.ErrNotMetres, item.Code, item.Unit)
		}

		batch, err := scanBatch(tx.QueryRowContext(ctx, selectBatch+` WHERE batch_code = $1 AND item_id = $2 FOR UPDATE`, batchCode, itemID))
		if err != nil {
			return err
		}

		delta, err := batch.SetQuantity(quantity)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE inventory_batches SET current_quantity = $1, status = $2, updated_at = $3 WHERE id = $4`,
			batch.CurrentQuantity, string(batch.Status), batch.UpdatedAt, batch.ID,
		); err != nil {
			return fmt.Errorf("update batch %s: %w", batchCode, err)
		}

		if delta != 0 {
			var stock int
			err = tx.QueryRowContext(ctx, `
				UPDATE inventory_items SET current_stock = current_stock + $1, updated_at = NOW()
				WHERE id = $2 AND current_stock + $1 >= 0 RETURNING current_stock`,
				delta, itemID,
			).Scan(&stock)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: batch edit would drive item %s stock below zero", invdomain.ErrInvalidQuantity, item.Code)
			}
			if err != nil {
				return fmt.Errorf("adjust stock for %s: %w", item.Code, err)
			}

			movement := models.NewMovement(itemID, models.MovementAdjustment, delta,
				fmt.Sprintf("edición de bobina %s", batchCode)).WithActor(actor)
			if err := r.recordMovement(ctx, tx, item, movement, stock); err != nil {
				return err
			}
		}

		updated = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// recordMovement appends a history row and publishes the movement event on the
// same transaction.
func (r *ItemRepository) recordMovement(ctx context.Context, tx *sql.Tx, item *models.Item, m *models.Movement, resultingStock int) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO inventory_history (id, item_id, movement_type, quantity_change, reason, crew_id, order_id, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, m.ItemID, string(m.Type), m.QuantityChange, m.Reason, m.CrewID, m.OrderID, m.Actor, m.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}

	if r.bus == nil {
		return nil
	}

	event := domainevents.MovementRecordedEvent{
		EventID:        uuid.New(),
		Version:        1,
		MovementID:     m.ID,
		ItemID:         m.ItemID,
		ItemCode:       item.Code.String(),
		MovementType:   string(m.Type),
		QuantityChange: m.QuantityChange,
		Reason:         m.Reason,
		CrewID:         m.CrewID,
		Actor:          m.Actor,
		ResultingStock: resultingStock,
		MinimumStock:   item.MinimumStock,
		OccurredAt:     m.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicMovementRecorded, msg)
}

// lockItem reads an item row FOR UPDATE, serializing writers per item.
func lockItem(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*models.Item, error) {
	return scanItem(tx.QueryRowContext(ctx, selectItem+` WHERE id = $1 FOR UPDATE`, id))
}

// checkCrew verifies the target crew exists and is active before any stock
// moves. The crews table belongs to the crew context; reading it here turns
// what would otherwise surface as a foreign-key violation into the crew
// domain's sentinel errors.
func checkCrew(ctx context.Context, tx *sql.Tx, crewID uuid.UUID) error {
	var active bool
	err := tx.QueryRowContext(ctx, `SELECT active FROM crews WHERE id = $1`, crewID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", crewdomain.ErrCrewNotFound, crewID)
	}
	if err != nil {
		return fmt.Errorf("check crew: %w", err)
	}
	if !active {
		return fmt.Errorf("%w: %s", crewdomain.ErrCrewInactive, crewID)
	}
	return nil
}

// listInstanceIDs reads the unique ids already registered on an item, for the
// duplicate check ahead of an add.
func listInstanceIDs(ctx context.Context, tx *sql.Tx, itemID uuid.UUID) ([]*models.Instance, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT unique_id FROM equipment_instances WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("query instance ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var instances []*models.Instance
	for rows.Next() {
		inst := &models.Instance{ItemID: itemID}
		if err := rows.Scan(&inst.UniqueID); err != nil {
			return nil, fmt.Errorf("scan instance id: %w", err)
		}
		instances = append(instances, inst)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instance ids: %w", err)
	}
	return instances, nil
}

func lockInstance(ctx context.Context, tx *sql.Tx, itemID uuid.UUID, uniqueID string) (*models.Instance, error) {
	return scanInstance(tx.QueryRowContext(ctx,
		selectInstance+` WHERE item_id = $1 AND unique_id = $2 FOR UPDATE`, itemID, uniqueID))
}

func lockInstanceByUniqueID(ctx context.Context, tx *sql.Tx, uniqueID string) (*models.Instance, error) {
	return scanInstance(tx.QueryRowContext(ctx,
		selectInstance+` WHERE unique_id = $1 FOR UPDATE`, uniqueID))
}

// recomputeStock derives an equipment item's stock from its instance set
// inside the current transaction and persists it.
func recomputeStock(ctx context.Context, tx *sql.Tx, itemID uuid.UUID) (int, error) {
	var stock int
	err := tx.QueryRowContext(ctx, `
		UPDATE inventory_items SET current_stock = (
			SELECT COUNT(*) FROM equipment_instances WHERE item_id = $1 AND status = 'in-stock'
		), updated_at = NOW()
		WHERE id = $1 RETURNING current_stock`, itemID,
	).Scan(&stock)
	if err != nil {
		return 0, fmt.Errorf("recompute stock: %w", err)
	}
	return stock, nil
}

// writeInstance persists an instance's mutable columns.
func writeInstance(ctx context.Context, tx *sql.Tx, inst *models.Instance) error {
	var (
		assignedCrewID  *uuid.UUID
		assignedOrderID *string
		assignedAt      *time.Time
		installedOrder  *string
		installedDate   *time.Time
		installedLoc    *string
	)
	if inst.Assignment != nil {
		assignedCrewID = &inst.Assignment.CrewID
		assignedOrderID = &inst.Assignment.OrderID
		assignedAt = &inst.Assignment.AssignedAt
	}
	if inst.Installation != nil {
		installedOrder = &inst.Installation.OrderID
		installedDate = &inst.Installation.InstalledDate
		installedLoc = &inst.Installation.Location
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE equipment_instances
		SET status = $1, notes = $2,
		    assigned_crew_id = $3, assigned_order_id = $4, assigned_at = $5,
		    installed_order_id = $6, installed_date = $7, installed_location = $8
		WHERE item_id = $9 AND unique_id = $10`,
		string(inst.Status), inst.Notes,
		assignedCrewID, assignedOrderID, assignedAt,
		installedOrder, installedDate, installedLoc,
		inst.ItemID, inst.UniqueID,
	); err != nil {
		return fmt.Errorf("update instance %s: %w", inst.UniqueID, err)
	}
	return nil
}

const selectItem = `
	SELECT id, code, description, unit, item_type, current_stock, minimum_stock, created_at, updated_at
	FROM inventory_items`

const selectInstance = `
	SELECT item_id, unique_id, serial_number, mac_address, status,
	       assigned_crew_id, assigned_order_id, assigned_at,
	       installed_order_id, installed_date, installed_location,
	       notes, created_at
	FROM equipment_instances`

const selectBatch = `
	SELECT id, batch_code, item_id, initial_quantity, current_quantity, location, crew_id, status, created_at, updated_at
	FROM inventory_batches`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item models.Item
		code string
		typ  string
	)
	err := row.Scan(&item.ID, &code, &item.Description, &item.Unit, &typ,
		&item.CurrentStock, &item.MinimumStock, &item.CreatedAt, &item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invdomain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.Code = models.ItemCode(code)
	item.Type = models.ItemType(typ)
	return &item, nil
}

func scanInstance(row rowScanner) (*models.Instance, error) {
	var (
		inst            models.Instance
		status          string
		assignedCrewID  sql.Null[uuid.UUID]
		assignedOrderID sql.NullString
		assignedAt      sql.NullTime
		installedOrder  sql.NullString
		installedDate   sql.NullTime
		installedLoc    sql.NullString
	)
	err := row.Scan(&inst.ItemID, &inst.UniqueID, &inst.SerialNumber, &inst.MACAddress, &status,
		&assignedCrewID, &assignedOrderID, &assignedAt,
		&installedOrder, &installedDate, &installedLoc,
		&inst.Notes, &inst.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invdomain.ErrInstanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan instance: %w", err)
	}
	inst.Status = models.InstanceStatus(status)
	if assignedCrewID.Valid {
		inst.Assignment = &models.Assignment{
			CrewID:     assignedCrewID.V,
			OrderID:    assignedOrderID.String,
			AssignedAt: assignedAt.Time,
		}
	}
	if installedOrder.Valid {
		inst.Installation = &models.Installation{
			OrderID:       installedOrder.String,
			InstalledDate: installedDate.Time,
			Location:      installedLoc.String,
		}
	}
	return &inst, nil
}

func scanBatch(row rowScanner) (*models.Batch, error) {
	var (
		batch    models.Batch
		location string
		status   string
		crewID   sql.Null[uuid.UUID]
	)
	err := row.Scan(&batch.ID, &batch.BatchCode, &batch.ItemID, &batch.InitialQuantity,
		&batch.CurrentQuantity, &location, &crewID, &status, &batch.CreatedAt, &batch.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, invdomain.ErrBatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	batch.Location = models.BatchLocation(location)
	batch.Status = models.BatchStatus(status)
	if crewID.Valid {
		batch.CrewID = &crewID.V
	}
	return &batch, nil
}
