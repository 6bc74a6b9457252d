package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	crewdomain "github.com/ghuser/fieldops/services/crew/domain"
	invdomain "github.com/ghuser/fieldops/services/inventory/domain"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
	"github.com/ghuser/fieldops/services/inventory/domain/repositories"
)

func newTestService(t *testing.T) (*InventoryService, *fakeRepository) {
	t.Helper()
	repo := newFakeRepository()
	return NewInventoryService(repo), repo
}

func createEquipmentItem(t *testing.T, svc *InventoryService) *models.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), "EQ-01", "ONT router", "unidades", models.TypeEquipment, 2)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return item
}

func createMaterialItem(t *testing.T, svc *InventoryService, code string) *models.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), code, "Cable drop", "metros", models.TypeMaterial, 100)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	return item
}

func TestCreateItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("creates with zero stock", func(t *testing.T) {
		item := createEquipmentItem(t, svc)
		if item.CurrentStock != 0 {
			t.Fatalf("new item must start at zero stock, got %d", item.CurrentStock)
		}
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, "EQ-01", "dup", "unidades", models.TypeEquipment, 0)
		if !errors.Is(err, invdomain.ErrItemAlreadyExists) {
			t.Fatalf("expected ErrItemAlreadyExists, got %v", err)
		}
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, "X", "too short", "unidades", models.TypeTool, 0)
		if !errors.Is(err, invdomain.ErrInvalidItemCode) {
			t.Fatalf("expected ErrInvalidItemCode, got %v", err)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := svc.CreateItem(ctx, "VH-01", "van", "unidades", models.ItemType("vehicle"), 0)
		if err == nil {
			t.Fatal("expected error for unknown item type")
		}
	})
}

func TestAddInstances(t *testing.T) {
	ctx := context.Background()

	t.Run("registering N instances sets stock to N", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createEquipmentItem(t, svc)

		inputs := []NewInstanceInput{{UniqueID: "SN001"}, {UniqueID: "SN002"}, {UniqueID: "SN003"}}
		instances, err := svc.AddInstances(ctx, item.ID, inputs, "ana")
		if err != nil {
			t.Fatalf("AddInstances: %v", err)
		}
		if len(instances) != 3 {
			t.Fatalf("expected 3 instances, got %d", len(instances))
		}

		got, err := svc.GetItem(ctx, item.ID)
		if err != nil {
			t.Fatalf("GetItem: %v", err)
		}
		if got.CurrentStock != 3 {
			t.Fatalf("expected stock 3, got %d", got.CurrentStock)
		}
	})

	t.Run("one duplicate rejects the whole batch", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createEquipmentItem(t, svc)

		if _, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}}, "ana"); err != nil {
			t.Fatalf("seed: %v", err)
		}

		_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN100"}, {UniqueID: "SN001"}}, "ana")
		if !errors.Is(err, invdomain.ErrDuplicateInstance) {
			t.Fatalf("expected ErrDuplicateInstance, got %v", err)
		}

		// Nothing from the failed batch may be visible.
		instances, err := svc.ListInstances(ctx, item.ID, nil)
		if err != nil {
			t.Fatalf("ListInstances: %v", err)
		}
		if len(instances) != 1 {
			t.Fatalf("failed batch must not leave partial instances: got %d", len(instances))
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 1 {
			t.Fatalf("stock must stay 1 after rejected batch, got %d", got.CurrentStock)
		}
	})

	t.Run("duplicate inside the request batch", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createEquipmentItem(t, svc)
		_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN009"}, {UniqueID: "SN009"}}, "ana")
		if !errors.Is(err, invdomain.ErrDuplicateInstance) {
			t.Fatalf("expected ErrDuplicateInstance, got %v", err)
		}
	})

	t.Run("non-equipment item rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createMaterialItem(t, svc, "CBL-DROP")
		_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}}, "ana")
		if !errors.Is(err, invdomain.ErrNotEquipment) {
			t.Fatalf("expected ErrNotEquipment, got %v", err)
		}
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createEquipmentItem(t, svc)
		_, err := svc.AddInstances(ctx, item.ID, nil, "ana")
		if !errors.Is(err, invdomain.ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestUpdateInstance_StockFollowsStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := createEquipmentItem(t, svc)
	crewID := uuid.New()

	_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}, {UniqueID: "SN002"}}, "ana")
	if err != nil {
		t.Fatalf("AddInstances: %v", err)
	}

	assigned := models.StatusAssigned
	_, err = svc.UpdateInstance(ctx, item.ID, "SN001", models.InstancePatch{
		Status:     &assigned,
		Assignment: &models.Assignment{CrewID: crewID, OrderID: "ORD-1"},
	})
	if err != nil {
		t.Fatalf("assign SN001: %v", err)
	}

	got, _ := svc.GetItem(ctx, item.ID)
	if got.CurrentStock != 1 {
		t.Fatalf("assigning one of two instances must leave stock 1, got %d", got.CurrentStock)
	}

	// Re-asserting assigned with a different crew must fail, not silently
	// keep the current holder.
	otherCrew := uuid.New()
	_, err = svc.UpdateInstance(ctx, item.ID, "SN001", models.InstancePatch{
		Status:     &assigned,
		Assignment: &models.Assignment{CrewID: otherCrew, OrderID: "ORD-2"},
	})
	if !errors.Is(err, invdomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition reassigning SN001, got %v", err)
	}
	instances, _ := svc.ListInstances(ctx, item.ID, &assigned)
	if len(instances) != 1 || !instances[0].AssignedToCrew(crewID) {
		t.Fatal("failed reassignment must keep SN001 with the original crew")
	}

	damaged := models.StatusDamaged
	if _, err := svc.UpdateInstance(ctx, item.ID, "SN002", models.InstancePatch{Status: &damaged}); err != nil {
		t.Fatalf("damage SN002: %v", err)
	}
	got, _ = svc.GetItem(ctx, item.ID)
	if got.CurrentStock != 0 {
		t.Fatalf("damaging the last in-stock instance must zero the stock, got %d", got.CurrentStock)
	}

	// Damaged is terminal.
	inStock := models.StatusInStock
	if _, err := svc.UpdateInstance(ctx, item.ID, "SN002", models.InstancePatch{Status: &inStock}); !errors.Is(err, invdomain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition repairing damaged unit, got %v", err)
	}
}

func TestDeleteInstance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := createEquipmentItem(t, svc)
	crewID := uuid.New()

	_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}, {UniqueID: "SN002"}}, "ana")
	if err != nil {
		t.Fatalf("AddInstances: %v", err)
	}

	t.Run("deletes pristine instance and recomputes stock", func(t *testing.T) {
		if err := svc.DeleteInstance(ctx, item.ID, "SN002"); err != nil {
			t.Fatalf("DeleteInstance: %v", err)
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 1 {
			t.Fatalf("expected stock 1 after delete, got %d", got.CurrentStock)
		}
	})

	t.Run("refuses instance with assignment history", func(t *testing.T) {
		assigned := models.StatusAssigned
		if _, err := svc.UpdateInstance(ctx, item.ID, "SN001", models.InstancePatch{
			Status:     &assigned,
			Assignment: &models.Assignment{CrewID: crewID},
		}); err != nil {
			t.Fatalf("assign: %v", err)
		}
		if _, err := svc.ReturnInstances(ctx, crewID, []string{"SN001"}, "devolución", "ana"); err != nil {
			t.Fatalf("return: %v", err)
		}

		err := svc.DeleteInstance(ctx, item.ID, "SN001")
		if !errors.Is(err, invdomain.ErrInstanceNotDeletable) {
			t.Fatalf("expected ErrInstanceNotDeletable, got %v", err)
		}
	})

	t.Run("unknown instance", func(t *testing.T) {
		err := svc.DeleteInstance(ctx, item.ID, "SN999")
		if !errors.Is(err, invdomain.ErrInstanceNotFound) {
			t.Fatalf("expected ErrInstanceNotFound, got %v", err)
		}
	})
}

func TestRestockAndAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("restock adds five", func(t *testing.T) {
		svc, repo := newTestService(t)
		item := createMaterialItem(t, svc, "CBL-DROP")

		if err := svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 5}}, "compra", "ana"); err != nil {
			t.Fatalf("Restock: %v", err)
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 5 {
			t.Fatalf("expected stock 5, got %d", got.CurrentStock)
		}
		if len(repo.movements) != 1 || repo.movements[0].Type != models.MovementEntry || repo.movements[0].QuantityChange != 5 {
			t.Fatalf("expected one entry movement of +5, got %+v", repo.movements)
		}
	})

	t.Run("insufficient stock leaves stock unchanged", func(t *testing.T) {
		svc, repo := newTestService(t)
		item := createMaterialItem(t, svc, "CBL-DROP")
		_ = svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 3}}, "compra", "ana")

		crewID := uuid.New()
		repo.addCrew(crewID)
		err := svc.AssignToCrew(ctx, crewID, []repositories.StockLine{{ItemID: item.ID, Quantity: 10}}, "ana")
		if !errors.Is(err, invdomain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 3 {
			t.Fatalf("failed assignment must not change stock: got %d", got.CurrentStock)
		}
	})

	t.Run("multi-line assignment is all-or-nothing", func(t *testing.T) {
		svc, repo := newTestService(t)
		a := createMaterialItem(t, svc, "CBL-DROP")
		b := createMaterialItem(t, svc, "CBL-UTP")
		_ = svc.Restock(ctx, []repositories.StockLine{{ItemID: a.ID, Quantity: 10}, {ItemID: b.ID, Quantity: 1}}, "compra", "ana")

		crewID := uuid.New()
		repo.addCrew(crewID)
		err := svc.AssignToCrew(ctx, crewID, []repositories.StockLine{
			{ItemID: a.ID, Quantity: 5},
			{ItemID: b.ID, Quantity: 2}, // exceeds stock
		}, "ana")
		if !errors.Is(err, invdomain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		gotA, _ := svc.GetItem(ctx, a.ID)
		if gotA.CurrentStock != 10 {
			t.Fatalf("first line must be rolled back too: got %d", gotA.CurrentStock)
		}
	})

	t.Run("equipment cannot move as bulk stock", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createEquipmentItem(t, svc)
		err := svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 5}}, "compra", "ana")
		if !errors.Is(err, invdomain.ErrNotBulkItem) {
			t.Fatalf("expected ErrNotBulkItem, got %v", err)
		}
	})

	t.Run("unknown crew leaves stock unchanged", func(t *testing.T) {
		svc, _ := newTestService(t)
		item := createMaterialItem(t, svc, "CBL-DROP")
		_ = svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 5}}, "compra", "ana")

		err := svc.AssignToCrew(ctx, uuid.New(), []repositories.StockLine{{ItemID: item.ID, Quantity: 2}}, "ana")
		if !errors.Is(err, crewdomain.ErrCrewNotFound) {
			t.Fatalf("expected ErrCrewNotFound, got %v", err)
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 5 {
			t.Fatalf("failed assignment must not change stock: got %d", got.CurrentStock)
		}
	})
}

func TestAssignToCrew_Concurrent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)
	item := createMaterialItem(t, svc, "CBL-DROP")
	if err := svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 5}}, "compra", "ana"); err != nil {
		t.Fatalf("Restock: %v", err)
	}
	crewA := uuid.New()
	crewB := uuid.New()
	repo.addCrew(crewA)
	repo.addCrew(crewB)

	// Two assignments of 3 against a stock of 5: exactly one may win.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, crewID := range []uuid.UUID{crewA, crewB} {
		wg.Add(1)
		go func(i int, crewID uuid.UUID) {
			defer wg.Done()
			errs[i] = svc.AssignToCrew(ctx, crewID, []repositories.StockLine{{ItemID: item.ID, Quantity: 3}}, "ana")
		}(i, crewID)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err == nil {
			continue
		}
		if !errors.Is(err, invdomain.ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
		failures++
	}
	if failures != 1 {
		t.Fatalf("expected exactly one failed assignment, got %d", failures)
	}
	got, _ := svc.GetItem(ctx, item.ID)
	if got.CurrentStock != 2 {
		t.Fatalf("expected stock 2 after one successful assignment, got %d", got.CurrentStock)
	}
}

func TestReturnInstances(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	item := createEquipmentItem(t, svc)
	crewID := uuid.New()
	otherCrew := uuid.New()

	_, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}, {UniqueID: "SN002"}, {UniqueID: "SN003"}}, "ana")
	if err != nil {
		t.Fatalf("AddInstances: %v", err)
	}

	assigned := models.StatusAssigned
	for _, id := range []string{"SN001", "SN002"} {
		if _, err := svc.UpdateInstance(ctx, item.ID, id, models.InstancePatch{
			Status:     &assigned,
			Assignment: &models.Assignment{CrewID: crewID},
		}); err != nil {
			t.Fatalf("assign %s: %v", id, err)
		}
	}

	// SN003 stays in stock; SN999 does not exist; SN002 belongs to crewID.
	// Returning for otherCrew matches nothing.
	count, err := svc.ReturnInstances(ctx, otherCrew, []string{"SN001"}, "devolución", "ana")
	if err != nil {
		t.Fatalf("ReturnInstances: %v", err)
	}
	if count != 0 {
		t.Fatalf("wrong crew must return 0, got %d", count)
	}

	count, err = svc.ReturnInstances(ctx, crewID, []string{"SN001", "SN003", "SN999"}, "devolución", "ana")
	if err != nil {
		t.Fatalf("ReturnInstances: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 returned (SN003 in stock, SN999 unknown), got %d", count)
	}

	got, _ := svc.GetItem(ctx, item.ID)
	if got.CurrentStock != 2 {
		t.Fatalf("expected stock 2 (SN001 back + SN003), got %d", got.CurrentStock)
	}

	// One return movement with the actual count.
	var returns []*models.Movement
	for _, m := range repo.movements {
		if m.Type == models.MovementReturn {
			returns = append(returns, m)
		}
	}
	if len(returns) != 1 || returns[0].QuantityChange != 1 {
		t.Fatalf("expected one return movement of +1, got %+v", returns)
	}

	// Empty id list is a no-op, not an error.
	count, err = svc.ReturnInstances(ctx, crewID, nil, "devolución", "ana")
	if err != nil || count != 0 {
		t.Fatalf("empty return must be a no-op, got %d/%v", count, err)
	}
}

func TestUpdateBatch(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	item := createMaterialItem(t, svc, "CBL-DROP")
	_ = svc.Restock(ctx, []repositories.StockLine{{ItemID: item.ID, Quantity: 500}}, "compra", "ana")

	batch, err := models.NewBatch("BOB-042", item.ID, 500)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	repo.batches[batch.BatchCode] = batch

	t.Run("edit adjusts parent stock by delta", func(t *testing.T) {
		updated, err := svc.UpdateBatch(ctx, "BOB-042", item.ID, 420, "ana")
		if err != nil {
			t.Fatalf("UpdateBatch: %v", err)
		}
		if updated.CurrentQuantity != 420 || updated.Status != models.BatchActive {
			t.Fatalf("expected 420/active, got %d/%s", updated.CurrentQuantity, updated.Status)
		}
		got, _ := svc.GetItem(ctx, item.ID)
		if got.CurrentStock != 420 {
			t.Fatalf("expected stock 420, got %d", got.CurrentStock)
		}
	})

	t.Run("edit to zero depletes", func(t *testing.T) {
		updated, err := svc.UpdateBatch(ctx, "BOB-042", item.ID, 0, "ana")
		if err != nil {
			t.Fatalf("UpdateBatch: %v", err)
		}
		if updated.Status != models.BatchDepleted {
			t.Fatalf("expected depleted, got %s", updated.Status)
		}
	})

	t.Run("edit back up reactivates", func(t *testing.T) {
		updated, err := svc.UpdateBatch(ctx, "BOB-042", item.ID, 50, "ana")
		if err != nil {
			t.Fatalf("UpdateBatch: %v", err)
		}
		if updated.Status != models.BatchActive {
			t.Fatalf("expected active, got %s", updated.Status)
		}
	})

	t.Run("unknown batch", func(t *testing.T) {
		_, err := svc.UpdateBatch(ctx, "BOB-999", item.ID, 10, "ana")
		if !errors.Is(err, invdomain.ErrBatchNotFound) {
			t.Fatalf("expected ErrBatchNotFound, got %v", err)
		}
	})
}

// TestEquipmentEndToEnd walks the full lifecycle from the operations doc:
// register two units, assign one, install it, return nothing, damage the
// other, and verify stock at each step.
func TestEquipmentEndToEnd(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	item := createEquipmentItem(t, svc)
	crewID := uuid.New()

	if _, err := svc.AddInstances(ctx, item.ID, []NewInstanceInput{{UniqueID: "SN001"}, {UniqueID: "SN002"}}, "ana"); err != nil {
		t.Fatalf("AddInstances: %v", err)
	}
	assertStock(t, svc, item.ID, 2)

	assigned := models.StatusAssigned
	if _, err := svc.UpdateInstance(ctx, item.ID, "SN001", models.InstancePatch{
		Status:     &assigned,
		Assignment: &models.Assignment{CrewID: crewID, OrderID: "ORD-7"},
	}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	assertStock(t, svc, item.ID, 1)

	installed := models.StatusInstalled
	if _, err := svc.UpdateInstance(ctx, item.ID, "SN001", models.InstancePatch{
		Status:       &installed,
		Installation: &models.Installation{OrderID: "ORD-7", InstalledDate: time.Now(), Location: "Av. Siempreviva 742"},
	}); err != nil {
		t.Fatalf("install: %v", err)
	}
	assertStock(t, svc, item.ID, 1)

	// Installed units are out of the crew's hands: returning them is a skip.
	count, err := svc.ReturnInstances(ctx, crewID, []string{"SN001"}, "devolución", "ana")
	if err != nil || count != 0 {
		t.Fatalf("installed unit must not return, got %d/%v", count, err)
	}

	damaged := models.StatusDamaged
	if _, err := svc.UpdateInstance(ctx, item.ID, "SN002", models.InstancePatch{Status: &damaged}); err != nil {
		t.Fatalf("damage: %v", err)
	}
	assertStock(t, svc, item.ID, 0)

	// Status filter returns only the matching instances.
	status := models.StatusInstalled
	instances, err := svc.ListInstances(ctx, item.ID, &status)
	if err != nil {
		t.Fatalf("ListInstances: %v", err)
	}
	if len(instances) != 1 || instances[0].UniqueID != "SN001" {
		t.Fatalf("expected only SN001 installed, got %+v", instances)
	}
}

func assertStock(t *testing.T, svc *InventoryService, itemID uuid.UUID, want int) {
	t.Helper()
	item, err := svc.GetItem(context.Background(), itemID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item.CurrentStock != want {
		t.Fatalf("expected stock %d, got %d", want, item.CurrentStock)
	}
}
