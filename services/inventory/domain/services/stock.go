// Package services contains stateless domain services for the inventory
// bounded context. They operate purely on domain types and have zero external
// dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"

	domain "github.com/ghuser/fieldops/services/inventory/domain"
	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// DeriveStock computes the aggregate stock of an equipment item from its
// instance set: the count of in-stock instances.
func DeriveStock(instances []*models.Instance) int {
	count := 0
	for _, inst := range instances {
		if inst.InStock() {
			count++
		}
	}
	return count
}

// VerifyStock checks the central consistency invariant: an equipment item's
// CurrentStock equals the count of its in-stock instances.
func VerifyStock(item *models.Item, instances []*models.Instance) error {
	if !item.IsEquipment() {
		return nil
	}
	derived := DeriveStock(instances)
	if item.CurrentStock != derived {
		return fmt.Errorf("item %s stock %d diverges from %d in-stock instances",
			item.Code, item.CurrentStock, derived)
	}
	return nil
}

// CheckNewInstances validates a batch of instances against an item before an
// add: the item must be equipment, and unique ids must not collide with each
// other or with existing instances. All-or-nothing: the first violation
// rejects the whole batch.
func CheckNewInstances(item *models.Item, existing, incoming []*models.Instance) error {
	if !item.IsEquipment() {
		return fmt.Errorf("%w: item %s is %s", domain.ErrNotEquipment, item.Code, item.Type)
	}
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, inst := range existing {
		seen[inst.UniqueID] = struct{}{}
	}
	for _, inst := range incoming {
		if _, dup := seen[inst.UniqueID]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateInstance, inst.UniqueID)
		}
		seen[inst.UniqueID] = struct{}{}
	}
	return nil
}

// CheckBulkLine validates one restock/assignment line against its item:
// only material and tool stock moves by signed adjustment.
func CheckBulkLine(item *models.Item, quantity int) error {
	if item.IsEquipment() {
		return fmt.Errorf("%w: item %s", domain.ErrNotBulkItem, item.Code)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidQuantity, quantity)
	}
	return nil
}
