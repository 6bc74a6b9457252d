package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/ghuser/fieldops/services/inventory/domain"
)

// InstanceStatus is the lifecycle state of one serialized equipment unit.
type InstanceStatus string

const (
	StatusInStock   InstanceStatus = "in-stock"
	StatusAssigned  InstanceStatus = "assigned"
	StatusInstalled InstanceStatus = "installed"
	StatusDamaged   InstanceStatus = "damaged"
	StatusRetired   InstanceStatus = "retired"
)

// Valid reports whether s is one of the known instance statuses.
func (s InstanceStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusAssigned, StatusInstalled, StatusDamaged, StatusRetired:
		return true
	}
	return false
}

// Assignment records which crew holds an instance and for which order.
type Assignment struct {
	CrewID     uuid.UUID
	OrderID    string
	AssignedAt time.Time
}

// Installation records where and when an instance was installed in the field.
type Installation struct {
	OrderID       string
	InstalledDate time.Time
	Location      string
}

// Instance is one serialized equipment unit owned by an equipment Item.
// UniqueID is caller-supplied and immutable; the lifecycle is
//
//	in-stock → assigned → installed
//	assigned → in-stock (return)
//	any      → damaged / retired (write-off, terminal)
//
// Damaged and retired have no repair path back to stock.
type Instance struct {
	ItemID       uuid.UUID
	UniqueID     string
	SerialNumber string
	MACAddress   string
	Status       InstanceStatus
	Assignment   *Assignment
	Installation *Installation
	Notes        string
	CreatedAt    time.Time
}

// NewInstance constructs an in-stock instance for the given item.
func NewInstance(itemID uuid.UUID, uniqueID, serialNumber, macAddress, notes string) (*Instance, error) {
	if uniqueID == "" {
		return nil, fmt.Errorf("%w: unique id is required", domain.ErrInvalidTransition)
	}
	return &Instance{
		ItemID:       itemID,
		UniqueID:     uniqueID,
		SerialNumber: serialNumber,
		MACAddress:   macAddress,
		Status:       StatusInStock,
		Notes:        notes,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// InStock reports whether the instance counts toward the item's current stock.
func (i *Instance) InStock() bool {
	return i.Status == StatusInStock
}

// Assign transitions in-stock → assigned and records the holding crew.
func (i *Instance) Assign(crewID uuid.UUID, orderID string, at time.Time) error {
	if i.Status != StatusInStock {
		return fmt.Errorf("%w: cannot assign instance %s in status %s", domain.ErrInvalidTransition, i.UniqueID, i.Status)
	}
	i.Status = StatusAssigned
	i.Assignment = &Assignment{CrewID: crewID, OrderID: orderID, AssignedAt: at}
	return nil
}

// Install transitions assigned → installed and records the field location.
func (i *Instance) Install(orderID string, installedDate time.Time, location string) error {
	if i.Status != StatusAssigned {
		return fmt.Errorf("%w: cannot install instance %s in status %s", domain.ErrInvalidTransition, i.UniqueID, i.Status)
	}
	i.Status = StatusInstalled
	i.Installation = &Installation{OrderID: orderID, InstalledDate: installedDate, Location: location}
	return nil
}

// ReturnToStock transitions assigned → in-stock and clears the assignment.
func (i *Instance) ReturnToStock() error {
	if i.Status != StatusAssigned {
		return fmt.Errorf("%w: cannot return instance %s in status %s", domain.ErrInvalidTransition, i.UniqueID, i.Status)
	}
	i.Status = StatusInStock
	i.Assignment = nil
	return nil
}

// MarkDamaged writes the instance off as damaged. Allowed from any live state.
func (i *Instance) MarkDamaged() error {
	if i.Status == StatusRetired {
		return fmt.Errorf("%w: instance %s is retired", domain.ErrInvalidTransition, i.UniqueID)
	}
	i.Status = StatusDamaged
	return nil
}

// Retire writes the instance off permanently.
func (i *Instance) Retire() error {
	i.Status = StatusRetired
	return nil
}

// AssignedToCrew reports whether the instance is currently held by crewID.
func (i *Instance) AssignedToCrew(crewID uuid.UUID) bool {
	return i.Status == StatusAssigned && i.Assignment != nil && i.Assignment.CrewID == crewID
}

// Deletable reports whether the instance may be removed from the ledger.
// Only instances that never left stock qualify; anything with assignment or
// installation history is preserved for audit.
func (i *Instance) Deletable() bool {
	return i.Status == StatusInStock && i.Assignment == nil && i.Installation == nil
}

// InstancePatch is a partial update of an instance's mutable fields.
// Nil fields are left unchanged. Status changes go through the state machine.
type InstancePatch struct {
	Status       *InstanceStatus
	Notes        *string
	Assignment   *Assignment
	Installation *Installation
}

// Apply mutates the instance with the patch, enforcing lifecycle transitions.
func (i *Instance) Apply(p InstancePatch) error {
	if p.Notes != nil {
		i.Notes = *p.Notes
	}
	if p.Status == nil {
		return nil
	}
	// A repeated status write is a no-op only when it carries no assignment or
	// installation payload. Re-asserting assigned/installed with new details is
	// a transition and must go through the state machine, which rejects it
	// because the instance is no longer in the required source state.
	if *p.Status == i.Status && p.Assignment == nil && p.Installation == nil {
		return nil
	}
	switch *p.Status {
	case StatusAssigned:
		if p.Assignment == nil {
			return fmt.Errorf("%w: assignment details required to assign %s", domain.ErrInvalidTransition, i.UniqueID)
		}
		at := p.Assignment.AssignedAt
		if at.IsZero() {
			at = time.Now().UTC()
		}
		return i.Assign(p.Assignment.CrewID, p.Assignment.OrderID, at)
	case StatusInstalled:
		if p.Installation == nil {
			return fmt.Errorf("%w: installation details required to install %s", domain.ErrInvalidTransition, i.UniqueID)
		}
		return i.Install(p.Installation.OrderID, p.Installation.InstalledDate, p.Installation.Location)
	case StatusInStock:
		return i.ReturnToStock()
	case StatusDamaged:
		return i.MarkDamaged()
	case StatusRetired:
		return i.Retire()
	default:
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, *p.Status)
	}
}
