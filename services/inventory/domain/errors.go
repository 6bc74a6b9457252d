package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested catalog item does not exist.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrItemAlreadyExists indicates an item with the same code already exists.
	ErrItemAlreadyExists = errors.New("inventory item already exists")

	// ErrInstanceNotFound indicates no equipment instance with the given
	// unique id exists on the item.
	ErrInstanceNotFound = errors.New("equipment instance not found")

	// ErrDuplicateInstance indicates an equipment unique id collides with an
	// instance already registered on the item.
	ErrDuplicateInstance = errors.New("duplicate equipment instance id")

	// ErrNotEquipment indicates an instance operation targeted a material or
	// tool item. Only equipment items carry serialized instances.
	ErrNotEquipment = errors.New("item is not an equipment item")

	// ErrNotBulkItem indicates a restock or crew-assignment targeted an
	// equipment item. Equipment stock is derived from instances, never
	// incremented directly.
	ErrNotBulkItem = errors.New("item stock is derived from instances")

	// ErrInvalidTransition indicates an instance status change that the
	// lifecycle state machine forbids.
	ErrInvalidTransition = errors.New("invalid instance status transition")

	// ErrInstanceNotDeletable indicates an attempt to delete an instance that
	// has left the in-stock state. Assignment and installation history must be
	// preserved for audit.
	ErrInstanceNotDeletable = errors.New("instance with assignment history cannot be deleted")

	// ErrInsufficientStock indicates a crew assignment requested more than the
	// item's available stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrBatchNotFound indicates the requested cable batch does not exist.
	ErrBatchNotFound = errors.New("batch not found")

	// ErrNotMetres indicates a batch operation targeted an item whose unit is
	// not metres. Batches track length-based stock only.
	ErrNotMetres = errors.New("batch item unit must be metres")

	// ErrInvalidQuantity indicates a negative or otherwise out-of-range quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidItemCode indicates the item code violates domain constraints.
	ErrInvalidItemCode = errors.New("invalid item code")
)
