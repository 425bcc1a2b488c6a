package domain

import "context"

// Slot names a durable storage location holding one serialized collection.
type Slot string

const (
	// SlotFloors holds the JSON-encoded floor tree.
	SlotFloors Slot = "hari_pg_floors"
	// SlotReceipts holds the JSON-encoded receipt ledger.
	SlotReceipts Slot = "hari_pg_receipts"
)

// Slots lists every slot the store reads and writes, in load order.
var Slots = []Slot{SlotFloors, SlotReceipts}

// SlotStore is the minimal abstraction over durable backends. Each slot holds
// one opaque payload that Save fully overwrites.
type SlotStore interface {
	// Load returns the payload for slot. ok is false when the slot was never written.
	Load(ctx context.Context, slot Slot) (payload []byte, ok bool, err error)
	// Save replaces the slot payload.
	Save(ctx context.Context, slot Slot, payload []byte) error
	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, slot Slot) error
}
