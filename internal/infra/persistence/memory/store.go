// Package memory provides an in-memory slot store used for tests and
// ephemeral environments.
package memory

import (
	"context"
	"sync"

	"pgmanager/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store satisfies the domain slot interface.
var _ domain.SlotStore = (*Store)(nil)

// Store keeps slot payloads in process memory. Payloads are copied on the way
// in and out so callers never share buffers with the store.
type Store struct {
	mu    sync.RWMutex
	slots map[domain.Slot][]byte
	saves int
}

// NewStore returns an empty in-memory slot store.
func NewStore() *Store {
	return &Store{slots: make(map[domain.Slot][]byte)}
}

// Load returns a copy of the slot payload.
func (s *Store) Load(_ context.Context, slot domain.Slot) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.slots[slot]
	if !ok {
		return nil, false, nil
	}
	return clonePayload(payload), true, nil
}

// Save overwrites the slot payload.
func (s *Store) Save(_ context.Context, slot domain.Slot, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = clonePayload(payload)
	s.saves++
	return nil
}

// Delete removes the slot.
func (s *Store) Delete(_ context.Context, slot domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}

// Saves reports how many Save calls have completed, for commit assertions in tests.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func clonePayload(in []byte) []byte {
	if in == nil {
		return nil
	}
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
