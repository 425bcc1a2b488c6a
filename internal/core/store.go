// Package core owns the in-process floor tree and receipt ledger, mirrors
// every mutation to a durable slot store, and exposes the instrumented
// Service used by the command-line front end.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"pgmanager/pkg/domain"
)

// Store holds the two top-level collections and keeps them in step with their
// durable slots. A snapshot is adopted only after its slot write succeeds.
type Store struct {
	mu       sync.RWMutex
	slots    domain.SlotStore
	logger   logrus.FieldLogger
	floors   []domain.Floor
	receipts []domain.Receipt
}

// NewStore wraps slots. A nil logger discards log output.
func NewStore(slots domain.SlotStore, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = discardLogger()
	}
	return &Store{
		slots:    slots,
		logger:   logger,
		floors:   []domain.Floor{},
		receipts: []domain.Receipt{},
	}
}

// Load replaces the in-memory collections with the slot contents. Absent,
// unreadable or unparsable slots degrade to empty collections.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	floors := loadSlot[domain.Floor](ctx, s, domain.SlotFloors)
	receipts := loadSlot[domain.Receipt](ctx, s, domain.SlotReceipts)
	s.floors = domain.CloneFloors(floors)
	s.receipts = domain.CloneReceipts(receipts)
	s.logger.WithFields(logrus.Fields{
		"floors":   len(s.floors),
		"receipts": len(s.receipts),
	}).Debug("store loaded")
}

// loadSlot decodes one slot. The result is adopted only when the whole payload
// decodes; a partially decoded array is discarded.
func loadSlot[T any](ctx context.Context, s *Store, slot domain.Slot) []T {
	entry := s.logger.WithField("slot", string(slot))
	payload, ok, err := s.slots.Load(ctx, slot)
	switch {
	case err != nil:
		entry.WithError(err).Warn("slot unreadable, starting empty")
		return nil
	case !ok:
		return nil
	}
	var decoded []T
	if err := json.Unmarshal(payload, &decoded); err != nil {
		entry.WithError(err).Warn("slot unparsable, starting empty")
		return nil
	}
	return decoded
}

// Floors returns a deep copy of the floor tree.
func (s *Store) Floors() []domain.Floor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneFloors(s.floors)
}

// Receipts returns a copy of the ledger, newest first.
func (s *Store) Receipts() []domain.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneReceipts(s.receipts)
}

// CommitFloors writes floors to its slot and then adopts it.
func (s *Store) CommitFloors(ctx context.Context, floors []domain.Floor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitFloorsLocked(ctx, floors)
}

// CommitReceipts writes receipts to its slot and then adopts it.
func (s *Store) CommitReceipts(ctx context.Context, receipts []domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitReceiptsLocked(ctx, receipts)
}

// UpdateFloors runs fn over the current floors under the write lock and commits
// its result. An error from fn leaves the store untouched.
func (s *Store) UpdateFloors(ctx context.Context, fn func([]domain.Floor) ([]domain.Floor, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(domain.CloneFloors(s.floors))
	if err != nil {
		return err
	}
	return s.commitFloorsLocked(ctx, next)
}

// UpdateReceipts is the ledger counterpart of UpdateFloors.
func (s *Store) UpdateReceipts(ctx context.Context, fn func([]domain.Receipt) ([]domain.Receipt, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(domain.CloneReceipts(s.receipts))
	if err != nil {
		return err
	}
	return s.commitReceiptsLocked(ctx, next)
}

// Clear empties both collections and deletes both slots. A failing slot delete
// stops the clear; collections whose slot was already deleted are emptied.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slots.Delete(ctx, domain.SlotFloors); err != nil {
		return fmt.Errorf("delete %s: %w", domain.SlotFloors, err)
	}
	s.floors = []domain.Floor{}
	if err := s.slots.Delete(ctx, domain.SlotReceipts); err != nil {
		return fmt.Errorf("delete %s: %w", domain.SlotReceipts, err)
	}
	s.receipts = []domain.Receipt{}
	s.logger.Info("store cleared")
	return nil
}

func (s *Store) commitFloorsLocked(ctx context.Context, floors []domain.Floor) error {
	next := domain.CloneFloors(floors)
	if err := s.write(ctx, domain.SlotFloors, next); err != nil {
		return err
	}
	s.floors = next
	return nil
}

func (s *Store) commitReceiptsLocked(ctx context.Context, receipts []domain.Receipt) error {
	next := domain.CloneReceipts(receipts)
	if err := s.write(ctx, domain.SlotReceipts, next); err != nil {
		return err
	}
	s.receipts = next
	return nil
}

func (s *Store) write(ctx context.Context, slot domain.Slot, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slot, err)
	}
	if err := s.slots.Save(ctx, slot, payload); err != nil {
		s.logger.WithField("slot", string(slot)).WithError(err).Warn("slot commit failed")
		return fmt.Errorf("commit %s: %w", slot, err)
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
