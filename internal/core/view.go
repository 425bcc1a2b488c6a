package core

import (
	"sort"
	"sync"

	"pgmanager/pkg/domain"
)

// ExpandedFloors tracks which floors the dashboard shows expanded. It is view
// state only and is never persisted.
type ExpandedFloors struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewExpandedFloors returns a set with ids expanded.
func NewExpandedFloors(ids ...string) *ExpandedFloors {
	e := &ExpandedFloors{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		e.ids[id] = struct{}{}
	}
	return e
}

// Toggle flips floorID and reports whether it is now expanded.
func (e *ExpandedFloors) Toggle(floorID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.ids[floorID]; ok {
		delete(e.ids, floorID)
		return false
	}
	e.ids[floorID] = struct{}{}
	return true
}

// Expand marks floorID expanded.
func (e *ExpandedFloors) Expand(floorID string) {
	e.mu.Lock()
	e.ids[floorID] = struct{}{}
	e.mu.Unlock()
}

// IsExpanded reports whether floorID is expanded.
func (e *ExpandedFloors) IsExpanded(floorID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.ids[floorID]
	return ok
}

// IDs returns the expanded floor ids in sorted order.
func (e *ExpandedFloors) IDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.ids))
	for id := range e.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Prune forgets floors that no longer exist.
func (e *ExpandedFloors) Prune(floors []domain.Floor) {
	live := make(map[string]struct{}, len(floors))
	for _, f := range floors {
		live[f.ID] = struct{}{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for id := range e.ids {
		if _, ok := live[id]; !ok {
			delete(e.ids, id)
		}
	}
}
