package domain

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator returns a new collision-resistant identifier on each call.
type IDGenerator func() string

// NewUUID generates random (version 4) identifiers.
func NewUUID() string { return uuid.NewString() }

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ... It is safe
// for concurrent use and is meant for tests and fixtures.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
