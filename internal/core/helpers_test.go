package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pgmanager/internal/infra/persistence/memory"
	"pgmanager/pkg/domain"
)

var errSlotDown = errors.New("slot down")

// flakySlots wraps the memory backend and fails chosen operations.
type flakySlots struct {
	*memory.Store
	failLoad   bool
	failSave   bool
	failDelete domain.Slot
}

func newFlakySlots() *flakySlots { return &flakySlots{Store: memory.NewStore()} }

func (f *flakySlots) Load(ctx context.Context, slot domain.Slot) ([]byte, bool, error) {
	if f.failLoad {
		return nil, false, errSlotDown
	}
	return f.Store.Load(ctx, slot)
}

func (f *flakySlots) Save(ctx context.Context, slot domain.Slot, payload []byte) error {
	if f.failSave {
		return errSlotDown
	}
	return f.Store.Save(ctx, slot, payload)
}

func (f *flakySlots) Delete(ctx context.Context, slot domain.Slot) error {
	if f.failDelete == slot {
		return errSlotDown
	}
	return f.Store.Delete(ctx, slot)
}

type metricsCall struct {
	op      string
	success bool
}

type captureMetricsRecorder struct {
	mu    sync.Mutex
	calls []metricsCall
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	c.mu.Lock()
	c.calls = append(c.calls, metricsCall{op: op, success: success})
	c.mu.Unlock()
}

func (c *captureMetricsRecorder) has(op string, success bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, call := range c.calls {
		if call.op == op && call.success == success {
			return true
		}
	}
	return false
}

type spanRecord struct {
	op  string
	err error
}

type captureTracer struct {
	started []string
	ended   []spanRecord
}

func (c *captureTracer) Start(ctx context.Context, op string) (context.Context, TraceSpan) {
	c.started = append(c.started, op)
	return ctx, &captureSpan{tracer: c, op: op}
}

type captureSpan struct {
	tracer *captureTracer
	op     string
}

func (s *captureSpan) End(err error) {
	s.tracer.ended = append(s.tracer.ended, spanRecord{op: s.op, err: err})
}

func newTestService(t *testing.T, opts ...Option) (*Service, *memory.Store) {
	t.Helper()
	slots := memory.NewStore()
	store := NewStore(slots, nil)
	store.Load(context.Background())
	base := []Option{
		WithIDGenerator(domain.SequentialIDs("id")),
		WithClock(func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }),
	}
	return NewService(store, append(base, opts...)...), slots
}

// sampleTree builds Ground Floor/101 with Asha and First Floor/201 with Ravi.
func sampleTree(t *testing.T) []domain.Floor {
	t.Helper()
	floors, err := AddFloor(nil, "f1", domain.FloorDraft{Label: "Ground Floor"})
	require.NoError(t, err)
	floors, err = AddFloor(floors, "f2", domain.FloorDraft{Label: "First Floor"})
	require.NoError(t, err)
	floors, err = AddRoom(floors, "f1", "r1", domain.RoomDraft{RoomNumber: "101"})
	require.NoError(t, err)
	floors, err = AddRoom(floors, "f2", "r2", domain.RoomDraft{RoomNumber: "201"})
	require.NoError(t, err)
	floors, err = UpsertResident(floors, "f1", "r1", "", "p1", domain.ResidentDraft{Name: "Asha", Mobile: "9999", Rent: "5000"})
	require.NoError(t, err)
	floors, err = UpsertResident(floors, "f2", "r2", "", "p2", domain.ResidentDraft{Name: "Ravi", Rent: "4500"})
	require.NoError(t, err)
	return floors
}
