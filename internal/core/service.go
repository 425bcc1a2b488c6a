package core

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"pgmanager/pkg/domain"
)

// Service exposes the structure and ledger operations over a Store. Every
// mutation validates, commits the new snapshot, then reports to the configured
// logger, metrics recorder and tracer.
type Service struct {
	store   *Store
	view    *ExpandedFloors
	ids     domain.IDGenerator
	now     func() time.Time
	logger  logrus.FieldLogger
	metrics MetricsRecorder
	tracer  Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation outcomes.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder sets the recorder observing every operation.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer sets the tracer wrapping every operation.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithIDGenerator overrides the random id generator.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock overrides the clock used for receipt form defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExpandedFloors seeds the dashboard view state.
func WithExpandedFloors(view *ExpandedFloors) Option {
	return func(s *Service) {
		if view != nil {
			s.view = view
		}
	}
}

// NewService constructs a service over store.
func NewService(store *Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		view:    NewExpandedFloors(),
		ids:     domain.NewUUID,
		now:     time.Now,
		logger:  discardLogger(),
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying store.
func (s *Service) Store() *Store { return s.store }

// View returns the expanded-floor view state.
func (s *Service) View() *ExpandedFloors { return s.view }

func (s *Service) run(ctx context.Context, op string, fields logrus.Fields, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, op)
	started := time.Now()
	err := fn(ctx)
	s.metrics.Observe(ctx, op, err == nil, time.Since(started))
	span.End(err)
	entry := s.logger.WithFields(fields).WithField("operation", op)
	if err != nil {
		entry.WithError(err).Warn("operation failed")
	} else {
		entry.Debug("operation completed")
	}
	return err
}

// AddFloor creates a floor and expands it in the dashboard view.
func (s *Service) AddFloor(ctx context.Context, draft domain.FloorDraft) (domain.Floor, error) {
	id := s.ids()
	var created domain.Floor
	err := s.run(ctx, "create_floor", logrus.Fields{"floor_id": id}, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			next, err := AddFloor(floors, id, draft)
			if err != nil {
				return nil, err
			}
			created = domain.CloneFloor(next[len(next)-1])
			return next, nil
		})
	})
	if err != nil {
		return domain.Floor{}, err
	}
	s.view.Expand(id)
	return created, nil
}

// AddRoom creates a room under floorID.
func (s *Service) AddRoom(ctx context.Context, floorID string, draft domain.RoomDraft) (domain.Room, error) {
	id := s.ids()
	var created domain.Room
	err := s.run(ctx, "create_room", logrus.Fields{"floor_id": floorID, "room_id": id}, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			next, err := AddRoom(floors, floorID, id, draft)
			if err != nil {
				return nil, err
			}
			rooms := next[floorIndex(next, floorID)].Rooms
			created = domain.CloneRoom(rooms[len(rooms)-1])
			return next, nil
		})
	})
	return created, err
}

// SaveResident creates a resident when residentID is empty and edits it otherwise.
func (s *Service) SaveResident(ctx context.Context, floorID, roomID, residentID string, draft domain.ResidentDraft) (domain.Resident, error) {
	op, id := "update_resident", residentID
	if residentID == "" {
		op, id = "create_resident", s.ids()
	}
	var saved domain.Resident
	fields := logrus.Fields{"floor_id": floorID, "room_id": roomID, "resident_id": id}
	err := s.run(ctx, op, fields, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			next, err := UpsertResident(floors, floorID, roomID, residentID, id, draft)
			if err != nil {
				return nil, err
			}
			saved, err = FindResident(next, floorID, roomID, id)
			return next, err
		})
	})
	return saved, err
}

// DeleteFloor removes a floor and everything under it.
func (s *Service) DeleteFloor(ctx context.Context, floorID string) error {
	err := s.run(ctx, "delete_floor", logrus.Fields{"floor_id": floorID}, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			return DeleteFloor(floors, floorID)
		})
	})
	if err == nil {
		s.view.Prune(s.store.Floors())
	}
	return err
}

// DeleteRoom removes a room and its residents.
func (s *Service) DeleteRoom(ctx context.Context, floorID, roomID string) error {
	return s.run(ctx, "delete_room", logrus.Fields{"floor_id": floorID, "room_id": roomID}, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			return DeleteRoom(floors, floorID, roomID)
		})
	})
}

// DeleteResident removes a resident from its room.
func (s *Service) DeleteResident(ctx context.Context, floorID, roomID, residentID string) error {
	fields := logrus.Fields{"floor_id": floorID, "room_id": roomID, "resident_id": residentID}
	return s.run(ctx, "delete_resident", fields, func(ctx context.Context) error {
		return s.store.UpdateFloors(ctx, func(floors []domain.Floor) ([]domain.Floor, error) {
			return DeleteResident(floors, floorID, roomID, residentID)
		})
	})
}

// Floors returns a copy of the floor tree.
func (s *Service) Floors() []domain.Floor { return s.store.Floors() }

// Resident returns one resident, typically to pre-fill an edit form.
func (s *Service) Resident(floorID, roomID, residentID string) (domain.Resident, error) {
	return FindResident(s.store.Floors(), floorID, roomID, residentID)
}

// Stats counts floors, rooms and residents.
func (s *Service) Stats() Stats { return ComputeStats(s.store.Floors()) }

// ToggleExpanded flips a floor's expanded state and reports the new state.
func (s *Service) ToggleExpanded(floorID string) bool { return s.view.Toggle(floorID) }

// NewReceiptDraft returns an empty receipt form dated today.
func (s *Service) NewReceiptDraft() domain.ReceiptDraft { return domain.NewReceiptDraft(s.now()) }

// IssueReceipt records a new receipt at the head of the ledger.
func (s *Service) IssueReceipt(ctx context.Context, draft domain.ReceiptDraft) (domain.Receipt, error) {
	id := s.ids()
	var created domain.Receipt
	err := s.run(ctx, "create_receipt", logrus.Fields{"receipt_id": id}, func(ctx context.Context) error {
		return s.store.UpdateReceipts(ctx, func(receipts []domain.Receipt) ([]domain.Receipt, error) {
			next, err := CreateReceipt(receipts, id, draft)
			if err != nil {
				return nil, err
			}
			created = next[0]
			return next, nil
		})
	})
	return created, err
}

// UpdateReceipt replaces a receipt in place.
func (s *Service) UpdateReceipt(ctx context.Context, id string, draft domain.ReceiptDraft) (domain.Receipt, error) {
	var updated domain.Receipt
	err := s.run(ctx, "update_receipt", logrus.Fields{"receipt_id": id}, func(ctx context.Context) error {
		return s.store.UpdateReceipts(ctx, func(receipts []domain.Receipt) ([]domain.Receipt, error) {
			next, err := UpdateReceipt(receipts, id, draft)
			if err != nil {
				return nil, err
			}
			updated, err = FindReceipt(next, id)
			return next, err
		})
	})
	return updated, err
}

// DeleteReceipt removes a receipt.
func (s *Service) DeleteReceipt(ctx context.Context, id string) error {
	return s.run(ctx, "delete_receipt", logrus.Fields{"receipt_id": id}, func(ctx context.Context) error {
		return s.store.UpdateReceipts(ctx, func(receipts []domain.Receipt) ([]domain.Receipt, error) {
			return DeleteReceipt(receipts, id)
		})
	})
}

// Receipts returns the ledger, newest first.
func (s *Service) Receipts() []domain.Receipt { return s.store.Receipts() }

// Receipt returns one receipt by id.
func (s *Service) Receipt(id string) (domain.Receipt, error) {
	return FindReceipt(s.store.Receipts(), id)
}

// SearchReceipts filters the ledger by resident name or room number.
func (s *Service) SearchReceipts(query string) []domain.Receipt {
	return SearchReceipts(s.store.Receipts(), query)
}
