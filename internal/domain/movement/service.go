package movement

import (
	"context"
	"time"

	"movistock/internal/core/id"
	"movistock/internal/core/types"
	"movistock/pkg/logger"
)

// Snapshot is a consistent view of one session's form, taken under the
// session lock. Positions in Items are always fresh: after any removal
// the caller must work from the new snapshot, never from positions
// captured earlier.
type Snapshot struct {
	SessionID     id.ID
	Date          string
	Type          Type
	InvoiceNumber string
	Supplier      string
	ExitReason    string
	Visibility    FieldVisibility
	Items         []LineItem
	Total         types.Money
}

// ItemUpdate is the result of a single item field edit: the updated
// row and the recomputed grand total.
type ItemUpdate struct {
	Item  LineItem
	Total types.Money
}

// HeaderPatch carries header field changes. Nil fields are untouched.
type HeaderPatch struct {
	MovementType  *string
	InvoiceNumber *string
	Supplier      *string
	ExitReason    *string
	Date          *string
}

// Service orchestrates form sessions: it routes external events (field
// edits, add/remove requests, submit) to the ledger and the
// calculation engine, and enforces cross-field validation. It is the
// sole mutator of session state.
type Service struct {
	sessions *Manager
	recorder Recorder
}

// NewService creates a movement form service.
func NewService(sessions *Manager, recorder Recorder) *Service {
	return &Service{
		sessions: sessions,
		recorder: recorder,
	}
}

// Open starts a new form session with one empty row and the movement
// date preset to now.
func (s *Service) Open(ctx context.Context) Snapshot {
	sess := s.sessions.Open(NewForm(time.Now()))

	var snap Snapshot
	_ = sess.Do(func(f *MovementForm) error {
		snap = snapshotOf(sess.ID, f)
		return nil
	})

	logger.Info(ctx, "form session opened", "session_id", sess.ID)
	return snap
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, sessionID id.ID) (Snapshot, error) {
	return s.withSession(sessionID, func(f *MovementForm) error {
		return nil
	})
}

// UpdateHeader applies header field changes. A movement type change
// recomputes field group visibility; all other groups' values are kept
// so the user can switch back without losing input.
func (s *Service) UpdateHeader(ctx context.Context, sessionID id.ID, patch HeaderPatch) (Snapshot, error) {
	return s.withSession(sessionID, func(f *MovementForm) error {
		if patch.MovementType != nil {
			f.SetType(*patch.MovementType)
		}
		if patch.InvoiceNumber != nil {
			f.InvoiceNumber = *patch.InvoiceNumber
		}
		if patch.Supplier != nil {
			f.Supplier = *patch.Supplier
		}
		if patch.ExitReason != nil {
			f.ExitReason = *patch.ExitReason
		}
		if patch.Date != nil {
			f.Date = *patch.Date
		}
		return nil
	})
}

// AddItem appends an empty row to the session's ledger.
func (s *Service) AddItem(ctx context.Context, sessionID id.ID) (Snapshot, error) {
	return s.withSession(sessionID, func(f *MovementForm) error {
		pos := f.AddItem()
		logger.Debug(ctx, "item appended", "session_id", sessionID, "position", pos)
		return nil
	})
}

// RemoveItem removes the row at pos. Refused when it is the last
// remaining row. The returned snapshot carries the reindexed positions
// and the recomputed total.
func (s *Service) RemoveItem(ctx context.Context, sessionID id.ID, pos int) (Snapshot, error) {
	return s.withSession(sessionID, func(f *MovementForm) error {
		return f.RemoveItem(pos)
	})
}

// SetItemField applies one field edit to the row at pos and returns
// the updated row with the recomputed total.
func (s *Service) SetItemField(ctx context.Context, sessionID id.ID, pos int, field, value string) (ItemUpdate, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return ItemUpdate{}, err
	}

	var update ItemUpdate
	err = sess.Do(func(f *MovementForm) error {
		item, err := f.SetItemField(pos, field, value)
		if err != nil {
			return err
		}
		update = ItemUpdate{Item: item, Total: f.Total}
		return nil
	})
	if err != nil {
		return ItemUpdate{}, err
	}
	return update, nil
}

// Submit validates the form and, on success, hands it to the recorder.
// Any validation failure aborts with a distinct message and leaves the
// form untouched so the user can correct and retry.
func (s *Service) Submit(ctx context.Context, sessionID id.ID) (id.ID, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return id.ID{}, err
	}

	var movementID id.ID
	err = sess.Do(func(f *MovementForm) error {
		if err := f.Validate(ctx); err != nil {
			return err
		}
		recorded, err := s.recorder.Record(ctx, f)
		if err != nil {
			return err
		}
		movementID = recorded
		return nil
	})
	if err != nil {
		return id.ID{}, err
	}

	logger.Info(ctx, "movement submitted",
		"session_id", sessionID,
		"movement_id", movementID,
	)
	return movementID, nil
}

// Close ends the session.
func (s *Service) Close(ctx context.Context, sessionID id.ID) error {
	if err := s.sessions.Close(sessionID); err != nil {
		return err
	}
	logger.Info(ctx, "form session closed", "session_id", sessionID)
	return nil
}

// withSession runs fn under the session lock and snapshots the result.
func (s *Service) withSession(sessionID id.ID, fn func(f *MovementForm) error) (Snapshot, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err = sess.Do(func(f *MovementForm) error {
		if err := fn(f); err != nil {
			return err
		}
		snap = snapshotOf(sess.ID, f)
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func snapshotOf(sessionID id.ID, f *MovementForm) Snapshot {
	return Snapshot{
		SessionID:     sessionID,
		Date:          f.Date,
		Type:          f.Type,
		InvoiceNumber: f.InvoiceNumber,
		Supplier:      f.Supplier,
		ExitReason:    f.ExitReason,
		Visibility:    f.Visibility(),
		Items:         f.Items.Items(),
		Total:         f.Total,
	}
}
