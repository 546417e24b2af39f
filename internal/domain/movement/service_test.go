package movement

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movistock/internal/core/apperror"
	"movistock/internal/core/id"
)

// captureRecorder records the forms handed to it.
type captureRecorder struct {
	calls int
	last  *MovementForm
	err   error
}

func (r *captureRecorder) Record(ctx context.Context, form *MovementForm) (id.ID, error) {
	r.calls++
	r.last = form
	if r.err != nil {
		return id.ID{}, r.err
	}
	return id.New(), nil
}

func newTestService(rec Recorder) *Service {
	if rec == nil {
		rec = LogRecorder{}
	}
	return NewService(NewManager(0), rec)
}

func TestService_OpenCreatesInitialRow(t *testing.T) {
	svc := newTestService(nil)

	snap := svc.Open(context.Background())

	assert.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Position)
	assert.Equal(t, TypeNone, snap.Type)
	assert.Equal(t, "0.00", snap.Total.StringFixed(2))
	assert.NotEmpty(t, snap.Date)
}

func TestService_UpdateHeaderKeepsUntouchedFields(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	snap := svc.Open(ctx)

	movementType := "in"
	invoice := "NF-9"
	snap, err := svc.UpdateHeader(ctx, snap.SessionID, HeaderPatch{
		MovementType:  &movementType,
		InvoiceNumber: &invoice,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeIn, snap.Type)
	assert.True(t, snap.Visibility.InvoiceGroup)

	// Switching type keeps the invoice value so the user can switch back.
	movementType = "out"
	snap, err = svc.UpdateHeader(ctx, snap.SessionID, HeaderPatch{MovementType: &movementType})
	require.NoError(t, err)
	assert.Equal(t, "NF-9", snap.InvoiceNumber)
	assert.True(t, snap.Visibility.ExitReasonGroup)
	assert.False(t, snap.Visibility.InvoiceGroup)
}

func TestService_ItemLifecycle(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	snap := svc.Open(ctx)
	sid := snap.SessionID

	snap, err := svc.AddItem(ctx, sid)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)

	update, err := svc.SetItemField(ctx, sid, 2, FieldQuantity, "3")
	require.NoError(t, err)
	update, err = svc.SetItemField(ctx, sid, 2, FieldUnitPrice, "2.505")
	require.NoError(t, err)
	assert.Equal(t, "7.52", update.Item.Subtotal.StringFixed(2))
	assert.Equal(t, "7.52", update.Total.StringFixed(2))

	// Removing row 1 shifts the priced row into position 1.
	snap, err = svc.RemoveItem(ctx, sid, 1)
	require.NoError(t, err)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Position)
	assert.Equal(t, "3", snap.Items[0].Quantity)
	assert.Equal(t, "7.52", snap.Total.StringFixed(2))

	// The last remaining row cannot be removed.
	_, err = svc.RemoveItem(ctx, sid, 1)
	assert.True(t, apperror.IsLastItem(err))
}

func TestService_SubmitValidatesBeforeRecording(t *testing.T) {
	rec := &captureRecorder{}
	svc := newTestService(rec)
	ctx := context.Background()
	snap := svc.Open(ctx)
	sid := snap.SessionID

	_, err := svc.Submit(ctx, sid)
	require.Error(t, err)
	assert.Equal(t, 0, rec.calls, "recorder must not run on validation failure")

	movementType := "out"
	reason := "expired"
	_, err = svc.UpdateHeader(ctx, sid, HeaderPatch{MovementType: &movementType, ExitReason: &reason})
	require.NoError(t, err)
	for field, value := range map[string]string{
		FieldProduct:  "4",
		FieldLot:      "L-77",
		FieldExpiry:   "2026-12-01",
		FieldQuantity: "2",
	} {
		_, err = svc.SetItemField(ctx, sid, 1, field, value)
		require.NoError(t, err)
	}

	movementID, err := svc.Submit(ctx, sid)
	require.NoError(t, err)
	assert.NotEqual(t, id.ID{}, movementID)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, TypeOut, rec.last.Type)

	// The form stays usable after a successful submit.
	_, err = svc.Get(ctx, sid)
	assert.NoError(t, err)
}

func TestService_SubmitPropagatesRecorderError(t *testing.T) {
	rec := &captureRecorder{err: errors.New("sink down")}
	svc := newTestService(rec)
	ctx := context.Background()
	snap := svc.Open(ctx)
	sid := snap.SessionID

	movementType := "out"
	reason := "damaged"
	_, err := svc.UpdateHeader(ctx, sid, HeaderPatch{MovementType: &movementType, ExitReason: &reason})
	require.NoError(t, err)
	for field, value := range map[string]string{
		FieldProduct:  "1",
		FieldLot:      "L-1",
		FieldExpiry:   "2027-01-01",
		FieldQuantity: "1",
	} {
		_, err = svc.SetItemField(ctx, sid, 1, field, value)
		require.NoError(t, err)
	}

	_, err = svc.Submit(ctx, sid)
	assert.ErrorContains(t, err, "sink down")
}
