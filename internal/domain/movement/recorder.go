package movement

import (
	"context"

	"movistock/internal/core/id"
	"movistock/pkg/logger"
)

// Recorder is the submission sink: invoked only after validation
// passes. The form core has no knowledge of transport or persistence.
type Recorder interface {
	// Record persists the validated movement and returns its identifier.
	Record(ctx context.Context, form *MovementForm) (id.ID, error)
}

// LogRecorder acknowledges submissions without persisting them.
// Used when the service runs without a database.
type LogRecorder struct{}

// Record implements Recorder.
func (LogRecorder) Record(ctx context.Context, form *MovementForm) (id.ID, error) {
	movementID := id.New()
	logger.Info(ctx, "movement recorded (log only)",
		"id", movementID,
		"type", form.Type,
		"items", form.Items.Count(),
		"total", form.Total,
	)
	return movementID, nil
}
