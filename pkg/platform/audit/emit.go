package audit

import (
	"context"
	"log/slog"

	"hostel/pkg/requestcontext"
)

// Publisher accepts audit events. Satisfied by publisher.Publisher.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// EmitBestEffort stamps the caller and request id from ctx and publishes
// event. The write it describes has already committed, so a publish failure
// is logged and swallowed. A nil publisher is a no-op.
func EmitBestEffort(ctx context.Context, publisher Publisher, logger *slog.Logger, event Event) {
	if publisher == nil {
		return
	}
	if event.ActorID.IsNil() {
		event.ActorID = requestcontext.UserID(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(event.Action),
			"subject_id", event.SubjectID,
			"request_id", event.RequestID,
			"error", err,
		)
	}
}
