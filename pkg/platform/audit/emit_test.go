package audit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "hostel/pkg/platform/audit"
	"hostel/pkg/platform/audit/store/memory"
	id "hostel/pkg/domain"
	"hostel/pkg/requestcontext"
)

type failingPublisher struct{}

func (failingPublisher) Emit(context.Context, audit.Event) error {
	return errors.New("broker down")
}

func TestEmitBestEffort(t *testing.T) {
	t.Run("stamps caller, request id and time from context", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		actor := id.UserID(uuid.New())
		at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
		ctx := requestcontext.WithUserID(context.Background(), actor)
		ctx = requestcontext.WithRequestID(ctx, "req-1")
		ctx = requestcontext.WithTime(ctx, at)

		audit.EmitBestEffort(ctx, store, nil, audit.Event{Action: audit.ActionRoomCreated, SubjectID: "x"})

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, actor, events[0].ActorID)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, at, events[0].Timestamp)
	})

	t.Run("logs and swallows publish failures", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		audit.EmitBestEffort(context.Background(), failingPublisher{}, logger, audit.Event{Action: audit.ActionLeaseClosed})

		assert.Contains(t, buf.String(), "failed to emit audit event")
		assert.Contains(t, buf.String(), "broker down")
	})

	t.Run("nil publisher is a no-op", func(t *testing.T) {
		assert.NotPanics(t, func() {
			audit.EmitBestEffort(context.Background(), nil, nil, audit.Event{})
		})
	})
}
