package publisher

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "hostel/pkg/domain"
	audit "hostel/pkg/platform/audit"
	"hostel/pkg/platform/audit/store/memory"
)

func roomEvent(roomID id.RoomID, action audit.Action) audit.Event {
	return audit.Event{
		Action:    action,
		RoomID:    roomID,
		SubjectID: uuid.NewString(),
	}
}

func TestPublisher_SyncMode(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	roomID := id.RoomID(uuid.New())
	require.NoError(t, pub.Emit(context.Background(), roomEvent(roomID, audit.ActionReservationCreated)))

	events, err := store.ListByRoom(context.Background(), roomID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionReservationCreated, events[0].Action)
}

func TestPublisher_AsyncDrainsOnClose(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(100))

	roomID := id.RoomID(uuid.New())
	for range 10 {
		require.NoError(t, pub.Emit(context.Background(), roomEvent(roomID, audit.ActionLeaseCreated)))
	}

	pub.Close()

	events, err := store.ListByRoom(context.Background(), roomID)
	require.NoError(t, err)
	assert.Len(t, events, 10, "all events should be drained on close")
}

func TestPublisher_BufferFullNeverPanics(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(1))
	defer pub.Close()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := pub.Emit(context.Background(), roomEvent(id.RoomID(uuid.New()), audit.ActionReservationDeleted))
			if err != nil {
				assert.ErrorIs(t, err, ErrBufferFull)
			}
		}()
	}
	wg.Wait()
}

func TestPublisher_EmitAfterClose(t *testing.T) {
	pub := NewPublisher(memory.NewInMemoryStore(), WithAsyncBuffer(4))
	pub.Close()
	pub.Close()

	err := pub.Emit(context.Background(), roomEvent(id.RoomID(uuid.New()), audit.ActionLeaseClosed))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPublisher_Timestamps(t *testing.T) {
	store := memory.NewInMemoryStore()
	pub := NewPublisher(store)
	defer pub.Close()

	t.Run("sets a missing timestamp", func(t *testing.T) {
		store.Clear()
		before := time.Now()
		require.NoError(t, pub.Emit(context.Background(), roomEvent(id.RoomID(uuid.New()), audit.ActionDepositTaken)))
		after := time.Now()

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.False(t, events[0].Timestamp.Before(before))
		assert.False(t, events[0].Timestamp.After(after))
	})

	t.Run("preserves an existing timestamp", func(t *testing.T) {
		store.Clear()
		custom := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		event := roomEvent(id.RoomID(uuid.New()), audit.ActionDepositRefund)
		event.Timestamp = custom
		require.NoError(t, pub.Emit(context.Background(), event))

		events, err := store.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, custom, events[0].Timestamp)
	})
}
