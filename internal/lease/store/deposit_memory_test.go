package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	"hostel/pkg/platform/sentinel"
)

func newDeposit(t *testing.T, userID id.UserID, depositDay int) *models.Deposit {
	t.Helper()
	d, err := models.NewDeposit(id.DepositID(uuid.New()), models.DepositInput{
		UserID:        userID,
		GuaranteeID:   id.GuaranteeID(uuid.New()),
		DepositTypeID: id.DepositTypeID(uuid.New()),
		RoomIDs:       []id.RoomID{id.RoomID(uuid.New())},
		DepositDate:   day(depositDay),
		AmountCents:   15000,
	}, day(depositDay))
	require.NoError(t, err)
	return d
}

func TestInMemoryDepositStore(t *testing.T) {
	ctx := context.Background()

	t.Run("list by user is newest first", func(t *testing.T) {
		store := NewInMemoryDepositStore()
		user := id.UserID(uuid.New())
		older := newDeposit(t, user, 1)
		newer := newDeposit(t, user, 8)
		require.NoError(t, store.Create(ctx, older))
		require.NoError(t, store.Create(ctx, newer))
		require.NoError(t, store.Create(ctx, newDeposit(t, id.UserID(uuid.New()), 3)))

		got, err := store.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	})

	t.Run("execute applies the mutation", func(t *testing.T) {
		store := NewInMemoryDepositStore()
		d := newDeposit(t, id.UserID(uuid.New()), 1)
		require.NoError(t, store.Create(ctx, d))

		updated, err := store.Execute(ctx, d.ID,
			func(*models.Deposit) error { return nil },
			func(d *models.Deposit) { d.ApplyRefund(day(20)) },
		)
		require.NoError(t, err)
		assert.True(t, updated.IsRefunded())

		got, err := store.FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, day(20), *got.BackDepositDate)
	})

	t.Run("validate error leaves the record untouched", func(t *testing.T) {
		store := NewInMemoryDepositStore()
		d := newDeposit(t, id.UserID(uuid.New()), 1)
		require.NoError(t, store.Create(ctx, d))
		rejected := errors.New("rejected")

		_, err := store.Execute(ctx, d.ID,
			func(*models.Deposit) error { return rejected },
			func(d *models.Deposit) { d.ApplyRefund(day(20)) },
		)
		require.ErrorIs(t, err, rejected)

		got, err := store.FindByID(ctx, d.ID)
		require.NoError(t, err)
		assert.False(t, got.IsRefunded())
	})

	t.Run("unknown deposit", func(t *testing.T) {
		store := NewInMemoryDepositStore()
		_, err := store.FindByID(ctx, id.DepositID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = store.Execute(ctx, id.DepositID(uuid.New()),
			func(*models.Deposit) error { return nil }, func(*models.Deposit) {})
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
