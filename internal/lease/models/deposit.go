package models

import (
	"time"

	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

// Deposit is the security deposit taken for one or more rooms. It is closed
// by a single refund.
type Deposit struct {
	ID              id.DepositID
	UserID          id.UserID
	GuaranteeID     id.GuaranteeID
	DepositTypeID   id.DepositTypeID
	RoomIDs         []id.RoomID
	DepositDate     time.Time
	BackDepositDate *time.Time
	AmountCents     int64
	CreatedAt       time.Time
}

// DepositInput carries the caller-supplied fields of a new deposit.
type DepositInput struct {
	UserID        id.UserID
	GuaranteeID   id.GuaranteeID
	DepositTypeID id.DepositTypeID
	RoomIDs       []id.RoomID
	DepositDate   time.Time
	AmountCents   int64
}

// NewDeposit validates in and drops duplicate room ids, keeping first-seen
// order.
func NewDeposit(depositID id.DepositID, in DepositInput, now time.Time) (*Deposit, error) {
	if in.UserID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if in.GuaranteeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "guarantee id is required")
	}
	if in.DepositTypeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "deposit type id is required")
	}
	if in.DepositDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "deposit date is required")
	}
	if in.AmountCents < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "amount cannot be negative")
	}

	seen := make(map[id.RoomID]struct{}, len(in.RoomIDs))
	rooms := make([]id.RoomID, 0, len(in.RoomIDs))
	for _, roomID := range in.RoomIDs {
		if roomID.IsNil() {
			return nil, dErrors.New(dErrors.CodeValidation, "room ids cannot contain the nil id")
		}
		if _, dup := seen[roomID]; dup {
			continue
		}
		seen[roomID] = struct{}{}
		rooms = append(rooms, roomID)
	}
	if len(rooms) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "at least one room is required")
	}

	return &Deposit{
		ID:            depositID,
		UserID:        in.UserID,
		GuaranteeID:   in.GuaranteeID,
		DepositTypeID: in.DepositTypeID,
		RoomIDs:       rooms,
		DepositDate:   in.DepositDate,
		AmountCents:   in.AmountCents,
		CreatedAt:     now,
	}, nil
}

func (d *Deposit) IsRefunded() bool {
	return d.BackDepositDate != nil
}

// CanRefund allows one refund, dated no earlier than the deposit.
func (d *Deposit) CanRefund(backDate time.Time) error {
	if d.IsRefunded() {
		return dErrors.New(dErrors.CodeInvariantViolation, "deposit is already refunded")
	}
	if backDate.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "refund date is required")
	}
	if backDate.Before(d.DepositDate) {
		return dErrors.New(dErrors.CodeValidation, "refund date cannot be before the deposit date")
	}
	return nil
}

func (d *Deposit) ApplyRefund(backDate time.Time) {
	d.BackDepositDate = &backDate
}
