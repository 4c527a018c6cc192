package models

import (
	"time"

	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

// LeaseContract is a user's occupancy of a room from StartDate until EndDate,
// or indefinitely while EndDate is nil.
//
// Invariants:
//   - EndDate, when set, is strictly after StartDate
//   - a closed lease (ClosedAt set) is never reopened or marked present
//   - no two present leases of a room overlap; enforced by the service under
//     the room lock and by the leases_present_no_overlap constraint
type LeaseContract struct {
	ID        id.LeaseID
	UserID    id.UserID
	RoomID    id.RoomID
	RentID    id.RentID
	StartDate time.Time
	EndDate   *time.Time
	IsPresent bool
	IsSigned  bool
	ClosedAt  *time.Time
	CreatedAt time.Time
}

// LeaseInput carries the caller-supplied fields of a new lease.
// ReservationID optionally names the reservation the lease consumes.
type LeaseInput struct {
	UserID        id.UserID
	RoomID        id.RoomID
	RentID        id.RentID
	StartDate     time.Time
	EndDate       *time.Time
	ReservationID id.ReservationID
}

func NewLease(leaseID id.LeaseID, userID id.UserID, roomID id.RoomID, rentID id.RentID, period id.Period, now time.Time) (*LeaseContract, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "user id is required")
	}
	if roomID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "room id is required")
	}
	if rentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "rent id is required")
	}
	return &LeaseContract{
		ID:        leaseID,
		UserID:    userID,
		RoomID:    roomID,
		RentID:    rentID,
		StartDate: period.Start,
		EndDate:   period.EndPtr(),
		CreatedAt: now,
	}, nil
}

// Period returns the lease interval; a nil EndDate yields an open period.
func (l *LeaseContract) Period() id.Period {
	p := id.Period{Start: l.StartDate}
	if l.EndDate != nil {
		p.End = *l.EndDate
	}
	return p
}

func (l *LeaseContract) IsClosed() bool {
	return l.ClosedAt != nil
}

// OccupiesAt reports whether the lease makes the room occupied at t.
func (l *LeaseContract) OccupiesAt(t time.Time) bool {
	return l.IsPresent && l.Period().Contains(t)
}

// CanClose checks that the lease is open and end is after its start.
func (l *LeaseContract) CanClose(end time.Time) error {
	if l.IsClosed() {
		return dErrors.New(dErrors.CodeInvariantViolation, "lease is already closed")
	}
	if end.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "end date is required")
	}
	if !l.StartDate.Before(end) {
		return dErrors.New(dErrors.CodeValidation, "end date must be after the lease start date")
	}
	return nil
}

// ApplyClose sets the end date. Call CanClose first.
func (l *LeaseContract) ApplyClose(end, now time.Time) {
	l.EndDate = &end
	l.ClosedAt = &now
}

// CanMarkPresent rejects closed leases.
func (l *LeaseContract) CanMarkPresent() error {
	if l.IsClosed() {
		return dErrors.New(dErrors.CodeInvariantViolation, "lease is closed")
	}
	return nil
}
