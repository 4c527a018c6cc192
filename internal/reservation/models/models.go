package models

import (
	"time"

	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

// Reservation is a short-term hold on a room over [StartDate, EndDate).
// ReservationDate is stamped from the request clock, never from the caller.
type Reservation struct {
	ID              id.ReservationID
	RoomID          id.RoomID
	MotiveID        id.MotiveID
	StartDate       time.Time
	EndDate         time.Time
	ReservationDate time.Time
	CreatedBy       id.UserID
}

func NewReservation(reservationID id.ReservationID, roomID id.RoomID, motiveID id.MotiveID, period id.Period, createdBy id.UserID, now time.Time) (*Reservation, error) {
	if roomID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "room id is required")
	}
	if motiveID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "motive id is required")
	}
	if period.IsOpenEnded() {
		return nil, dErrors.New(dErrors.CodeValidation, "end date is required")
	}
	return &Reservation{
		ID:              reservationID,
		RoomID:          roomID,
		MotiveID:        motiveID,
		StartDate:       period.Start,
		EndDate:         period.End,
		ReservationDate: now,
		CreatedBy:       createdBy,
	}, nil
}

// Period returns the reservation's half-open interval.
func (r *Reservation) Period() id.Period {
	return id.Period{Start: r.StartDate, End: r.EndDate}
}

// Reschedule moves the reservation to period. Room and motive are fixed.
func (r *Reservation) Reschedule(period id.Period) {
	r.StartDate = period.Start
	r.EndDate = period.End
}

// IsCurrentOrUpcoming reports whether the hold still matters at now.
func (r *Reservation) IsCurrentOrUpcoming(now time.Time) bool {
	return r.Period().EndsAfter(now)
}
