package handler

import (
	"strings"
	"time"

	"hostel/internal/reservation/models"
	id "hostel/pkg/domain"
)

type createReservationRequest struct {
	RoomID    string `json:"roomId"`
	MotiveID  string `json:"motiveId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	roomID   id.RoomID
	motiveID id.MotiveID
	start    time.Time
	end      time.Time
}

func (r *createReservationRequest) Validate() error {
	roomID, err := id.ParseRoomID(strings.TrimSpace(r.RoomID))
	if err != nil {
		return err
	}
	motiveID, err := id.ParseMotiveID(strings.TrimSpace(r.MotiveID))
	if err != nil {
		return err
	}
	start, err := id.ParseDate(r.StartDate, "startDate")
	if err != nil {
		return err
	}
	end, err := id.ParseDate(r.EndDate, "endDate")
	if err != nil {
		return err
	}
	r.roomID, r.motiveID, r.start, r.end = roomID, motiveID, start, end
	return nil
}

// updateReservationRequest accepts the create body; only the dates are
// applied since a reservation never changes room or motive.
type updateReservationRequest struct {
	RoomID    string `json:"roomId,omitempty"`
	MotiveID  string `json:"motiveId,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`

	start time.Time
	end   time.Time
}

func (r *updateReservationRequest) Validate() error {
	start, err := id.ParseDate(r.StartDate, "startDate")
	if err != nil {
		return err
	}
	end, err := id.ParseDate(r.EndDate, "endDate")
	if err != nil {
		return err
	}
	r.start, r.end = start, end
	return nil
}

type reservationResponse struct {
	ID              string `json:"id"`
	RoomID          string `json:"roomId"`
	MotiveID        string `json:"motiveId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	ReservationDate string `json:"reservationDate"`
	CreatedBy       string `json:"createdBy,omitempty"`
}

func toResponse(r *models.Reservation) reservationResponse {
	resp := reservationResponse{
		ID:              r.ID.String(),
		RoomID:          r.RoomID.String(),
		MotiveID:        r.MotiveID.String(),
		StartDate:       id.FormatDate(r.StartDate),
		EndDate:         id.FormatDate(r.EndDate),
		ReservationDate: id.FormatDate(r.ReservationDate),
	}
	if !r.CreatedBy.IsNil() {
		resp.CreatedBy = r.CreatedBy.String()
	}
	return resp
}

func toResponses(reservations []*models.Reservation) []reservationResponse {
	out := make([]reservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, toResponse(r))
	}
	return out
}
