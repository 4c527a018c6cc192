package handler

import (
	"strings"
	"time"

	"hostel/internal/lease/models"
	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

type createLeaseRequest struct {
	UserID        string `json:"userId"`
	RoomID        string `json:"roomId"`
	RentID        string `json:"rentId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate,omitempty"`
	ReservationID string `json:"reservationId,omitempty"`

	input models.LeaseInput
}

func (r *createLeaseRequest) Validate() error {
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	roomID, err := id.ParseRoomID(strings.TrimSpace(r.RoomID))
	if err != nil {
		return err
	}
	rentID, err := id.ParseRentID(strings.TrimSpace(r.RentID))
	if err != nil {
		return err
	}
	start, err := id.ParseDate(r.StartDate, "startDate")
	if err != nil {
		return err
	}
	end, err := id.ParseOptionalDate(r.EndDate, "endDate")
	if err != nil {
		return err
	}
	var reservationID id.ReservationID
	if raw := strings.TrimSpace(r.ReservationID); raw != "" {
		if reservationID, err = id.ParseReservationID(raw); err != nil {
			return err
		}
	}
	r.input = models.LeaseInput{
		UserID:        userID,
		RoomID:        roomID,
		RentID:        rentID,
		StartDate:     start,
		EndDate:       end,
		ReservationID: reservationID,
	}
	return nil
}

type closeLeaseRequest struct {
	EndDate string `json:"endDate"`

	end time.Time
}

func (r *closeLeaseRequest) Validate() error {
	end, err := id.ParseDate(r.EndDate, "endDate")
	if err != nil {
		return err
	}
	r.end = end
	return nil
}

type createDepositRequest struct {
	UserID        string   `json:"userId"`
	GuaranteeID   string   `json:"guaranteeId"`
	DepositTypeID string   `json:"depositTypeId"`
	RoomIDs       []string `json:"roomIds"`
	DepositDate   string   `json:"depositDate"`
	AmountCents   int64    `json:"amountCents"`

	input models.DepositInput
}

func (r *createDepositRequest) Validate() error {
	userID, err := id.ParseUserID(strings.TrimSpace(r.UserID))
	if err != nil {
		return err
	}
	guaranteeID, err := id.ParseGuaranteeID(strings.TrimSpace(r.GuaranteeID))
	if err != nil {
		return err
	}
	depositTypeID, err := id.ParseDepositTypeID(strings.TrimSpace(r.DepositTypeID))
	if err != nil {
		return err
	}
	if len(r.RoomIDs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "roomIds must contain at least one room")
	}
	roomIDs := make([]id.RoomID, 0, len(r.RoomIDs))
	for _, raw := range r.RoomIDs {
		roomID, err := id.ParseRoomID(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		roomIDs = append(roomIDs, roomID)
	}
	depositDate, err := id.ParseDate(r.DepositDate, "depositDate")
	if err != nil {
		return err
	}
	r.input = models.DepositInput{
		UserID:        userID,
		GuaranteeID:   guaranteeID,
		DepositTypeID: depositTypeID,
		RoomIDs:       roomIDs,
		DepositDate:   depositDate,
		AmountCents:   r.AmountCents,
	}
	return nil
}

type refundDepositRequest struct {
	BackDepositDate string `json:"backDepositDate"`

	backDate time.Time
}

func (r *refundDepositRequest) Validate() error {
	backDate, err := id.ParseDate(r.BackDepositDate, "backDepositDate")
	if err != nil {
		return err
	}
	r.backDate = backDate
	return nil
}

type leaseResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	RoomID    string `json:"roomId"`
	RentID    string `json:"rentId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
	IsPresent bool   `json:"isPresent"`
	IsSigned  bool   `json:"isSigned"`
	Closed    bool   `json:"closed"`
}

func toLeaseResponse(l *models.LeaseContract) leaseResponse {
	return leaseResponse{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		RoomID:    l.RoomID.String(),
		RentID:    l.RentID.String(),
		StartDate: id.FormatDate(l.StartDate),
		EndDate:   id.FormatOptionalDate(l.EndDate),
		IsPresent: l.IsPresent,
		IsSigned:  l.IsSigned,
		Closed:    l.IsClosed(),
	}
}

func toLeaseResponses(leases []*models.LeaseContract) []leaseResponse {
	out := make([]leaseResponse, 0, len(leases))
	for _, l := range leases {
		out = append(out, toLeaseResponse(l))
	}
	return out
}

type depositResponse struct {
	ID              string   `json:"id"`
	UserID          string   `json:"userId"`
	GuaranteeID     string   `json:"guaranteeId"`
	DepositTypeID   string   `json:"depositTypeId"`
	RoomIDs         []string `json:"roomIds"`
	DepositDate     string   `json:"depositDate"`
	BackDepositDate string   `json:"backDepositDate,omitempty"`
	AmountCents     int64    `json:"amountCents"`
}

func toDepositResponse(d *models.Deposit) depositResponse {
	rooms := make([]string, 0, len(d.RoomIDs))
	for _, roomID := range d.RoomIDs {
		rooms = append(rooms, roomID.String())
	}
	return depositResponse{
		ID:              d.ID.String(),
		UserID:          d.UserID.String(),
		GuaranteeID:     d.GuaranteeID.String(),
		DepositTypeID:   d.DepositTypeID.String(),
		RoomIDs:         rooms,
		DepositDate:     id.FormatDate(d.DepositDate),
		BackDepositDate: id.FormatOptionalDate(d.BackDepositDate),
		AmountCents:     d.AmountCents,
	}
}
