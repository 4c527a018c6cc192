package domain

import (
	"github.com/google/uuid"

	dErrors "hostel/pkg/domain-errors"
)

// Typed identifiers keep room, floor and booking references from being mixed
// up at compile time. All of them are UUIDs on the wire.
type (
	CenterID      uuid.UUID
	FloorID       uuid.UUID
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	LeaseID       uuid.UUID
	DepositID     uuid.UUID
	UserID        uuid.UUID
	MotiveID      uuid.UUID
	RentID        uuid.UUID
	GuaranteeID   uuid.UUID
	DepositTypeID uuid.UUID
)

// parseUUID is the single trust-boundary parser for every ID type.
func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" must not be nil")
	}
	return u, nil
}

func ParseCenterID(s string) (CenterID, error) {
	u, err := parseUUID(s, "center id")
	return CenterID(u), err
}

func ParseFloorID(s string) (FloorID, error) {
	u, err := parseUUID(s, "floor id")
	return FloorID(u), err
}

func ParseRoomID(s string) (RoomID, error) {
	u, err := parseUUID(s, "room id")
	return RoomID(u), err
}

func ParseReservationID(s string) (ReservationID, error) {
	u, err := parseUUID(s, "reservation id")
	return ReservationID(u), err
}

func ParseLeaseID(s string) (LeaseID, error) {
	u, err := parseUUID(s, "lease id")
	return LeaseID(u), err
}

func ParseDepositID(s string) (DepositID, error) {
	u, err := parseUUID(s, "deposit id")
	return DepositID(u), err
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user id")
	return UserID(u), err
}

func ParseMotiveID(s string) (MotiveID, error) {
	u, err := parseUUID(s, "motive id")
	return MotiveID(u), err
}

func ParseRentID(s string) (RentID, error) {
	u, err := parseUUID(s, "rent id")
	return RentID(u), err
}

func ParseGuaranteeID(s string) (GuaranteeID, error) {
	u, err := parseUUID(s, "guarantee id")
	return GuaranteeID(u), err
}

func ParseDepositTypeID(s string) (DepositTypeID, error) {
	u, err := parseUUID(s, "deposit type id")
	return DepositTypeID(u), err
}

func (id CenterID) String() string      { return uuid.UUID(id).String() }
func (id FloorID) String() string       { return uuid.UUID(id).String() }
func (id RoomID) String() string        { return uuid.UUID(id).String() }
func (id ReservationID) String() string { return uuid.UUID(id).String() }
func (id LeaseID) String() string       { return uuid.UUID(id).String() }
func (id DepositID) String() string     { return uuid.UUID(id).String() }
func (id UserID) String() string        { return uuid.UUID(id).String() }
func (id MotiveID) String() string      { return uuid.UUID(id).String() }
func (id RentID) String() string        { return uuid.UUID(id).String() }
func (id GuaranteeID) String() string   { return uuid.UUID(id).String() }
func (id DepositTypeID) String() string { return uuid.UUID(id).String() }

func (id CenterID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id FloorID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id RoomID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id ReservationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id LeaseID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id DepositID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id MotiveID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id RentID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id GuaranteeID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id DepositTypeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs render as UUID strings in JSON responses.
func (id CenterID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id FloorID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id RoomID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id ReservationID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id LeaseID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id DepositID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id MotiveID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id RentID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id GuaranteeID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id DepositTypeID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// unmarshalUUID backs UnmarshalText. It accepts the nil UUID; trust-boundary
// checks go through the Parse functions instead.
func unmarshalUUID(b []byte, dst *uuid.UUID) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*dst = u
	return nil
}

func (id *CenterID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *FloorID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *RoomID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *ReservationID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *LeaseID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *DepositID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *UserID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *MotiveID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *RentID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *GuaranteeID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }
func (id *DepositTypeID) UnmarshalText(b []byte) error { return unmarshalUUID(b, (*uuid.UUID)(id)) }

// LockKey is the tx.Runner key serializing every allocation write on the
// room. Reservation and lease writes share it.
func (id RoomID) LockKey() string { return "room:" + uuid.UUID(id).String() }
