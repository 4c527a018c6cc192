package models

import (
	"strings"
	"time"

	id "hostel/pkg/domain"
	dErrors "hostel/pkg/domain-errors"
)

const maxRoomNumberLen = 16

// Floor groups rooms of one center. Only WomenOnly changes after creation.
type Floor struct {
	ID        id.FloorID  `json:"id"`
	CenterID  id.CenterID `json:"centerId"`
	Number    int         `json:"number"`
	WomenOnly bool        `json:"womenOnly"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func NewFloor(floorID id.FloorID, centerID id.CenterID, number int, womenOnly bool, now time.Time) (*Floor, error) {
	if centerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "center id is required")
	}
	if number < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "floor number cannot be negative")
	}
	return &Floor{
		ID:        floorID,
		CenterID:  centerID,
		Number:    number,
		WomenOnly: womenOnly,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Room is a bookable unit. Number is unique within its center.
//
// Invariants:
//   - FloorID and CenterID never change
//   - Reserved is a cached hint; availability never reads it
type Room struct {
	ID          id.RoomID   `json:"id"`
	FloorID     id.FloorID  `json:"floorId"`
	CenterID    id.CenterID `json:"centerId"`
	Number      string      `json:"number"`
	KeyNumber   string      `json:"keyNumber,omitempty"`
	BadgeNumber string      `json:"badgeNumber,omitempty"`
	Usable      bool        `json:"usable"`
	Reserved    bool        `json:"reserved"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewRoom builds a usable room on floor. The center is taken from the floor.
func NewRoom(roomID id.RoomID, floor *Floor, number, keyNumber, badgeNumber string, now time.Time) (*Room, error) {
	if floor == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "floor is required")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "room number cannot be empty")
	}
	if len(number) > maxRoomNumberLen {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "room number must be 16 characters or less")
	}
	return &Room{
		ID:          roomID,
		FloorID:     floor.ID,
		CenterID:    floor.CenterID,
		Number:      number,
		KeyNumber:   strings.TrimSpace(keyNumber),
		BadgeNumber: strings.TrimSpace(badgeNumber),
		Usable:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// RoomLess orders rooms by floor number, then by room number with shorter
// numbers first so "99" sorts before "101".
func RoomLess(aFloor int, a string, bFloor int, b string) bool {
	if aFloor != bFloor {
		return aFloor < bFloor
	}
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}
