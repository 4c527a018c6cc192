package models

import (
	catalogmodels "hostel/internal/catalog/models"
)

// Status is a room's derived occupancy classification.
type Status string

const (
	StatusAvailable Status = "available"
	StatusReserved  Status = "reserved"
	StatusOccupied  Status = "occupied"
	// StatusUnusable rooms never appear in a positive listing.
	StatusUnusable Status = "unusable"
)

// RoomStatus pairs a room with the classification derived from its live
// reservation and lease records. WomenOnly comes from the room's floor and is
// independent of Status.
type RoomStatus struct {
	Room        *catalogmodels.Room
	FloorNumber int
	WomenOnly   bool
	Status      Status
}

// Classify applies the priority order: unusable, occupied, reserved,
// available. The advisory Room.Reserved hint is never consulted.
func Classify(usable, hasPresentLease, hasActiveReservation bool) Status {
	switch {
	case !usable:
		return StatusUnusable
	case hasPresentLease:
		return StatusOccupied
	case hasActiveReservation:
		return StatusReserved
	default:
		return StatusAvailable
	}
}
