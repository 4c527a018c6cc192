package audit

import (
	"context"
	"time"

	id "hostel/pkg/domain"
)

// Action names an allocation write that reached a committed state.
type Action string

const (
	ActionReservationCreated Action = "reservation_created"
	ActionReservationUpdated Action = "reservation_updated"
	ActionReservationDeleted Action = "reservation_deleted"

	ActionLeaseCreated  Action = "lease_created"
	ActionLeaseClosed   Action = "lease_closed"
	ActionLeasePresent  Action = "lease_marked_present"
	ActionLeaseSigned   Action = "lease_marked_signed"
	ActionDepositTaken  Action = "deposit_created"
	ActionDepositRefund Action = "deposit_refunded"

	ActionRoomUsableChanged     Action = "room_usable_changed"
	ActionFloorWomenOnlyChanged Action = "floor_women_only_changed"
	ActionRoomCreated           Action = "room_created"
	ActionFloorCreated          Action = "floor_created"
)

// Event is emitted after an allocation write commits. It stays
// transport-agnostic so the memory and Kafka sinks can share it.
type Event struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	// ActorID is the caller established by the upstream identity check.
	ActorID id.UserID `json:"actor_id"`
	// RoomID is the room the write touched, when there is exactly one.
	RoomID id.RoomID `json:"room_id"`
	// SubjectID is the reservation, lease, deposit or floor identifier.
	SubjectID string `json:"subject_id"`
	RequestID string `json:"request_id,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
