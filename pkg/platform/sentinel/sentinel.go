package sentinel

import "errors"

// Sentinel errors for storage facts. Stores return these (optionally wrapped)
// so services can translate them into coded domain errors:
//   - ErrNotFound: record does not exist
//   - ErrConflict: write would violate an overlap or uniqueness constraint
//   - ErrAlreadyUsed: unique key (room number, ...) already taken
//   - ErrInvalidState: record in wrong state for the requested transition
//   - ErrUnavailable: backing service temporarily unavailable
//
// Validation failures do not belong here; use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
