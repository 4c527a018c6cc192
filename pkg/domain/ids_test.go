package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "hostel/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseRoomID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseRoomID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseRoomID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseRoomID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, RoomID(validUUID), id)
	})
}

// TestParseID_BoundaryInputs validates parsing of hostile or odd input at
// API entry points.
func TestParseID_BoundaryInputs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE rooms;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReservationID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types share parsing rules.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	parsers := map[string]func(string) error{
		"center":       func(s string) error { _, err := ParseCenterID(s); return err },
		"floor":        func(s string) error { _, err := ParseFloorID(s); return err },
		"room":         func(s string) error { _, err := ParseRoomID(s); return err },
		"reservation":  func(s string) error { _, err := ParseReservationID(s); return err },
		"lease":        func(s string) error { _, err := ParseLeaseID(s); return err },
		"deposit":      func(s string) error { _, err := ParseDepositID(s); return err },
		"user":         func(s string) error { _, err := ParseUserID(s); return err },
		"motive":       func(s string) error { _, err := ParseMotiveID(s); return err },
		"rent":         func(s string) error { _, err := ParseRentID(s); return err },
		"guarantee":    func(s string) error { _, err := ParseGuaranteeID(s); return err },
		"deposit type": func(s string) error { _, err := ParseDepositTypeID(s); return err },
	}

	valid := uuid.New().String()
	for name, parse := range parsers {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, parse(valid))
			for _, bad := range []string{"", "invalid", uuid.Nil.String()} {
				require.Error(t, parse(bad), "input %q", bad)
			}
		})
	}
}

func TestIDsRenderAsStrings(t *testing.T) {
	u := uuid.New()
	body, err := json.Marshal(struct {
		Room RoomID `json:"room_id"`
	}{Room: RoomID(u)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"room_id":"`+u.String()+`"}`, string(body))
	assert.True(t, RoomID{}.IsNil())
}
