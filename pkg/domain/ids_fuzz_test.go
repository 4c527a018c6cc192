package domain

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseRoomID checks that parsing never panics and that accepted IDs
// round-trip.
func FuzzParseRoomID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE rooms;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseRoomID(input)
		if err == nil {
			roundTrip, err2 := ParseRoomID(id.String())
			if err2 != nil {
				t.Errorf("valid ID failed round-trip: %v", err2)
			}
			if roundTrip != id {
				t.Error("round-trip changed ID value")
			}
		}
		if !utf8.ValidString(input) && err == nil {
			t.Error("non-UTF8 input was accepted")
		}
	})
}

// FuzzParseDate checks the date parser never panics and accepted dates
// format back to the same day.
func FuzzParseDate(f *testing.F) {
	f.Add("01/03/2025")
	f.Add("31/12/1999")
	f.Add("")
	f.Add("2025-03-01")

	f.Fuzz(func(t *testing.T, input string) {
		got, err := ParseDate(input, "date")
		if err != nil {
			return
		}
		again, err := ParseDate(FormatDate(got), "date")
		if err != nil || !again.Equal(got) {
			t.Errorf("date %q did not round-trip", input)
		}
	})
}
