package domain

import (
	"strings"
	"time"

	dErrors "hostel/pkg/domain-errors"
)

// DateLayout is the dd/MM/yyyy format used at the API boundary.
const DateLayout = "02/01/2006"

// Period is a half-open [Start, End) interval. A zero End means the period
// has no end and extends indefinitely.
//
// Two periods that only touch (one ends exactly where the other starts) do
// not overlap.
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod builds a bounded period. Start must be strictly before End.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.IsZero() {
		return Period{}, dErrors.New(dErrors.CodeValidation, "start date is required")
	}
	if end.IsZero() {
		return Period{}, dErrors.New(dErrors.CodeValidation, "end date is required")
	}
	if !start.Before(end) {
		return Period{}, dErrors.New(dErrors.CodeValidation, "start date must be before end date")
	}
	return Period{Start: start, End: end}, nil
}

// NewOpenPeriod builds a period whose end is optional. A non-nil end must be
// strictly after start.
func NewOpenPeriod(start time.Time, end *time.Time) (Period, error) {
	if end == nil {
		if start.IsZero() {
			return Period{}, dErrors.New(dErrors.CodeValidation, "start date is required")
		}
		return Period{Start: start}, nil
	}
	return NewPeriod(start, *end)
}

// IsOpenEnded reports whether the period has no end.
func (p Period) IsOpenEnded() bool {
	return p.End.IsZero()
}

// Overlaps implements s < e' AND e > s' with an open end treated as infinity.
func (p Period) Overlaps(o Period) bool {
	startsBeforeOtherEnds := o.IsOpenEnded() || p.Start.Before(o.End)
	endsAfterOtherStarts := p.IsOpenEnded() || p.End.After(o.Start)
	return startsBeforeOtherEnds && endsAfterOtherStarts
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	if t.Before(p.Start) {
		return false
	}
	return p.IsOpenEnded() || t.Before(p.End)
}

// EndsAfter reports whether the period is still running or yet to start at t.
func (p Period) EndsAfter(t time.Time) bool {
	return p.IsOpenEnded() || p.End.After(t)
}

// EndPtr returns nil for an open-ended period.
func (p Period) EndPtr() *time.Time {
	if p.IsOpenEnded() {
		return nil
	}
	end := p.End
	return &end
}

// ParseDate parses a dd/MM/yyyy date as UTC midnight.
func ParseDate(s, field string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" must use the dd/MM/yyyy format")
	}
	return t, nil
}

// ParseOptionalDate parses a dd/MM/yyyy date, returning nil for an empty string.
func ParseOptionalDate(s, field string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s, field)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t in the dd/MM/yyyy format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatOptionalDate renders nil as the empty string.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
