package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time with minute resolution, used for area
// opening windows.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, Invalidf("time of day malformed: %q (want HH:MM)", s)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, Invalidf("time of day out of range: %q", s)
	}
	return t, nil
}

func (t TimeOfDay) minutes() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// Area is a physical space guarded by the access pipeline.  Keyed by ID.
type Area struct {
	ID       string
	Name     string
	Kind     AreaKind
	Location string
	OpensAt  TimeOfDay
	ClosesAt TimeOfDay
}

// NewArea validates identifiers and returns the area.  OpensAt > ClosesAt
// is legal and means the window wraps past midnight.
func NewArea(id, name string, kind AreaKind, location string, opensAt, closesAt TimeOfDay) (Area, error) {
	var a Area
	var err error

	if a.ID, err = requireNonEmpty(id, "area ID"); err != nil {
		return Area{}, err
	}
	if a.Name, err = requireNonEmpty(name, "area name"); err != nil {
		return Area{}, err
	}
	if a.Location, err = requireNonEmpty(location, "area location"); err != nil {
		return Area{}, err
	}
	a.Kind = kind
	a.OpensAt = opensAt
	a.ClosesAt = closesAt
	return a, nil
}

// AccessibleAt reports whether now's wall-clock time falls inside the
// opening window.  Boundaries are inclusive.  When the window wraps past
// midnight (OpensAt > ClosesAt) it covers [OpensAt,24:00) plus
// [00:00,ClosesAt].
func (a Area) AccessibleAt(now time.Time) bool {
	m := now.Hour()*60 + now.Minute()
	open, close := a.OpensAt.minutes(), a.ClosesAt.minutes()
	if open <= close {
		return open <= m && m <= close
	}
	return m >= open || m <= close
}
