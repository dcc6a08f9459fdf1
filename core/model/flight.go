package model

import (
	"strings"
	"time"
)

// BusyBuffer pads a flight's boarding window on both sides to account for
// walking between gates and setting up equipment. Two flights conflict when
// their padded intervals overlap.
const BusyBuffer = 10 * time.Minute

// Flight represents one observable departure from a day's catalog.
type Flight struct {
	Row           int    // row index in the backing table, used for write-back
	Number        string // flight number, unique within a day
	Carrier       string
	Gate          Gate
	Destination   string
	BoardingStart *time.Time // nil when the stored value is blank or malformed
	BoardingEnd   *time.Time
	ScheduledDep  *time.Time
	HasEquipment  bool // false means no observation equipment is installed
	Important     bool
	Observers     []string // names signed up, in stored order
}

// Schedulable reports whether the flight can take part in time-interval
// arithmetic: equipment installed and both boarding times parsed.
func (f Flight) Schedulable() bool {
	return f.HasEquipment && f.BoardingStart != nil && f.BoardingEnd != nil
}

// BusyStart returns the start of the occupied interval. The flight must be
// Schedulable.
func (f Flight) BusyStart() time.Time {
	return f.BoardingStart.Add(-BusyBuffer)
}

// BusyEnd returns the end of the occupied interval. The flight must be
// Schedulable.
func (f Flight) BusyEnd() time.Time {
	return f.BoardingEnd.Add(BusyBuffer)
}

// Unassigned reports whether nobody has signed up yet.
func (f Flight) Unassigned() bool {
	return len(f.Observers) == 0
}

// HasObserver reports whether name appears in the observer list. Matching is
// case-insensitive on whole names, never substrings, so "Ann" does not match
// "Anna".
func (f Flight) HasObserver(name string) bool {
	for _, o := range f.Observers {
		if strings.EqualFold(strings.TrimSpace(o), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// ObserverList renders the observer names the way the store keeps them.
func (f Flight) ObserverList() string {
	return strings.Join(f.Observers, ", ")
}

// SplitObservers parses a comma-joined observer cell into names, dropping
// blanks.
func SplitObservers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if n := strings.TrimSpace(p); n != "" {
			names = append(names, n)
		}
	}
	return names
}
