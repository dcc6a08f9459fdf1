// Package catalog normalizes raw store rows into typed flights safe for
// time-interval arithmetic. The transform is pure: a malformed row never
// aborts a load, it only loses the fields that failed to parse.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/flightobs/flightwatch/core/model"
	"github.com/flightobs/flightwatch/core/store"
)

// Column names as they appear in the day sheets.
const (
	ColFlight      = "FLIGHT OUT"
	ColCarrier     = "CARR (IATA)"
	ColGate        = "DEP GATE"
	ColDestination = "ARR"
	ColSchedDep    = "SCHED DEP"
	ColBoardStart  = "BOARD START"
	ColBoardEnd    = "BOARD END"
	ColEquipment   = "EQUIPMENT"
	ColImportant   = "IMPORTANT"
	ColObservers   = "Observers"
)

// clockFormats lists the accepted time-of-day spellings.
var clockFormats = []string{"15:04", "3:04 PM", "3:04PM"}

// Loader turns store records into flights. Times of day are combined with
// today's date in a fixed reference location so every instant in the system
// is timezone aware.
type Loader struct {
	loc *time.Location
	now func() time.Time
}

// NewLoader creates a Loader anchored to the given location.
func NewLoader(loc *time.Location) *Loader {
	return &Loader{loc: loc, now: time.Now}
}

// NewLoaderAt fixes the notion of "today", for tests.
func NewLoaderAt(loc *time.Location, now func() time.Time) *Loader {
	return &Loader{loc: loc, now: now}
}

// ParseClock parses a time-of-day string and anchors it to today in the
// loader's location.
func (l *Loader) ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range clockFormats {
		t, err := time.Parse(layout, strings.ToUpper(s))
		if err != nil {
			continue
		}
		y, m, d := l.now().In(l.loc).Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, l.loc), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time value %q", s)
}

// Load converts records to flights, preserving row order. Rows without a
// flight number are skipped; rows with malformed time fields are kept with
// those fields absent.
func (l *Loader) Load(recs []store.Record) []model.Flight {
	flights := make([]model.Flight, 0, len(recs))
	for _, rec := range recs {
		number := strings.TrimSpace(rec.Fields[ColFlight])
		if number == "" {
			continue
		}
		f := model.Flight{
			Row:           rec.Index,
			Number:        number,
			Carrier:       strings.TrimSpace(rec.Fields[ColCarrier]),
			Gate:          model.ParseGate(rec.Fields[ColGate]),
			Destination:   strings.TrimSpace(rec.Fields[ColDestination]),
			BoardingStart: l.clockField(rec.Fields[ColBoardStart]),
			BoardingEnd:   l.clockField(rec.Fields[ColBoardEnd]),
			ScheduledDep:  l.clockField(rec.Fields[ColSchedDep]),
			HasEquipment:  parseFlag(rec.Fields[ColEquipment]),
			Important:     parseFlag(rec.Fields[ColImportant]),
			Observers:     model.SplitObservers(rec.Fields[ColObservers]),
		}
		flights = append(flights, f)
	}
	return flights
}

func (l *Loader) clockField(s string) *time.Time {
	t, err := l.ParseClock(s)
	if err != nil {
		return nil
	}
	return &t
}

func parseFlag(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "Y", "YES", "TRUE", "X", "1":
		return true
	}
	return false
}
