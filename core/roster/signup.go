package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/flightobs/flightwatch/core/catalog"
	"github.com/flightobs/flightwatch/core/metrics"
	"github.com/flightobs/flightwatch/core/store"
)

// proximityLimit is how close two scheduled departures may sit before a
// one-click signup is treated as a conflict the observer must override.
const proximityLimit = 50 * time.Minute

// Signup statuses.
const (
	StatusAssigned = "assigned"
	StatusAlready  = "already_signed_up"
	StatusConflict = "conflict"
)

// SignUpResult reports what a one-click signup did.
type SignUpResult struct {
	Status string `json:"status"`
	// ConflictWith names the flight that triggered a conflict refusal.
	ConflictWith string `json:"conflict_with,omitempty"`
}

// SignUp claims a single flight for the observer straight from the flight
// list. If the observer already holds another flight departing within the
// proximity limit the signup is refused unless override is set. Signing up
// twice is an idempotent no-op.
func (m *Manager) SignUp(ctx context.Context, day, observer, flight string, override bool) (SignUpResult, error) {
	live, err := m.Catalog(ctx, day)
	if err != nil {
		return SignUpResult{}, err
	}

	target := -1
	for i := range live {
		if live[i].Number == flight {
			target = i
			break
		}
	}
	if target < 0 {
		return SignUpResult{}, fmt.Errorf("flight %s on %s: %w", flight, day, store.ErrNotFound)
	}
	f := &live[target]
	if f.HasObserver(observer) {
		m.log.Warnf("signup %s: already on flight %s", observer, flight)
		return SignUpResult{Status: StatusAlready}, nil
	}
	if f.ScheduledDep == nil {
		return SignUpResult{}, fmt.Errorf("flight %s: scheduled departure missing or malformed", flight)
	}

	if !override {
		for i := range live {
			other := &live[i]
			if i == target || other.ScheduledDep == nil || !other.HasObserver(observer) {
				continue
			}
			gap := f.ScheduledDep.Sub(*other.ScheduledDep)
			if gap < 0 {
				gap = -gap
			}
			if gap < proximityLimit {
				m.log.Warnf("signup %s: flight %s departs within %v of %s", observer, flight, proximityLimit, other.Number)
				return SignUpResult{Status: StatusConflict, ConflictWith: other.Number}, nil
			}
		}
	}

	f.Observers = append(f.Observers, observer)
	if err := m.store.WriteCell(ctx, day, f.Row, catalog.ColObservers, f.ObserverList()); err != nil {
		return SignUpResult{}, fmt.Errorf("write day %s: %w", day, err)
	}
	now := time.Now()
	if err := m.sink.RecordCommits([]metrics.CommitRecord{{Day: day, Observer: observer, Flight: flight, Outcome: metrics.OutcomeAssigned, Time: now}}); err != nil {
		m.log.Warnf("record signup: %v", err)
	}
	if m.bus != nil {
		m.bus.Publish(AssignmentEvent{Day: day, Observer: observer, Flights: []string{flight}, Time: now})
	}
	m.log.Infof("%s signed up for flight %s on %s", observer, flight, day)
	return SignUpResult{Status: StatusAssigned}, nil
}
