// Package roster owns the write path: confirming suggested schedules,
// one-click signups and the day tracker. All writes re-read the live table
// first to narrow the window for concurrent edits; there is no lock, so two
// observers committing at once can still race. Accepted limitation.
package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/flightobs/flightwatch/core/catalog"
	"github.com/flightobs/flightwatch/core/logger"
	"github.com/flightobs/flightwatch/core/metrics"
	"github.com/flightobs/flightwatch/core/model"
	"github.com/flightobs/flightwatch/core/scheduler"
	"github.com/flightobs/flightwatch/core/store"
	"github.com/flightobs/flightwatch/internal/eventbus"
)

// AssignmentEvent is published on the bus whenever observer names are
// persisted to flight rows.
type AssignmentEvent struct {
	Day      string    `json:"day"`
	Observer string    `json:"observer"`
	Flights  []string  `json:"flights"`
	Time     time.Time `json:"time"`
}

// Skip reasons for flights left out of a commit.
const (
	SkipNotFound        = "not found in live catalog"
	SkipAlreadyAssigned = "observer already signed up"
)

// Skipped names a flight excluded from a commit and why.
type Skipped struct {
	Flight string `json:"flight"`
	Reason string `json:"reason"`
}

// CommitResult enumerates what a confirmation did. Skips are warnings, not
// errors: the rest of the batch still commits.
type CommitResult struct {
	Assigned []string  `json:"assigned"`
	Skipped  []Skipped `json:"skipped,omitempty"`
}

// Manager coordinates the store, the loader and the suggestion engine.
type Manager struct {
	store  store.TableStore
	loader *catalog.Loader
	engine *scheduler.Engine
	sink   metrics.Sink
	bus    eventbus.EventBus
	log    logger.Logger
}

// New creates a Manager. sink and bus may be nil.
func New(st store.TableStore, loader *catalog.Loader, sink metrics.Sink, bus eventbus.EventBus, log logger.Logger) *Manager {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		store:  st,
		loader: loader,
		engine: scheduler.New(log),
		sink:   sink,
		bus:    bus,
		log:    log,
	}
}

// Catalog loads the day's flights from the live store.
func (m *Manager) Catalog(ctx context.Context, day string) ([]model.Flight, error) {
	recs, err := m.store.ReadRows(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("read day %s: %w", day, err)
	}
	return m.loader.Load(recs), nil
}

// ParseWindow builds an availability window from two time-of-day strings.
func (m *Manager) ParseWindow(start, end string) (model.Window, error) {
	s, err := m.loader.ParseClock(start)
	if err != nil {
		return model.Window{}, fmt.Errorf("window start: %w", err)
	}
	e, err := m.loader.ParseClock(end)
	if err != nil {
		return model.Window{}, fmt.Errorf("window end: %w", err)
	}
	return model.Window{Start: s, End: e}, nil
}

// Suggest computes a schedule suggestion against the live catalog.
func (m *Manager) Suggest(ctx context.Context, day, observer string, window model.Window) (scheduler.Result, error) {
	flights, err := m.Catalog(ctx, day)
	if err != nil {
		return scheduler.Result{}, err
	}
	began := time.Now()
	res := m.engine.Suggest(scheduler.NewRequest(observer, window, flights))

	rec := metrics.SuggestionRecord{
		RequestID: res.RequestID,
		Day:       day,
		Observer:  observer,
		Flights:   len(res.Entries),
		Latency:   time.Since(began),
		Time:      time.Now(),
	}
	for _, e := range res.Entries {
		if e.Preassigned {
			rec.Preassigned++
		}
	}
	if err := m.sink.RecordSuggestion(rec); err != nil {
		m.log.Warnf("record suggestion: %v", err)
	}
	return res, nil
}

// Confirm persists the observer onto the selected flights. The live catalog
// is re-fetched so a stale suggestion cannot clobber rows edited since.
// Missing or already-claimed flights are skipped with a warning and the rest
// of the selection still commits.
func (m *Manager) Confirm(ctx context.Context, day, observer string, flights []string) (CommitResult, error) {
	live, err := m.Catalog(ctx, day)
	if err != nil {
		return CommitResult{}, err
	}
	byNumber := make(map[string]*model.Flight, len(live))
	for i := range live {
		byNumber[live[i].Number] = &live[i]
	}

	var res CommitResult
	var writes []store.CellWrite
	var commits []metrics.CommitRecord
	now := time.Now()
	for _, number := range flights {
		f, ok := byNumber[number]
		if !ok {
			m.log.Warnf("confirm %s: flight %s %s", observer, number, SkipNotFound)
			res.Skipped = append(res.Skipped, Skipped{Flight: number, Reason: SkipNotFound})
			commits = append(commits, metrics.CommitRecord{Day: day, Observer: observer, Flight: number, Outcome: metrics.OutcomeNotFound, Time: now})
			continue
		}
		if f.HasObserver(observer) {
			m.log.Warnf("confirm %s: flight %s %s", observer, number, SkipAlreadyAssigned)
			res.Skipped = append(res.Skipped, Skipped{Flight: number, Reason: SkipAlreadyAssigned})
			commits = append(commits, metrics.CommitRecord{Day: day, Observer: observer, Flight: number, Outcome: metrics.OutcomeAlreadyAssigned, Time: now})
			continue
		}
		f.Observers = append(f.Observers, observer)
		writes = append(writes, store.CellWrite{Row: f.Row, Column: catalog.ColObservers, Value: f.ObserverList()})
		res.Assigned = append(res.Assigned, number)
		commits = append(commits, metrics.CommitRecord{Day: day, Observer: observer, Flight: number, Outcome: metrics.OutcomeAssigned, Time: now})
	}

	if len(writes) > 0 {
		if err := m.store.BatchWrite(ctx, day, writes); err != nil {
			return CommitResult{}, fmt.Errorf("write day %s: %w", day, err)
		}
	}
	if err := m.sink.RecordCommits(commits); err != nil {
		m.log.Warnf("record commits: %v", err)
	}
	if m.bus != nil && len(res.Assigned) > 0 {
		m.bus.Publish(AssignmentEvent{Day: day, Observer: observer, Flights: res.Assigned, Time: now})
	}
	m.log.Infof("confirmed %d flight(s) for %s on %s, %d skipped", len(res.Assigned), observer, day, len(res.Skipped))
	return res, nil
}
