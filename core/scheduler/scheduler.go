package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/flightobs/flightwatch/core/logger"
	"github.com/flightobs/flightwatch/core/model"
)

// Request carries one suggestion computation: who wants a schedule, when they
// are available and which flights exist that day.
type Request struct {
	ID       string
	Observer string
	Window   model.Window
	Catalog  []model.Flight
}

// NewRequest builds a Request with a fresh ID.
func NewRequest(observer string, window model.Window, catalog []model.Flight) Request {
	return Request{
		ID:       uuid.NewString(),
		Observer: observer,
		Window:   window,
		Catalog:  catalog,
	}
}

// Entry is one assigned flight in a suggested schedule.
type Entry struct {
	Flight model.Flight
	// Gap is the idle time between the previous entry's boarding end and
	// this entry's boarding start. Meaningless when First is set.
	Gap time.Duration
	// First marks the leading entry, which has no predecessor. A zero Gap
	// alone cannot tell the two apart: back-to-back boarding slots also
	// produce a zero gap.
	First bool
	// Preassigned marks flights the observer already held before the
	// suggestion ran.
	Preassigned bool
}

// TimeBetween renders the gap for display. The first entry has no
// predecessor and renders as a dash.
func (e Entry) TimeBetween() string {
	if e.First {
		return "-"
	}
	return fmt.Sprintf("%d min", int(e.Gap.Minutes()))
}

// Result is an ordered, conflict-free itinerary. It is ephemeral: nothing is
// persisted until the observer confirms a selection.
type Result struct {
	RequestID string
	Observer  string
	Entries   []Entry
}

// Flights returns the assigned flight numbers in presentation order.
func (r Result) Flights() []string {
	out := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Flight.Number
	}
	return out
}

// Engine computes schedule suggestions. It is stateless between requests.
type Engine struct {
	log logger.Logger
}

// New creates an Engine.
func New(log logger.Logger) *Engine {
	return &Engine{log: log}
}

// score orders candidates for the next slot. Fields compare in declaration
// order, lower wins.
type score struct {
	importance int     // 0 for important flights, 1 otherwise
	downtime   float64 // idle minutes before the candidate's busy start
	walk       float64 // gate walking score from the previous gate
}

func (s score) less(o score) bool {
	if s.importance != o.importance {
		return s.importance < o.importance
	}
	if s.downtime != o.downtime {
		return s.downtime < o.downtime
	}
	return s.walk < o.walk
}

// Suggest produces the best achievable itinerary for the request. An empty
// window or catalog yields an empty result, never an error.
func (e *Engine) Suggest(req Request) Result {
	res := Result{RequestID: req.ID, Observer: req.Observer}
	if req.Window.Empty() {
		return res
	}

	candidates := e.filter(req)

	// Flights the observer already holds inside the window are kept
	// unconditionally and seed the cursor.
	cursor := req.Window.Start
	lastGate := model.Gate{}
	var assigned []Entry
	var pool []model.Flight
	for _, f := range candidates {
		if f.HasObserver(req.Observer) && req.Window.Contains(f.BusyStart(), f.BusyEnd()) {
			assigned = append(assigned, Entry{Flight: f, Preassigned: true})
			if f.BusyEnd().After(cursor) {
				cursor = f.BusyEnd()
				lastGate = f.Gate
			}
			continue
		}
		if !f.HasObserver(req.Observer) {
			pool = append(pool, f)
		}
	}

	for {
		best := -1
		var bestScore score
		for i, f := range pool {
			if f.BusyStart().Before(cursor) || f.BusyEnd().After(req.Window.End) {
				continue
			}
			s := score{
				importance: 1,
				downtime:   f.BusyStart().Sub(cursor).Minutes(),
				walk:       f.Gate.WalkScore(lastGate),
			}
			if f.Important {
				s.importance = 0
			}
			// Strict comparison keeps catalog order on ties.
			if best < 0 || s.less(bestScore) {
				best = i
				bestScore = s
			}
		}
		if best < 0 {
			break
		}
		pick := pool[best]
		assigned = append(assigned, Entry{Flight: pick})
		cursor = pick.BusyEnd()
		lastGate = pick.Gate
		pool = append(pool[:best], pool[best+1:]...)
	}

	sort.SliceStable(assigned, func(i, j int) bool {
		return assigned[i].Flight.BoardingStart.Before(*assigned[j].Flight.BoardingStart)
	})
	for i := range assigned {
		if i == 0 {
			assigned[i].First = true
			continue
		}
		assigned[i].Gap = assigned[i].Flight.BoardingStart.Sub(*assigned[i-1].Flight.BoardingEnd)
	}
	res.Entries = assigned

	if e.log != nil {
		e.log.Debugw("suggestion computed", map[string]any{
			"request_id": req.ID,
			"observer":   req.Observer,
			"candidates": len(candidates),
			"assigned":   len(assigned),
		})
	}
	return res
}

// filter keeps flights that are observable, time-parsed and either free or
// already the requester's, preserving catalog order.
func (e *Engine) filter(req Request) []model.Flight {
	var out []model.Flight
	for _, f := range req.Catalog {
		if !f.Schedulable() {
			continue
		}
		if !f.Unassigned() && !f.HasObserver(req.Observer) {
			continue
		}
		out = append(out, f)
	}
	return out
}
