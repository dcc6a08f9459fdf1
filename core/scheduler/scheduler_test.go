package scheduler

import (
	"reflect"
	"testing"
	"time"

	"github.com/flightobs/flightwatch/core/model"
)

var day = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func clock(hh, mm int) time.Time {
	return day.Add(time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute)
}

func clockp(hh, mm int) *time.Time {
	t := clock(hh, mm)
	return &t
}

type flightOpt func(*model.Flight)

func important(f *model.Flight)   { f.Important = true }
func noEquipment(f *model.Flight) { f.HasEquipment = false }
func heldBy(names ...string) flightOpt {
	return func(f *model.Flight) { f.Observers = names }
}

func flight(number, gate string, startHH, startMM, endHH, endMM int, opts ...flightOpt) model.Flight {
	f := model.Flight{
		Number:        number,
		Gate:          model.ParseGate(gate),
		BoardingStart: clockp(startHH, startMM),
		BoardingEnd:   clockp(endHH, endMM),
		HasEquipment:  true,
	}
	for _, o := range opts {
		o(&f)
	}
	return f
}

func window(startHH, startMM, endHH, endMM int) model.Window {
	return model.Window{Start: clock(startHH, startMM), End: clock(endHH, endMM)}
}

func numbers(res Result) []string {
	return res.Flights()
}

func assertNoOverlap(t *testing.T, res Result) {
	t.Helper()
	for i, a := range res.Entries {
		for j, b := range res.Entries {
			if i >= j {
				continue
			}
			if a.Flight.BusyEnd().After(b.Flight.BusyStart()) && b.Flight.BusyEnd().After(a.Flight.BusyStart()) {
				t.Fatalf("flights %s and %s overlap", a.Flight.Number, b.Flight.Number)
			}
		}
	}
}

func TestSuggestBufferExcludesAdjacentFlight(t *testing.T) {
	// F2 boards 5 minutes after F1 ends; the 10-minute buffers make them
	// conflict, so only F1 and F3 fit.
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20, important),
		flight("F2", "A2", 8, 25, 8, 45),
		flight("F3", "B5", 8, 50, 9, 10),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(7, 30, 10, 0), catalog))
	if got, want := numbers(res), []string{"F1", "F3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	assertNoOverlap(t, res)
	for _, e := range res.Entries {
		if e.Flight.BusyStart().Before(clock(7, 30)) || e.Flight.BusyEnd().After(clock(10, 0)) {
			t.Fatalf("flight %s escapes the window", e.Flight.Number)
		}
	}
}

func TestSuggestEmptyWindow(t *testing.T) {
	catalog := []model.Flight{flight("F1", "A1", 9, 10, 9, 30)}
	e := New(nil)
	if res := e.Suggest(NewRequest("Alice", window(9, 0, 9, 0), catalog)); len(res.Entries) != 0 {
		t.Fatalf("zero-width window must yield empty schedule, got %v", numbers(res))
	}
	if res := e.Suggest(NewRequest("Alice", window(8, 0, 12, 0), nil)); len(res.Entries) != 0 {
		t.Fatal("empty catalog must yield empty schedule")
	}
}

func TestSuggestSkipsUnschedulableFlights(t *testing.T) {
	broken := flight("F1", "A1", 8, 0, 8, 20)
	broken.BoardingStart = nil
	catalog := []model.Flight{
		broken,
		flight("F2", "A2", 8, 0, 8, 20, noEquipment),
		flight("F3", "A3", 9, 0, 9, 20),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(7, 0, 11, 0), catalog))
	if got, want := numbers(res), []string{"F3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestExcludesOtherObservers(t *testing.T) {
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20, heldBy("Bob")),
		flight("F2", "A2", 9, 0, 9, 20),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Carol", window(7, 0, 11, 0), catalog))
	if got, want := numbers(res), []string{"F2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestKeepsPreassignedFlights(t *testing.T) {
	// Bob already holds F2. A fresh greedy scan would grab F1 (important,
	// earlier), but F2 must stay and push F1 out.
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20, important),
		flight("F2", "A2", 8, 25, 8, 45, heldBy("Bob")),
		flight("F3", "B5", 9, 15, 9, 35),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Bob", window(7, 30, 10, 0), catalog))
	if got, want := numbers(res), []string{"F2", "F3"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if !res.Entries[0].Preassigned {
		t.Fatal("F2 must be marked preassigned")
	}
	if res.Entries[1].Preassigned {
		t.Fatal("F3 must not be marked preassigned")
	}
	assertNoOverlap(t, res)
}

func TestSuggestPreassignedOutsideWindowDropped(t *testing.T) {
	catalog := []model.Flight{
		flight("F1", "A1", 6, 0, 6, 20, heldBy("Bob")),
		flight("F2", "A2", 9, 0, 9, 20),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Bob", window(8, 0, 11, 0), catalog))
	if got, want := numbers(res), []string{"F2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestPrefersImportantFlights(t *testing.T) {
	// F2 is later (more downtime) but important, so it wins the first pick
	// and its busy interval then forecloses F1.
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20),
		flight("F2", "A2", 9, 0, 9, 20, important),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(7, 30, 10, 0), catalog))
	if got, want := numbers(res), []string{"F2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestMinimizesDowntime(t *testing.T) {
	// Catalog order lists the later flight first; the engine still picks
	// the earlier one first and fits both.
	catalog := []model.Flight{
		flight("F1", "A1", 9, 0, 9, 20),
		flight("F2", "A2", 8, 0, 8, 20),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(7, 30, 11, 0), catalog))
	if got, want := numbers(res), []string{"F2", "F1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if res.Entries[0].TimeBetween() != "-" {
		t.Fatalf("first entry has no predecessor, got %q", res.Entries[0].TimeBetween())
	}
	if res.Entries[1].TimeBetween() != "40 min" {
		t.Fatalf("gap: got %q", res.Entries[1].TimeBetween())
	}
}

func TestSuggestZeroGapRendersAsMinutes(t *testing.T) {
	// Eve already holds two back-to-back flights. The second one's gap is a
	// genuine zero, which must not be mistaken for "no predecessor".
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20, heldBy("Eve")),
		flight("F2", "A2", 8, 20, 8, 40, heldBy("Eve")),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Eve", window(7, 30, 10, 0), catalog))
	if got, want := numbers(res), []string{"F1", "F2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got := res.Entries[0].TimeBetween(); got != "-" {
		t.Fatalf("first entry has no predecessor, got %q", got)
	}
	if got := res.Entries[1].TimeBetween(); got != "0 min" {
		t.Fatalf("zero gap: got %q", got)
	}
}

func TestSuggestPrefersNearbyGate(t *testing.T) {
	// Equal importance and downtime: the gate in the held flight's
	// concourse wins even though it is listed second.
	catalog := []model.Flight{
		flight("F0", "A5", 8, 0, 8, 10, heldBy("Dee")),
		flight("C1", "B1", 8, 30, 8, 50),
		flight("C2", "A7", 8, 30, 8, 50),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Dee", window(7, 30, 10, 0), catalog))
	if got, want := numbers(res), []string{"F0", "C2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestTieBreaksByCatalogOrder(t *testing.T) {
	// Identical scores: first in catalog order wins.
	catalog := []model.Flight{
		flight("C1", "B1", 8, 30, 8, 50),
		flight("C2", "C1", 8, 30, 8, 50),
	}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(8, 0, 10, 0), catalog))
	if got, want := numbers(res), []string{"C1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSuggestDeterministic(t *testing.T) {
	catalog := []model.Flight{
		flight("F1", "A1", 8, 0, 8, 20, important),
		flight("F2", "A2", 8, 25, 8, 45),
		flight("F3", "B5", 8, 50, 9, 10),
		flight("F4", "B7", 9, 40, 10, 0),
		flight("F5", "C2", 9, 45, 10, 5),
	}
	e := New(nil)
	first := numbers(e.Suggest(NewRequest("Alice", window(7, 0, 11, 0), catalog)))
	for i := 0; i < 10; i++ {
		again := numbers(e.Suggest(NewRequest("Alice", window(7, 0, 11, 0), catalog)))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

func TestSuggestFlightLongerThanWindow(t *testing.T) {
	catalog := []model.Flight{flight("F1", "A1", 8, 0, 10, 0)}
	e := New(nil)
	res := e.Suggest(NewRequest("Alice", window(8, 30, 9, 30), catalog))
	if len(res.Entries) != 0 {
		t.Fatal("flight exceeding the window must never be partially scheduled")
	}
}
