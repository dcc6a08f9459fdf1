package model

import (
	"testing"
	"time"
)

func at(t *testing.T, hh, mm int) *time.Time {
	t.Helper()
	v := time.Date(2025, 6, 2, hh, mm, 0, 0, time.UTC)
	return &v
}

func TestParseGate(t *testing.T) {
	cases := []struct {
		raw       string
		concourse byte
		number    int
	}{
		{"A12", 'A', 12},
		{"b3", 'B', 3},
		{" C7 ", 'C', 7},
		{"", 0, 0},
		{"12", 0, 0},
		{"A", 0, 0},
		{"A1B", 0, 0},
	}
	for _, c := range cases {
		g := ParseGate(c.raw)
		if c.concourse == 0 {
			if g.Concourse != 0 {
				t.Fatalf("%q: expected no concourse, got %c", c.raw, g.Concourse)
			}
			continue
		}
		if g.Concourse != c.concourse || g.Number != c.number {
			t.Fatalf("%q: got %c%d", c.raw, g.Concourse, g.Number)
		}
	}
}

func TestWalkScore(t *testing.T) {
	a5 := ParseGate("A5")
	a12 := ParseGate("A12")
	b1 := ParseGate("B1")
	if got := a12.WalkScore(a5); got != 0.7 {
		t.Fatalf("same concourse: got %v", got)
	}
	if got := b1.WalkScore(a5); got != 15 {
		t.Fatalf("different concourse: got %v", got)
	}
	if got := a5.WalkScore(Gate{}); got != 15 {
		t.Fatalf("no previous gate: got %v", got)
	}
}

func TestBusyInterval(t *testing.T) {
	f := Flight{BoardingStart: at(t, 8, 0), BoardingEnd: at(t, 8, 20), HasEquipment: true}
	if !f.Schedulable() {
		t.Fatal("expected schedulable")
	}
	if got := f.BusyStart(); !got.Equal(*at(t, 7, 50)) {
		t.Fatalf("busy start %v", got)
	}
	if got := f.BusyEnd(); !got.Equal(*at(t, 8, 30)) {
		t.Fatalf("busy end %v", got)
	}
}

func TestSchedulable(t *testing.T) {
	if (Flight{BoardingStart: at(t, 8, 0), BoardingEnd: at(t, 8, 20)}).Schedulable() {
		t.Fatal("no equipment must not be schedulable")
	}
	if (Flight{HasEquipment: true, BoardingEnd: at(t, 8, 20)}).Schedulable() {
		t.Fatal("missing boarding start must not be schedulable")
	}
}

func TestHasObserver(t *testing.T) {
	f := Flight{Observers: []string{"Anna", "bob"}}
	if !f.HasObserver("anna") || !f.HasObserver("Bob") {
		t.Fatal("expected case-insensitive match")
	}
	// Whole names only: "Ann" is not "Anna".
	if f.HasObserver("Ann") {
		t.Fatal("substring must not match")
	}
	if (Flight{}).HasObserver("Anna") {
		t.Fatal("empty list must not match")
	}
}

func TestSplitObservers(t *testing.T) {
	got := SplitObservers(" Anna,  Bob ,,Carol")
	want := []string{"Anna", "Bob", "Carol"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
	if SplitObservers("  ") != nil {
		t.Fatal("blank cell must yield nil")
	}
}

func TestWindow(t *testing.T) {
	w := Window{Start: *at(t, 8, 0), End: *at(t, 10, 0)}
	if !w.Contains(*at(t, 8, 0), *at(t, 10, 0)) {
		t.Fatal("boundary times must be contained")
	}
	if w.Contains(*at(t, 7, 59), *at(t, 9, 0)) {
		t.Fatal("early start must not be contained")
	}
	if w.Empty() {
		t.Fatal("window has width")
	}
	if !(Window{Start: *at(t, 9, 0), End: *at(t, 9, 0)}).Empty() {
		t.Fatal("zero-width window must be empty")
	}
}
