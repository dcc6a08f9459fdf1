package model

import (
	"math"
	"strconv"
	"strings"
)

// concourseChangePenalty is the walking score charged when two gates sit in
// different concourses, or when there is no previous gate to compare against.
const concourseChangePenalty = 15

// Gate is a departure gate split into a concourse letter and a stand number
// for walking-distance comparisons. A gate that does not follow the
// letter-plus-digits convention keeps Concourse zero and an unreachable
// Number so it never scores as close.
type Gate struct {
	Raw       string
	Concourse byte
	Number    int
}

// ParseGate interprets strings like "A12" or "b3". Anything else yields a
// gate with no concourse and a number of MaxInt32.
func ParseGate(raw string) Gate {
	g := Gate{Raw: strings.TrimSpace(raw), Number: math.MaxInt32}
	if g.Raw == "" {
		return g
	}
	c := g.Raw[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return g
	}
	n, err := strconv.Atoi(strings.TrimSpace(g.Raw[1:]))
	if err != nil {
		return g
	}
	g.Concourse = c
	g.Number = n
	return g
}

func (g Gate) String() string { return g.Raw }

// WalkScore estimates the effort of moving from prev to g. Gates in the same
// concourse score by stand distance, everything else costs the fixed
// concourse-change penalty.
func (g Gate) WalkScore(prev Gate) float64 {
	if g.Concourse == 0 || prev.Concourse == 0 || g.Concourse != prev.Concourse {
		return concourseChangePenalty
	}
	d := g.Number - prev.Number
	if d < 0 {
		d = -d
	}
	return float64(d) / 10
}
