package roster

import (
	"context"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/flightobs/flightwatch/core/model"
)

// ObserverStats aggregates one observer's claims for a day.
type ObserverStats struct {
	Observer        string  `json:"observer"`
	Flights         int     `json:"flights"`
	ObservedMinutes float64 `json:"observed_minutes"`
	// Gap statistics cover the idle time between consecutive claimed
	// flights, in minutes. Zero when fewer than two flights have times.
	MeanGapMinutes   float64 `json:"mean_gap_minutes"`
	StddevGapMinutes float64 `json:"stddev_gap_minutes"`
}

// TrackerSummary is the day-level coverage view.
type TrackerSummary struct {
	Day        string          `json:"day"`
	Observable int             `json:"observable"`
	Claimed    int             `json:"claimed"`
	Coverage   float64         `json:"coverage"`
	Observers  []ObserverStats `json:"observers"`
}

// Tracker summarizes who is watching what for the day. Read-only.
func (m *Manager) Tracker(ctx context.Context, day string) (TrackerSummary, error) {
	flights, err := m.Catalog(ctx, day)
	if err != nil {
		return TrackerSummary{}, err
	}

	sum := TrackerSummary{Day: day}
	perObserver := make(map[string][]model.Flight)
	for _, f := range flights {
		if !f.Schedulable() {
			continue
		}
		sum.Observable++
		if !f.Unassigned() {
			sum.Claimed++
		}
		for _, name := range f.Observers {
			perObserver[name] = append(perObserver[name], f)
		}
	}
	if sum.Observable > 0 {
		sum.Coverage = float64(sum.Claimed) / float64(sum.Observable)
	}

	for name, claimed := range perObserver {
		sort.Slice(claimed, func(i, j int) bool {
			return claimed[i].BoardingStart.Before(*claimed[j].BoardingStart)
		})
		st := ObserverStats{Observer: name, Flights: len(claimed)}
		var gaps []float64
		for i, f := range claimed {
			st.ObservedMinutes += f.BoardingEnd.Sub(*f.BoardingStart).Minutes()
			if i > 0 {
				gaps = append(gaps, f.BoardingStart.Sub(*claimed[i-1].BoardingEnd).Minutes())
			}
		}
		if len(gaps) > 0 {
			st.MeanGapMinutes = stat.Mean(gaps, nil)
			if sd := stat.StdDev(gaps, nil); !math.IsNaN(sd) {
				st.StddevGapMinutes = sd
			}
		}
		sum.Observers = append(sum.Observers, st)
	}
	sort.Slice(sum.Observers, func(i, j int) bool {
		return sum.Observers[i].Observer < sum.Observers[j].Observer
	})
	return sum, nil
}
