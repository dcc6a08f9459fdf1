package metrics

import (
	coremetrics "github.com/flightobs/flightwatch/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records observation events in Prometheus metrics.
type PromSink struct {
	suggestions *prometheus.CounterVec
	flights     prometheus.Histogram
	latency     prometheus.Histogram
	commits     *prometheus.CounterVec
}

// NewPromSink registers the sink's metrics on the default Prometheus
// registerer. The metrics server is started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	suggestions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_suggestions_total",
		Help: "Total number of schedule suggestions computed",
	}, []string{"day"})
	flights := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_suggestion_flights",
		Help:    "Number of flights per suggested schedule",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_suggestion_latency_seconds",
		Help:    "Time spent computing a suggestion",
		Buckets: prometheus.DefBuckets,
	})
	commits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_commits_total",
		Help: "Total number of per-flight commit outcomes",
	}, []string{"outcome"})

	if err := reg.Register(suggestions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			suggestions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(flights); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			flights = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(commits); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			commits = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{suggestions: suggestions, flights: flights, latency: latency, commits: commits}, nil
}

// RecordSuggestion updates the suggestion counter and histograms.
func (s *PromSink) RecordSuggestion(rec coremetrics.SuggestionRecord) error {
	s.suggestions.WithLabelValues(rec.Day).Inc()
	s.flights.Observe(float64(rec.Flights))
	s.latency.Observe(rec.Latency.Seconds())
	return nil
}

// RecordCommits increments the commit counter per outcome.
func (s *PromSink) RecordCommits(recs []coremetrics.CommitRecord) error {
	for _, r := range recs {
		s.commits.WithLabelValues(r.Outcome).Inc()
	}
	return nil
}
