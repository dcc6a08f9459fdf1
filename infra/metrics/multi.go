package metrics

import coremetrics "github.com/flightobs/flightwatch/core/metrics"

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSuggestion forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordSuggestion(rec coremetrics.SuggestionRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSuggestion(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordCommits forwards the records to all sinks.
func (m *MultiSink) RecordCommits(recs []coremetrics.CommitRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordCommits(recs); err != nil {
			return err
		}
	}
	return nil
}
