// Package metrics defines the sink interface observation events are
// reported through. Implementations live in infra/metrics.
package metrics

import (
	"fmt"
	"time"
)

// Commit outcomes.
const (
	OutcomeAssigned        = "assigned"
	OutcomeAlreadyAssigned = "already_assigned"
	OutcomeNotFound        = "not_found"
)

// Config selects and parameterizes the enabled sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = ":2112"
	}
}

// Validate checks mandatory fields for the enabled sinks.
func (c Config) Validate() error {
	if c.InfluxEnabled {
		if c.InfluxURL == "" {
			return fmt.Errorf("influx_url is required")
		}
		if c.InfluxOrg == "" || c.InfluxBucket == "" {
			return fmt.Errorf("influx_org and influx_bucket are required")
		}
	}
	return nil
}

// SuggestionRecord describes one completed suggestion computation.
type SuggestionRecord struct {
	RequestID   string
	Day         string
	Observer    string
	Flights     int
	Preassigned int
	Latency     time.Duration
	Time        time.Time
}

// CommitRecord describes the outcome of one flight in a confirmation batch.
type CommitRecord struct {
	Day      string
	Observer string
	Flight   string
	Outcome  string
	Time     time.Time
}

// Sink records observation events.
type Sink interface {
	RecordSuggestion(rec SuggestionRecord) error
	RecordCommits(recs []CommitRecord) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordSuggestion(SuggestionRecord) error { return nil }
func (NopSink) RecordCommits([]CommitRecord) error      { return nil }
