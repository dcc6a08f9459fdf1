package config

import (
	"fmt"
	"time"
)

// ScheduleConfig holds scheduling parameters.
type ScheduleConfig struct {
	// Timezone is the reference location flight times are interpreted in.
	Timezone string `json:"timezone"`
}

// SetDefaults applies sane defaults.
func (c *ScheduleConfig) SetDefaults() {
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
}

// Validate checks the timezone resolves.
func (c ScheduleConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %s: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
