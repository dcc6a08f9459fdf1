package config

import "fmt"

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// StoreConfig selects the tabular store backend.
type StoreConfig struct {
	// Backend is "sqlite" or "memory".
	Backend string `json:"backend"`
	// Path is the sqlite database file.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = StoreSQLite
	}
	if c.Path == "" {
		c.Path = "flightwatch.db"
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	if c.Backend != StoreSQLite && c.Backend != StoreMemory {
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
	if c.Backend == StoreSQLite && c.Path == "" {
		return fmt.Errorf("store path is required")
	}
	return nil
}
