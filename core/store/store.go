// Package store defines the tabular day-keyed storage the service
// coordinates through. One table holds one day of flight rows; rows are flat
// string-keyed cells so the backing implementation can be a spreadsheet, an
// embedded database or an in-memory fake.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates a missing table or row.
var ErrNotFound = errors.New("not found")

// ErrUnavailable indicates the backing store cannot be reached. Operations
// wrapping it must abort without partial effect.
var ErrUnavailable = errors.New("store unavailable")

// Record is one row of a table.
type Record struct {
	Index  int
	Fields map[string]string
}

// CellWrite addresses a single field update.
type CellWrite struct {
	Row    int
	Column string
	Value  string
}

// TableStore reads and writes day tables.
type TableStore interface {
	// ReadRows returns every row of the named table.
	ReadRows(ctx context.Context, table string) ([]Record, error)
	// WriteCell persists a single field.
	WriteCell(ctx context.Context, table string, row int, column, value string) error
	// BatchWrite persists several fields. Best effort: no transaction
	// guarantee is assumed of the backing store.
	BatchWrite(ctx context.Context, table string, writes []CellWrite) error
}
