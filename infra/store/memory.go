package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	corestore "github.com/flightobs/flightwatch/core/store"
)

// MemStore is an in-memory TableStore used by tests and demo mode.
type MemStore struct {
	mu     sync.RWMutex
	tables map[string]map[int]map[string]string // table -> row -> column -> value
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{tables: make(map[string]map[int]map[string]string)}
}

// Seed replaces the named table with the given rows.
func (m *MemStore) Seed(table string, rows []corestore.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := make(map[int]map[string]string, len(rows))
	for _, r := range rows {
		fields := make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			fields[k] = v
		}
		t[r.Index] = fields
	}
	m.tables[table] = t
}

// ReadRows implements TableStore.
func (m *MemStore) ReadRows(_ context.Context, table string) ([]corestore.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("table %q: %w", table, corestore.ErrNotFound)
	}
	recs := make([]corestore.Record, 0, len(t))
	for idx, fields := range t {
		cp := make(map[string]string, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		recs = append(recs, corestore.Record{Index: idx, Fields: cp})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Index < recs[j].Index })
	return recs, nil
}

// WriteCell implements TableStore.
func (m *MemStore) WriteCell(_ context.Context, table string, row int, column, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("table %q: %w", table, corestore.ErrNotFound)
	}
	if t[row] == nil {
		t[row] = make(map[string]string)
	}
	t[row][column] = value
	return nil
}

// BatchWrite implements TableStore.
func (m *MemStore) BatchWrite(ctx context.Context, table string, writes []corestore.CellWrite) error {
	for _, w := range writes {
		if err := m.WriteCell(ctx, table, w.Row, w.Column, w.Value); err != nil {
			return err
		}
	}
	return nil
}
