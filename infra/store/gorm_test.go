package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	corestore "github.com/flightobs/flightwatch/core/store"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "fw.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return s
}

func TestGormStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SeedRows(ctx, "2025-06-02", []corestore.Record{
		{Index: 2, Fields: map[string]string{"FLIGHT OUT": "UA101", "Observers": ""}},
		{Index: 3, Fields: map[string]string{"FLIGHT OUT": "DL202", "Observers": "Anna"}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	recs, err := s.ReadRows(ctx, "2025-06-02")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recs))
	}
	if recs[0].Index != 2 || recs[0].Fields["FLIGHT OUT"] != "UA101" {
		t.Fatalf("bad first row %+v", recs[0])
	}
	if recs[1].Fields["Observers"] != "Anna" {
		t.Fatalf("bad second row %+v", recs[1])
	}
}

func TestGormStoreWriteCellUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.WriteCell(ctx, "d", 2, "Observers", "Anna"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.WriteCell(ctx, "d", 2, "Observers", "Anna, Bob"); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	recs, err := s.ReadRows(ctx, "d")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 1 || recs[0].Fields["Observers"] != "Anna, Bob" {
		t.Fatalf("expected updated cell, got %+v", recs)
	}
}

func TestGormStoreBatchWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.BatchWrite(ctx, "d", []corestore.CellWrite{
		{Row: 2, Column: "Observers", Value: "Anna"},
		{Row: 3, Column: "Observers", Value: "Bob"},
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if err := s.BatchWrite(ctx, "d", nil); err != nil {
		t.Fatalf("empty batch must be a no-op: %v", err)
	}
	recs, err := s.ReadRows(ctx, "d")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(recs))
	}
}

func TestGormStoreUnknownTable(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.ReadRows(context.Background(), "never-seeded"); !errors.Is(err, corestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStoreUnknownTable(t *testing.T) {
	m := NewMemStore()
	if _, err := m.ReadRows(context.Background(), "missing"); !errors.Is(err, corestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := m.WriteCell(context.Background(), "missing", 1, "c", "v"); !errors.Is(err, corestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
