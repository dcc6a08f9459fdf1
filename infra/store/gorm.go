// Package store provides TableStore implementations: an embedded sqlite
// database for real deployments and an in-memory fake for tests.
package store

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	corestore "github.com/flightobs/flightwatch/core/store"
)

// Cell is one stored field. Day tables share a single relation keyed by
// (day, row, column), which keeps the store as schemaless as the
// spreadsheet it mirrors.
type Cell struct {
	Day    string `gorm:"primaryKey;size:64"`
	Row    int    `gorm:"primaryKey;column:row_index"`
	Column string `gorm:"primaryKey;column:col;size:64"`
	Value  string
}

// GormStore implements TableStore on an embedded sqlite database.
type GormStore struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite database at path.
func Open(path string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corestore.ErrUnavailable, err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing gorm handle.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Cell{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", corestore.ErrUnavailable, err)
	}
	return &GormStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ReadRows implements TableStore. An unknown day reads as ErrNotFound: day
// tables always carry rows, so zero cells means the table was never created.
func (s *GormStore) ReadRows(ctx context.Context, table string) ([]corestore.Record, error) {
	var cells []Cell
	err := s.db.WithContext(ctx).
		Where("day = ?", table).
		Order("row_index, col").
		Find(&cells).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", corestore.ErrUnavailable, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("table %q: %w", table, corestore.ErrNotFound)
	}
	var recs []corestore.Record
	byRow := make(map[int]int)
	for _, c := range cells {
		i, ok := byRow[c.Row]
		if !ok {
			i = len(recs)
			byRow[c.Row] = i
			recs = append(recs, corestore.Record{Index: c.Row, Fields: make(map[string]string)})
		}
		recs[i].Fields[c.Column] = c.Value
	}
	return recs, nil
}

// WriteCell implements TableStore with an upsert.
func (s *GormStore) WriteCell(ctx context.Context, table string, row int, column, value string) error {
	return s.BatchWrite(ctx, table, []corestore.CellWrite{{Row: row, Column: column, Value: value}})
}

// BatchWrite implements TableStore. All writes go through one transaction.
func (s *GormStore) BatchWrite(ctx context.Context, table string, writes []corestore.CellWrite) error {
	if len(writes) == 0 {
		return nil
	}
	cells := make([]Cell, len(writes))
	for i, w := range writes {
		cells[i] = Cell{Day: table, Row: w.Row, Column: w.Column, Value: w.Value}
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}, {Name: "row_index"}, {Name: "col"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&cells).Error
	if err != nil {
		return fmt.Errorf("%w: %v", corestore.ErrUnavailable, err)
	}
	return nil
}

// SeedRows inserts whole records for a day, used by imports and tests.
func (s *GormStore) SeedRows(ctx context.Context, table string, recs []corestore.Record) error {
	var writes []corestore.CellWrite
	for _, r := range recs {
		for col, val := range r.Fields {
			writes = append(writes, corestore.CellWrite{Row: r.Index, Column: col, Value: val})
		}
	}
	return s.BatchWrite(ctx, table, writes)
}
