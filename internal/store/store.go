// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists named record tables between pipeline stages.
//
// Each artifact is a JSON-encoded table keyed by a descriptive name in a
// SQLite database at <dir>/artifacts.db. Writing an artifact replaces any
// earlier table of the same name. Stage runs are recorded alongside so an
// artifact can be traced to the run that produced it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/nuclide-engine/pkg/types"
)

const (
	dbFile    = "artifacts.db"
	exportDir = "export"

	artifactsTable = "artifacts"
	runsTable      = "runs"
)

// ErrNotFound is returned when no artifact has the requested name.
var ErrNotFound = errors.New("artifact not found")

// Kind names the record type an artifact holds.
type Kind string

const (
	KindNuclides Kind = "nuclides"
	KindDerived  Kind = "derived"
	KindMerged   Kind = "merged"
)

// Artifact is one stored table.
type Artifact struct {
	Name        string         `db:"name"`
	Kind        Kind           `db:"kind"`
	RecordCount int            `db:"record_count"`
	Data        []byte         `db:"data"`
	RunID       sql.NullString `db:"run_id"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// Store manages the artifact database.
type Store struct {
	db     *sqlx.DB
	dir    string
	logger *zap.Logger
}

// Open opens or creates the artifact database under cfg.Dir and applies
// pending schema migrations.
func Open(cfg types.StoreConfig, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One writer; keeps WAL mode and migrations on a single connection.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dir: cfg.Dir, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Put writes data under name, replacing any earlier artifact of that name.
func (s *Store) Put(ctx context.Context, name string, kind Kind, count int, data []byte, runID string) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto(artifactsTable).
		Cols("name", "kind", "record_count", "data", "run_id", "updated_at").
		Values(name, string(kind), count, data, nullString(runID), time.Now().UTC())
	ib.SQL("ON CONFLICT(name) DO UPDATE SET " +
		"kind = excluded.kind, record_count = excluded.record_count, data = excluded.data, " +
		"run_id = excluded.run_id, updated_at = excluded.updated_at")

	query, args := ib.Build()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("writing artifact %s: %w", name, err)
	}
	s.logger.Debug("artifact written",
		zap.String("name", name), zap.String("kind", string(kind)), zap.Int("records", count))
	return nil
}

// Get reads the artifact stored under name.
func (s *Store) Get(ctx context.Context, name string) (Artifact, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("name", "kind", "record_count", "data", "run_id", "updated_at").
		From(artifactsTable).
		Where(sb.Equal("name", name))

	query, args := sb.Build()
	var a Artifact
	err := s.db.GetContext(ctx, &a, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("reading artifact %s: %w", name, err)
	}
	return a, nil
}

// List returns every artifact without its data, ordered by name.
func (s *Store) List(ctx context.Context) ([]Artifact, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("name", "kind", "record_count", "run_id", "updated_at").
		From(artifactsTable).
		OrderBy("name")

	query, args := sb.Build()
	var out []Artifact
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	return out, nil
}

// SaveTable encodes records as JSON and stores them under name.
func SaveTable[T any](ctx context.Context, s *Store, name string, kind Kind, records []T, runID string) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding artifact %s: %w", name, err)
	}
	return s.Put(ctx, name, kind, len(records), data, runID)
}

// LoadTable decodes the records stored under name.
func LoadTable[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	a, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(a.Data, &records); err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", name, err)
	}
	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
