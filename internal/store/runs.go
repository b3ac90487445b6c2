// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
)

// Run records one execution of a pipeline stage.
type Run struct {
	ID         string       `db:"id"`
	Stage      string       `db:"stage"`
	StartedAt  time.Time    `db:"started_at"`
	FinishedAt sql.NullTime `db:"finished_at"`
	Summary    string       `db:"summary"`
}

// BeginRun records the start of a stage and returns the new run id.
func (s *Store) BeginRun(ctx context.Context, stage string) (string, error) {
	id := uuid.NewString()
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertInto(runsTable).
		Cols("id", "stage", "started_at").
		Values(id, stage, time.Now().UTC())

	query, args := ib.Build()
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("recording run start: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run as finished and stores its JSON-encoded summary.
func (s *Store) FinishRun(ctx context.Context, id string, summary any) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encoding run summary: %w", err)
	}
	ub := sqlbuilder.SQLite.NewUpdateBuilder()
	ub.Update(runsTable).
		Set(
			ub.Assign("finished_at", time.Now().UTC()),
			ub.Assign("summary", string(data)),
		).
		Where(ub.Equal("id", id))

	query, args := ub.Build()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finishing run %s: no such run", id)
	}
	return nil
}

// Runs returns recorded runs, most recent first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("id", "stage", "started_at", "finished_at", "summary").
		From(runsTable).
		OrderBy("started_at").Desc()

	query, args := sb.Build()
	var out []Run
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return out, nil
}
