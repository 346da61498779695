package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soyeahso/adkit/internal/domain"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// HistoryStore records debug runs.
type HistoryStore struct {
	db *DB
}

// NewHistoryStore returns a store over db.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, query, response, model, agent, session_id, events, error, duration_ms, created_at`

// Record inserts run, assigning an id and timestamp when they are unset.
// The stored copy is returned.
func (s *HistoryStore) Record(ctx context.Context, run domain.Run) (domain.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	_, err := s.db.sql.ExecContext(ctx,
		`INSERT INTO debug_runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.Response, run.Model, run.Agent, run.SessionID, run.Events,
		run.Error, run.Duration.Milliseconds(), run.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return domain.Run{}, fmt.Errorf("insert run: %w", err)
	}
	s.db.log.Debug().Str("id", run.ID).Str("status", run.Status()).Msg("run recorded")
	return run, nil
}

// List returns the most recent runs first.
func (s *HistoryStore) List(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT `+runColumns+` FROM debug_runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with the given id, or a prefix of it when the prefix
// is unambiguous.
func (s *HistoryStore) Get(ctx context.Context, id string) (domain.Run, error) {
	rows, err := s.db.sql.QueryContext(ctx,
		`SELECT `+runColumns+` FROM debug_runs WHERE id = ? OR id LIKE ? ORDER BY id = ? DESC LIMIT 2`,
		id, id+"%", id)
	if err != nil {
		return domain.Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var found []domain.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return domain.Run{}, err
		}
		found = append(found, r)
	}
	if err := rows.Err(); err != nil {
		return domain.Run{}, err
	}

	switch {
	case len(found) == 0:
		return domain.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case found[0].ID == id, len(found) == 1:
		return found[0], nil
	default:
		return domain.Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// Clear deletes every recorded run and reports how many were removed.
func (s *HistoryStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.sql.ExecContext(ctx, `DELETE FROM debug_runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func scanRun(rows *sql.Rows) (domain.Run, error) {
	var (
		r          domain.Run
		durationMS int64
		createdAt  string
	)
	if err := rows.Scan(&r.ID, &r.Query, &r.Response, &r.Model, &r.Agent, &r.SessionID,
		&r.Events, &r.Error, &durationMS, &createdAt); err != nil {
		return domain.Run{}, fmt.Errorf("scan run: %w", err)
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return domain.Run{}, fmt.Errorf("parse created_at of run %s: %w", r.ID, err)
	}
	r.CreatedAt = ts
	return r, nil
}
