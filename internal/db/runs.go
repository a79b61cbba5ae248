package db

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Run is one fetch-prices invocation. Prices themselves are not journaled.
type Run struct {
	ID         string
	League     string
	StartedAt  time.Time
	FinishedAt time.Time
	FetchOK    bool
	SavedOK    bool
	PatchedOK  bool
	QuoteCount int
	Errors     []string
}

func NewRunID() string {
	return "run_" + strings.ReplaceAll(uuid.New().String(), "-", "")
}

func (d *DB) RecordRun(ctx context.Context, r Run) error {
	if r.ID == "" {
		r.ID = NewRunID()
	}
	var errVal any
	if len(r.Errors) > 0 {
		errVal = strings.Join(r.Errors, "; ")
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO runs(run_id,league,started_at,finished_at,fetch_ok,saved_ok,patched_ok,quote_count,last_error) VALUES(?,?,?,?,?,?,?,?,?)`,
		r.ID, r.League, r.StartedAt.Unix(), r.FinishedAt.Unix(),
		boolInt(r.FetchOK), boolInt(r.SavedOK), boolInt(r.PatchedOK), r.QuoteCount, errVal)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (d *DB) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.sql.QueryContext(ctx,
		`SELECT run_id,league,started_at,finished_at,fetch_ok,saved_ok,patched_ok,quote_count,last_error FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var fetchOK, savedOK, patchedOK int
		var lastErr sql.NullString
		if err := rows.Scan(&r.ID, &r.League, &started, &finished, &fetchOK, &savedOK, &patchedOK, &r.QuoteCount, &lastErr); err != nil {
			return nil, err
		}
		r.StartedAt = time.Unix(started, 0)
		r.FinishedAt = time.Unix(finished, 0)
		r.FetchOK = fetchOK == 1
		r.SavedOK = savedOK == 1
		r.PatchedOK = patchedOK == 1
		if lastErr.Valid && lastErr.String != "" {
			r.Errors = strings.Split(lastErr.String, "; ")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
