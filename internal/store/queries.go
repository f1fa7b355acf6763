package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/typr/internal/model"
)

const timeLayout = time.RFC3339Nano

const charAggregateColumns = `char, SUM(correct), SUM(incorrect),
	SUM(latency_sum_ms), SUM(latency_count), SUM(dwell_sum_ms), SUM(dwell_count)`

// InsertSession stores a completed session and its per-key stats in one
// transaction and returns the new session id.
func (s *Store) InsertSession(ctx context.Context, session model.SessionStats, chars []model.CharStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, lang, words, source, correct, total, duration_ms, wpm_raw, wpm_adjusted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.StartedAt.Format(timeLayout), session.EndedAt.Format(timeLayout),
		session.Lang, session.Words, session.Source,
		session.Correct, session.Total, session.DurationMs,
		session.WPMRaw, session.WPMAdjusted,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	for _, cs := range chars {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO session_key_stats (session_id, char, correct, incorrect, latency_sum_ms, latency_count, dwell_sum_ms, dwell_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount, cs.DwellSumMs, cs.DwellCount)
		if err != nil {
			return 0, fmt.Errorf("failed to insert stats for %q: %w", cs.Char, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}
	return id, nil
}

// GetWeakChars sums key stats over the window most recent sessions,
// optionally restricted to one language. A non-positive window yields nil.
func (s *Store) GetWeakChars(ctx context.Context, window int, lang string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `SELECT ` + charAggregateColumns + `
		FROM session_key_stats
		WHERE session_id IN (
			SELECT id FROM sessions
			WHERE ? = '' OR lang = ?
			ORDER BY ended_at DESC
			LIMIT ?
		)
		GROUP BY char`
	return s.charAggregates(ctx, query, lang, lang, window)
}

// ListSessions returns sessions matching the language and date filters,
// oldest first. Dates compare against the local calendar day of ended_at.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	var where []string
	var args []any
	add := func(clause, value string) {
		if value != "" {
			where = append(where, clause)
			args = append(args, value)
		}
	}
	add("lang = ?", cfg.Lang)
	add("substr(ended_at, 1, 10) >= ?", cfg.Since)
	add("substr(ended_at, 1, 10) <= ?", cfg.Until)

	query := `SELECT id, ended_at, correct, total, duration_ms, wpm_adjusted FROM sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY ended_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return collect(rows, func(rows *sql.Rows) (model.SessionAggregate, error) {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Correct, &agg.Total, &agg.DurationMs, &agg.WPMAdjusted); err != nil {
			return agg, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return agg, fmt.Errorf("failed to parse session time %q: %w", endedAt, err)
		}
		agg.EndedAt = parsed
		return agg, nil
	})
}

// ListCharAggregatesForSessions sums per-key stats across the given sessions.
func (s *Store) ListCharAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.CharAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM session_key_stats WHERE session_id IN (%s) GROUP BY char`,
		charAggregateColumns, placeholders(len(sessionIDs)))
	return s.charAggregates(ctx, query, anys(sessionIDs)...)
}

// ListCharStatsForSessions returns the stats of the selected keys keyed by
// session id then key. Sessions without any of the keys are absent.
func (s *Store) ListCharStatsForSessions(ctx context.Context, sessionIDs []int64, chars []string) (map[int64]map[string]model.CharAggregate, error) {
	result := map[int64]map[string]model.CharAggregate{}
	if len(sessionIDs) == 0 || len(chars) == 0 {
		return result, nil
	}
	query := fmt.Sprintf(`SELECT session_id, char, correct, incorrect, latency_sum_ms, latency_count, dwell_sum_ms, dwell_count
		FROM session_key_stats
		WHERE session_id IN (%s) AND char IN (%s)`, placeholders(len(sessionIDs)), placeholders(len(chars)))
	args := append(anys(sessionIDs), anys(chars)...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query key stats: %w", err)
	}
	type entry struct {
		session int64
		agg     model.CharAggregate
	}
	entries, err := collect(rows, func(rows *sql.Rows) (entry, error) {
		var e entry
		a := &e.agg
		err := rows.Scan(&e.session, &a.Char, &a.Correct, &a.Incorrect, &a.LatencySumMs, &a.LatencyCount, &a.DwellSumMs, &a.DwellCount)
		return e, err
	})
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if result[e.session] == nil {
			result[e.session] = map[string]model.CharAggregate{}
		}
		result[e.session][e.agg.Char] = e.agg
	}
	return result, nil
}

func (s *Store) charAggregates(ctx context.Context, query string, args ...any) ([]model.CharAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate key stats: %w", err)
	}
	return collect(rows, func(rows *sql.Rows) (model.CharAggregate, error) {
		var a model.CharAggregate
		err := rows.Scan(&a.Char, &a.Correct, &a.Incorrect, &a.LatencySumMs, &a.LatencyCount, &a.DwellSumMs, &a.DwellCount)
		return a, err
	})
}

// collect scans every row with scan and closes rows. It returns nil when
// there are no rows.
func collect[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			_ = cerr
		}
	}()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func anys[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
