package stats

import (
	"context"
	"io"
	"time"

	"github.com/verte-zerg/typr/internal/history"
	"github.com/verte-zerg/typr/internal/model"
	"github.com/verte-zerg/typr/internal/store"
)

// DefaultCurveChars is how many characters get curves when none are named.
const DefaultCurveChars = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Records          []history.Record
	Aggregate        history.Aggregate
	Sessions         []model.SessionAggregate
	WindowSessionIDs []int64
	CharAggsAll      []model.CharAggregate
	CharAggsWindow   []model.CharAggregate
	Chars            []string
	CharCurves       map[int64]map[string]model.CharAggregate
}

// Filters converts stats options into history filters.
func Filters(cfg model.StatsConfig) history.Filters {
	return history.Filters{
		Language: cfg.Lang,
		Since:    cfg.Since,
		Until:    cfg.Until,
		Last:     cfg.Last,
	}
}

// BuildReport loads history records and, when st is non-nil, per-key data.
func BuildReport(ctx context.Context, hist *history.Store, st *store.Store, cfg model.StatsConfig, now time.Time) (Report, error) {
	records, err := hist.Query(Filters(cfg))
	if err != nil {
		return Report{}, err
	}
	report := Report{
		Records:   records,
		Aggregate: history.Summarize(records, now),
	}
	if st == nil {
		return report, nil
	}

	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	allIDs := sessionIDs(sessions)
	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	charAggsAll, err := st.ListCharAggregatesForSessions(ctx, allIDs)
	if err != nil {
		return Report{}, err
	}
	charAggsWindow, err := st.ListCharAggregatesForSessions(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}
	chars := ParseChars(cfg.Chars)
	if len(chars) == 0 {
		chars = TopCharsByFrequency(charAggsWindow, DefaultCurveChars)
	}
	curves, err := st.ListCharStatsForSessions(ctx, allIDs, chars)
	if err != nil {
		return Report{}, err
	}

	report.Sessions = sessions
	report.WindowSessionIDs = windowIDs
	report.CharAggsAll = charAggsAll
	report.CharAggsWindow = charAggsWindow
	report.Chars = chars
	report.CharCurves = curves
	return report, nil
}

// RenderReport prints the summary followed, when key stats are loaded, by
// the curves and the per-key table.
func RenderReport(w io.Writer, report Report, window int) error {
	if err := RenderAggregate(w, report.Aggregate); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	opts := CurveOptions{Window: window}
	if err := RenderCurves(w, report.Sessions, opts); err != nil {
		return err
	}
	if err := RenderCharTable(w, report.CharAggsWindow); err != nil {
		return err
	}
	return RenderCharCurves(w, report.Sessions, report.CharCurves, report.Chars, opts)
}

func sessionIDs(sessions []model.SessionAggregate) []int64 {
	ids := make([]int64, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []int64 {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
