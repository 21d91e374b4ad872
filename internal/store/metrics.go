package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sadopc/focusflow/internal/verdict"
)

// RecordCheck appends one focus-history entry and folds it into today's
// streak record: counter increment, consecutive on-track high-water mark,
// and focus score recomputation.
func (s *SQLite) RecordCheck(taskID int64, taskTitle string, v verdict.Verdict, message string) error {
	now := s.now()
	today := now.Format("2006-01-02")

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin record check: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO focus_history (task_id, task_title, verdict, message, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		taskID, taskTitle, v, message, now.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	var onTrack, distracted, idle, maxConsec int
	err = tx.QueryRow(
		`SELECT on_track_count, distracted_count, idle_count, max_consecutive_on_track
		 FROM streaks WHERE date = ?`, today,
	).Scan(&onTrack, &distracted, &idle, &maxConsec)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read streak row: %w", err)
	}

	switch v {
	case verdict.OnTrack:
		onTrack++
	case verdict.Distracted:
		distracted++
	case verdict.Idle:
		idle++
	}

	consecutive, err := trailingOnTrack(tx, today)
	if err != nil {
		return err
	}
	if consecutive > maxConsec {
		maxConsec = consecutive
	}

	score := 0.0
	if total := onTrack + distracted + idle; total > 0 {
		score = float64(onTrack) / float64(total) * 100
	}

	if _, err := tx.Exec(
		`INSERT INTO streaks (date, on_track_count, distracted_count, idle_count, max_consecutive_on_track, focus_score)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
			on_track_count = excluded.on_track_count,
			distracted_count = excluded.distracted_count,
			idle_count = excluded.idle_count,
			max_consecutive_on_track = excluded.max_consecutive_on_track,
			focus_score = excluded.focus_score`,
		today, onTrack, distracted, idle, maxConsec, score,
	); err != nil {
		return fmt.Errorf("upsert streak row: %w", err)
	}

	return tx.Commit()
}

// trailingOnTrack counts consecutive On Track verdicts for the given day,
// scanning from the most recent entry backward. The scan stops at the first
// other verdict, so it stays cheap without a row limit; capping it would
// clamp long streaks.
func trailingOnTrack(tx *sql.Tx, day string) (int, error) {
	rows, err := tx.Query(
		`SELECT verdict FROM focus_history WHERE DATE(timestamp) = ? ORDER BY id DESC`, day,
	)
	if err != nil {
		return 0, fmt.Errorf("read recent verdicts: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return 0, err
		}
		if verdict.Verdict(v) != verdict.OnTrack {
			break
		}
		count++
	}
	return count, rows.Err()
}

func (s *SQLite) TodayStats() (TodayStats, error) {
	today := s.now().Format("2006-01-02")

	var st TodayStats
	var score float64
	err := s.db.QueryRow(
		`SELECT on_track_count, distracted_count, idle_count, max_consecutive_on_track, focus_score
		 FROM streaks WHERE date = ?`, today,
	).Scan(&st.OnTrack, &st.Distracted, &st.Idle, &st.MaxStreak, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return TodayStats{}, nil
	}
	if err != nil {
		return TodayStats{}, fmt.Errorf("read today stats: %w", err)
	}

	st.FocusScore = math.Round(score*10) / 10
	st.TotalChecks = st.OnTrack + st.Distracted + st.Idle
	return st, nil
}

// CurrentStreak counts today's consecutive On Track checks ending at the
// most recent entry.
func (s *SQLite) CurrentStreak() (int, error) {
	today := s.now().Format("2006-01-02")

	rows, err := s.db.Query(
		`SELECT verdict FROM focus_history WHERE DATE(timestamp) = ? ORDER BY id DESC`, today,
	)
	if err != nil {
		return 0, fmt.Errorf("read current streak: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return 0, err
		}
		if verdict.Verdict(v) != verdict.OnTrack {
			break
		}
		count++
	}
	return count, rows.Err()
}

// WeeklyStats returns streak records for the trailing 7 calendar days,
// newest first. Days without checks are absent.
func (s *SQLite) WeeklyStats() ([]DayStats, error) {
	since := s.now().AddDate(0, 0, -6).Format("2006-01-02")

	rows, err := s.db.Query(
		`SELECT date, on_track_count, distracted_count, idle_count, max_consecutive_on_track, focus_score
		 FROM streaks WHERE date >= ? ORDER BY date DESC`, since,
	)
	if err != nil {
		return nil, fmt.Errorf("read weekly stats: %w", err)
	}
	defer rows.Close()

	var stats []DayStats
	for rows.Next() {
		var d DayStats
		if err := rows.Scan(&d.Date, &d.OnTrack, &d.Distracted, &d.Idle, &d.MaxConsecutiveOnTrack, &d.FocusScore); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

func (s *SQLite) History(limit int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, task_id, task_title, verdict, message, timestamp
		 FROM focus_history ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.TaskID, &e.TaskTitle, &e.Verdict, &e.Message, &ts); err != nil {
			return nil, err
		}
		e.Timestamp, _ = time.Parse(time.RFC3339, ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ChartSeries builds the 7-day chart arrays, zero-filling days without data.
func (s *SQLite) ChartSeries() (ChartSeries, error) {
	weekly, err := s.WeeklyStats()
	if err != nil {
		return ChartSeries{}, err
	}
	return buildChartSeries(s.now(), weekly), nil
}

func (s *SQLite) ClearMetrics() error {
	if _, err := s.db.Exec(`DELETE FROM focus_history`); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM streaks`)
	return err
}

// buildChartSeries aligns weekly records into exactly seven days, oldest
// first. Shared by both backends so the chart shape cannot drift.
func buildChartSeries(now time.Time, weekly []DayStats) ChartSeries {
	byDate := make(map[string]DayStats, len(weekly))
	for _, d := range weekly {
		byDate[d.Date] = d
	}

	series := ChartSeries{
		Dates:       make([]string, 0, 7),
		FocusScores: make([]float64, 0, 7),
		OnTrack:     make([]int, 0, 7),
		Distracted:  make([]int, 0, 7),
		Idle:        make([]int, 0, 7),
	}
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		series.Dates = append(series.Dates, day.Format("01/02"))

		d := byDate[day.Format("2006-01-02")]
		series.FocusScores = append(series.FocusScores, d.FocusScore)
		series.OnTrack = append(series.OnTrack, d.OnTrack)
		series.Distracted = append(series.Distracted, d.Distracted)
		series.Idle = append(series.Idle, d.Idle)
	}
	return series
}
