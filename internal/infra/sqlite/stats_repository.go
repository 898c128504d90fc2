package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fardannozami/habit-streak/internal/domain"
)

func (s *Store) GetStats(ctx context.Context, habitID string) (*domain.HabitStats, error) {
	query := `SELECT habit_id, current_streak, max_streak, success_rate, last_completion_date, updated_at FROM habit_stats WHERE habit_id = ?`
	row := s.db.QueryRowContext(ctx, query, habitID)

	var st domain.HabitStats
	var last sql.NullString
	var updatedAt string
	err := row.Scan(&st.HabitID, &st.CurrentStreak, &st.MaxStreak, &st.SuccessRate, &last, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get stats", err)
	}

	if last.Valid && last.String != "" {
		st.LastCompletionDate, err = domain.ParseDay(last.String)
		if err != nil {
			return nil, fmt.Errorf("%w: stats for %s: %v", domain.ErrInvariantViolation, habitID, err)
		}
	}
	st.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: stats for %s: malformed updated_at %q", domain.ErrInvariantViolation, habitID, updatedAt)
	}
	return &st, nil
}

func (s *Store) UpsertStats(ctx context.Context, st *domain.HabitStats) error {
	query := `
		INSERT INTO habit_stats (habit_id, current_streak, max_streak, success_rate, last_completion_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			max_streak = excluded.max_streak,
			success_rate = excluded.success_rate,
			last_completion_date = excluded.last_completion_date,
			updated_at = excluded.updated_at
	`
	var last sql.NullString
	if !st.LastCompletionDate.IsZero() {
		last = sql.NullString{String: st.LastCompletionDate.String(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query, st.HabitID, st.CurrentStreak, st.MaxStreak, st.SuccessRate, last, formatTime(st.UpdatedAt))
	if err != nil {
		return unavailable("upsert stats", err)
	}
	return nil
}

func (s *Store) DeleteStats(ctx context.Context, habitID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM habit_stats WHERE habit_id = ?`, habitID); err != nil {
		return unavailable("delete stats", err)
	}
	return nil
}
