package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fardannozami/habit-streak/internal/domain"
)

func (s *Store) GetStats(ctx context.Context, habitID string) (*domain.HabitStats, error) {
	query := `SELECT habit_id, current_streak, max_streak, success_rate, last_completion_date, updated_at FROM habit_stats WHERE habit_id = $1`

	var st domain.HabitStats
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx, query, habitID).
		Scan(&st.HabitID, &st.CurrentStreak, &st.MaxStreak, &st.SuccessRate, &last, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get stats", err)
	}
	if last.Valid {
		st.LastCompletionDate = domain.DayOf(last.Time)
	}
	return &st, nil
}

func (s *Store) UpsertStats(ctx context.Context, st *domain.HabitStats) error {
	query := `
		INSERT INTO habit_stats (habit_id, current_streak, max_streak, success_rate, last_completion_date, updated_at)
		VALUES ($1, $2, $3, $4, $5::date, $6)
		ON CONFLICT (habit_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			max_streak = EXCLUDED.max_streak,
			success_rate = EXCLUDED.success_rate,
			last_completion_date = EXCLUDED.last_completion_date,
			updated_at = EXCLUDED.updated_at
	`
	var last sql.NullString
	if !st.LastCompletionDate.IsZero() {
		last = sql.NullString{String: st.LastCompletionDate.String(), Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query, st.HabitID, st.CurrentStreak, st.MaxStreak, st.SuccessRate, last, st.UpdatedAt.UTC()); err != nil {
		return unavailable("upsert stats", err)
	}
	return nil
}

func (s *Store) DeleteStats(ctx context.Context, habitID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM habit_stats WHERE habit_id = $1`, habitID); err != nil {
		return unavailable("delete stats", err)
	}
	return nil
}
