package sqlite

import (
	"context"
	"fmt"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// InsertCompletion relies on UNIQUE(habit_id, completion_date); a conflict
// leaves the table untouched and reports inserted=false.
func (s *Store) InsertCompletion(ctx context.Context, c *domain.Completion) (bool, error) {
	query := `
		INSERT INTO completions (id, habit_id, user_id, completion_date, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, completion_date) DO NOTHING
	`
	res, err := s.db.ExecContext(ctx, query, c.ID, c.HabitID, c.UserID, c.CompletionDate.String(), formatTime(c.CreatedAt))
	if err != nil {
		return false, unavailable("insert completion", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, unavailable("insert completion", err)
	}
	return n > 0, nil
}

func (s *Store) ListCompletionDays(ctx context.Context, habitID string) ([]domain.Day, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT completion_date FROM completions WHERE habit_id = ? ORDER BY completion_date DESC`, habitID)
	if err != nil {
		return nil, unavailable("list completions", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, unavailable("list completions", err)
		}
		day, err := domain.ParseDay(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: habit %s: %v", domain.ErrInvariantViolation, habitID, err)
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list completions", err)
	}
	return days, nil
}
