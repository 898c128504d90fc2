package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// InsertCompletion maps a unique violation on (habit_id, completion_date)
// to inserted=false; the existing row is left as is.
func (s *Store) InsertCompletion(ctx context.Context, c *domain.Completion) (bool, error) {
	query := `
		INSERT INTO completions (id, habit_id, user_id, completion_date, created_at)
		VALUES ($1, $2, $3, $4::date, $5)
	`
	_, err := s.db.ExecContext(ctx, query, c.ID, c.HabitID, c.UserID, c.CompletionDate.String(), c.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, unavailable("insert completion", err)
	}
	return true, nil
}

func (s *Store) ListCompletionDays(ctx context.Context, habitID string) ([]domain.Day, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT completion_date FROM completions WHERE habit_id = $1 ORDER BY completion_date DESC`, habitID)
	if err != nil {
		return nil, unavailable("list completions", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		var d sql.NullTime
		if err := rows.Scan(&d); err != nil {
			return nil, unavailable("list completions", err)
		}
		if !d.Valid {
			return nil, fmt.Errorf("%w: habit %s has a completion with NULL date", domain.ErrInvariantViolation, habitID)
		}
		days = append(days, domain.DayOf(d.Time))
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list completions", err)
	}
	return days, nil
}
