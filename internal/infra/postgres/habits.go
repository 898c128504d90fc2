package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fardannozami/habit-streak/internal/domain"
)

const habitColumns = `id, user_id, title, description, color, icon, goal_frequency, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*domain.Habit, error) {
	var h domain.Habit
	var icon, freq string
	if err := row.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Color, &icon, &freq, &h.CreatedAt); err != nil {
		return nil, err
	}
	h.Icon = domain.Icon(icon)
	h.GoalFrequency = domain.GoalFrequency(freq)
	return &h, nil
}

func (s *Store) CreateHabit(ctx context.Context, h *domain.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Title, h.Description, h.Color, string(h.Icon), string(h.GoalFrequency), h.CreatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: habit id %s already exists", domain.ErrInvariantViolation, h.ID)
		}
		return unavailable("create habit", err)
	}
	return nil
}

func (s *Store) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	h, err := scanHabit(s.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get habit", err)
	}
	return h, nil
}

// FindHabitByTitle returns the user's newest habit whose title matches.
// Matching happens in Go because SQL lower() does not fold non-ASCII letters
// the same way on every backend.
func (s *Store) FindHabitByTitle(ctx context.Context, userID, title string) (*domain.Habit, error) {
	habits, err := s.ListHabits(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		if h.MatchesTitle(title) {
			return h, nil
		}
	}
	return nil, nil
}

func (s *Store) ListHabits(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.queryHabits(ctx, `SELECT `+habitColumns+` FROM habits WHERE user_id = $1 ORDER BY created_at DESC, id`, userID)
}

func (s *Store) ListAllHabits(ctx context.Context) ([]*domain.Habit, error) {
	return s.queryHabits(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY created_at DESC, id`)
}

func (s *Store) queryHabits(ctx context.Context, query string, args ...any) ([]*domain.Habit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("list habits", err)
	}
	defer rows.Close()

	var habits []*domain.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, unavailable("list habits", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list habits", err)
	}
	return habits, nil
}

func (s *Store) UpdateHabit(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET title = $1, description = $2, color = $3, icon = $4, goal_frequency = $5
		WHERE id = $6
	`
	res, err := s.db.ExecContext(ctx, query, h.Title, h.Description, h.Color, string(h.Icon), string(h.GoalFrequency), h.ID)
	if err != nil {
		return unavailable("update habit", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("update habit", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteHabitCascade(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin delete", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE habit_id = $1`, id); err != nil {
		return unavailable("delete completions", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_stats WHERE habit_id = $1`, id); err != nil {
		return unavailable("delete stats", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return unavailable("delete habit", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("delete habit", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit delete", err)
	}
	return nil
}
