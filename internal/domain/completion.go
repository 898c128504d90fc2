package domain

import (
	"context"
	"time"
)

// Completion records that a habit was done on a calendar day. Immutable.
type Completion struct {
	ID             string    `json:"id" db:"id"`
	HabitID        string    `json:"habit_id" db:"habit_id"`
	UserID         string    `json:"user_id" db:"user_id"`
	CompletionDate Day       `json:"completion_date" db:"completion_date"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// HabitStats is a recomputable cache over a habit's completions.
// It is never a source of truth; see streak.Compute for the rebuild.
type HabitStats struct {
	HabitID            string    `json:"habit_id" db:"habit_id"`
	CurrentStreak      int       `json:"current_streak" db:"current_streak"`
	MaxStreak          int       `json:"max_streak" db:"max_streak"`
	SuccessRate        float64   `json:"success_rate" db:"success_rate"`
	LastCompletionDate Day       `json:"last_completion_date" db:"last_completion_date"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

type HabitRepository interface {
	CreateHabit(ctx context.Context, habit *Habit) error
	// GetHabit returns nil, nil when the habit does not exist.
	GetHabit(ctx context.Context, id string) (*Habit, error)
	// FindHabitByTitle matches case-insensitively within one user's habits.
	FindHabitByTitle(ctx context.Context, userID, title string) (*Habit, error)
	ListHabits(ctx context.Context, userID string) ([]*Habit, error)
	ListAllHabits(ctx context.Context) ([]*Habit, error)
	UpdateHabit(ctx context.Context, habit *Habit) error
	// DeleteHabitCascade removes the habit, its completions and its stats in
	// one transaction. Returns ErrNotFound if the habit is absent.
	DeleteHabitCascade(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// InsertCompletion is insert-if-absent on (habit_id, completion_date).
	// It reports false, nil when the day was already recorded.
	InsertCompletion(ctx context.Context, completion *Completion) (bool, error)
	ListCompletionDays(ctx context.Context, habitID string) ([]Day, error)
}

type StatsRepository interface {
	// GetStats returns nil, nil when no record exists.
	GetStats(ctx context.Context, habitID string) (*HabitStats, error)
	UpsertStats(ctx context.Context, stats *HabitStats) error
	DeleteStats(ctx context.Context, habitID string) error
}

// Store is the record store the engine runs against.
type Store interface {
	HabitRepository
	CompletionRepository
	StatsRepository
}
