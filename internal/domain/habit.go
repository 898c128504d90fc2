package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Icon string

const (
	IconCheck  Icon = "check"
	IconFlame  Icon = "flame"
	IconTarget Icon = "target"
	IconClock  Icon = "clock"
)

// GoalFrequency is advisory. Streaks are always counted in consecutive days.
type GoalFrequency string

const (
	FrequencyDaily   GoalFrequency = "Daily"
	FrequencyWeekly  GoalFrequency = "Weekly"
	FrequencyMonthly GoalFrequency = "Monthly"
)

const (
	DefaultColor     = "#6366f1"
	DefaultIcon      = IconCheck
	DefaultFrequency = FrequencyDaily
)

type Habit struct {
	ID            string        `json:"id" db:"id"`
	UserID        string        `json:"user_id" db:"user_id" validate:"required"`
	Title         string        `json:"title" db:"title" validate:"required,max=120"`
	Description   string        `json:"description" db:"description" validate:"max=1000"`
	Color         string        `json:"color" db:"color" validate:"omitempty,hexcolor"`
	Icon          Icon          `json:"icon" db:"icon" validate:"oneof=check flame target clock"`
	GoalFrequency GoalFrequency `json:"goal_frequency" db:"goal_frequency" validate:"oneof=Daily Weekly Monthly"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

var validate = validator.New()

// Normalize trims text fields and fills in display defaults.
func (h *Habit) Normalize() {
	h.Title = strings.TrimSpace(h.Title)
	h.Description = strings.TrimSpace(h.Description)
	h.Color = strings.TrimSpace(h.Color)
	if h.Color == "" {
		h.Color = DefaultColor
	}
	if h.Icon == "" {
		h.Icon = DefaultIcon
	}
	if h.GoalFrequency == "" {
		h.GoalFrequency = DefaultFrequency
	}
}

// Validate returns an error wrapping ErrInvalidHabit that names the first
// offending field.
func (h *Habit) Validate() error {
	if err := validate.Struct(h); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidHabit, strings.ToLower(fe.Field()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidHabit, err)
	}
	return nil
}

// OwnedBy reports whether userID owns the habit.
func (h *Habit) OwnedBy(userID string) bool {
	return userID != "" && h.UserID == userID
}

// MatchesTitle compares titles ignoring surrounding space and Unicode case.
func (h *Habit) MatchesTitle(title string) bool {
	return strings.EqualFold(strings.TrimSpace(h.Title), strings.TrimSpace(title))
}
