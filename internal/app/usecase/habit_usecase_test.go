package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/domain"
)

func TestCreateHabit_Defaults(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewCreateHabitUsecase(store)

	h, err := uc.Execute(context.Background(), "user1", usecase.HabitInput{Title: "  Read  "})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h.ID == "" {
		t.Error("ID should be generated")
	}
	if h.Title != "Read" {
		t.Errorf("Title should be trimmed, got %q", h.Title)
	}
	if h.Color != domain.DefaultColor || h.Icon != domain.DefaultIcon || h.GoalFrequency != domain.DefaultFrequency {
		t.Errorf("Defaults not applied: %+v", h)
	}
	if h.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if store.habits[h.ID] == nil {
		t.Error("Habit should be stored")
	}
}

func TestCreateHabit_Invalid(t *testing.T) {
	uc := usecase.NewCreateHabitUsecase(newMockStore())

	tests := []usecase.HabitInput{
		{Title: "   "},
		{Title: "Read", Icon: "rocket"},
		{Title: "Read", GoalFrequency: "Hourly"},
		{Title: "Read", Color: "blue"},
	}
	for _, in := range tests {
		_, err := uc.Execute(context.Background(), "user1", in)
		if !errors.Is(err, domain.ErrInvalidHabit) {
			t.Errorf("%+v: expected ErrInvalidHabit, got %v", in, err)
		}
	}
}

func TestUpdateHabit_PatchesOnlyGivenFields(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewUpdateHabitUsecase(store)

	title := "Read 20 pages"
	icon := "flame"
	h, err := uc.Execute(context.Background(), "h1", "user1", usecase.HabitPatch{Title: &title, Icon: &icon})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if h.Title != title || h.Icon != domain.IconFlame {
		t.Errorf("Patch not applied: %+v", h)
	}
	if h.Color != domain.DefaultColor {
		t.Errorf("Color should be unchanged, got %q", h.Color)
	}
	if store.habits["h1"].Title != title {
		t.Error("Update should be persisted")
	}
}

func TestUpdateHabit_OwnerOnly(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "owner", "Read")
	uc := usecase.NewUpdateHabitUsecase(store)

	title := "Hacked"
	_, err := uc.Execute(context.Background(), "h1", "intruder", usecase.HabitPatch{Title: &title})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if store.habits["h1"].Title != "Read" {
		t.Error("Habit must be unchanged")
	}
}

func TestUpdateHabit_InvalidPatch(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewUpdateHabitUsecase(store)

	freq := "Yearly"
	_, err := uc.Execute(context.Background(), "h1", "user1", usecase.HabitPatch{GoalFrequency: &freq})
	if !errors.Is(err, domain.ErrInvalidHabit) {
		t.Errorf("Expected ErrInvalidHabit, got %v", err)
	}
}
