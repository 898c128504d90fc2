package httpapi

import (
	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/streak"
)

type statsResponse struct {
	domain.HabitStats
	Alive bool `json:"alive"`
}

func statsView(stats domain.HabitStats, today domain.Day) statsResponse {
	return statsResponse{HabitStats: stats, Alive: streak.IsAlive(stats.LastCompletionDate, today)}
}
