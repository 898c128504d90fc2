package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler, verifier TokenVerifier, timeout time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(), TimeoutMiddleware(timeout))

	r.GET("/healthz", h.Health)

	api := r.Group("/api", AuthMiddleware(verifier))
	api.POST("/habits", h.CreateHabit)
	api.GET("/habits", h.ListHabits)
	api.PATCH("/habits/:id", h.UpdateHabit)
	api.DELETE("/habits/:id", h.DeleteHabit)
	api.POST("/habits/:id/checkins", h.CheckIn)
	api.GET("/habits/:id/stats", h.GetStats)
	api.POST("/habits/:id/stats/recompute", h.RecomputeStats)
	api.GET("/habits/:id/calendar", h.GetCalendar)

	return r
}
