package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/domain"
)

// Pinger reports store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	uc     *usecase.Usecases
	health Pinger
	today  usecase.TodayFunc
}

func NewHandler(uc *usecase.Usecases, health Pinger, today usecase.TodayFunc) *Handler {
	return &Handler{uc: uc, health: health, today: today}
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.health.Ping(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateHabit(c *gin.Context) {
	var req usecase.HabitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	habit, err := h.uc.CreateHabit.Execute(c.Request.Context(), currentUser(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusCreated, habit)
}

func (h *Handler) ListHabits(c *gin.Context) {
	summaries, err := h.uc.ListHabits.Execute(c.Request.Context(), currentUser(c), h.today())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, summaries)
}

func (h *Handler) UpdateHabit(c *gin.Context) {
	var req usecase.HabitPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	habit, err := h.uc.UpdateHabit.Execute(c.Request.Context(), c.Param("id"), currentUser(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, habit)
}

func (h *Handler) DeleteHabit(c *gin.Context) {
	if err := h.uc.DeleteHabit.Execute(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type checkInRequest struct {
	Date string `json:"date"`
}

// CheckIn records today, or the optional "date" in the body. Future days are
// rejected.
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	today := h.today()
	day := today
	if req.Date != "" {
		parsed, err := domain.ParseDay(req.Date)
		if err != nil {
			BadRequest(c, err.Error())
			return
		}
		if parsed.After(today) {
			BadRequest(c, fmt.Sprintf("date %s is in the future", parsed))
			return
		}
		day = parsed
	}

	res, err := h.uc.CheckIn.Execute(c.Request.Context(), c.Param("id"), currentUser(c), day)
	if err != nil {
		HandleError(c, err)
		return
	}
	status := http.StatusCreated
	if res.Duplicate {
		status = http.StatusOK
	}
	HandleSuccess(c, status, res)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.uc.GetStats.Execute(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, statsView(stats, h.today()))
}

func (h *Handler) RecomputeStats(c *gin.Context) {
	stats, err := h.uc.RecomputeStats.Execute(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, statsView(stats, h.today()))
}

func (h *Handler) GetCalendar(c *gin.Context) {
	month := h.today().Time()
	if q := c.Query("month"); q != "" {
		parsed, err := time.Parse("2006-01", q)
		if err != nil {
			BadRequest(c, fmt.Sprintf("invalid month %q (expected YYYY-MM)", q))
			return
		}
		month = parsed
	}

	days, err := h.uc.GetCalendar.Execute(c.Request.Context(), c.Param("id"), currentUser(c), month.Year(), month.Month())
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, http.StatusOK, days)
}
