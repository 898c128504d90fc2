package cli

import (
	"context"
	"io"
	"time"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
)

// Context is passed to every command's Run method.
type Context struct {
	UC    *usecase.Usecases
	Today usecase.TodayFunc
	Out   io.Writer
	// Timeout bounds each use case call. Zero means no limit.
	Timeout time.Duration
}

func (c *Context) request() (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.Timeout)
}
