package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/config"
	"github.com/fardannozami/habit-streak/internal/domain"
)

type RecomputeCmd struct {
	Habit string `help:"Habit ID. Omit to rebuild every habit."`
	User  string `help:"Owner of --habit."`
}

func (c *RecomputeCmd) Run(ctx *Context) error {
	if c.Habit == "" {
		report, err := ctx.UC.RecomputeStats.ExecuteAll(context.Background(), ctx.Timeout)
		fmt.Fprintf(ctx.Out, "Rebuilt %d of %d habits (%d failed)\n", report.Rebuilt, report.Habits, report.Failed)
		return err
	}
	if c.User == "" {
		return fmt.Errorf("--user is required with --habit")
	}

	reqCtx, cancel := ctx.request()
	defer cancel()
	stats, err := ctx.UC.RecomputeStats.Execute(reqCtx, c.Habit, c.User)
	if err != nil {
		return err
	}
	printStats(ctx, stats)
	return nil
}

type StatsCmd struct {
	User string `required:"" help:"User whose habits to show."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	today := ctx.Today()
	reqCtx, cancel := ctx.request()
	defer cancel()
	summaries, err := ctx.UC.ListHabits.Execute(reqCtx, c.User, today)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(ctx.Out, "No habits found.")
		return nil
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCURRENT\tMAX\tRATE\tLAST\tTODAY\tSTATUS")
	for _, s := range summaries {
		status := "expired"
		if s.Alive {
			status = "alive"
		}
		done := "-"
		if s.CompletedToday {
			done = "done"
		}
		last := s.Stats.LastCompletionDate.String()
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.0f%%\t%s\t%s\t%s\n",
			s.Habit.ID, s.Habit.Title, s.Stats.CurrentStreak, s.Stats.MaxStreak, s.Stats.SuccessRate*100, last, done, status)
	}
	return w.Flush()
}

type CreateCmd struct {
	User          string `required:"" help:"Owner."`
	Title         string `required:"" help:"Habit title."`
	Description   string `help:"Optional description."`
	Color         string `help:"Hex color, e.g. #6366f1."`
	Icon          string `help:"check, flame, target or clock."`
	GoalFrequency string `name:"frequency" help:"Daily, Weekly or Monthly."`
}

func (c *CreateCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.request()
	defer cancel()
	habit, err := ctx.UC.CreateHabit.Execute(reqCtx, c.User, usecase.HabitInput{
		Title:         c.Title,
		Description:   c.Description,
		Color:         c.Color,
		Icon:          c.Icon,
		GoalFrequency: c.GoalFrequency,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added habit %s: %s\n", habit.ID, habit.Title)
	return nil
}

type CheckInCmd struct {
	User  string `required:"" help:"Owner of the habit."`
	Habit string `required:"" help:"Habit ID."`
	Date  string `help:"Day to record (YYYY-MM-DD). Defaults to today."`
}

func (c *CheckInCmd) Run(ctx *Context) error {
	today := ctx.Today()
	day := today
	if c.Date != "" {
		parsed, err := domain.ParseDay(c.Date)
		if err != nil {
			return err
		}
		if parsed.After(today) {
			return fmt.Errorf("date %s is in the future", parsed)
		}
		day = parsed
	}

	reqCtx, cancel := ctx.request()
	defer cancel()
	res, err := ctx.UC.CheckIn.Execute(reqCtx, c.Habit, c.User, day)
	if err != nil {
		return err
	}
	if res.Duplicate {
		fmt.Fprintf(ctx.Out, "Already checked in on %s\n", day)
	} else {
		fmt.Fprintf(ctx.Out, "Checked in %s on %s\n", res.Habit.Title, day)
	}
	printStats(ctx, res.Stats)
	return nil
}

type DeleteCmd struct {
	User  string `required:"" help:"Owner of the habit."`
	Habit string `required:"" help:"Habit ID."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	reqCtx, cancel := ctx.request()
	defer cancel()
	if err := ctx.UC.DeleteHabit.Execute(reqCtx, c.Habit, c.User); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Deleted habit %s with its completions and stats\n", c.Habit)
	return nil
}

type KeyringCmd struct {
	SetDSN KeyringSetDSNCmd `cmd:"" name:"set-dsn" help:"Store the PostgreSQL DSN in the OS keyring."`
}

type KeyringSetDSNCmd struct {
	DSN string `arg:"" help:"PostgreSQL connection string."`
}

func (c *KeyringSetDSNCmd) Run(ctx *Context) error {
	if err := config.SetConnectionString(c.DSN); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Stored DSN in keyring (service %q, user %q)\n", config.AppName, config.DefaultKeyringUser)
	return nil
}

func printStats(ctx *Context, s domain.HabitStats) {
	last := s.LastCompletionDate.String()
	if last == "" {
		last = "never"
	}
	fmt.Fprintf(ctx.Out, "current=%d max=%d rate=%.0f%% last=%s\n", s.CurrentStreak, s.MaxStreak, s.SuccessRate*100, last)
}
