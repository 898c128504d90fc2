package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/cli"
	"github.com/fardannozami/habit-streak/internal/config"
	"github.com/fardannozami/habit-streak/internal/infra/storage"
	"github.com/fardannozami/habit-streak/internal/logger"
)

func main() {
	var root cli.CLI
	kctx := kong.Parse(&root,
		kong.Name("habitctl"),
		kong.Description("Admin tool for the habit streak engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	if err := run(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(kctx *kong.Context) error {
	appCtx := &cli.Context{Out: os.Stdout}

	// Keyring commands run before any store exists
	if strings.HasPrefix(kctx.Command(), "keyring") {
		return kctx.Run(appCtx)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Prefix: "habitctl"}); err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	store, db, err := storage.Open(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	appCtx.UC = usecase.NewUsecases(store)
	appCtx.Today = usecase.TodayIn(loc, nil)
	appCtx.Timeout = cfg.RequestTimeout

	return kctx.Run(appCtx)
}
