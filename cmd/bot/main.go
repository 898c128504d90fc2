package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/config"
	"github.com/fardannozami/habit-streak/internal/infra/sqlite"
	"github.com/fardannozami/habit-streak/internal/infra/storage"
	"github.com/fardannozami/habit-streak/internal/infra/wa"
	"github.com/fardannozami/habit-streak/internal/logger"

	_ "modernc.org/sqlite"
)

func main() {
	// 1. Load Config
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	// 2. Logger
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile, Prefix: "bot"}); err != nil {
		logger.Fatal("failed to init logger", "error", err)
	}

	if err := run(cfg); err != nil {
		logger.Fatal("bot stopped", "error", err)
	}
}

// run owns every resource opened after config, so deferred closes always run.
func run(cfg config.Config) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	today := usecase.TodayIn(loc, nil)

	// 3. Database & Repositories
	ctx := context.Background()
	store, db, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer db.Close()

	// 4. Use Cases
	uc := usecase.NewUsecases(store)
	handleMessageUC := usecase.NewHandleMessageUsecase(store, uc.CreateHabit, uc.CheckIn, uc.GetDashboard, uc.DeleteHabit, today)

	// 5. WhatsApp Service
	if err := os.MkdirAll(filepath.Dir(cfg.WASQLitePath), 0755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	waDB, err := sql.Open("sqlite", sqlite.DSN(cfg.WASQLitePath))
	if err != nil {
		return fmt.Errorf("failed to open session database: %w", err)
	}
	defer waDB.Close()
	lids := sqlite.NewLIDResolver(waDB)

	waService := wa.NewService(cfg.WASQLitePath, wa.NewLogger(logger.Logger, "WA"), wa.ReplyOptions{
		DelayMin:   time.Duration(cfg.ReplyDelayMinMs) * time.Millisecond,
		DelayMax:   time.Duration(cfg.ReplyDelayMaxMs) * time.Millisecond,
		ShowTyping: cfg.ShowTyping,
	})

	// 6. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, msg wa.Message) {
		if cfg.GroupID != "" && msg.Chat.String() != cfg.GroupID {
			return
		}
		if msg.IsFromMe || msg.Text == "" {
			return
		}

		// Resolve LID to phone number for consistent user tracking
		userID := msg.Sender.User
		if wa.IsLID(msg.Sender) {
			userID = lids.ResolveLIDToPhone(ctx, msg.Sender.User)
		}

		pushName := msg.PushName
		if pushName == "" {
			pushName = "Unknown"
		}

		logger.Debug("message received", "user_id", userID, "name", pushName, "text", msg.Text)

		reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		response, err := handleMessageUC.Execute(reqCtx, userID, pushName, msg.Text)
		cancel()
		if err != nil {
			logger.Error("failed to handle message", "user_id", userID, "error", err)
			return
		}
		if response == "" {
			return
		}

		if err := waService.Reply(ctx, msg.Chat, response); err != nil {
			logger.Error("failed to send response", "chat", msg.Chat.String(), "error", err)
		}
	})

	// 7. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize WhatsApp service: %w", err)
	}

	// 8. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			// Pair code mode: must connect first to pair
			if err := waService.Connect(); err != nil {
				return fmt.Errorf("failed to connect for pairing: %w", err)
			}

			logger.Info("not logged in, requesting pair code", "phone", cfg.BotPhone)
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				logger.Error("failed to generate pair code", "error", err)
			} else {
				logger.Info("==================================================")
				logger.Info("PAIR CODE: " + code)
				logger.Info("==================================================")
				logger.Info("Enter this code on WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			logger.Info("not logged in and BOT_PHONE not set, printing QR")
			// PrintQR opens the QR channel before connecting
			if err := waService.PrintQR(ctx); err != nil {
				return fmt.Errorf("QR login failed: %w", err)
			}
		}
	} else {
		if err := waService.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		logger.Info("client is already logged in")
	}

	logger.Info("bot is running, press Ctrl+C to exit")

	// 9. Wait for OS Signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("shutting down")
	waService.Disconnect()
	return nil
}
