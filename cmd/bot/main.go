package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/timetable_bot/internal/app"
	"github.com/Freeeeeet/timetable_bot/internal/config"
	"github.com/Freeeeeet/timetable_bot/internal/controller"
	"github.com/Freeeeeet/timetable_bot/internal/controller/handlers"
	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := app.NewLogger(cfg)

	defer logger.Sync()

	logger.Sugar().Infow("Starting timetable bot",
		"environment", cfg.Environment,
		"storage", cfg.StorageBackend,
		"token_length", len(cfg.TelegramToken))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	schedule := service.NewScheduleService(storage.Blob, cfg.StorageKey, logger)
	schedule.LoadAll(ctx)

	renderer, err := render.NewImageRenderer(cfg.FontPath)
	if err != nil {
		logger.Fatal("Failed to load font", zap.String("path", cfg.FontPath), zap.Error(err))
	}

	b, err := bot.New(cfg.TelegramToken,
		bot.WithMiddlewares(handlers.OwnerOnly(cfg.OwnerID, logger)),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			logger.Debug("Unhandled update", zap.Int64("update_id", update.ID))
		}),
	)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, schedule, renderer, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		// меню команд не критично
		logger.Warn("Bot started without commands menu", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
