package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/escalopa/tajweed-coach/internal/adapter/httpapi"
	"github.com/escalopa/tajweed-coach/internal/adapter/i18n"
	"github.com/escalopa/tajweed-coach/internal/adapter/quranapi"
	"github.com/escalopa/tajweed-coach/internal/adapter/redis"
	"github.com/escalopa/tajweed-coach/internal/adapter/stt"
	"github.com/escalopa/tajweed-coach/internal/adapter/telegram"
	"github.com/escalopa/tajweed-coach/internal/application"
	"github.com/escalopa/tajweed-coach/internal/config"
	"github.com/escalopa/tajweed-coach/internal/engine"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(logger); err != nil {
		logger.Error("application error", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger.Info("configuration loaded")

	// Initialize i18n
	i18nService, err := i18n.NewI18n(cfg.App.LocalesDir)
	if err != nil {
		return err
	}
	logger.Info("i18n initialized")

	// Initialize redis session store
	store, err := redis.NewStore(cfg.Redis.URI)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("redis store connected")

	// Initialize external collaborators
	verses := quranapi.NewClient(cfg.QuranAPI.BaseURL, cfg.QuranAPI.APIKey)
	transcriber := stt.NewClient(cfg.STT.BaseURL, cfg.STT.APIKey, cfg.STT.Model)

	// Initialize the analysis engine from config tunables
	analyzer := engine.New(
		engine.WithMatchThreshold(cfg.Engine.MatchSimilarityThreshold),
		engine.WithStrictHarakat(cfg.Engine.StrictHarakat),
		engine.WithPenaltyWeights(
			cfg.Engine.MissingPenaltyWeight,
			cfg.Engine.SubstitutionPenaltyWeight,
			cfg.Engine.ExtraPenaltyWeight,
		),
		engine.WithRuleScoreFloor(cfg.Engine.MinimumRuleScoreFloor),
		engine.WithReward(cfg.Engine.RewardFloor, cfg.Engine.RewardPerWordFactor),
	)

	// Initialize application service
	service := application.NewRecitationService(verses, transcriber, store, analyzer)
	logger.Info("recitation service initialized")

	// Initialize Telegram bot
	bot, err := telegram.NewBot(cfg.Telegram.Token, service, i18nService, logger)
	if err != nil {
		return err
	}
	logger.Info("telegram bot initialized")

	// Initialize HTTP API
	api := httpapi.NewServer(cfg.HTTP.Addr, service, logger)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go func() {
		logger.Info("starting bot")
		if err := bot.Start(ctx); err != nil {
			errChan <- err
		}
	}()
	go func() {
		if err := api.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logger.Info("received shutdown signal, stopping")
	case err := <-errChan:
		logger.Error("runtime error", "err", err)
		return err
	}

	cancel()
	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", "err", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := api.Shutdown(shutdownCtx); err != nil {
		logger.Error("error stopping http server", "err", err)
	}

	logger.Info("stopped")
	return nil
}
