package main

import (
	"context"
	"flag"
	"maze-core/internal/agent"
	"maze-core/internal/engine"
	"maze-core/internal/infrastructure/storage"
	"maze-core/internal/server"
	"maze-core/internal/version"
	"maze-core/pkg/config"
	"maze-core/pkg/logger"
	"os"
	"os/signal"
	"syscall"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	var seed int64
	var mode string
	// Читаем флаг -seed. По умолчанию 0 (значит сгенерировать случайно).
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&cfg.TuningPath, "tuning", "", "Path to tuning YAML (empty for defaults)")
	flag.StringVar(&cfg.LevelPath, "level", "", "Path to .properties level for level mode")
	flag.StringVar(&mode, "mode", "survival", "Mode of the startup session: survival | level")
	flag.StringVar(&cfg.SnapshotDir, "snapshots", cfg.SnapshotDir, "Directory for snapshot files")
	flag.IntVar(&cfg.Bots, "bots", 0, "Number of survival sessions driven by bots")
	flag.IntVar(&cfg.TickRate, "tick", cfg.TickRate, "Simulation frames per second")
	flag.Parse()

	cfg.Mode = engine.ParseMode(mode)

	logger.Log.Info("Starting maze server...")
	logger.Log.Info(version.String())

	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	tuning, err := config.Load(cfg.TuningPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load tuning")
	}

	store, err := storage.NewSnapshotStore(cfg.SnapshotDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open snapshot store")
	}

	port := os.Getenv("MAZE_PORT")
	if port == "" {
		port = "8080"
	}

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg, tuning, store)

	session, err := gameService.CreateSession(cfg.Mode, cfg.LevelPath, 0)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create startup session")
	}
	logger.Log.WithField("session", session.ID).Info("Startup session ready")

	for i := 0; i < cfg.Bots; i++ {
		botSession, err := gameService.CreateSession(engine.ModeSurvival, "", 0)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to create bot session")
			continue
		}
		go agent.NewBot(botSession.ID, gameService).Run()
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Запуск сервера
	srv := server.New(gameService, store, port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server error")
	}

	logger.Log.Info("Shutting down...")
	gameService.Stop()
	logger.Log.Info("Done.")
}
