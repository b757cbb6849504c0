package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/johnmogi/dungeon-crawler/internal/engine"
	"github.com/johnmogi/dungeon-crawler/internal/server"
	"github.com/johnmogi/dungeon-crawler/internal/telemetry"
	"github.com/johnmogi/dungeon-crawler/internal/version"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

func init() {
	// .env не обязателен: в проде переменные приходят из окружения
	_ = godotenv.Load()
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var seed int64
	// Читаем флаг -seed. По умолчанию 0 (новое зерно на каждую партию).
	flag.Int64Var(&seed, "seed", 0, "World seed for every session (0 for random)")
	flag.Parse()

	logger.Log.Info("Starting Dungeon Crawler...")
	logger.Log.Info(version.String())

	gameCfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid game config")
	}
	switch {
	case seed != 0:
		gameCfg.Seed = seed
		logger.Log.Infof("Using explicit Master Seed: %d", seed)
	case os.Getenv("DUNGEON_SEED") != "":
		logger.Log.Infof("Using Master Seed from env: %d", gameCfg.Seed)
	default:
		gameCfg.Seed = 0
		logger.Log.Info("Using random seed per session")
	}

	srvCfg, err := server.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid server config")
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Трейсинг, если задан OTLP endpoint
	tracer := telemetry.NoopTracer()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logger.Log.WithError(err).Fatal("Telemetry setup failed")
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Log.WithError(err).Warn("Telemetry shutdown failed")
			}
		}()
		tracer = telemetry.Tracer("dungeon-crawler/server")
		logger.Log.Info("Tracing enabled")
	}

	// 3. Запуск сервера
	srv, err := server.New(srvCfg, gameCfg, tracer)
	if err != nil {
		logger.Log.WithError(err).Fatal("Server init error")
	}
	if err := srv.Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
		return
	}

	logger.Log.Info("Done.")
}
