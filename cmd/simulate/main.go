package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/johnmogi/dungeon-crawler/internal/agent"
	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine"
	"github.com/johnmogi/dungeon-crawler/internal/infrastructure/storage"
	"github.com/johnmogi/dungeon-crawler/internal/network"
	"github.com/johnmogi/dungeon-crawler/internal/telemetry"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

func init() {
	_ = godotenv.Load()
	logger.Init()
}

func main() {
	if err := run(); err != nil {
		logger.Log.WithError(err).Error("Simulation failed")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := engine.LoadConfig()
	if err != nil {
		return err
	}

	var (
		turns      int
		win        string
		replayPath string
		saveDir    string
	)
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "World seed")
	flag.IntVar(&cfg.LevelIndex, "level", cfg.LevelIndex, "Level index (>= 1)")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Map width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Map height")
	flag.IntVar(&turns, "turns", 500, "Max commands the agent may send")
	flag.StringVar(&win, "win", cfg.WinCondition.String(), "Win condition: stair_down or clear_all_monsters")
	flag.StringVar(&replayPath, "replay", "", "Path to .cdrp journal to replay instead of playing")
	flag.StringVar(&saveDir, "save", "", "Directory to save the agent's journal")
	flag.Parse()

	w, err := domain.ParseWinCondition(win)
	if err != nil {
		return err
	}
	cfg.WinCondition = w

	ctx := context.Background()
	tracer := telemetry.NoopTracer()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer shutdown(context.Background())
		tracer = telemetry.Tracer("dungeon-crawler/simulate")
	}

	ctx, span := tracer.Start(ctx, "simulate.run")
	defer span.End()

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		logger.Log.Info("Mode: Replay")
		j, at, err := (&storage.ReplayService{}).Load(replayPath)
		if err != nil {
			return err
		}
		s, err := engine.Replay(j)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		span.SetAttributes(
			attribute.String("phase", s.Phase().String()),
			attribute.Int("turn", s.Turn()),
		)
		logger.Log.WithFields(logrus.Fields{
			"recorded": at.Format(time.RFC3339),
			"seed":     j.Seed,
			"commands": len(j.Entries),
			"phase":    s.Phase().String(),
			"turn":     s.Turn(),
		}).Info("Replay finished")
		return nil
	}

	s, err := engine.NewSession(cfg)
	if err != nil {
		return err
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":  cfg.Seed,
		"level": cfg.LevelIndex,
		"size":  fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"win":   cfg.WinCondition.String(),
	}).Info("Simulation started")

	res := agent.RunSession(s, network.NewBroadcaster(), "simulate", turns)
	span.SetAttributes(
		attribute.String("phase", res.Snapshot.Phase),
		attribute.Int("turn", res.Snapshot.Turn),
		attribute.Int("steps", res.Steps),
		attribute.Int("events", len(s.Events())),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		return res.Err
	}

	if saveDir != "" {
		rs, err := storage.NewReplayService(saveDir)
		if err != nil {
			return err
		}
		path, err := rs.Save(s.Journal(), time.Now())
		if err != nil {
			return err
		}
		logger.Log.WithField("path", path).Info("Journal saved")
	}

	player := s.Registry().Player()
	fields := logrus.Fields{
		"phase": res.Snapshot.Phase,
		"turn":  res.Snapshot.Turn,
		"steps": res.Steps,
	}
	if player != nil && player.Stats != nil {
		fields["hp"] = player.Stats.HP
	}
	logger.Log.WithFields(fields).Info("Simulation finished")
	return nil
}
