package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/udisondev/tactica/internal/ai"
	"github.com/udisondev/tactica/internal/catalog"
	"github.com/udisondev/tactica/internal/component"
	"github.com/udisondev/tactica/internal/config"
	"github.com/udisondev/tactica/internal/db"
	"github.com/udisondev/tactica/internal/equation"
	"github.com/udisondev/tactica/internal/game/itemcomp"
	"github.com/udisondev/tactica/internal/game/skillcomp"
)

const (
	ConfigPath = "config/tactica.yaml"
	Turns      = 5
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("TACTICA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	slog.Info("tactica starting", "log_level", cfg.LogLevel, "content", cfg.ContentDir)

	eng := newEngine()

	eqs, err := equation.Load(cfg.EquationsPath)
	if err != nil {
		return fmt.Errorf("loading equations: %w", err)
	}

	cat, err := catalog.LoadDir(ctx, cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	warnings, err := cat.Validate(eng)
	if err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}
	for _, w := range warnings {
		slog.Warn("catalog", "warning", w.String())
	}
	slog.Info("catalog loaded",
		"skills", len(cat.SkillNids()),
		"items", len(cat.ItemNids()),
		"equations", len(eqs.Names()))

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	sk, err := newSkirmish(eng, cat, eqs, seed)
	if err != nil {
		return fmt.Errorf("setting up skirmish: %w", err)
	}
	sum := sk.Run(ctx, Turns)
	slog.Info("skirmish finished",
		"seed", seed,
		"turns", sum.Turns,
		"winner", sum.Winner,
		"actions", sk.session.History.Len(),
		"digest", sk.session.Digest())

	if !cfg.Database.Enabled() {
		return nil
	}
	return save(ctx, cfg.Database, sk)
}

func newEngine() *component.Engine {
	skills := component.NewRegistry("skill")
	skillcomp.Register(skills)
	items := component.NewRegistry("item")
	itemcomp.Register(items)
	return component.NewEngine(skills, items)
}

func save(ctx context.Context, cfg config.DatabaseConfig, sk *skirmish) error {
	database, err := db.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	repo := db.NewEntityRepository(database)
	for _, u := range sk.board.Roster() {
		if err := repo.Save(ctx, u.NID(), loadout(u)); err != nil {
			return fmt.Errorf("saving %s: %w", u.NID(), err)
		}
	}
	slog.Info("loadouts saved", "driver", database.Driver(), "units", len(sk.board.Roster()))
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
