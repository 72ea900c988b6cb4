package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/game"
	"github.com/pthm-cable/nadagotchi/storage"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = NADAGOTCHI_SEED or time-based)")
	days := flag.Int("days", 7, "Number of game days to simulate")
	dbPath := flag.String("db", "", "SQLite database for save slots and the hall of fame")
	slot := flag.String("slot", storage.DefaultSlot, "Save slot in the database")
	saveFile := flag.String("save-file", "", "Integrity-checked save file to resume from and write on exit")
	logStats := flag.Bool("log-stats", false, "Output daily stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for bookmark snapshot files")
	stepsPerUpdate := flag.Int("steps-per-update", 60, "One-second steps per update call")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(env.LogLevel)}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = env.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	if *dbPath == "" {
		*dbPath = env.DBPath
	}
	if *outputDir == "" {
		*outputDir = env.OutputDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, runOptions{
		seed:           uint64(rngSeed),
		days:           *days,
		dbPath:         *dbPath,
		slot:           *slot,
		saveFile:       *saveFile,
		salt:           env.DNASalt,
		logStats:       *logStats,
		outputDir:      *outputDir,
		snapshotDir:    *snapshotDir,
		stepsPerUpdate: *stepsPerUpdate,
	}); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

type runOptions struct {
	seed           uint64
	days           int
	dbPath         string
	slot           string
	saveFile       string
	salt           string
	logStats       bool
	outputDir      string
	snapshotDir    string
	stepsPerUpdate int
}

func run(ctx context.Context, ro runOptions) error {
	var store *storage.Store
	if ro.dbPath != "" {
		s, err := storage.Open(ctx, ro.dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	session := resume(ctx, store, ro)

	g, err := game.NewGame(game.Options{
		Seed:           ro.seed,
		Logger:         slog.Default(),
		Salt:           ro.salt,
		StepsPerUpdate: ro.stepsPerUpdate,
		LogStats:       ro.logStats,
		OutputDir:      ro.outputDir,
		SnapshotDir:    ro.snapshotDir,
		Store:          store,
		Slot:           ro.slot,
		Session:        session,
	})
	if err != nil {
		return err
	}
	defer g.Close()

	slog.Info("starting headless simulation",
		"seed", ro.seed,
		"days", ro.days,
		"steps_per_update", ro.stepsPerUpdate,
	)

	start := time.Now()
	runErr := g.RunDays(ctx, ro.days)
	if errors.Is(runErr, context.Canceled) {
		slog.Info("interrupted", "days", g.DaysCompleted())
		runErr = nil
	}

	// Save on exit, even after an interrupt.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := g.Save(saveCtx); err != nil {
		slog.Error("failed to save session", "slot", ro.slot, "error", err)
	}
	if ro.saveFile != "" {
		if err := storage.SaveFile(ro.saveFile, g.Session(), ro.salt); err != nil {
			slog.Error("failed to write save file", "path", ro.saveFile, "error", err)
		}
	}

	printSummary(g, time.Since(start))
	return runErr
}

// resume loads the session to continue, preferring the save file. Missing or
// tampered saves start a fresh pet.
func resume(ctx context.Context, store *storage.Store, ro runOptions) *storage.Session {
	if ro.saveFile != "" {
		s, err := storage.LoadFile(ro.saveFile, ro.salt)
		if err == nil {
			slog.Info("resuming from save file", "path", ro.saveFile)
			return &s
		}
		logLoadError("save file", err)
	}
	if store != nil {
		s, err := store.LoadSession(ctx, ro.slot)
		if err == nil {
			slog.Info("resuming from database", "slot", ro.slot)
			return &s
		}
		logLoadError("database", err)
	}
	return nil
}

func logLoadError(source string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		slog.Info("no saved session, starting fresh", "source", source)
	case errors.Is(err, storage.ErrTampered):
		slog.Warn("saved session failed its integrity check, starting fresh", "source", source, "error", err)
	default:
		slog.Error("failed to load session", "source", source, "error", err)
	}
}

func printSummary(g *game.Game, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	pet := g.Pet()
	stats := pet.Stats()

	p.Printf("\nSimulated %d days in %v (%.0f game seconds)\n", g.DaysCompleted(), elapsed.Round(time.Millisecond), g.ElapsedMs()/1000)
	p.Printf("Pet %s, generation %d, %s\n", pet.UUID(), pet.Generation(), pet.Dominant().String())
	p.Printf("  hunger %.1f  energy %.1f  happiness %.1f  mood %s\n", stats.Hunger, stats.Energy, stats.Happiness, pet.Mood())
	if career := pet.Career(); career != "" {
		p.Printf("  career %s (%s)\n", career, pet.CareerTitle())
	}
	p.Printf("  retirements this run: %d\n", g.Retirements())
	if hof := g.HallOfFame(); hof.Size() > 0 {
		p.Printf("  hall of fame: %d pets, top score %.1f\n", hof.Size(), hof.TopScore())
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
