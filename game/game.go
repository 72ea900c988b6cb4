// Package game drives a headless Nadagotchi session: the world clock, the
// pet, an autopilot caretaker, daily telemetry and persistence.
package game

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/storage"
	"github.com/pthm-cable/nadagotchi/telemetry"
	"github.com/pthm-cable/nadagotchi/world"
)

// Game holds the state of one session.
type Game struct {
	cfg  *config.Config
	log  *slog.Logger
	rng  *rand.Rand
	seed uint64
	salt string

	pet       *pet.Nadagotchi
	world     *world.World
	caretaker *Caretaker

	// Environment of the day in progress; the world has already rolled over
	// by the time the day is flushed.
	dayEnv world.State

	stepMs         float64
	stepsPerUpdate int
	elapsedMs      float64
	sinceAction    float64
	daysCompleted  int
	retirements    int

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	lifetime      *telemetry.LifetimeTracker
	hallOfFame    *telemetry.HallOfFame
	output        *telemetry.OutputManager
	statsCallback func(telemetry.DayStats)
	logStats      bool
	snapshotDir   string

	// Persistence
	store *storage.Store
	slot  string
}

// NewGame creates a session. A fresh pet is hatched unless opts.Session is
// set. The returned error is only about the output directory.
func NewGame(opts Options) (*Game, error) {
	opts.applyDefaults()
	cfg := opts.Config

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x5851f42d4c957f2d))
	g := &Game{
		cfg:            cfg,
		log:            opts.Logger,
		rng:            rng,
		seed:           opts.Seed,
		salt:           opts.Salt,
		world:          world.New(cfg.World),
		caretaker:      NewCaretaker(cfg, rng),
		stepMs:         opts.StepMs,
		stepsPerUpdate: opts.StepsPerUpdate,
		collector:      telemetry.NewCollector(output != nil),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		bookmarks:      telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistory),
		lifetime:       telemetry.NewLifetimeTracker(),
		hallOfFame:     telemetry.NewHallOfFame(cfg.Telemetry.HallOfFame),
		output:         output,
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats || cfg.Telemetry.LogStats,
		snapshotDir:    opts.SnapshotDir,
		store:          opts.Store,
		slot:           opts.Slot,
	}

	var snap *pet.Snapshot
	if s := opts.Session; s != nil {
		snap = s.Pet
		g.world.Restore(s.World)
	}
	g.pet = pet.FromSnapshot(snap, g.petOptions(opts.Seed))
	g.dayEnv = g.world.State()
	g.lifetime.Register(g.pet.UUID(), g.pet.Generation(), g.world.Calendar.TotalDays())

	g.log.Info("session started",
		"pet", g.pet.UUID(),
		"generation", g.pet.Generation(),
		"dominant", g.pet.Dominant().String(),
		"resumed", opts.Session != nil,
		"seed", opts.Seed,
	)
	return g, nil
}

func (g *Game) petOptions(seed uint64) pet.Options {
	return pet.Options{
		Config: g.cfg,
		Seed:   seed,
		Sink:   g.collector,
		Logger: g.log,
	}
}

// Update runs StepsPerUpdate steps of the configured length.
func (g *Game) Update(ctx context.Context) {
	for range g.stepsPerUpdate {
		g.Step(ctx, g.stepMs)
	}
}

// Step advances the session by deltaMs of game time: the world clock and
// any day rollovers first, then the pet's needs, then the caretaker.
func (g *Game) Step(ctx context.Context, deltaMs float64) {
	if deltaMs <= 0 {
		return
	}
	g.perf.StartStep()
	defer g.perf.EndStep()

	g.perf.StartPhase(telemetry.PhaseWorld)
	days := g.world.Advance(deltaMs, g.rng)

	if days > 0 {
		g.perf.StartPhase(telemetry.PhaseRollover)
		for range days {
			g.endDay(ctx)
			g.pet.AdvanceDay(g.world.State())
		}
	}

	g.perf.StartPhase(telemetry.PhaseNeeds)
	g.dayEnv = g.world.State()
	g.pet.Live(deltaMs, g.dayEnv)
	g.collector.Sample(g.pet.Stats())

	g.perf.StartPhase(telemetry.PhaseCaretaker)
	g.sinceAction += deltaMs
	if interval := g.cfg.Caretaker.ActionIntervalSec * 1000; interval > 0 && g.sinceAction >= interval {
		g.sinceAction = 0
		g.caretaker.Act(g.pet)
	}
	if g.pet.IsLegacyReady() && g.cfg.Caretaker.RetireOnLegacy {
		if err := g.Retire(ctx, g.caretaker.BreedingItems(g.pet)); err != nil {
			g.log.Error("failed to retire pet", "pet", g.pet.UUID(), "error", err)
		}
	}

	g.elapsedMs += deltaMs
}

// RunDays steps until n more days have finished or ctx is done.
func (g *Game) RunDays(ctx context.Context, n int) error {
	target := g.daysCompleted + n
	for g.daysCompleted < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Update(ctx)
	}
	return nil
}

// Session captures the pet and world for saving.
func (g *Game) Session() storage.Session {
	return storage.Session{
		Version: storage.SessionVersion,
		Pet:     g.pet.Snapshot(),
		World:   g.world.Snapshot(),
	}
}

// Save writes the session to the store slot. Without a store it does nothing.
func (g *Game) Save(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	return g.store.SaveSession(ctx, g.slot, g.Session())
}

// Close flushes output files. The store belongs to the caller.
func (g *Game) Close() error {
	if err := g.output.WriteHallOfFame(g.hallOfFame); err != nil {
		g.log.Error("failed to write hall of fame", "error", err)
	}
	return g.output.Close()
}

// Pet returns the current pet.
func (g *Game) Pet() *pet.Nadagotchi { return g.pet }

// World returns the world.
func (g *Game) World() *world.World { return g.world }

// DaysCompleted returns how many days this session has finished.
func (g *Game) DaysCompleted() int { return g.daysCompleted }

// Retirements returns how many pets have retired this session.
func (g *Game) Retirements() int { return g.retirements }

// ElapsedMs returns the game time simulated this session.
func (g *Game) ElapsedMs() float64 { return g.elapsedMs }

// HallOfFame returns the session's hall of fame.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// Lifetime returns the tracked totals for the current pet.
func (g *Game) Lifetime() *telemetry.LifetimeStats { return g.lifetime.Get(g.pet.UUID()) }

// Perf returns the step timing statistics.
func (g *Game) Perf() telemetry.PerfStats { return g.perf.Stats() }
