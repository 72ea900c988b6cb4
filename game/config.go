package game

import (
	"log/slog"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/storage"
	"github.com/pthm-cable/nadagotchi/telemetry"
)

// DefaultStepMs is the game time covered by one step: one second.
const DefaultStepMs = 1000

// Options holds configuration for session initialization.
type Options struct {
	Config *config.Config // Defaults to config.Cfg()
	Seed   uint64
	Logger *slog.Logger

	// Salt signs DNA strings in the hall of fame.
	Salt string

	// StepMs is the game time advanced per Step. StepsPerUpdate steps run per
	// Update call.
	StepMs         float64
	StepsPerUpdate int

	LogStats    bool
	OutputDir   string // CSV logs and config snapshot; empty disables
	SnapshotDir string // Bookmark snapshots; empty disables

	// Store persists the session after every day and archives retired pets.
	// Slot defaults to storage.DefaultSlot.
	Store *storage.Store
	Slot  string

	// Session resumes a saved pet and world instead of starting fresh.
	Session *storage.Session

	// StatsCallback receives every finished day's stats.
	StatsCallback func(telemetry.DayStats)
}

func (o *Options) applyDefaults() {
	if o.Config == nil {
		o.Config = config.Cfg()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.StepMs <= 0 {
		o.StepMs = DefaultStepMs
	}
	if o.StepsPerUpdate < 1 {
		o.StepsPerUpdate = 1
	}
	if o.Slot == "" {
		o.Slot = storage.DefaultSlot
	}
}
