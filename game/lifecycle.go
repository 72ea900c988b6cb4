package game

import (
	"context"
	"errors"

	"github.com/pthm-cable/nadagotchi/genetics"
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/telemetry"
)

// ErrNotLegacyReady is returned when retiring a pet that is too young.
var ErrNotLegacyReady = errors.New("pet is not ready to retire")

// Retire passes the current pet on: it is scored for the hall of fame,
// archived in the store, and replaced by its offspring. Items are the
// breeding environment.
func (g *Game) Retire(ctx context.Context, items []string) error {
	parent := g.pet
	if !parent.IsLegacyReady() {
		return ErrNotLegacyReady
	}

	// Events so far belong to the parent.
	if g.output != nil {
		if err := g.output.WriteEvents(g.eventRecords()); err != nil {
			g.log.Error("failed to write events", "error", err)
		}
	}

	childSnap := parent.CalculateOffspring(items)
	final := parent.Snapshot()
	entry := g.hallEntry(parent)
	entry.Score = g.hallOfFame.Score(entry)
	inducted := g.hallOfFame.Consider(entry)

	var archiveErr error
	if g.store != nil {
		archiveErr = g.store.ArchivePet(ctx, entry, final)
	}

	g.pet = pet.FromSnapshot(childSnap, g.petOptions(g.rng.Uint64()))
	g.lifetime.Register(g.pet.UUID(), g.pet.Generation(), g.world.Calendar.TotalDays())
	g.retirements++

	g.log.Info("pet retired",
		"pet", parent.UUID(),
		"generation", parent.Generation(),
		"days_lived", entry.DaysLived,
		"score", entry.Score,
		"hall_of_fame", inducted,
		"child", g.pet.UUID(),
		"items", items,
	)

	if archiveErr != nil {
		return archiveErr
	}
	return g.Save(ctx)
}

// hallEntry describes a retiring pet and stops tracking its lifetime.
func (g *Game) hallEntry(p *pet.Nadagotchi) telemetry.HallEntry {
	stats := g.lifetime.Remove(p.UUID())
	if stats == nil {
		stats = &telemetry.LifetimeStats{UUID: p.UUID(), Generation: p.Generation()}
	}
	entry := telemetry.NewHallEntry(stats)
	entry.Dominant = p.Dominant().String()
	entry.Career = p.Career()
	if entry.Career != "" {
		entry.CareerLevel = p.CareerLevel(entry.Career)
	}
	entry.Traits = p.LegacyTraits().Names()

	dna, err := genetics.Encode(p.Genome(), g.salt)
	if err != nil {
		g.log.Warn("failed to encode dna", "pet", p.UUID(), "error", err)
	}
	entry.DNA = dna
	return entry
}
