package game

import (
	"context"

	"github.com/pthm-cable/nadagotchi/telemetry"
)

// endDay flushes the day that just finished, writes its telemetry, checks
// bookmarks and autosaves.
func (g *Game) endDay(ctx context.Context) {
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	defer g.perf.StartPhase(telemetry.PhaseRollover)

	stats := g.collector.Flush(g.pet.Day(), g.dayEnv, g.pet)
	g.lifetime.AddDay(g.pet.UUID(), stats)
	g.daysCompleted++
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.output != nil {
		if err := g.output.WriteDay(stats); err != nil {
			g.log.Error("failed to write day stats", "error", err)
		}
		if err := g.output.WriteEvents(g.eventRecords()); err != nil {
			g.log.Error("failed to write events", "error", err)
		}
		if err := g.output.WritePerf(perfStats, stats.Day); err != nil {
			g.log.Error("failed to write perf", "error", err)
		}
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.output != nil {
			if err := g.output.WriteBookmark(bm); err != nil {
				g.log.Error("failed to write bookmark", "error", err)
			}
		}
		if g.snapshotDir != "" {
			g.saveSnapshot(&bm)
		}
	}

	g.perf.StartPhase(telemetry.PhaseStorage)
	if err := g.Save(ctx); err != nil {
		g.log.Error("autosave failed", "slot", g.slot, "day", stats.Day, "error", err)
	}
}

// eventRecords drains the buffered pet events as CSV rows.
func (g *Game) eventRecords() []telemetry.EventRecord {
	events := g.collector.DrainEvents()
	records := make([]telemetry.EventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, telemetry.NewEventRecord(g.pet.UUID(), e))
	}
	return records
}

// saveSnapshot creates and saves a snapshot to disk.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	path, err := telemetry.SaveSnapshot(g.createSnapshot(bookmark), g.snapshotDir)
	if err != nil {
		g.log.Error("failed to save snapshot", "error", err)
		return
	}
	g.log.Info("snapshot saved", "path", path, "day", g.pet.Day())
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	return &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		Day:      g.pet.Day(),
		Pet:      g.pet.Snapshot(),
		Lifetime: g.Lifetime().ToJSON(),
		Bookmark: bookmark,
	}
}
