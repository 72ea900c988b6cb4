package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.now = fakeClock(time.Millisecond)

	for range 5 {
		pc.StartStep()
		pc.StartPhase(PhaseWorld)
		pc.StartPhase(PhaseNeeds)
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.AvgStep != 3*time.Millisecond {
		t.Errorf("avg step = %v, want 3ms", stats.AvgStep)
	}
	if stats.PhaseAvg[PhaseWorld] != time.Millisecond {
		t.Errorf("world avg = %v, want 1ms", stats.PhaseAvg[PhaseWorld])
	}
	if _, ok := stats.PhaseAvg[PhaseNeeds]; !ok {
		t.Error("expected needs phase to be tracked")
	}
	if stats.StepsPerSecond <= 0 {
		t.Error("expected positive steps per second")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)
	pc.now = fakeClock(time.Millisecond)

	for range 12 {
		pc.StartStep()
		pc.StartPhase(PhaseCaretaker)
		pc.EndStep()
	}
	if pc.count != 5 {
		t.Errorf("window holds %d samples, want 5", pc.count)
	}
	if stats := pc.Stats(); stats.MinStep != stats.MaxStep {
		t.Errorf("uniform steps should have min == max, got %v/%v", stats.MinStep, stats.MaxStep)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.now = fakeClock(time.Millisecond)

	for range 5 {
		pc.StartStep()
		pc.StartPhase(PhaseWorld)
		pc.StartPhase(PhaseNeeds)
		pc.now() // needs takes an extra tick
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseNeeds] <= stats.PhasePct[PhaseWorld] {
		t.Errorf("expected needs (%v%%) > world (%v%%)", stats.PhasePct[PhaseNeeds], stats.PhasePct[PhaseWorld])
	}
	row := stats.ToCSV(7)
	if row.Day != 7 || row.NeedsPct != stats.PhasePct[PhaseNeeds] {
		t.Errorf("csv row = %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()
	if stats.AvgStep != 0 {
		t.Error("expected zero avg step for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_NilIsNoop(t *testing.T) {
	var pc *PerfCollector
	pc.StartStep()
	pc.StartPhase(PhaseWorld)
	pc.EndStep()
	if stats := pc.Stats(); stats.AvgStep != 0 {
		t.Errorf("nil collector avg = %v", stats.AvgStep)
	}
}
