package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/world"
)

func TestComputeNeedStats(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		mean          float64
		p10, p50, p90 float64
	}{
		{"single", []float64{40}, 40, 40, 40, 40},
		{"odd", []float64{5, 1, 3, 2, 4}, 3, 1, 3, 5},
		{"ten", []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 5.5, 1, 5, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNeedStats(tt.values)
			if math.Abs(got.Mean-tt.mean) > 1e-9 {
				t.Errorf("mean = %v, want %v", got.Mean, tt.mean)
			}
			if got.P10 != tt.p10 || got.P50 != tt.p50 || got.P90 != tt.p90 {
				t.Errorf("percentiles = %v/%v/%v, want %v/%v/%v", got.P10, got.P50, got.P90, tt.p10, tt.p50, tt.p90)
			}
		})
	}
}

func TestComputeNeedStatsEmpty(t *testing.T) {
	if got := ComputeNeedStats(nil); got != (NeedStats{}) {
		t.Errorf("empty input should return zeros, got %+v", got)
	}
}

func TestComputeNeedStatsDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	ComputeNeedStats(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestComputeNeedStatsStd(t *testing.T) {
	got := ComputeNeedStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	// Sample standard deviation of the classic example
	if math.Abs(got.Std-2.138089935) > 1e-6 {
		t.Errorf("std = %v, want ~2.138", got.Std)
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(false)
	c.Sample(pet.Stats{Hunger: 80, Energy: 60, Happiness: 50})
	c.Sample(pet.Stats{Hunger: 70, Energy: 50, Happiness: 70})
	c.Emit(pet.Event{Kind: pet.EventActionPerformed})
	c.Emit(pet.Event{Kind: pet.EventActionPerformed})
	c.Emit(pet.Event{Kind: pet.EventItemCrafted})
	c.Emit(pet.Event{Kind: pet.EventQuestCompleted})
	c.Emit(pet.Event{Kind: pet.EventDailyQuestCompleted})

	ws := world.State{Season: "Summer", Weather: "Rainy"}
	stats := c.Flush(3, ws, nil)

	if stats.Day != 3 || stats.Season != "Summer" || stats.Weather != "Rainy" {
		t.Errorf("header = %d/%s/%s", stats.Day, stats.Season, stats.Weather)
	}
	if stats.Samples != 2 {
		t.Errorf("samples = %d, want 2", stats.Samples)
	}
	if stats.HappinessMean != 60 || stats.HungerMean != 75 {
		t.Errorf("means = %v/%v, want 60/75", stats.HappinessMean, stats.HungerMean)
	}
	if stats.Actions != 2 || stats.Crafted != 1 || stats.QuestsCompleted != 2 {
		t.Errorf("counts = %d/%d/%d, want 2/1/2", stats.Actions, stats.Crafted, stats.QuestsCompleted)
	}

	next := c.Flush(4, ws, nil)
	if next.Actions != 0 || next.Samples != 0 {
		t.Errorf("flush should reset counters, got actions=%d samples=%d", next.Actions, next.Samples)
	}
}

func TestCollectorAsPetSink(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	c := NewCollector(true)
	p := pet.New(pet.Options{Config: cfg, Seed: 9, Sink: c})

	p.HandleAction(pet.Feed{})
	if got := c.Count(pet.EventActionPerformed); got != 1 {
		t.Errorf("action events = %d, want 1", got)
	}

	events := c.DrainEvents()
	if len(events) == 0 {
		t.Fatal("expected buffered events")
	}
	if len(c.DrainEvents()) != 0 {
		t.Error("drain should clear the buffer")
	}

	stats := c.Flush(p.Day(), p.Environment(), p)
	if stats.Dominant != p.Dominant().String() {
		t.Errorf("dominant = %s, want %s", stats.Dominant, p.Dominant())
	}
	if stats.Mood == "" {
		t.Error("expected mood from the pet")
	}
}
