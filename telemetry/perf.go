package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one session step.
const (
	PhaseWorld     = "world"
	PhaseRollover  = "rollover"
	PhaseNeeds     = "needs"
	PhaseCaretaker = "caretaker"
	PhaseTelemetry = "telemetry"
	PhaseStorage   = "storage"
)

var phases = []string{PhaseWorld, PhaseRollover, PhaseNeeds, PhaseCaretaker, PhaseTelemetry, PhaseStorage}

// stepSample holds timing data for a single step.
type stepSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector tracks step timings over a rolling window.
type PerfCollector struct {
	samples    []stepSample
	next       int
	count      int
	current    map[string]time.Duration
	stepStart  time.Time
	phaseStart time.Time
	phase      string
	now        func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize steps.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		samples: make([]stepSample, windowSize),
		current: make(map[string]time.Duration),
		now:     time.Now,
	}
}

// StartStep begins timing a session step.
func (p *PerfCollector) StartStep() {
	if p == nil {
		return
	}
	p.stepStart = p.now()
	p.current = make(map[string]time.Duration)
	p.phase = ""
}

// StartPhase ends the running phase, if any, and starts another.
func (p *PerfCollector) StartPhase(phase string) {
	if p == nil {
		return
	}
	now := p.now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.phase = phase
}

// EndStep records the step into the window.
func (p *PerfCollector) EndStep() {
	if p == nil {
		return
	}
	now := p.now()
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
	p.samples[p.next] = stepSample{total: now.Sub(p.stepStart), phases: p.current}
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// PerfStats holds aggregated step timings.
type PerfStats struct {
	AvgStep        time.Duration
	MinStep        time.Duration
	MaxStep        time.Duration
	PhaseAvg       map[string]time.Duration
	PhasePct       map[string]float64 // Share of the average step
	StepsPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p == nil || p.count == 0 {
		return out
	}

	var total time.Duration
	sums := make(map[string]time.Duration)
	for i := range p.count {
		s := p.samples[i]
		total += s.total
		if i == 0 || s.total < out.MinStep {
			out.MinStep = s.total
		}
		out.MaxStep = max(out.MaxStep, s.total)
		for phase, d := range s.phases {
			sums[phase] += d
		}
	}

	n := time.Duration(p.count)
	out.AvgStep = total / n
	for phase, sum := range sums {
		out.PhaseAvg[phase] = sum / n
		if out.AvgStep > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(out.AvgStep) * 100
		}
	}
	if out.AvgStep > 0 {
		out.StepsPerSecond = float64(time.Second) / float64(out.AvgStep)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_step_us", s.AvgStep.Microseconds(),
		"max_step_us", s.MaxStep.Microseconds(),
		"steps_per_sec", int(s.StepsPerSecond),
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Day          int     `csv:"day"`
	AvgStepUS    int64   `csv:"avg_step_us"`
	MinStepUS    int64   `csv:"min_step_us"`
	MaxStepUS    int64   `csv:"max_step_us"`
	StepsPerSec  float64 `csv:"steps_per_sec"`
	WorldPct     float64 `csv:"world_pct"`
	RolloverPct  float64 `csv:"rollover_pct"`
	NeedsPct     float64 `csv:"needs_pct"`
	CaretakerPct float64 `csv:"caretaker_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
	StoragePct   float64 `csv:"storage_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(day int) PerfStatsCSV {
	return PerfStatsCSV{
		Day:          day,
		AvgStepUS:    s.AvgStep.Microseconds(),
		MinStepUS:    s.MinStep.Microseconds(),
		MaxStepUS:    s.MaxStep.Microseconds(),
		StepsPerSec:  s.StepsPerSecond,
		WorldPct:     s.PhasePct[PhaseWorld],
		RolloverPct:  s.PhasePct[PhaseRollover],
		NeedsPct:     s.PhasePct[PhaseNeeds],
		CaretakerPct: s.PhasePct[PhaseCaretaker],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
		StoragePct:   s.PhasePct[PhaseStorage],
	}
}
