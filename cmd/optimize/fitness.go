package main

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/game"
	"github.com/pthm-cable/nadagotchi/telemetry"
)

// Neglect thresholds on the daily 10th percentiles.
const (
	neglectHungerP10 = 20.0
	neglectEnergyP10 = 10.0
)

// Quality component weights.
const (
	qualityWeightCare      = 0.50
	qualityWeightStability = 0.30
	qualityWeightProgress  = 0.20
)

// outcome is what one policy achieved, averaged over seeds.
type outcome struct {
	Fitness     float64
	Happiness   float64
	Quality     float64
	Quests      float64
	Promotions  float64
	Retirements float64
}

// run is one seeded session raised under a policy.
type run struct {
	seed        uint64
	days        []telemetry.DayStats
	retirements int
	hallOfFame  *telemetry.HallOfFame
	err         error
}

// evaluator raises pets under candidate policies.
type evaluator struct {
	base  *config.Config
	days  int
	seeds []uint64

	mu          sync.Mutex
	best        *run // best single run seen so far
	bestFitness float64
}

func newEvaluator(base *config.Config, days int, seeds []uint64) *evaluator {
	return &evaluator{base: base, days: days, seeds: seeds, bestFitness: math.Inf(1)}
}

// evaluate runs every seed in parallel and averages the outcome. A cancelled
// context returns its error once the running sessions stop.
func (ev *evaluator) evaluate(ctx context.Context, x policy) (outcome, error) {
	runs := make([]run, len(ev.seeds))
	var wg sync.WaitGroup
	for i, seed := range ev.seeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runs[i] = ev.raise(ctx, x, seed)
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}

	var out outcome
	for i := range runs {
		r := &runs[i]
		if r.err != nil {
			slog.Warn("session ended early", "seed", r.seed, "error", r.err)
		}
		f := fitness(r.days)
		out.Fitness += f
		out.Happiness += meanHappiness(r.days)
		out.Quality += quality(r.days)
		out.Retirements += float64(r.retirements)
		for _, d := range r.days {
			out.Quests += float64(d.QuestsCompleted)
			out.Promotions += float64(d.Promotions)
		}

		ev.mu.Lock()
		if f < ev.bestFitness {
			ev.bestFitness, ev.best = f, r
		}
		ev.mu.Unlock()
	}
	n := float64(len(runs))
	out.Fitness /= n
	out.Happiness /= n
	out.Quality /= n
	out.Quests /= n
	out.Promotions /= n
	out.Retirements /= n
	return out, nil
}

// bestRun returns the single best session seen across all evaluations.
func (ev *evaluator) bestRun() *run {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.best
}

// raise runs one headless session with its own copy of the base config.
func (ev *evaluator) raise(ctx context.Context, x policy, seed uint64) run {
	cfg := *ev.base
	cfg.Caretaker = x.caretaker(ev.base.Caretaker)

	r := run{seed: seed}
	g, err := game.NewGame(game.Options{
		Config:         &cfg,
		Seed:           seed,
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		StepsPerUpdate: 60,
		StatsCallback: func(stats telemetry.DayStats) {
			r.days = append(r.days, stats)
		},
	})
	if err != nil {
		r.err = err
		return r
	}
	defer g.Close()

	r.err = g.RunDays(ctx, ev.days)
	r.retirements = g.Retirements()
	r.hallOfFame = g.HallOfFame()
	return r
}

// fitness is lower for better runs: mean daily happiness, boosted by up
// to 20% for well-kept pets.
func fitness(days []telemetry.DayStats) float64 {
	if len(days) == 0 {
		return 0
	}
	return -(meanHappiness(days) * (1.0 + 0.2*quality(days)))
}

func meanHappiness(days []telemetry.DayStats) float64 {
	if len(days) == 0 {
		return 0
	}
	means := make([]float64, len(days))
	for i, d := range days {
		means[i] = d.HappinessMean
	}
	return stat.Mean(means, nil)
}

// quality scores care in [0, 1] from daily stats: days without neglect,
// steady happiness, and quests or promotions along the way.
func quality(days []telemetry.DayStats) float64 {
	if len(days) == 0 {
		return 0
	}

	var cared, progressed int
	stds := make([]float64, len(days))
	for i, d := range days {
		if d.HungerP10 >= neglectHungerP10 && d.EnergyP10 >= neglectEnergyP10 {
			cared++
		}
		if d.QuestsCompleted > 0 || d.Promotions > 0 {
			progressed++
		}
		stds[i] = d.HappinessStd
	}
	n := float64(len(days))

	// Steady days score near 1.
	stability := math.Exp(-stat.Mean(stds, nil) / 10)

	q := qualityWeightCare*float64(cared)/n +
		qualityWeightStability*stability +
		qualityWeightProgress*float64(progressed)/n
	return min(max(q, 0), 1)
}
