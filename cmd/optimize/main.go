package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	days := flag.Int("days", 14, "Game days raised per run")
	seeds := flag.Int("seeds", 3, "Seeds per candidate policy")
	maxEvals := flag.Int("max-evals", 200, "Maximum candidate policies to try")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *outputDir == "" {
		slog.Error("-output is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runTune(ctx, tuneOptions{
		configPath: *configPath,
		days:       *days,
		seeds:      *seeds,
		maxEvals:   *maxEvals,
		population: *population,
		outputDir:  *outputDir,
	}); err != nil {
		slog.Error("tuning failed", "error", err)
		os.Exit(1)
	}
}

type tuneOptions struct {
	configPath string
	days       int
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

// evalRecord is one row of optimize_log.csv.
type evalRecord struct {
	Eval              int     `csv:"eval"`
	Fitness           float64 `csv:"fitness"`
	Happiness         float64 `csv:"happiness"`
	Quality           float64 `csv:"quality"`
	Quests            float64 `csv:"quests"`
	Promotions        float64 `csv:"promotions"`
	Retirements       float64 `csv:"retirements"`
	ActionIntervalSec float64 `csv:"action_interval_sec"`
	FeedBelow         float64 `csv:"feed_below"`
	RestBelow         float64 `csv:"rest_below"`
	WorkChance        float64 `csv:"work_chance"`
}

func newEvalRecord(n int, x policy, o outcome) evalRecord {
	c := x.caretaker(config.CaretakerConfig{})
	return evalRecord{
		Eval:              n,
		Fitness:           o.Fitness,
		Happiness:         o.Happiness,
		Quality:           o.Quality,
		Quests:            o.Quests,
		Promotions:        o.Promotions,
		Retirements:       o.Retirements,
		ActionIntervalSec: c.ActionIntervalSec,
		FeedBelow:         c.FeedBelow,
		RestBelow:         c.RestBelow,
		WorkChance:        c.WorkChance,
	}
}

// evalLog appends rows to optimize_log.csv, header first.
type evalLog struct {
	f      *os.File
	header bool
}

func (l *evalLog) write(r evalRecord) error {
	rows := []evalRecord{r}
	if !l.header {
		l.header = true
		return gocsv.Marshal(rows, l.f)
	}
	return gocsv.MarshalWithoutHeaders(rows, l.f)
}

func runTune(ctx context.Context, to tuneOptions) error {
	if err := os.MkdirAll(to.outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	base, err := config.Load(to.configPath)
	if err != nil {
		return err
	}

	evalSeeds := make([]uint64, to.seeds)
	for i := range evalSeeds {
		evalSeeds[i] = uint64(i*1000 + 42)
	}
	ev := newEvaluator(base, to.days, evalSeeds)

	f, err := os.Create(filepath.Join(to.outputDir, "optimize_log.csv"))
	if err != nil {
		return fmt.Errorf("create optimize log: %w", err)
	}
	defer f.Close()
	evalCSV := &evalLog{f: f}

	popSize := to.population
	if popSize == 0 {
		popSize = 4 + 3*len(knobs)/2
	}

	start := time.Now()
	best := outcome{Fitness: math.Inf(1)}
	var (
		evals   int
		bestX   policy
		stopErr error
	)
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if stopErr != nil {
				return 0
			}
			p := policy(x)
			o, err := ev.evaluate(ctx, p)
			if err != nil {
				stopErr = err
				return 0
			}
			evals++
			if o.Fitness < best.Fitness {
				best, bestX = o, append(policy(nil), p...)
			}
			if err := evalCSV.write(newEvalRecord(evals, p, o)); err != nil {
				slog.Warn("failed to write optimize log", "error", err)
			}
			slog.Info("evaluated policy",
				"eval", evals,
				"of", to.maxEvals,
				"happiness", o.Happiness,
				"quality", o.Quality,
				"quests", o.Quests,
				"retirements", o.Retirements,
				"best_happiness", best.Happiness,
				"elapsed", time.Since(start).Round(time.Second),
			)
			return o.Fitness
		},
		Status: func() (optimize.Status, error) {
			if stopErr != nil {
				return optimize.Failure, stopErr
			}
			return optimize.NotTerminated, nil
		},
	}

	slog.Info("tuning caretaker",
		"knobs", len(knobs),
		"population", popSize,
		"max_evals", to.maxEvals,
		"seeds", to.seeds,
		"days", to.days,
	)
	_, err = optimize.Minimize(problem, policyOf(base.Caretaker),
		&optimize.Settings{FuncEvaluations: to.maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	switch {
	case errors.Is(err, context.Canceled):
		slog.Info("interrupted, keeping the best policy so far", "evals", evals)
	case err != nil:
		slog.Warn("optimization ended", "error", err)
	}
	if bestX == nil {
		return errors.New("no policy was evaluated")
	}

	bestCfg := *base
	bestCfg.Caretaker = bestX.caretaker(base.Caretaker)
	if err := bestCfg.WriteYAML(filepath.Join(to.outputDir, "best_config.yaml")); err != nil {
		return err
	}
	if err := writeBestRun(to.outputDir, ev.bestRun()); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Printf("\nTried %d policies in %v\n", evals, time.Since(start).Round(time.Second))
	p.Printf("Best policy: %s\n", bestX)
	p.Printf("  happiness %.1f  quality %.2f  quests %.1f  promotions %.1f  retirements %.1f\n",
		best.Happiness, best.Quality, best.Quests, best.Promotions, best.Retirements)
	p.Printf("Results written to %s\n", to.outputDir)
	return nil
}

// writeBestRun saves the daily stats and hall of fame of the best session.
func writeBestRun(dir string, r *run) error {
	if r == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(dir, "best_days.csv"))
	if err != nil {
		return fmt.Errorf("create best days: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(r.days, f); err != nil {
		return fmt.Errorf("write best days: %w", err)
	}

	if r.hallOfFame == nil {
		return nil
	}
	return writeHallOfFame(filepath.Join(dir, "hall_of_fame.json"), r.hallOfFame)
}

func writeHallOfFame(path string, hof *telemetry.HallOfFame) error {
	data, err := json.MarshalIndent(hof, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal hall of fame: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write hall of fame: %w", err)
	}
	return nil
}
