package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// DayStats holds aggregated statistics for one simulated day.
type DayStats struct {
	Day     int    `csv:"day"`
	Season  string `csv:"season"`
	Weather string `csv:"weather"`
	Event   string `csv:"event"`

	// Needs distribution (sampled through the day)
	Samples       int     `csv:"samples"`
	HungerMean    float64 `csv:"hunger_mean"`
	HungerP10     float64 `csv:"hunger_p10"`
	HungerP50     float64 `csv:"hunger_p50"`
	EnergyMean    float64 `csv:"energy_mean"`
	EnergyP10     float64 `csv:"energy_p10"`
	EnergyP50     float64 `csv:"energy_p50"`
	HappinessMean float64 `csv:"happiness_mean"`
	HappinessStd  float64 `csv:"happiness_std"`
	HappinessP10  float64 `csv:"happiness_p10"`
	HappinessP50  float64 `csv:"happiness_p50"`
	HappinessP90  float64 `csv:"happiness_p90"`

	// Pet state at day end
	Mood        string  `csv:"mood"`
	Dominant    string  `csv:"dominant"`
	Career      string  `csv:"career"`
	CareerLevel int     `csv:"career_level"`
	Debris      int     `csv:"debris"`
	Penalty     float64 `csv:"penalty"` // Global plus current-location hygiene penalty
	Age         float64 `csv:"age"`

	// Events during the day
	Actions           int `csv:"actions"`
	Rejections        int `csv:"rejections"`
	Crafted           int `csv:"crafted"`
	Foraged           int `csv:"foraged"`
	Cleaned           int `csv:"cleaned"`
	WorkShifts        int `csv:"work_shifts"`
	Promotions        int `csv:"promotions"`
	MoodChanges       int `csv:"mood_changes"`
	QuestsCompleted   int `csv:"quests_completed"`
	RecipesDiscovered int `csv:"recipes_discovered"`
}

// NeedStats summarizes one need over a day.
type NeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeNeedStats calculates mean, standard deviation and percentiles.
// Percentiles use the empirical CDF, so they are always sample values.
func ComputeNeedStats(values []float64) NeedStats {
	if len(values) == 0 {
		return NeedStats{}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	s := NeedStats{
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s DayStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("day", s.Day),
		slog.String("season", s.Season),
		slog.String("weather", s.Weather),
		slog.String("event", s.Event),
		slog.Int("samples", s.Samples),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("happiness_mean", s.HappinessMean),
		slog.Float64("happiness_p10", s.HappinessP10),
		slog.String("mood", s.Mood),
		slog.String("dominant", s.Dominant),
		slog.String("career", s.Career),
		slog.Int("career_level", s.CareerLevel),
		slog.Int("debris", s.Debris),
		slog.Float64("penalty", s.Penalty),
		slog.Int("actions", s.Actions),
		slog.Int("rejections", s.Rejections),
		slog.Int("crafted", s.Crafted),
		slog.Int("foraged", s.Foraged),
		slog.Int("cleaned", s.Cleaned),
		slog.Int("work_shifts", s.WorkShifts),
		slog.Int("promotions", s.Promotions),
		slog.Int("quests_completed", s.QuestsCompleted),
	)
}

// LogStats logs the day stats using slog.
func (s DayStats) LogStats() {
	slog.Info("stats",
		"day", s.Day,
		"season", s.Season,
		"weather", s.Weather,
		"hunger_mean", s.HungerMean,
		"energy_mean", s.EnergyMean,
		"happiness_mean", s.HappinessMean,
		"happiness_p10", s.HappinessP10,
		"mood", s.Mood,
		"dominant", s.Dominant,
		"career", s.Career,
		"debris", s.Debris,
		"actions", s.Actions,
		"rejections", s.Rejections,
		"crafted", s.Crafted,
		"work_shifts", s.WorkShifts,
	)
}
