package telemetry

// LifetimeStats tracks one pet's totals over its life.
type LifetimeStats struct {
	UUID       string
	Generation int
	BornDay    int
	DaysLived  int

	Actions         int
	Rejections      int
	Crafted         int
	Foraged         int
	Cleaned         int
	WorkShifts      int
	Promotions      int
	QuestsCompleted int

	PeakHappiness float64
	happinessSum  float64
}

// MeanHappiness is the average of the daily happiness means.
func (s *LifetimeStats) MeanHappiness() float64 {
	if s.DaysLived == 0 {
		return 0
	}
	return s.happinessSum / float64(s.DaysLived)
}

// LifetimeTracker manages per-pet lifetime statistics.
type LifetimeTracker struct {
	stats map[string]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[string]*LifetimeStats),
	}
}

// Register starts tracking a pet. Re-registering a known pet is a no-op.
func (lt *LifetimeTracker) Register(uuid string, generation, day int) {
	if _, ok := lt.stats[uuid]; ok {
		return
	}
	lt.stats[uuid] = &LifetimeStats{
		UUID:       uuid,
		Generation: generation,
		BornDay:    day,
	}
}

// Get returns the lifetime stats for a pet, or nil if not found.
func (lt *LifetimeTracker) Get(uuid string) *LifetimeStats {
	return lt.stats[uuid]
}

// Remove stops tracking a pet and returns its stats.
func (lt *LifetimeTracker) Remove(uuid string) *LifetimeStats {
	stats := lt.stats[uuid]
	delete(lt.stats, uuid)
	return stats
}

// AddDay folds one day's stats into a pet's totals.
func (lt *LifetimeTracker) AddDay(uuid string, d DayStats) {
	s := lt.stats[uuid]
	if s == nil {
		return
	}
	s.DaysLived++
	s.Actions += d.Actions
	s.Rejections += d.Rejections
	s.Crafted += d.Crafted
	s.Foraged += d.Foraged
	s.Cleaned += d.Cleaned
	s.WorkShifts += d.WorkShifts
	s.Promotions += d.Promotions
	s.QuestsCompleted += d.QuestsCompleted
	s.happinessSum += d.HappinessMean
	s.PeakHappiness = max(s.PeakHappiness, d.HappinessMean)
}

// Count returns the number of tracked pets.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
