package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pthm-cable/nadagotchi/config"
)

// HallEntry describes a retired pet worth remembering.
type HallEntry struct {
	UUID            string   `json:"uuid"`
	Generation      int      `json:"generation"`
	Dominant        string   `json:"dominant"`
	Career          string   `json:"career,omitempty"`
	CareerLevel     int      `json:"careerLevel,omitempty"`
	Traits          []string `json:"traits,omitempty"`
	DNA             string   `json:"dna,omitempty"`
	DaysLived       int      `json:"daysLived"`
	MeanHappiness   float64  `json:"meanHappiness"`
	QuestsCompleted int      `json:"questsCompleted"`
	Crafted         int      `json:"crafted"`
	Score           float64  `json:"score"`
}

// HallOfFame keeps the best retired pets, sorted by score.
type HallOfFame struct {
	entries []HallEntry
	cfg     config.HallOfFameConfig
}

// NewHallOfFame creates an empty hall.
func NewHallOfFame(cfg config.HallOfFameConfig) *HallOfFame {
	if cfg.Size < 1 {
		cfg.Size = 1
	}
	return &HallOfFame{cfg: cfg, entries: make([]HallEntry, 0, cfg.Size)}
}

// NewHallEntry fills the lifetime fields of an entry from tracked stats.
func NewHallEntry(stats *LifetimeStats) HallEntry {
	return HallEntry{
		UUID:            stats.UUID,
		Generation:      stats.Generation,
		DaysLived:       stats.DaysLived,
		MeanHappiness:   stats.MeanHappiness(),
		QuestsCompleted: stats.QuestsCompleted,
		Crafted:         stats.Crafted,
	}
}

// Consider scores a retired pet and inserts it if it qualifies.
// Returns true if the pet was added.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	if entry.DaysLived < hof.cfg.MinDays {
		return false
	}
	entry.Score = hof.Score(entry)

	hof.entries = hof.insertEntry(hof.entries, entry)
	return hof.contains(entry.UUID)
}

// Score weighs an entry's lifetime achievements.
func (hof *HallOfFame) Score(e HallEntry) float64 {
	c := hof.cfg
	return e.MeanHappiness*c.HappinessWeight +
		float64(e.CareerLevel)*c.CareerWeight +
		float64(e.QuestsCompleted)*c.QuestWeight +
		float64(e.Crafted)*c.CraftWeight
}

func (hof *HallOfFame) contains(uuid string) bool {
	for _, e := range hof.entries {
		if e.UUID == uuid {
			return true
		}
	}
	return false
}

// insertEntry adds an entry, maintaining descending score order.
// If the hall is full, the lowest-scoring entry is removed.
func (hof *HallOfFame) insertEntry(hall []HallEntry, entry HallEntry) []HallEntry {
	idx := sort.Search(len(hall), func(i int) bool {
		return hall[i].Score < entry.Score
	})
	if len(hall) >= hof.cfg.Size && idx >= hof.cfg.Size {
		return hall
	}

	hall = append(hall, HallEntry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > hof.cfg.Size {
		hall = hall[:hof.cfg.Size]
	}
	return hall
}

// Entries returns the hall, best first.
func (hof *HallOfFame) Entries() []HallEntry {
	return append([]HallEntry(nil), hof.entries...)
}

// Size returns the number of entries.
func (hof *HallOfFame) Size() int { return len(hof.entries) }

// TopScore returns the best score, or 0 if the hall is empty.
func (hof *HallOfFame) TopScore() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Score
}

// MarshalJSON serializes the hall as an array, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// LoadHallOfFameFromFile reads a hall of fame JSON file. Stored scores are
// kept as written.
func LoadHallOfFameFromFile(path string, cfg config.HallOfFameConfig) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	hof := NewHallOfFame(cfg)
	for _, e := range entries {
		hof.entries = hof.insertEntry(hof.entries, e)
	}
	return hof, nil
}
