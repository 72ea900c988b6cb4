package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/nadagotchi/pet"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot captures a pet at a bookmarked moment for later inspection.
type Snapshot struct {
	Version int `json:"version"`
	Day     int `json:"day"`

	Pet      *pet.Snapshot      `json:"pet"`
	Lifetime *LifetimeStatsJSON `json:"lifetime,omitempty"`
	Bookmark *Bookmark          `json:"bookmark,omitempty"`
}

// LifetimeStatsJSON is the JSON-serializable form of LifetimeStats.
type LifetimeStatsJSON struct {
	Generation      int     `json:"generation"`
	BornDay         int     `json:"born_day"`
	DaysLived       int     `json:"days_lived"`
	Actions         int     `json:"actions"`
	Crafted         int     `json:"crafted"`
	WorkShifts      int     `json:"work_shifts"`
	QuestsCompleted int     `json:"quests_completed"`
	PeakHappiness   float64 `json:"peak_happiness"`
	MeanHappiness   float64 `json:"mean_happiness"`
}

// ToJSON converts LifetimeStats to its JSON form.
func (ls *LifetimeStats) ToJSON() *LifetimeStatsJSON {
	if ls == nil {
		return nil
	}
	return &LifetimeStatsJSON{
		Generation:      ls.Generation,
		BornDay:         ls.BornDay,
		DaysLived:       ls.DaysLived,
		Actions:         ls.Actions,
		Crafted:         ls.Crafted,
		WorkShifts:      ls.WorkShifts,
		QuestsCompleted: ls.QuestsCompleted,
		PeakHappiness:   ls.PeakHappiness,
		MeanHappiness:   ls.MeanHappiness(),
	}
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_day%d", snapshot.Day)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_day%d_%s", snapshot.Day, sanitized)
	}
	path := filepath.Join(dir, name+".json")

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
