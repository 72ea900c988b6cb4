package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
)

func TestSnapshotSaveLoad(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	p := pet.New(pet.Options{Config: cfg, Seed: 3})
	lt := NewLifetimeTracker()
	lt.Register(p.UUID(), p.Generation(), 0)
	lt.AddDay(p.UUID(), DayStats{HappinessMean: 64})

	snapshot := &Snapshot{
		Version:  SnapshotVersion,
		Day:      12,
		Pet:      p.Snapshot(),
		Lifetime: lt.Get(p.UUID()).ToJSON(),
		Bookmark: &Bookmark{Type: BookmarkThriving, Day: 12, Description: "Test bookmark"},
	}

	path, err := SaveSnapshot(snapshot, t.TempDir())
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if loaded.Day != 12 || loaded.Version != SnapshotVersion {
		t.Errorf("header mismatch: got %d/%d", loaded.Day, loaded.Version)
	}
	if loaded.Pet == nil || loaded.Pet.UUID != p.UUID() {
		t.Error("pet snapshot not loaded")
	}
	if loaded.Lifetime == nil || loaded.Lifetime.MeanHappiness != 64 {
		t.Errorf("lifetime = %+v", loaded.Lifetime)
	}
	if loaded.Bookmark == nil || loaded.Bookmark.Type != BookmarkThriving {
		t.Errorf("bookmark = %+v", loaded.Bookmark)
	}
}

func TestSnapshotFilename(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveSnapshot(&Snapshot{Day: 5, Bookmark: &Bookmark{Type: BookmarkHappinessCrash}}, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(dir, "snapshot_day5_happiness_crash.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}

	path, err = SaveSnapshot(&Snapshot{Day: 3}, dir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if want := filepath.Join(dir, "snapshot_day3.json"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
}
