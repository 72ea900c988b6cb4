package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/nadagotchi/config"
	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/telemetry"
	"github.com/pthm-cable/nadagotchi/world"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nadagotchi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSession(t *testing.T, seed uint64) Session {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	p := pet.New(pet.Options{Config: cfg, Seed: seed})
	p.HandleAction(pet.Play{})
	w := world.New(cfg.World)
	return Session{Pet: p.Snapshot(), World: w.Snapshot()}
}

func TestSaveAndLoadSession(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)
	session := testSession(t, 7)

	require.NoError(t, store.SaveSession(ctx, "", session))

	loaded, err := store.LoadSession(ctx, DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, SessionVersion, loaded.Version)
	assert.Equal(t, session.Pet, loaded.Pet)
	assert.Equal(t, session.World, loaded.World)
}

func TestSaveSessionReplacesSlot(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)

	first := testSession(t, 1)
	second := testSession(t, 2)
	require.NoError(t, store.SaveSession(ctx, "a", first))
	require.NoError(t, store.SaveSession(ctx, "a", second))

	loaded, err := store.LoadSession(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, second.Pet.UUID, loaded.Pet.UUID)
}

func TestLoadSessionMissing(t *testing.T) {
	store := openTempStore(t)
	_, err := store.LoadSession(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)
	require.NoError(t, store.SaveSession(ctx, "a", testSession(t, 3)))

	require.NoError(t, store.DeleteSession(ctx, "a"))
	require.NoError(t, store.DeleteSession(ctx, "a"))

	_, err := store.LoadSession(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveSessionValidation(t *testing.T) {
	store := openTempStore(t)
	assert.Error(t, store.SaveSession(context.Background(), "a", Session{}))
}

func TestCanceledContext(t *testing.T) {
	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.LoadSession(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHallOfFame(t *testing.T) {
	ctx := context.Background()
	store := openTempStore(t)
	session := testSession(t, 4)

	require.NoError(t, store.ArchivePet(ctx, telemetry.HallEntry{UUID: "low", Dominant: "Adventurer", Score: 10}, nil))
	require.NoError(t, store.ArchivePet(ctx, telemetry.HallEntry{UUID: session.Pet.UUID, Dominant: "Nurturer", Career: "Healer", Score: 90}, session.Pet))
	require.NoError(t, store.ArchivePet(ctx, telemetry.HallEntry{UUID: "mid", Dominant: "Recluse", Score: 50}, nil))

	entries, err := store.HallOfFame(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, session.Pet.UUID, entries[0].UUID)
	assert.Equal(t, "Healer", entries[0].Career)
	assert.Equal(t, "mid", entries[1].UUID)

	snap, err := store.RetiredSnapshot(ctx, session.Pet.UUID)
	require.NoError(t, err)
	assert.Equal(t, session.Pet, snap)

	_, err = store.RetiredSnapshot(ctx, "low")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.ArchivePet(ctx, telemetry.HallEntry{}, nil))
	_, err = store.HallOfFame(ctx, 0)
	assert.Error(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nadagotchi.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, "a", testSession(t, 5)))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	_, err = store.LoadSession(ctx, "a")
	assert.NoError(t, err)
}

func TestExtractUp(t *testing.T) {
	got := extractUp("-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;\n")
	assert.Equal(t, "\nCREATE TABLE a (x INT);\n", got)
	assert.Equal(t, "SELECT 1;", extractUp("SELECT 1;"))
}
