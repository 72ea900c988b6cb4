package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/storage/migrations"
	"github.com/pthm-cable/nadagotchi/telemetry"
)

// Store provides SQLite-backed save slots and a hall of fame.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// SaveSession writes a session into a slot, replacing what was there.
func (s *Store) SaveSession(ctx context.Context, slot string, session Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if session.Pet == nil {
		return fmt.Errorf("session pet is required")
	}
	if slot = strings.TrimSpace(slot); slot == "" {
		slot = DefaultSlot
	}
	session.Version = SessionVersion
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO sessions (slot, pet_uuid, generation, day, data, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	pet_uuid = excluded.pet_uuid,
	generation = excluded.generation,
	day = excluded.day,
	data = excluded.data,
	updated_at = excluded.updated_at
`,
		slot,
		session.Pet.UUID,
		session.Pet.Generation,
		session.Pet.Day,
		data,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession reads a slot. A missing slot returns ErrNotFound and an
// unreadable one ErrTampered.
func (s *Store) LoadSession(ctx context.Context, slot string) (Session, error) {
	if err := s.ready(ctx); err != nil {
		return Session{}, err
	}
	if slot = strings.TrimSpace(slot); slot == "" {
		slot = DefaultSlot
	}

	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT data FROM sessions WHERE slot = ?`, slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	if session.Pet == nil {
		return Session{}, fmt.Errorf("%w: no pet", ErrTampered)
	}
	return session, nil
}

// DeleteSession removes a slot. Deleting a missing slot is not an error.
func (s *Store) DeleteSession(ctx context.Context, slot string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM sessions WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ArchivePet records a retired pet in the hall of fame. Archiving the same
// pet again replaces its entry.
func (s *Store) ArchivePet(ctx context.Context, entry telemetry.HallEntry, snapshot *pet.Snapshot) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(entry.UUID) == "" {
		return fmt.Errorf("pet uuid is required")
	}
	entryData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal hall entry: %w", err)
	}
	var snapData []byte
	if snapshot != nil {
		if snapData, err = json.Marshal(snapshot); err != nil {
			return fmt.Errorf("marshal pet snapshot: %w", err)
		}
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO hall_of_fame (
	pet_uuid,
	generation,
	dominant,
	career,
	career_level,
	days_lived,
	score,
	entry,
	snapshot,
	retired_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		entry.UUID,
		entry.Generation,
		entry.Dominant,
		entry.Career,
		entry.CareerLevel,
		entry.DaysLived,
		entry.Score,
		entryData,
		snapData,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("archive pet: %w", err)
	}
	return nil
}

// HallOfFame lists archived pets, best score first.
func (s *Store) HallOfFame(ctx context.Context, limit int) ([]telemetry.HallEntry, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT entry
FROM hall_of_fame
ORDER BY score DESC, retired_at ASC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list hall of fame: %w", err)
	}
	defer rows.Close()

	entries := make([]telemetry.HallEntry, 0, limit)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan hall entry: %w", err)
		}
		var e telemetry.HallEntry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, fmt.Errorf("decode hall entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hall of fame: %w", err)
	}
	return entries, nil
}

// RetiredSnapshot returns the final snapshot of an archived pet.
func (s *Store) RetiredSnapshot(ctx context.Context, uuid string) (*pet.Snapshot, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT snapshot FROM hall_of_fame WHERE pet_uuid = ?`, uuid).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && len(data) == 0) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load retired snapshot: %w", err)
	}
	var snap pet.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	return &snap, nil
}
