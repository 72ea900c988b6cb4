package storage

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SaveFile writes a session as base64(json)|sha256(payload+salt).
// The file is replaced atomically.
func SaveFile(path string, s Session, salt string) error {
	s.Version = SessionVersion
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(data)
	line := payload + "|" + fileChecksum(payload, salt)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(line), 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

// LoadFile reads a session written by SaveFile. A missing file returns
// ErrNotFound; a checksum or format failure returns ErrTampered.
func LoadFile(path, salt string) (Session, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("read save file: %w", err)
	}

	payload, sum, ok := strings.Cut(strings.TrimSpace(string(data)), "|")
	if !ok || sum != fileChecksum(payload, salt) {
		return Session{}, ErrTampered
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrTampered, err)
	}
	if s.Pet == nil {
		return Session{}, fmt.Errorf("%w: no pet", ErrTampered)
	}
	return s, nil
}

func fileChecksum(payload, salt string) string {
	h := sha256.Sum256([]byte(payload + salt))
	return hex.EncodeToString(h[:])
}
