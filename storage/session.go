// Package storage persists sessions and retired pets: a SQLite store for
// save slots and the hall of fame, and an integrity-checked save file.
package storage

import (
	"errors"

	"github.com/pthm-cable/nadagotchi/pet"
	"github.com/pthm-cable/nadagotchi/world"
)

// SessionVersion is incremented when the session format changes.
const SessionVersion = 1

// DefaultSlot is the save slot used when none is named.
const DefaultSlot = "main"

var (
	// ErrNotFound means there is no saved data to load.
	ErrNotFound = errors.New("storage: not found")
	// ErrTampered means saved data failed its integrity check.
	ErrTampered = errors.New("storage: save data tampered")
)

// Session is everything needed to resume play.
type Session struct {
	Version int            `json:"version"`
	Pet     *pet.Snapshot  `json:"pet"`
	World   world.Snapshot `json:"world"`
}
