package storage

import "errors"

var (
	// ErrNotFound is returned when a slot was never written or its location
	// is not usable.
	ErrNotFound = errors.New("save slot not found")
	// ErrNoSavedGame is returned when a slot exists but was cleared.
	ErrNoSavedGame = errors.New("no saved game")
)

// Repository stores opaque save blobs by slot name. Names are canonicalised
// with keys.SlotKey, so "Saved Game" and "saved_game" address the same slot.
type Repository interface {
	// Exists reports whether the slot holds a non-empty blob.
	Exists(name string) (bool, error)
	Read(name string) ([]byte, error)
	// Write replaces the slot contents, creating the slot if needed.
	Write(name string, data []byte) error
	// Clear empties the slot without removing it.
	Clear(name string) error
}
