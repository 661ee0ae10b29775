package persistence

import "context"

// LevelStore is a key/value slot store for the last validated SDK log level
type LevelStore interface {
	// Read returns the stored value and whether one exists
	//
	// Possible errors:
	// - ErrPersistence: If the underlying store cannot be read
	Read(ctx context.Context, key string) (string, bool, error)

	// Write replaces the stored value; the last writer wins
	//
	// Possible errors:
	// - ErrPersistence: If the underlying store cannot be written
	Write(ctx context.Context, key, value string) error
}
