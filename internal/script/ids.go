package script

import "github.com/google/uuid"

// IDGenerator produces opaque unique identifiers for sections, ideas, and
// candidates. Injecting the generator keeps IDs deterministic in tests and
// avoids cross-session collisions from shared counters.
type IDGenerator func() string

// NewUUIDGenerator returns the production generator backed by random UUIDs.
func NewUUIDGenerator() IDGenerator {
	return uuid.NewString
}
