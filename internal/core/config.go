package core

import "time"

// RuntimeConfig contains the per-run settings shared by every front end.
type RuntimeConfig struct {
	Seed     int64 // RNG seed for deterministic runs; 0 means use current time
	RealTime bool  // drive ticks from the wall clock instead of stepping
}

// ResolveSeed returns Seed, or a time-derived seed when it is zero.
func (c RuntimeConfig) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Resolved returns a copy of c with a concrete seed.
func (c RuntimeConfig) Resolved() RuntimeConfig {
	c.Seed = c.ResolveSeed()
	return c
}
