package clock

import "time"

// Clock is the time source for heartbeat stamps and sweep cutoffs.
// Injectable so presence tests can move time instead of sleeping.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current system time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
