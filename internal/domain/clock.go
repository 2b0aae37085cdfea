package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock stamps fetches and drives the refresh scheduler. Tests freeze it via
// SetClock.
var clock = clockwork.NewRealClock()

// SetClock replaces the time source. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Clock returns the current time source.
func Clock() clockwork.Clock {
	return clock
}

// Now returns the current time in UTC.
func Now() time.Time {
	return clock.Now().UTC()
}
