// Package clock provides the monotonic millisecond timestamp the monitor
// schedules module refreshes against.
package clock

import "time"

// Clock yields millisecond timestamps that never go backwards.
type Clock interface {
	NowMillis() int64
}

// Monotonic measures elapsed time from its creation using the runtime's
// monotonic reading, so wall-clock adjustments do not disturb refresh
// throttling.
type Monotonic struct {
	base time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{base: time.Now()}
}

// NowMillis starts at 1 rather than 0; zero is reserved by the monitor to
// mean "never refreshed".
func (c *Monotonic) NowMillis() int64 {
	return time.Since(c.base).Milliseconds() + 1
}
