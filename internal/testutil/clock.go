// Package testutil provides shared test fakes.
package testutil

// Clock is a manually advanced millisecond clock for throttle tests.
type Clock struct {
	ms int64
}

// NewClock returns a fake clock starting at the given millisecond reading.
func NewClock(start int64) *Clock {
	return &Clock{ms: start}
}

func (c *Clock) NowMillis() int64 {
	return c.ms
}

// Advance moves the clock forward by d milliseconds.
func (c *Clock) Advance(d int64) {
	c.ms += d
}
