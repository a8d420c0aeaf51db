// Package clock owns simulated wall-clock time for the closed loop.
// Adapted from the teacher's clock package: a simple step counter with
// a fixed dt, rather than a wall-clock timer, so that Sim-loop and
// Control-loop cadences (spec §5) stay deterministic under test.
package clock

import "fmt"

// Clock advances in fixed steps of size DT. The Coordinator's Sim loop
// advances it every tick and stamps each snapshot with T; the Control
// loop takes its time from the snapshot's Timestamp rather than from
// the Clock.
type Clock struct {
	DT   float64 // seconds per simulation tick
	T    float64 // current simulated time, seconds
	Step int64   // number of ticks advanced since Init
}

// New creates a Clock with the given step size.
func New(dt float64) *Clock {
	c := &Clock{DT: dt}
	c.Init()
	return c
}

// Init resets the clock to time zero.
func (c *Clock) Init() {
	c.T = 0
	c.Step = 0
}

// Advance moves the clock forward by one DT and returns the new time.
func (c *Clock) Advance() float64 {
	c.Step++
	c.T += c.DT
	return c.T
}

// String formats the current time as HH:MM:SS.
func (c *Clock) String() string {
	t := c.T
	h := int(t / 3600)
	t -= float64(h * 3600)
	m := int(t / 60)
	t -= float64(m * 60)
	s := int(t)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
