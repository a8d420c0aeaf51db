package coordinator

import (
	"flag"
	"time"
)

// Package-level tunable flags, the same process-flag convention the
// teacher's trafficlight package and this repo's controller/simulator
// packages use for algorithm constants instead of unconfigurable
// literals.
var (
	amberDuration = flag.Float64("coord.amber_duration_seconds", 2.5,
		"amber smoothing duration applied to any light whose state changes (spec.md §9 Open Question 2; never derived from dt*30*2.5)")
	deadlineMultiplier = flag.Float64("coord.control_deadline_multiplier", 2.0,
		"a Control-loop tick exceeding this multiple of the control interval is abandoned (spec.md §5)")
	failureThreshold = flag.Int("coord.safe_fallback_after", 2,
		"consecutive collaborator-exchange failures before forcing all lights RED (spec.md §4.5, §7)")
)

// Tunables collects the Coordinator's timing and failure-handling
// parameters.
type Tunables struct {
	AmberDuration      float64
	DeadlineMultiplier float64
	FailureThreshold   int
}

// DefaultTunables returns the reference tunables, sourced from the
// process flags so operators can override them without recompiling.
func DefaultTunables() Tunables {
	return Tunables{
		AmberDuration:      *amberDuration,
		DeadlineMultiplier: *deadlineMultiplier,
		FailureThreshold:   *failureThreshold,
	}
}

// controlDeadline returns the abandon-tick deadline for a Control-loop
// cycle of the given interval (spec.md §5: "A Control-loop tick
// exceeding 2·Δt_ctrl is abandoned").
func (t Tunables) controlDeadline(interval time.Duration) time.Duration {
	return time.Duration(float64(interval) * t.DeadlineMultiplier)
}
