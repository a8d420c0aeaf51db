package controller

import "flag"

// Package-level tunable flags, following the teacher's
// entity/junction/trafficlight/max_pressure.go convention of exposing
// algorithm constants as process-level flags rather than burying them
// as unconfigurable literals.
var (
	alpha          = flag.Float64("ctrl.alpha", 1.0, "SmartFair/AdaptiveFlow cumulative delay pressure weight")
	beta           = flag.Float64("ctrl.beta", 5.0, "SmartFair/AdaptiveFlow volume pressure weight")
	gamma          = flag.Float64("ctrl.gamma", 1.0, "SmartFair/AdaptiveFlow fairness pressure weight")
	hysteresis     = flag.Float64("ctrl.hysteresis", 10.0, "minimum score margin required to switch the active phase")
	roundRobinT    = flag.Float64("ctrl.round_robin_seconds", 20.0, "RoundRobin fixed dwell time per phase")
	decayRho       = flag.Float64("ctrl.decay_rho", 0.8, "AdaptiveFlow exponential smoothing factor for accumulated wait")
	priorityWeight = flag.Float64("ctrl.priority_weight", 3.0, "score multiplier applied when a priority vehicle is queued on a phase's origins")
)

// Tunables collects the Controller's scoring parameters (spec.md §4.3,
// §6 "Control intake"). Zero-value Tunables is not meaningful; use
// DefaultTunables or override individual fields after copying it.
type Tunables struct {
	Alpha          float64
	Beta           float64
	Gamma          float64
	Hysteresis     float64
	RoundRobinT    float64
	DecayRho       float64
	PriorityWeight float64
}

// DefaultTunables returns the reference tunables (spec.md §4.3),
// sourced from the process flags so operators can override them
// without recompiling.
func DefaultTunables() Tunables {
	return Tunables{
		Alpha:          *alpha,
		Beta:           *beta,
		Gamma:          *gamma,
		Hysteresis:     *hysteresis,
		RoundRobinT:    *roundRobinT,
		DecayRho:       *decayRho,
		PriorityWeight: *priorityWeight,
	}
}
