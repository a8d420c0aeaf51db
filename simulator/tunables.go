package simulator

import "flag"

// Package-level tunable flags, matching the teacher's pattern of
// exposing physical-model constants (entity/junction/trafficlight's
// yellowTime/phaseTime) as process flags instead of literals.
var (
	minGap           = flag.Float64("sim.min_gap", 60, "minimum safe gap, meters (spec.md §4.4 safe gap floor)")
	redApproachFrom  = flag.Float64("sim.red_approach_from", 40, "far edge, meters, of the red/amber stop-zone window")
	redApproachTo    = flag.Float64("sim.red_approach_to", 5, "near edge, meters, of the red/amber stop-zone window")
	exitThreshold    = flag.Float64("sim.exit_threshold", 30, "distance past the stop line, meters, at which a vehicle is destroyed")
	junctionSpan     = flag.Float64("sim.junction_span", 20, "meters past the stop line considered \"inside the junction\" for collision detection")
	laneWidth        = flag.Float64("sim.lane_width", 3.5, "lane width, meters, used for lane-transfer shift distances")
	vehicleFootprint = flag.Float64("sim.vehicle_footprint", 6.0, "bumper-to-bumper footprint, meters, used for occupancy/congestion")
	spawnVMin        = flag.Float64("sim.spawn_v_min", 0.5, "spawn velocity floor as a fraction of the lane's Vmax")
	spawnVMax        = flag.Float64("sim.spawn_v_max", 1.2, "spawn velocity ceiling as a fraction of the lane's Vmax")
	priorityProb     = flag.Float64("sim.priority_probability", 0.0, "probability a newly spawned vehicle is tagged priority (original_source Car.py's priority flag)")
)

// Tunables collects the Simulator's physical-model constants (spec.md
// §4.4).
type Tunables struct {
	MinGap           float64
	RedApproachFrom  float64
	RedApproachTo    float64
	ExitThreshold    float64
	JunctionSpan     float64
	LaneWidth        float64
	VehicleFootprint float64
	SpawnVMin        float64
	SpawnVMax        float64
	PriorityProb     float64
}

// DefaultTunables returns the reference constants, sourced from the
// process flags.
func DefaultTunables() Tunables {
	return Tunables{
		MinGap:           *minGap,
		RedApproachFrom:  *redApproachFrom,
		RedApproachTo:    *redApproachTo,
		ExitThreshold:    *exitThreshold,
		JunctionSpan:     *junctionSpan,
		LaneWidth:        *laneWidth,
		VehicleFootprint: *vehicleFootprint,
		SpawnVMin:        *spawnVMin,
		SpawnVMax:        *spawnVMax,
		PriorityProb:     *priorityProb,
	}
}
