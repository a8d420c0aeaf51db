package simulator

import (
	"github.com/junctionsim/core/randengine"
	"github.com/junctionsim/core/topology"
)

// chooseDestination draws the vehicle's destination lane uniformly
// from its origin light's destinations, once, at the point of first
// need (spec.md §3 "destination lane (chosen at spawn..."), but also
// used defensively at transfer time for vehicles spawned without a
// controlling light.
func chooseDestination(v *topology.Vehicle, light *topology.TrafficLight, rng *randengine.Engine) {
	if v.HasDestination() || light == nil || len(light.DestinationLaneIDs) == 0 {
		return
	}
	idx := rng.IntnSafe(len(light.DestinationLaneIDs))
	v.SetDestination(light.DestinationLaneIDs[idx])
}

// crossedLaneShift is the lane-transfer offset distance for a vehicle
// landing on destLane: laneWidth times the destination road's lane
// count, clamped to at least one lane width (SPEC_FULL.md Open
// Question resolution #3 — spec.md §9 flags the exact derivation as
// needing operator confirmation before hard-coding, so this is the
// narrowest reading of "advance past the cross-traffic lane").
func crossedLaneShift(j *topology.Junction, destLane *topology.Lane, laneWidth float64) float64 {
	crossed := 1
	if road, ok := j.Road(destLane.RoadID); ok && len(road.Lanes) > 0 {
		crossed = len(road.Lanes)
	}
	shift := laneWidth * float64(crossed)
	if shift < laneWidth {
		shift = laneWidth
	}
	return shift
}

// turnInOffset is how far past the stop line (as a negative Distance)
// a left-turning vehicle must advance before it is moved to its
// destination lane, modelling the longer path a protected left takes
// across the junction (spec.md §4.4 "Left turn: performed in two
// stages").
func turnInOffset(laneWidth float64) float64 {
	return -laneWidth
}
