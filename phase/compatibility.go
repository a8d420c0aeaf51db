// Package phase implements the static geometric analyser that
// enumerates every maximal subset of traffic lights (a "phase") whose
// permitted movements are mutually non-conflicting (spec.md §4.2).
package phase

import "github.com/junctionsim/core/topology"

// permitsTurn reports whether light permits at least one movement of
// the given turn kind, given the junction it belongs to.
func permitsTurn(j *topology.Junction, light *topology.TrafficLight, turn topology.Turn) bool {
	originRoad, ok := j.LightOriginRoad(light)
	if !ok {
		return false
	}
	for _, destRoad := range j.LightDestinationRoads(light) {
		if topology.ClassifyTurn(originRoad.FromSide, destRoad.ToSide) == turn {
			return true
		}
	}
	return false
}

// allMovementsAreTurn reports whether every movement a light permits
// is of the given turn kind. A light with no destinations vacuously
// satisfies this.
func allMovementsAreTurn(j *topology.Junction, light *topology.TrafficLight, turn topology.Turn) bool {
	originRoad, ok := j.LightOriginRoad(light)
	if !ok {
		return true
	}
	for _, destRoad := range j.LightDestinationRoads(light) {
		if topology.ClassifyTurn(originRoad.FromSide, destRoad.ToSide) != turn {
			return false
		}
	}
	return true
}

// destinationRoadSet returns the set of road IDs a light's
// destinations touch.
func destinationRoadSet(j *topology.Junction, light *topology.TrafficLight) map[int32]bool {
	set := make(map[int32]bool)
	for _, r := range j.LightDestinationRoads(light) {
		set[r.ID] = true
	}
	return set
}

// Compatible implements spec.md §4.2's pairwise non-conflict
// predicate: true iff all three sub-predicates hold for (a, b).
func Compatible(j *topology.Junction, a, b *topology.TrafficLight) bool {
	aOriginRoad, aOK := j.LightOriginRoad(a)
	bOriginRoad, bOK := j.LightOriginRoad(b)
	if !aOK || !bOK {
		return false
	}

	// 1. No merge conflict: if origin roads differ, destinations must
	// not overlap.
	if aOriginRoad.ID != bOriginRoad.ID {
		aDst := destinationRoadSet(j, a)
		for id := range destinationRoadSet(j, b) {
			if aDst[id] {
				return false
			}
		}
	}

	// 2. No straight-cross conflict: not both straight-through on
	// perpendicular origin roads.
	if aOriginRoad.FromSide.Perpendicular(bOriginRoad.FromSide) {
		if permitsTurn(j, a, topology.TurnStraight) && permitsTurn(j, b, topology.TurnStraight) {
			return false
		}
	}

	// 3. No protected-left conflict.
	if permitsTurn(j, a, topology.TurnLeft) {
		sameOrigin := aOriginRoad.ID == bOriginRoad.ID
		bAllRight := allMovementsAreTurn(j, b, topology.TurnRight)
		if !sameOrigin && !bAllRight {
			return false
		}
	}
	if permitsTurn(j, b, topology.TurnLeft) {
		sameOrigin := aOriginRoad.ID == bOriginRoad.ID
		aAllRight := allMovementsAreTurn(j, a, topology.TurnRight)
		if !sameOrigin && !aAllRight {
			return false
		}
	}

	return true
}
