package coordinator

import "github.com/junctionsim/core/topology"

// ingestLightStates is the Simulator's "ingest light states" step
// (spec.md §4.4 point 1), performed by the Coordinator immediately
// before each Sim tick so the kinematic update sees a consistent view
// (spec.md §5 "Ordering guarantees"). It applies the latest
// single-slot decision published by the Control loop and maintains
// the amber smoothing window (spec.md §4.5): a light whose target
// state changes is marked in_amber for AmberDuration seconds, during
// which the kinematic model treats it as RED regardless of its
// reported State (simulator.moveVehicles already implements that
// half of the rule via `red = State == Red || InAmber`).
//
// amberExpiry is owned exclusively by the Sim loop goroutine; no other
// goroutine reads or writes it.
func (c *Coordinator) ingestLightStates(j *topology.Junction, now float64) {
	decidedPtr := c.decidedLights.Load()
	var decided map[int32]topology.State
	if decidedPtr != nil {
		decided = *decidedPtr
	}

	for _, light := range j.Lights() {
		if target, ok := decided[light.ID]; ok && target != light.State {
			light.State = target
			light.InAmber = true
			c.amberExpiry[light.ID] = now + c.tunables.AmberDuration
		}
		if light.InAmber && now >= c.amberExpiry[light.ID] {
			light.InAmber = false
			delete(c.amberExpiry, light.ID)
		}
	}
}

// allRed builds a light-state decision with every light RED, the safe
// fallback the Coordinator forces after repeated collaborator
// failures (spec.md §4.5, §7).
func allRed(j *topology.Junction) map[int32]topology.State {
	lights := j.Lights()
	out := make(map[int32]topology.State, len(lights))
	for _, l := range lights {
		out[l.ID] = topology.Red
	}
	return out
}
