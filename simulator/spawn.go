package simulator

import "github.com/junctionsim/core/topology"

// spawnLane draws N ~ Poisson(λ·Δt) new vehicles for lane (λ being the
// lane's per-second arrival rate) and inserts them at d = L (spec.md
// §4.4 "Spawning"). Returns the count spawned.
func (s *Simulator) spawnLane(j *topology.Junction, lane *topology.Lane) int {
	if lane.Lambda <= 0 {
		return 0
	}
	n := s.rng.Poisson(lane.Lambda * s.dt)
	if n == 0 {
		return 0
	}
	light, _ := j.LightByOriginLane(lane.ID)
	for i := 0; i < n; i++ {
		s.nextVehicleID++
		v := &topology.Vehicle{
			ID:           s.nextVehicleID,
			Distance:     lane.Length,
			Velocity:     s.rng.UniformRange(s.tunables.SpawnVMin*lane.VMax, s.tunables.SpawnVMax*lane.VMax),
			OriginLaneID: lane.ID,
			Kind:         topology.KindNormal,
		}
		if s.rng.PTrue(s.tunables.PriorityProb) {
			v.Kind = topology.KindPriority
		}
		chooseDestination(v, light, s.rng)
		lane.Insert(v)
	}
	return n
}
