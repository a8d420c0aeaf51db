// Package simulator implements the Simulator (spec.md §4.4): it
// advances a Junction by a fixed time-step, moving vehicles under a
// kinematic sub-model, spawning new arrivals, transferring vehicles
// across the junction on their chosen turn, and publishing an
// observation snapshot.
package simulator

import (
	"math"

	"github.com/junctionsim/core/metrics"
	"github.com/junctionsim/core/randengine"
	"github.com/junctionsim/core/snapshot"
	"github.com/junctionsim/core/topology"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "simulator")

// Simulator is not safe for concurrent use: spec.md §5 confines it to
// the Sim-loop goroutine.
type Simulator struct {
	dt       float64
	rng      *randengine.Engine
	tunables Tunables
	metrics  *metrics.Metrics

	nextVehicleID int64
}

// New builds a Simulator advancing by dt seconds per Step, using rng
// for spawning and destination draws (spec.md §4.4 "Determinism").
func New(dt float64, rng *randengine.Engine, tunables Tunables, m *metrics.Metrics) *Simulator {
	return &Simulator{dt: dt, rng: rng, tunables: tunables, metrics: m}
}

// Step advances j by one Δt and returns the resulting observation
// snapshot (spec.md §4.4, §6). now is the simulation clock value used
// as the snapshot's timestamp.
func (s *Simulator) Step(j *topology.Junction, now float64) snapshot.Snapshot {
	lanes := j.Lanes()

	for _, lane := range lanes {
		s.moveVehicles(j, lane)
	}
	for _, lane := range lanes {
		s.transferVehicles(j, lane)
	}
	destroyed := 0
	for _, lane := range lanes {
		destroyed += s.destroyExpired(lane)
	}
	spawned := 0
	for _, lane := range lanes {
		spawned += s.spawnLane(j, lane)
	}

	collisions := countCollisions(j, s.tunables.JunctionSpan)

	if s.metrics != nil {
		s.metrics.SimTicks.Inc()
		s.metrics.VehiclesDestroyed.Add(float64(destroyed))
		s.metrics.VehiclesSpawned.Add(float64(spawned))
		s.metrics.Collisions.Add(float64(collisions))
		s.metrics.ActiveVehicles.Set(float64(len(j.Vehicles())))
	}
	if collisions > 0 {
		log.Warnf("junction %d: %d collision(s) detected at t=%.3f", j.ID, collisions, now)
	}

	return buildSnapshot(j, now, collisions, s.tunables.VehicleFootprint)
}

// moveVehicles runs the kinematic sub-model (spec.md §4.4) for every
// vehicle on lane, using the light state visible at the start of this
// tick so no observer sees a half-completed update (spec.md §5
// "Ordering guarantees").
func (s *Simulator) moveVehicles(j *topology.Junction, lane *topology.Lane) {
	vehicles := append([]*topology.Vehicle(nil), lane.Vehicles()...)
	red := false
	if light, ok := j.LightByOriginLane(lane.ID); ok {
		red = light.State == topology.Red || light.InAmber
	}
	for _, v := range vehicles {
		gap := math.Inf(1)
		if ahead := lane.VehicleAhead(v.Distance); ahead != nil {
			gap = v.Distance - ahead.Distance
		}
		newV, newD := stepVehicle(v.Velocity, v.Distance, gap, lane.VMax, lane.AccelMax, lane.DecelMax, s.dt, red, s.tunables)
		v.Velocity = newV
		v.Distance = newD
	}
	lane.Resort()
}

// transferVehicles moves vehicles that have reached the stop line
// (d <= 0) from their origin lane onto their destination lane,
// honouring the right/straight-immediate vs left-two-stage rule
// (spec.md §4.4 "Lane transfer").
func (s *Simulator) transferVehicles(j *topology.Junction, lane *topology.Lane) {
	vehicles := append([]*topology.Vehicle(nil), lane.Vehicles()...)
	light, _ := j.LightByOriginLane(lane.ID)
	for _, v := range vehicles {
		if v.OriginLaneID != lane.ID || v.Distance > 0 {
			continue
		}
		chooseDestination(v, light, s.rng)
		if !v.HasDestination() {
			continue
		}
		destLane, ok := j.Lane(v.DestinationLaneID)
		if !ok {
			log.Errorf("vehicle %d destination lane %d does not exist", v.ID, v.DestinationLaneID)
			continue
		}
		originRoad, _ := j.Road(lane.RoadID)
		destRoad, _ := j.Road(destLane.RoadID)
		if originRoad == nil || destRoad == nil {
			continue
		}

		turn := topology.ClassifyTurn(originRoad.FromSide, destRoad.ToSide)
		if turn == topology.TurnLeft && v.Distance > turnInOffset(s.tunables.LaneWidth) {
			// Not yet advanced past the turn-in point; stays in the
			// origin lane for another tick (spec.md §4.4 "two stages").
			continue
		}

		lane.Remove(v)
		v.Distance = -crossedLaneShift(j, destLane, s.tunables.LaneWidth)
		destLane.Insert(v)
	}
}

// destroyExpired removes vehicles that have travelled past the
// exit threshold (spec.md §4.4 "Once d < −exit_threshold the vehicle
// is destroyed").
func (s *Simulator) destroyExpired(lane *topology.Lane) int {
	vehicles := append([]*topology.Vehicle(nil), lane.Vehicles()...)
	count := 0
	for _, v := range vehicles {
		if v.Distance < -s.tunables.ExitThreshold {
			lane.Remove(v)
			count++
		}
	}
	return count
}
