// Package snapshot defines the Observation Snapshot contract the
// Simulator publishes to the Controller and any telemetry subscriber
// each tick (spec.md §6 "Observation snapshot").
package snapshot

import "github.com/junctionsim/core/topology"

// VehicleView is the per-tick read-only view of one vehicle.
type VehicleView struct {
	ID                int64
	LaneID            int32
	Distance          float64
	Velocity          float64
	Kind              topology.VehicleKind
	DestinationLaneID int32
	HasDestination    bool
}

// LaneView is the ordered vehicle list for one lane.
type LaneView struct {
	ID       int32
	Vehicles []VehicleView
}

// RoadView carries the per-road congestion indicator.
type RoadView struct {
	ID         int32
	Congestion float64
}

// LightView is the per-tick state of one traffic light.
type LightView struct {
	ID      int32
	State   topology.State
	InAmber bool
}

// Snapshot is the full per-tick payload (spec.md §6). It is an
// immutable value: the Simulator builds a fresh one every tick rather
// than mutating a shared instance, so a collaborator holding a
// reference never observes a half-completed update.
type Snapshot struct {
	JunctionID int32
	Timestamp  float64
	Lights     []LightView
	Roads      []RoadView
	Lanes      []LaneView
	Collisions int
}

// LaneVehicles indexes Lanes by ID for scorers and renderers that need
// random access instead of the tick-ordered slice.
func (s Snapshot) LaneVehicles() map[int32][]VehicleView {
	out := make(map[int32][]VehicleView, len(s.Lanes))
	for _, lane := range s.Lanes {
		out[lane.ID] = lane.Vehicles
	}
	return out
}

// VehicleIDs returns the set of every vehicle ID present anywhere in
// the junction this tick, used by the Controller to drop wait-map
// entries for vehicles no longer observed (spec.md §4.3).
func (s Snapshot) VehicleIDs() map[int64]bool {
	out := make(map[int64]bool)
	for _, lane := range s.Lanes {
		for _, v := range lane.Vehicles {
			out[v.ID] = true
		}
	}
	return out
}
