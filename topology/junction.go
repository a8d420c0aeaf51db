package topology

import (
	"fmt"
	"sort"
)

// RoadSpec, LaneSpec and LightSpec are the structural topology-intake
// contract of spec.md §6: a junction ID, an ordered list of roads
// (each with its compass endpoints and ordered lanes), and an ordered
// list of lights.
type LaneSpec struct {
	ID       int32
	Lambda   float64
	Length   float64
	VMax     float64
	AccelMax float64
	DecelMax float64
}

type RoadSpec struct {
	ID       int32
	FromSide Side
	ToSide   Side
	Lanes    []LaneSpec
}

type LightSpec struct {
	ID                 int32
	OriginLaneIDs      []int32
	DestinationLaneIDs []int32
	InitialState       State
}

type JunctionSpec struct {
	ID     int32
	Roads  []RoadSpec
	Lights []LightSpec
}

// Junction is the immutable aggregate of roads, lanes and lights that
// make up one signalised junction (spec.md §3). Only per-tick state
// (vehicle positions, light states) mutates after Build.
type Junction struct {
	ID int32

	roads             map[int32]*Road
	lanes             map[int32]*Lane
	lights            map[int32]*TrafficLight
	lightByOriginLane map[int32]*TrafficLight
	lightOrder        []int32

	// Phases is the Enumerator's precomputed set of maximal compatible
	// light-ID tuples (spec.md §4.2). It is populated after Build by
	// whatever caller runs the Enumerator (kept out of this package to
	// avoid an import cycle between topology and phase).
	Phases [][]int32
}

// Build validates and constructs a Junction from a structural spec.
// Fails with ErrInvalidTopology and retains no partial Junction on any
// violation of spec.md §3/§4.1's invariants.
func Build(spec JunctionSpec) (*Junction, error) {
	j := &Junction{
		ID:                spec.ID,
		roads:             make(map[int32]*Road),
		lanes:             make(map[int32]*Lane),
		lights:            make(map[int32]*TrafficLight),
		lightByOriginLane: make(map[int32]*TrafficLight),
	}

	for _, rs := range spec.Roads {
		road := &Road{ID: rs.ID, FromSide: rs.FromSide, ToSide: rs.ToSide}
		for idx, ls := range rs.Lanes {
			if ls.ID/10 != rs.ID {
				return nil, fmt.Errorf("%w: lane %d does not encode road %d (lane/10=%d)",
					ErrInvalidTopology, ls.ID, rs.ID, ls.ID/10)
			}
			if _, exists := j.lanes[ls.ID]; exists {
				return nil, fmt.Errorf("%w: duplicate lane id %d", ErrInvalidTopology, ls.ID)
			}
			lane := NewLane(ls.ID, rs.ID, idx, ls.Lambda, ls.Length, ls.VMax, ls.AccelMax, ls.DecelMax)
			road.Lanes = append(road.Lanes, lane)
			j.lanes[ls.ID] = lane
		}
		j.roads[rs.ID] = road
	}

	for _, lspec := range spec.Lights {
		if len(lspec.OriginLaneIDs) == 0 {
			return nil, fmt.Errorf("%w: light %d has empty origin set", ErrInvalidTopology, lspec.ID)
		}
		var originRoad int32 = -1
		for _, laneID := range lspec.OriginLaneIDs {
			lane, ok := j.lanes[laneID]
			if !ok {
				return nil, fmt.Errorf("%w: light %d origin lane %d does not exist", ErrInvalidTopology, lspec.ID, laneID)
			}
			if originRoad == -1 {
				originRoad = lane.RoadID
			} else if lane.RoadID != originRoad {
				return nil, fmt.Errorf("%w: light %d origins span more than one road", ErrInvalidTopology, lspec.ID)
			}
		}
		for _, laneID := range lspec.DestinationLaneIDs {
			lane, ok := j.lanes[laneID]
			if !ok {
				return nil, fmt.Errorf("%w: light %d destination lane %d does not exist", ErrInvalidTopology, lspec.ID, laneID)
			}
			if lane.RoadID == originRoad {
				return nil, fmt.Errorf("%w: light %d destination lane %d is on the origin road (no U-turns)", ErrInvalidTopology, lspec.ID, laneID)
			}
		}
		light := &TrafficLight{
			ID:                 lspec.ID,
			OriginLaneIDs:      append([]int32(nil), lspec.OriginLaneIDs...),
			DestinationLaneIDs: append([]int32(nil), lspec.DestinationLaneIDs...),
			State:              lspec.InitialState,
		}
		j.lights[light.ID] = light
		j.lightOrder = append(j.lightOrder, light.ID)
		for _, laneID := range light.OriginLaneIDs {
			j.lightByOriginLane[laneID] = light
		}
	}

	return j, nil
}

// Road looks up a road by ID.
func (j *Junction) Road(id int32) (*Road, bool) { r, ok := j.roads[id]; return r, ok }

// Lane looks up a lane by ID.
func (j *Junction) Lane(id int32) (*Lane, bool) { l, ok := j.lanes[id]; return l, ok }

// Light looks up a light by ID.
func (j *Junction) Light(id int32) (*TrafficLight, bool) { l, ok := j.lights[id]; return l, ok }

// LightByOriginLane finds the light whose origins include laneID.
func (j *Junction) LightByOriginLane(laneID int32) (*TrafficLight, bool) {
	l, ok := j.lightByOriginLane[laneID]
	return l, ok
}

// Lights returns all lights in stable construction order.
func (j *Junction) Lights() []*TrafficLight {
	out := make([]*TrafficLight, 0, len(j.lightOrder))
	for _, id := range j.lightOrder {
		out = append(out, j.lights[id])
	}
	return out
}

// Lanes returns all lanes, sorted by ID for deterministic iteration.
func (j *Junction) Lanes() []*Lane {
	ids := make([]int32, 0, len(j.lanes))
	for id := range j.lanes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	out := make([]*Lane, len(ids))
	for i, id := range ids {
		out[i] = j.lanes[id]
	}
	return out
}

// Vehicles enumerates every vehicle currently in the junction, across
// all lanes, in lane-ID order.
func (j *Junction) Vehicles() []*Vehicle {
	var out []*Vehicle
	for _, lane := range j.Lanes() {
		out = append(out, lane.Vehicles()...)
	}
	return out
}

// LightOriginRoad returns the single road all of a light's origin
// lanes belong to.
func (j *Junction) LightOriginRoad(light *TrafficLight) (*Road, bool) {
	if len(light.OriginLaneIDs) == 0 {
		return nil, false
	}
	lane, ok := j.lanes[light.OriginLaneIDs[0]]
	if !ok {
		return nil, false
	}
	return j.Road(lane.RoadID)
}

// LightDestinationRoads returns the unique set of roads a light's
// destination lanes belong to.
func (j *Junction) LightDestinationRoads(light *TrafficLight) []*Road {
	seen := make(map[int32]bool)
	var out []*Road
	for _, laneID := range light.DestinationLaneIDs {
		lane, ok := j.lanes[laneID]
		if !ok {
			continue
		}
		if seen[lane.RoadID] {
			continue
		}
		seen[lane.RoadID] = true
		if r, ok := j.Road(lane.RoadID); ok {
			out = append(out, r)
		}
	}
	return out
}

// SetPhases installs the Enumerator's output. Called once after Build
// (and again after a topology update, spec.md §4.5).
func (j *Junction) SetPhases(phases [][]int32) {
	j.Phases = phases
}
