package simulator

import (
	"sort"

	"github.com/junctionsim/core/snapshot"
	"github.com/junctionsim/core/topology"
)

// buildSnapshot assembles the per-tick Observation Snapshot (spec.md
// §6) from j's current state. It performs no mutation: the returned
// value is an independent, immutable copy.
func buildSnapshot(j *topology.Junction, now float64, collisions int, vehicleFootprint float64) snapshot.Snapshot {
	lights := j.Lights()
	lightViews := make([]snapshot.LightView, len(lights))
	for i, l := range lights {
		lightViews[i] = snapshot.LightView{ID: l.ID, State: l.State, InAmber: l.InAmber}
	}

	lanes := j.Lanes()
	laneViews := make([]snapshot.LaneView, len(lanes))
	roadOccupied := make(map[int32]float64)
	roadTotal := make(map[int32]float64)
	for i, lane := range lanes {
		vs := lane.Vehicles()
		views := make([]snapshot.VehicleView, len(vs))
		for k, v := range vs {
			views[k] = snapshot.VehicleView{
				ID:                v.ID,
				LaneID:            lane.ID,
				Distance:          v.Distance,
				Velocity:          v.Velocity,
				Kind:              v.Kind,
				DestinationLaneID: v.DestinationLaneID,
				HasDestination:    v.HasDestination(),
			}
		}
		laneViews[i] = snapshot.LaneView{ID: lane.ID, Vehicles: views}
		roadOccupied[lane.RoadID] += lane.Occupancy(vehicleFootprint) * lane.Length
		roadTotal[lane.RoadID] += lane.Length
	}

	roadIDs := make([]int32, 0, len(roadTotal))
	for roadID := range roadTotal {
		roadIDs = append(roadIDs, roadID)
	}
	sort.Slice(roadIDs, func(i, k int) bool { return roadIDs[i] < roadIDs[k] })

	roadViews := make([]snapshot.RoadView, 0, len(roadIDs))
	for _, roadID := range roadIDs {
		total := roadTotal[roadID]
		congestion := 0.0
		if total > 0 {
			congestion = roadOccupied[roadID] / total
		}
		if congestion > 1 {
			congestion = 1
		}
		roadViews = append(roadViews, snapshot.RoadView{ID: roadID, Congestion: congestion})
	}

	return snapshot.Snapshot{
		JunctionID: j.ID,
		Timestamp:  now,
		Lights:     lightViews,
		Roads:      roadViews,
		Lanes:      laneViews,
		Collisions: collisions,
	}
}
