package simulator

import "github.com/junctionsim/core/topology"

// insideVehicle records one vehicle currently inside the junction's
// conflict zone: its origin road and its chosen destination road (if
// any).
type insideVehicle struct {
	originRoad int32
	destRoad   int32
	hasDest    bool
}

// countCollisions implements spec.md §4.4's collision predicate: two
// vehicles inside the junction collide if (a) their origin roads
// differ and their destination roads are perpendicular, or (b) their
// destination roads are identical but their origins differ. This is
// observation-only instrumentation; no recovery is modelled.
func countCollisions(j *topology.Junction, junctionSpan float64) int {
	var inside []insideVehicle
	for _, lane := range j.Lanes() {
		for _, v := range lane.Vehicles() {
			if !(v.Distance < 0 && -v.Distance < junctionSpan) {
				continue
			}
			originRoad := lane.RoadID
			if ol, ok := j.Lane(v.OriginLaneID); ok {
				originRoad = ol.RoadID
			}
			iv := insideVehicle{originRoad: originRoad}
			if v.HasDestination() {
				if dl, ok := j.Lane(v.DestinationLaneID); ok {
					iv.destRoad = dl.RoadID
					iv.hasDest = true
				}
			}
			inside = append(inside, iv)
		}
	}

	count := 0
	for i := 0; i < len(inside); i++ {
		for k := i + 1; k < len(inside); k++ {
			a, b := inside[i], inside[k]
			if !a.hasDest || !b.hasDest {
				continue
			}
			originsDiffer := a.originRoad != b.originRoad
			destRoadA, _ := j.Road(a.destRoad)
			destRoadB, _ := j.Road(b.destRoad)
			if destRoadA == nil || destRoadB == nil {
				continue
			}
			mergeCollision := a.destRoad == b.destRoad && originsDiffer
			crossCollision := originsDiffer && destRoadA.ToSide.Perpendicular(destRoadB.ToSide)
			if mergeCollision || crossCollision {
				count++
			}
		}
	}
	return count
}
