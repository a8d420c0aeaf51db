package topology_test

import (
	"testing"

	"github.com/junctionsim/core/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoRoadSpec() topology.JunctionSpec {
	return topology.JunctionSpec{
		ID: 1,
		Roads: []topology.RoadSpec{
			{ID: 11, FromSide: topology.South, ToSide: topology.North, Lanes: []topology.LaneSpec{
				{ID: 111, Length: 100, VMax: 15, AccelMax: 2, DecelMax: 4},
			}},
			{ID: 12, FromSide: topology.North, ToSide: topology.South, Lanes: []topology.LaneSpec{
				{ID: 121, Length: 100, VMax: 15, AccelMax: 2, DecelMax: 4},
			}},
		},
		Lights: []topology.LightSpec{
			{ID: 1, OriginLaneIDs: []int32{111}, DestinationLaneIDs: []int32{121}},
		},
	}
}

func TestBuildValidTopology(t *testing.T) {
	j, err := topology.Build(twoRoadSpec())
	require.NoError(t, err)
	assert.Equal(t, int32(1), j.ID)
	lane, ok := j.Lane(111)
	require.True(t, ok)
	assert.Equal(t, int32(11), lane.RoadID)
	light, ok := j.LightByOriginLane(111)
	require.True(t, ok)
	assert.Equal(t, int32(1), light.ID)
}

func TestBuildRejectsBadLaneEncoding(t *testing.T) {
	spec := twoRoadSpec()
	spec.Roads[0].Lanes[0].ID = 999 // does not encode road 11
	_, err := topology.Build(spec)
	assert.ErrorIs(t, err, topology.ErrInvalidTopology)
}

func TestBuildRejectsEmptyOrigins(t *testing.T) {
	spec := twoRoadSpec()
	spec.Lights[0].OriginLaneIDs = nil
	_, err := topology.Build(spec)
	assert.ErrorIs(t, err, topology.ErrInvalidTopology)
}

func TestBuildRejectsUnknownDestinationLane(t *testing.T) {
	spec := twoRoadSpec()
	spec.Lights[0].DestinationLaneIDs = []int32{999}
	_, err := topology.Build(spec)
	assert.ErrorIs(t, err, topology.ErrInvalidTopology)
}

func TestBuildRejectsUTurnDestination(t *testing.T) {
	spec := twoRoadSpec()
	spec.Lights[0].DestinationLaneIDs = []int32{111} // same road as origin
	_, err := topology.Build(spec)
	assert.ErrorIs(t, err, topology.ErrInvalidTopology)
}

func TestBuildRejectsMultiRoadOrigin(t *testing.T) {
	spec := twoRoadSpec()
	spec.Lights[0].OriginLaneIDs = []int32{111, 121}
	_, err := topology.Build(spec)
	assert.ErrorIs(t, err, topology.ErrInvalidTopology)
}
