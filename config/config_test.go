package config_test

import (
	"testing"

	"github.com/junctionsim/core/config"
	"github.com/junctionsim/core/topology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSpecConvertsSidesAndStates(t *testing.T) {
	jc := config.JunctionConfig{
		ID: 1,
		Roads: []config.RoadConfig{
			{ID: 11, FromSide: "S", ToSide: "N", Lanes: []config.LaneConfig{
				{ID: 111, Lambda: 0.3, Length: 100, VMax: 15, AccelMax: 2, DecelMax: 4},
			}},
			{ID: 12, FromSide: "N", ToSide: "S", Lanes: []config.LaneConfig{
				{ID: 121, Length: 100, VMax: 15, AccelMax: 2, DecelMax: 4},
			}},
		},
		Lights: []config.LightConfig{
			{ID: 1, OriginLaneIDs: []int32{111}, DestinationLaneIDs: []int32{121}, InitialState: "GREEN"},
		},
	}

	spec, err := jc.ToSpec()
	require.NoError(t, err)
	assert.Equal(t, topology.South, spec.Roads[0].FromSide)
	assert.Equal(t, topology.North, spec.Roads[0].ToSide)
	assert.Equal(t, topology.Green, spec.Lights[0].InitialState)

	j, err := topology.Build(spec)
	require.NoError(t, err)
	assert.Len(t, j.Lights(), 1)
}

func TestToSpecRejectsUnknownSide(t *testing.T) {
	jc := config.JunctionConfig{
		ID: 1,
		Roads: []config.RoadConfig{
			{ID: 11, FromSide: "NE", ToSide: "N"},
		},
	}
	_, err := jc.ToSpec()
	assert.Error(t, err)
}

func TestNewRuntimeConfigFillsDefaults(t *testing.T) {
	rc := config.NewRuntimeConfig(config.Config{})
	assert.Equal(t, 1.0/1000, rc.C.Step.SimDT)
	assert.Equal(t, 0.1, rc.C.Step.ControlInterval)
	assert.Equal(t, "smart_fair", rc.C.Strategy)
	assert.Equal(t, 2.5, rc.C.AmberDuration)
}
