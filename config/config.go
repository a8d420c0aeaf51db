// Package config holds the on-disk scenario configuration, following
// the teacher's utils/config package: a plain YAML-backed struct with
// a RuntimeConfig wrapper that applies defaults once at load time.
package config

import (
	"fmt"
	"os"

	"github.com/junctionsim/core/topology"
	"gopkg.in/yaml.v2"
)

// Step holds the two loop cadences (spec §5): SimDT drives the
// Sim-loop, ControlInterval the Control-loop. TotalSteps is parsed but
// not read by the entrypoint, which runs until -run-for elapses or a
// signal arrives.
type Step struct {
	SimDT         float64 `yaml:"sim_dt"`
	ControlInterval float64 `yaml:"control_interval"`
	TotalSteps    int64   `yaml:"total_steps"`
}

// Control is the root of the tunable control-plane configuration.
type Control struct {
	Step          Step   `yaml:"step"`
	Strategy      string `yaml:"strategy"`       // one of the registered Controller strategies
	AmberDuration float64 `yaml:"amber_duration"` // seconds; spec §9 Open Question 2
	RandomSeed    uint64 `yaml:"random_seed"`
}

// LaneConfig is one lane's on-disk description (spec.md §6 "Topology
// intake").
type LaneConfig struct {
	ID       int32   `yaml:"id"`
	Lambda   float64 `yaml:"lambda"`
	Length   float64 `yaml:"length"`
	VMax     float64 `yaml:"vmax"`
	AccelMax float64 `yaml:"accel_max"`
	DecelMax float64 `yaml:"decel_max"`
}

// RoadConfig is one road's on-disk description. FromSide/ToSide are
// one of "N", "E", "S", "W" (spec.md §3 convention).
type RoadConfig struct {
	ID       int32        `yaml:"id"`
	FromSide string       `yaml:"from_side"`
	ToSide   string       `yaml:"to_side"`
	Lanes    []LaneConfig `yaml:"lanes"`
}

// LightConfig is one traffic light's on-disk description.
// InitialState is "RED" or "GREEN" (default "RED").
type LightConfig struct {
	ID                 int32    `yaml:"id"`
	OriginLaneIDs      []int32  `yaml:"origin_lane_ids"`
	DestinationLaneIDs []int32  `yaml:"destination_lane_ids"`
	InitialState       string   `yaml:"initial_state"`
}

// JunctionConfig is the on-disk topology-intake document (spec.md §6
// "Topology intake").
type JunctionConfig struct {
	ID     int32         `yaml:"id"`
	Roads  []RoadConfig  `yaml:"roads"`
	Lights []LightConfig `yaml:"lights"`
}

var sideNames = map[string]topology.Side{
	"N": topology.North, "E": topology.East, "S": topology.South, "W": topology.West,
}

func parseSide(s string) (topology.Side, error) {
	side, ok := sideNames[s]
	if !ok {
		return 0, fmt.Errorf("config: unknown compass side %q (want one of N, E, S, W)", s)
	}
	return side, nil
}

func parseState(s string) (topology.State, error) {
	switch s {
	case "", "RED":
		return topology.Red, nil
	case "GREEN":
		return topology.Green, nil
	default:
		return 0, fmt.Errorf("config: unknown light state %q (want RED or GREEN)", s)
	}
}

// ToSpec converts the on-disk JunctionConfig into the structural
// topology.JunctionSpec topology.Build consumes (spec.md §6).
func (jc JunctionConfig) ToSpec() (topology.JunctionSpec, error) {
	spec := topology.JunctionSpec{ID: jc.ID}
	for _, rc := range jc.Roads {
		from, err := parseSide(rc.FromSide)
		if err != nil {
			return spec, err
		}
		to, err := parseSide(rc.ToSide)
		if err != nil {
			return spec, err
		}
		road := topology.RoadSpec{ID: rc.ID, FromSide: from, ToSide: to}
		for _, lc := range rc.Lanes {
			road.Lanes = append(road.Lanes, topology.LaneSpec{
				ID: lc.ID, Lambda: lc.Lambda, Length: lc.Length,
				VMax: lc.VMax, AccelMax: lc.AccelMax, DecelMax: lc.DecelMax,
			})
		}
		spec.Roads = append(spec.Roads, road)
	}
	for _, lc := range jc.Lights {
		state, err := parseState(lc.InitialState)
		if err != nil {
			return spec, err
		}
		spec.Lights = append(spec.Lights, topology.LightSpec{
			ID:                 lc.ID,
			OriginLaneIDs:      lc.OriginLaneIDs,
			DestinationLaneIDs: lc.DestinationLaneIDs,
			InitialState:       state,
		})
	}
	return spec, nil
}

// Config is the root YAML document.
type Config struct {
	Control  Control        `yaml:"control"`
	Junction JunctionConfig `yaml:"junction"`
}

// RuntimeConfig wraps a loaded Config and applies defaults, the way
// the teacher's config.NewRuntimeConfig does for its own fields.
type RuntimeConfig struct {
	C Control
}

// NewRuntimeConfig builds a RuntimeConfig, filling in reference
// defaults (spec §4.3, §4.4, §4.5) for SimDT, ControlInterval,
// Strategy and AmberDuration when they are unset. TotalSteps and
// RandomSeed are kept as given.
func NewRuntimeConfig(c Config) *RuntimeConfig {
	rc := &RuntimeConfig{C: c.Control}
	if rc.C.Step.SimDT <= 0 {
		rc.C.Step.SimDT = 1.0 / 1000
	}
	if rc.C.Step.ControlInterval <= 0 {
		rc.C.Step.ControlInterval = 0.1
	}
	if rc.C.Strategy == "" {
		rc.C.Strategy = "smart_fair"
	}
	if rc.C.AmberDuration <= 0 {
		rc.C.AmberDuration = 2.5
	}
	return rc
}

// Load reads and parses a YAML config file from disk.
func Load(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, err
	}
	return c, nil
}
