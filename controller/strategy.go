package controller

import "fmt"

// Strategy selects the per-phase scoring function the Controller uses
// to pick a winning phase each decision cycle (spec.md §4.3).
type Strategy int

const (
	SmartFair Strategy = iota
	RoundRobin
	VolumeBased
	WeightedWait
	ExponentialWait
	AdaptiveFlow
)

func (s Strategy) String() string {
	switch s {
	case SmartFair:
		return "smart_fair"
	case RoundRobin:
		return "round_robin"
	case VolumeBased:
		return "volume_based"
	case WeightedWait:
		return "weighted_wait"
	case ExponentialWait:
		return "exponential_wait"
	case AdaptiveFlow:
		return "adaptive_flow"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves a strategy identifier from config or CLI
// input (spec.md §6 "Control intake"). Unknown identifiers fail with
// ErrUnknownStrategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "smart_fair", "":
		return SmartFair, nil
	case "round_robin":
		return RoundRobin, nil
	case "volume_based":
		return VolumeBased, nil
	case "weighted_wait":
		return WeightedWait, nil
	case "exponential_wait":
		return ExponentialWait, nil
	case "adaptive_flow":
		return AdaptiveFlow, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}
