package model

// BehaviorState represents the finite-state behavior of a creature.
type BehaviorState int32

const (
	// StateIdle - creature stands still (grazing pause), only breathing is animated
	StateIdle BehaviorState = iota
	// StatePatrol - creature roams toward a random patrol point
	StatePatrol
	// StateChase - predator runs after a perceived target
	StateChase
	// StateAttack - predator/guard is in striking range of its target
	StateAttack
	// StateFlee - prey runs away after being hit
	StateFlee
	// StateDead - terminal state, no transitions afterwards
	StateDead
)

// String returns human-readable state name
func (s BehaviorState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StatePatrol:
		return "PATROL"
	case StateChase:
		return "CHASE"
	case StateAttack:
		return "ATTACK"
	case StateFlee:
		return "FLEE"
	case StateDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// IsSpecial reports whether the state suppresses patrol re-picking.
func (s BehaviorState) IsSpecial() bool {
	return s == StateChase || s == StateAttack || s == StateFlee || s == StateDead
}
