package entity

import "fmt"

// LifecycleState is the position of a client lifecycle in its state machine
type LifecycleState int

const (
	// LifecycleIdle before Start is called
	LifecycleIdle LifecycleState = iota
	// LifecycleAdoptingExisting while a caller-supplied client is being installed
	LifecycleAdoptingExisting
	// LifecycleValidatingInputs while required creation inputs are checked
	LifecycleValidatingInputs
	// LifecycleCreating while a client is being constructed
	LifecycleCreating
	// LifecycleReady once a client is installed and subscribed
	LifecycleReady
	// LifecycleFailed after a configuration or initialization error
	LifecycleFailed
	// LifecycleStopped after Stop
	LifecycleStopped
)

var lifecycleStateNames = map[LifecycleState]string{
	LifecycleIdle:             "idle",
	LifecycleAdoptingExisting: "adopting_existing",
	LifecycleValidatingInputs: "validating_inputs",
	LifecycleCreating:         "creating",
	LifecycleReady:            "ready",
	LifecycleFailed:           "failed",
	LifecycleStopped:          "stopped",
}

// String returns the snake_case name used in logs and API responses
func (s LifecycleState) String() string {
	if name, ok := lifecycleStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// IsTerminal reports whether the state can no longer advance on its own
func (s LifecycleState) IsTerminal() bool {
	return s == LifecycleFailed || s == LifecycleStopped
}

// ReactionMode decides what a lifecycle does after a valid SDK level change
type ReactionMode string

const (
	// ReactionNotify only persists the level and calls back
	ReactionNotify ReactionMode = "notify"
	// ReactionRecreate also tears the client down and creates a new one at the new level
	ReactionRecreate ReactionMode = "recreate"
)

// ParseReactionMode converts a configuration value into a ReactionMode
func ParseReactionMode(s string) (ReactionMode, error) {
	switch ReactionMode(s) {
	case ReactionNotify, "":
		return ReactionNotify, nil
	case ReactionRecreate:
		return ReactionRecreate, nil
	default:
		return "", fmt.Errorf("invalid reaction mode: %s, must be one of: %s, %s", s, ReactionNotify, ReactionRecreate)
	}
}
