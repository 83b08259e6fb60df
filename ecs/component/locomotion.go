package component

import (
	"fmt"
	"strings"
)

// MovementMode selects the locomotion scheme of a session.
type MovementMode int

const (
	FreeWalk MovementMode = iota
	LookWalk
	Teleport
)

// MovementModes lists every mode in menu order.
var MovementModes = []MovementMode{FreeWalk, LookWalk, Teleport}

func (m MovementMode) String() string {
	switch m {
	case FreeWalk:
		return "free_walk"
	case LookWalk:
		return "look_walk"
	case Teleport:
		return "teleport"
	default:
		return fmt.Sprintf("movement_mode(%d)", int(m))
	}
}

// Label is the human readable menu name.
func (m MovementMode) Label() string {
	switch m {
	case FreeWalk:
		return "Free Walk"
	case LookWalk:
		return "Look Walk"
	case Teleport:
		return "Teleport"
	default:
		return m.String()
	}
}

// Next cycles through the modes, wrapping in both directions.
func (m MovementMode) Next(step int) MovementMode {
	n := len(MovementModes)
	return MovementMode(((int(m)+step)%n + n) % n)
}

// ParseMovementMode accepts the String form, with or without separators.
func ParseMovementMode(s string) (MovementMode, error) {
	key := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case "", "freewalk":
		return FreeWalk, nil
	case "lookwalk":
		return LookWalk, nil
	case "teleport":
		return Teleport, nil
	}
	return FreeWalk, fmt.Errorf("unknown movement mode %q", s)
}

// Locomotion configures continuous player movement.
type Locomotion struct {
	Mode  MovementMode
	Speed float64
	// MinLookAngle is the pitch, in degrees below the horizon, at which
	// look-walk starts moving.
	MinLookAngle float64
}

var LocomotionComponent = NewComponent[Locomotion]()
