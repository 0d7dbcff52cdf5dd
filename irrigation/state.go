package irrigation

import (
	"fmt"
	"github.com/ZamarianPatrick/lazypig-controller/config"
)

type State int

const (
	Idle State = iota
	Watering
	Locked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Watering:
		return "Watering"
	case Locked:
		return "Locked"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ControlState is the current state and the clock reading at which it
// was entered.
type ControlState struct {
	State     State
	EnteredAt uint32
}

// Transition computes the next control state and whether the actuator has
// to be on. Elapsed time is computed modulo 2^32 so a clock wrap does not
// stall a cycle.
func Transition(cs ControlState, cfg config.Configuration, moisture int, now uint32) (ControlState, bool) {
	elapsed := now - cs.EnteredAt

	switch cs.State {
	case Idle:
		if moisture < cfg.SetpointPercent {
			return ControlState{State: Watering, EnteredAt: now}, true
		}
		return cs, false

	case Watering:
		if elapsed >= cfg.IrrigationDurationMs {
			return ControlState{State: Locked, EnteredAt: now}, false
		}
		return cs, true

	case Locked:
		if elapsed >= cfg.LockoutDurationMs {
			return ControlState{State: Idle, EnteredAt: now}, false
		}
		return cs, false
	}

	return ControlState{State: Idle, EnteredAt: now}, false
}
