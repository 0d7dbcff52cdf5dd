package irrigation

import (
	"github.com/ZamarianPatrick/lazypig-controller/config"
)

// Actuator switches the pump or valve.
type Actuator interface {
	Set(on bool) error
}

// Machine owns the control state and writes the actuator on every step.
type Machine struct {
	state    ControlState
	actuator Actuator
}

func NewMachine(actuator Actuator, now uint32) *Machine {
	return &Machine{
		state:    ControlState{State: Idle, EnteredAt: now},
		actuator: actuator,
	}
}

func (m *Machine) State() ControlState {
	return m.state
}

// Step advances the machine by one tick. The state advances even when the
// actuator write fails; the next step writes it again.
func (m *Machine) Step(cfg config.Configuration, moisture int, now uint32) (ControlState, error) {
	next, on := Transition(m.state, cfg, moisture, now)
	m.state = next
	return next, m.actuator.Set(on)
}
