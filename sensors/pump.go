package sensors

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
)

// Pump drives the pump relay. Relay boards that switch on a low level
// are handled with activeLow.
type Pump struct {
	pin       gpio.PinIO
	activeLow bool
	on        bool
}

func NewPump(pin gpio.PinIO, activeLow bool) *Pump {
	return &Pump{
		pin:       pin,
		activeLow: activeLow,
	}
}

func (p *Pump) Set(on bool) error {
	level := gpio.Level(on != p.activeLow)
	if err := p.pin.Out(level); err != nil {
		return fmt.Errorf("pump %s: %w", p.pin.Name(), err)
	}
	p.on = on
	return nil
}

// On reports the last level successfully commanded.
func (p *Pump) On() bool {
	return p.on
}
