package station

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/ZamarianPatrick/lazypig-controller/command"
	"github.com/ZamarianPatrick/lazypig-controller/config"
	"github.com/ZamarianPatrick/lazypig-controller/irrigation"
	"github.com/ZamarianPatrick/lazypig-controller/sensors"
	"github.com/ZamarianPatrick/lazypig-controller/storage"
	"io"
	"log"
	"os"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"time"
)

// Options wires a Controller to its collaborators.
type Options struct {
	Sensor      sensors.RawSensor
	Calibration sensors.Calibration
	Pump        irrigation.Actuator
	EEPROM      storage.EEPROM
	Clock       irrigation.Clock
	Out         io.Writer
}

// Controller runs the irrigation loop of one station.
type Controller struct {
	sensor      sensors.RawSensor
	calibration sensors.Calibration
	pump        irrigation.Actuator
	store       *config.Store
	interpreter *command.Interpreter
	lines       command.LineBuffer
	machine     *irrigation.Machine
	clock       irrigation.Clock
	out         io.Writer
	last        sensors.Sample

	closers []io.Closer
}

// New loads the persisted configuration and starts the machine in Idle
// with the pump off.
func New(opts Options) (*Controller, error) {
	if opts.Clock == nil {
		opts.Clock = irrigation.NewSystemClock()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	store := config.NewStore(opts.EEPROM)
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log.Printf("config: setpoint %d%%, watering %d ms, lockout %d ms",
		cfg.SetpointPercent, cfg.IrrigationDurationMs, cfg.LockoutDurationMs)

	if err := opts.Pump.Set(false); err != nil {
		return nil, err
	}

	c := &Controller{
		sensor:      opts.Sensor,
		calibration: opts.Calibration,
		pump:        opts.Pump,
		store:       store,
		interpreter: command.NewInterpreter(store),
		machine:     irrigation.NewMachine(opts.Pump, opts.Clock.Millis()),
		clock:       opts.Clock,
		out:         opts.Out,
	}

	return c, nil
}

// NewController builds a controller from the station settings. With
// fakeValues the moisture sensor and the pump pin are simulated.
func NewController(settings sensors.StationSettings, fakeValues bool) (*Controller, error) {
	calibration, err := sensors.NewCalibration(settings.WetThreshold, settings.DryThreshold)
	if err != nil {
		return nil, err
	}

	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	var sensor sensors.RawSensor
	var pin gpio.PinIO
	var pump *sensors.Pump

	if fakeValues {
		pin = &gpiotest.Pin{N: fmt.Sprintf("GPIO%d", settings.PumpGPIO), Num: settings.PumpGPIO}
		pump = sensors.NewPump(pin, settings.PumpActiveLow)

		fake := sensors.NewMoistureFake(settings.DryThreshold)
		fake.DryRate = 1
		fake.WetRate = 20
		fake.Watering = pump.On
		sensor = fake
	} else {
		_, err = host.Init()
		if err != nil {
			return nil, err
		}

		bus, err := i2creg.Open(settings.GroveBus)
		if err != nil {
			return nil, err
		}
		closers = append(closers, bus)

		sensor = sensors.NewMoisture(bus, settings.MoistureAddress, settings.MoistureChannel)

		pin, err = sensors.GetGPIO(settings.PumpGPIO)
		if err != nil {
			closeAll()
			return nil, err
		}
		pump = sensors.NewPump(pin, settings.PumpActiveLow)
	}

	eeprom, err := storage.Open(settings.Storage, settings.StoragePath)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, eeprom)

	c, err := New(Options{
		Sensor:      sensor,
		Calibration: calibration,
		Pump:        pump,
		EEPROM:      eeprom,
	})
	if err != nil {
		closeAll()
		return nil, err
	}
	c.closers = closers

	log.Println("station ready, pump on", pin.Name(), "sensor", sensor.Name())
	return c, nil
}

// Config returns the configuration currently in effect.
func (c *Controller) Config() config.Configuration {
	return c.store.Config()
}

// State returns the current control state.
func (c *Controller) State() irrigation.ControlState {
	return c.machine.State()
}

// Tick runs one control cycle. Bytes are taken from in without blocking
// until one command line has been executed. When the sensor fails the
// machine still steps so running cycles end on time; it cannot start
// watering and the status line repeats the last good reading.
func (c *Controller) Tick(in <-chan byte) {
	c.pollCommands(in)

	cfg := c.store.Config()
	moisture := cfg.SetpointPercent

	raw, err := c.sensor.ReadRaw()
	if err != nil {
		// without a reading only the timers move the machine
		log.Println("sensor:", err)
	} else {
		c.last = c.calibration.Sample(raw)
		moisture = c.last.Percent
	}

	prev := c.machine.State()
	next, err := c.machine.Step(cfg, moisture, c.clock.Millis())
	if err != nil {
		log.Println("pump:", err)
	}
	if next.State != prev.State {
		log.Printf("state: %v -> %v (moisture %d%%, raw %d, setpoint %d%%)",
			prev.State, next.State, moisture, c.last.Raw, cfg.SetpointPercent)
	}

	fmt.Fprintf(c.out, "Top:100 Bottom:0 Set:%d Hum:%d\n", cfg.SetpointPercent, c.last.Percent)
}

func (c *Controller) pollCommands(in <-chan byte) {
	for {
		select {
		case b, ok := <-in:
			if !ok {
				return
			}
			line, ok := c.lines.Feed(b)
			if !ok {
				continue
			}
			reply, err := c.interpreter.Execute(line)
			if err != nil {
				log.Printf("command %q: %v", line, err)
			}
			if reply != "" {
				fmt.Fprintln(c.out, reply)
			}
			return
		default:
			return
		}
	}
}

// Run ticks every interval until ctx is done, reading commands from r.
// The pump is switched off before Run returns.
func (c *Controller) Run(ctx context.Context, r io.Reader, interval time.Duration) error {
	in := make(chan byte, 256)
	go readBytes(ctx, r, in)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return c.pump.Set(false)
		case <-ticker.C:
			c.Tick(in)
		}
	}
}

func readBytes(ctx context.Context, r io.Reader, out chan<- byte) {
	defer close(out)

	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println("command input:", err)
			}
			return
		}
		select {
		case out <- b:
		case <-ctx.Done():
			return
		}
	}
}

// Close releases the bus and the storage.
func (c *Controller) Close() error {
	var errs []error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
