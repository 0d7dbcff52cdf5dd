package config

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/ZamarianPatrick/lazypig-controller/storage"
	"math"
)

// Cell layout of the persisted configuration.
const (
	addrSetpoint   uint16 = 0
	addrIrrigation uint16 = 1
	addrLockout    uint16 = 5
)

const (
	DefaultSetpointPercent      = 35
	DefaultIrrigationDurationMs = 60_000
	DefaultLockoutDurationMs    = 7_200_000

	MinIrrigationDurationMs = 1_000
	MaxIrrigationDurationMs = 3_600_000
	MinLockoutDurationMs    = 1_000
	MaxLockoutDurationMs    = 86_400_000
)

type Configuration struct {
	SetpointPercent      int
	IrrigationDurationMs uint32
	LockoutDurationMs    uint32
}

var Default = Configuration{
	SetpointPercent:      DefaultSetpointPercent,
	IrrigationDurationMs: DefaultIrrigationDurationMs,
	LockoutDurationMs:    DefaultLockoutDurationMs,
}

// Store owns the configuration and its persisted copy. Writes only touch
// cells whose content changes.
type Store struct {
	eeprom storage.EEPROM
	cfg    Configuration
}

func NewStore(eeprom storage.EEPROM) *Store {
	return &Store{
		eeprom: eeprom,
		cfg:    Default,
	}
}

// Load reads the persisted fields. Each field that is out of range is
// replaced by its default in memory only.
func (s *Store) Load() (Configuration, error) {
	cfg := Default

	setpoint, err := s.eeprom.ReadCell(addrSetpoint)
	if err != nil {
		return cfg, err
	}
	if setpoint <= 100 {
		cfg.SetpointPercent = int(setpoint)
	}

	irrigation, err := s.readUint32(addrIrrigation)
	if err != nil {
		return cfg, err
	}
	if irrigation >= MinIrrigationDurationMs && irrigation <= MaxIrrigationDurationMs {
		cfg.IrrigationDurationMs = irrigation
	}

	lockout, err := s.readUint32(addrLockout)
	if err != nil {
		return cfg, err
	}
	if lockout >= MinLockoutDurationMs && lockout <= MaxLockoutDurationMs {
		cfg.LockoutDurationMs = lockout
	}

	s.cfg = cfg
	return cfg, nil
}

// Config returns the in-memory configuration.
func (s *Store) Config() Configuration {
	return s.cfg
}

// SetSetpoint clamps v to [0,100], persists it and returns the applied value.
func (s *Store) SetSetpoint(v int) (int, error) {
	if v < 0 {
		v = 0
	} else if v > 100 {
		v = 100
	}

	if err := s.update(addrSetpoint, byte(v)); err != nil {
		return s.cfg.SetpointPercent, err
	}
	s.cfg.SetpointPercent = v
	return v, nil
}

// SetIrrigationSeconds persists a watering duration of sec seconds.
// Non-positive values are ignored and reported as not applied.
func (s *Store) SetIrrigationSeconds(sec int) (bool, error) {
	if sec <= 0 {
		return false, nil
	}

	ms := secondsToMs(sec)
	if err := s.writeUint32(addrIrrigation, ms); err != nil {
		return false, err
	}
	s.cfg.IrrigationDurationMs = ms
	return true, nil
}

// SetLockoutSeconds persists a lockout duration of sec seconds.
// Non-positive values are ignored and reported as not applied.
func (s *Store) SetLockoutSeconds(sec int) (bool, error) {
	if sec <= 0 {
		return false, nil
	}

	ms := secondsToMs(sec)
	if err := s.writeUint32(addrLockout, ms); err != nil {
		return false, err
	}
	s.cfg.LockoutDurationMs = ms
	return true, nil
}

func secondsToMs(sec int) uint32 {
	ms := int64(sec) * 1000
	if ms > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(ms)
}

func (s *Store) readUint32(addr uint16) (uint32, error) {
	buf := make([]byte, 4)
	for i := range buf {
		b, err := s.eeprom.ReadCell(addr + uint16(i))
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	return binary.LittleEndian.Uint32(buf), nil
}

func (s *Store) writeUint32(addr uint16, v uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	// every byte is tried so a single bad cell does not strand the others
	var errs []error
	for i, b := range buf {
		if err := s.update(addr+uint16(i), b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// update writes v to addr unless the cell already holds it.
func (s *Store) update(addr uint16, v byte) error {
	current, err := s.eeprom.ReadCell(addr)
	if err != nil {
		return fmt.Errorf("config cell %d: %w", addr, err)
	}
	if current == v {
		return nil
	}
	if err := s.eeprom.WriteCell(addr, v); err != nil {
		return fmt.Errorf("config cell %d: %w", addr, err)
	}
	return nil
}
