package config

import (
	"encoding/binary"
	"errors"
	"github.com/ZamarianPatrick/lazypig-controller/storage"
	"testing"
)

func load(t *testing.T, eeprom storage.EEPROM) (*Store, Configuration) {
	t.Helper()
	s := NewStore(eeprom)
	cfg, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return s, cfg
}

func putUint32(t *testing.T, m *storage.Memory, addr uint16, v uint32) {
	t.Helper()
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	for i, b := range buf {
		if err := m.WriteCell(addr+uint16(i), b); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLoadErasedStorageUsesDefaults(t *testing.T) {
	_, cfg := load(t, storage.NewMemory())
	if cfg != Default {
		t.Errorf("cfg = %+v, want %+v", cfg, Default)
	}
}

func TestLoadDoesNotWriteBackDefaults(t *testing.T) {
	m := storage.NewMemory()
	load(t, m)
	if m.Writes() != 0 {
		t.Errorf("load wrote %d cells", m.Writes())
	}
}

func TestLoadValidatesEachField(t *testing.T) {
	tests := []struct {
		name       string
		setpoint   byte
		irrigation uint32
		lockout    uint32
		want       Configuration
	}{
		{"all valid", 50, 5_000, 60_000, Configuration{50, 5_000, 60_000}},
		{"irrigation too short", 50, 500, 60_000, Configuration{50, DefaultIrrigationDurationMs, 60_000}},
		{"irrigation too long", 50, 3_600_001, 60_000, Configuration{50, DefaultIrrigationDurationMs, 60_000}},
		{"lockout too long", 50, 5_000, 86_400_001, Configuration{50, 5_000, DefaultLockoutDurationMs}},
		{"lockout too short", 50, 5_000, 999, Configuration{50, 5_000, DefaultLockoutDurationMs}},
		{"setpoint out of range", 101, 5_000, 60_000, Configuration{DefaultSetpointPercent, 5_000, 60_000}},
		{"bounds inclusive", 100, 3_600_000, 86_400_000, Configuration{100, 3_600_000, 86_400_000}},
		{"lower bounds inclusive", 0, 1_000, 1_000, Configuration{0, 1_000, 1_000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := storage.NewMemory()
			m.WriteCell(addrSetpoint, tt.setpoint)
			putUint32(t, m, addrIrrigation, tt.irrigation)
			putUint32(t, m, addrLockout, tt.lockout)

			_, cfg := load(t, m)
			if cfg != tt.want {
				t.Errorf("cfg = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestSetpointRoundTrip(t *testing.T) {
	m := storage.NewMemory()
	for v := 0; v <= 100; v++ {
		s, _ := load(t, m)
		if _, err := s.SetSetpoint(v); err != nil {
			t.Fatal(err)
		}

		_, cfg := load(t, m)
		if cfg.SetpointPercent != v {
			t.Fatalf("setpoint = %d after reload, want %d", cfg.SetpointPercent, v)
		}
	}
}

func TestSetSetpointClamps(t *testing.T) {
	s, _ := load(t, storage.NewMemory())

	for in, want := range map[int]int{150: 100, -3: 0, 42: 42} {
		got, err := s.SetSetpoint(in)
		if err != nil {
			t.Fatal(err)
		}
		if got != want || s.Config().SetpointPercent != want {
			t.Errorf("SetSetpoint(%d) = %d, config %d, want %d", in, got, s.Config().SetpointPercent, want)
		}
	}
}

func TestWriteIfChanged(t *testing.T) {
	m := storage.NewMemory()
	s, _ := load(t, m)

	s.SetSetpoint(40)
	s.SetIrrigationSeconds(30)
	before := m.Writes()

	s.SetSetpoint(40)
	s.SetIrrigationSeconds(30)
	if m.Writes() != before {
		t.Errorf("unchanged values caused %d writes", m.Writes()-before)
	}

	// 30000 and 31000 share their upper two bytes
	s.SetIrrigationSeconds(31)
	if n := m.Writes() - before; n != 2 {
		t.Errorf("changing duration wrote %d cells", n)
	}
}

func TestDurationSetters(t *testing.T) {
	m := storage.NewMemory()
	s, _ := load(t, m)

	applied, err := s.SetIrrigationSeconds(5)
	if err != nil || !applied {
		t.Fatalf("SetIrrigationSeconds(5) = %v, %v", applied, err)
	}
	applied, err = s.SetLockoutSeconds(3600)
	if err != nil || !applied {
		t.Fatalf("SetLockoutSeconds(3600) = %v, %v", applied, err)
	}

	_, cfg := load(t, m)
	if cfg.IrrigationDurationMs != 5000 || cfg.LockoutDurationMs != 3_600_000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestDurationSettersIgnoreNonPositive(t *testing.T) {
	m := storage.NewMemory()
	s, _ := load(t, m)

	for _, sec := range []int{0, -1, -3600} {
		if applied, _ := s.SetIrrigationSeconds(sec); applied {
			t.Errorf("SetIrrigationSeconds(%d) applied", sec)
		}
		if applied, _ := s.SetLockoutSeconds(sec); applied {
			t.Errorf("SetLockoutSeconds(%d) applied", sec)
		}
	}
	if m.Writes() != 0 {
		t.Errorf("non-positive durations wrote %d cells", m.Writes())
	}
	if s.Config() != Default {
		t.Errorf("cfg = %+v, want defaults", s.Config())
	}
}

func TestOutOfRangeDurationPersistsButLoadsDefault(t *testing.T) {
	m := storage.NewMemory()
	s, _ := load(t, m)

	s.SetIrrigationSeconds(7200)
	if s.Config().IrrigationDurationMs != 7_200_000 {
		t.Errorf("in-memory irrigation = %d", s.Config().IrrigationDurationMs)
	}

	_, cfg := load(t, m)
	if cfg.IrrigationDurationMs != DefaultIrrigationDurationMs {
		t.Errorf("reloaded irrigation = %d, want default", cfg.IrrigationDurationMs)
	}
}

func TestSecondsToMsSaturates(t *testing.T) {
	if got := secondsToMs(5_000_000); got != 1<<32-1 {
		t.Errorf("secondsToMs = %d", got)
	}
}

type failingEEPROM struct{ *storage.Memory }

func (f *failingEEPROM) WriteCell(uint16, byte) error {
	return errors.New("worn out")
}

func TestFailedWriteKeepsMemoryInSync(t *testing.T) {
	f := &failingEEPROM{storage.NewMemory()}
	s, _ := load(t, f)

	if _, err := s.SetSetpoint(80); err == nil {
		t.Fatal("expected write error")
	}
	if s.Config().SetpointPercent != DefaultSetpointPercent {
		t.Errorf("setpoint = %d after failed write", s.Config().SetpointPercent)
	}

	if applied, err := s.SetLockoutSeconds(10); err == nil || applied {
		t.Fatalf("SetLockoutSeconds = %v, %v", applied, err)
	}
	if s.Config().LockoutDurationMs != DefaultLockoutDurationMs {
		t.Errorf("lockout = %d after failed write", s.Config().LockoutDurationMs)
	}
}

// badCellEEPROM refuses writes to a single address.
type badCellEEPROM struct {
	*storage.Memory
	bad uint16
}

func (e *badCellEEPROM) WriteCell(addr uint16, v byte) error {
	if addr == e.bad {
		return errors.New("cell stuck")
	}
	return e.Memory.WriteCell(addr, v)
}

func TestFailedCellDoesNotStopOtherBytes(t *testing.T) {
	e := &badCellEEPROM{Memory: storage.NewMemory(), bad: addrIrrigation + 1}
	s, _ := load(t, e)

	// 5000 ms is 88 13 00 00 little endian
	if applied, err := s.SetIrrigationSeconds(5); err == nil || applied {
		t.Fatalf("SetIrrigationSeconds = %v, %v", applied, err)
	}
	if s.Config().IrrigationDurationMs != DefaultIrrigationDurationMs {
		t.Errorf("in-memory irrigation = %d after failed write", s.Config().IrrigationDurationMs)
	}

	want := map[uint16]byte{
		addrIrrigation:     0x88,
		addrIrrigation + 1: storage.Erased,
		addrIrrigation + 2: 0x00,
		addrIrrigation + 3: 0x00,
	}
	for addr, v := range want {
		if got, _ := e.ReadCell(addr); got != v {
			t.Errorf("cell %d = %#x, want %#x", addr, got, v)
		}
	}

	// 88 ff 00 00 is still a valid duration, so a reload keeps the mix
	_, cfg := load(t, e)
	if cfg.IrrigationDurationMs != 0xFF88 {
		t.Errorf("reloaded irrigation = %d", cfg.IrrigationDurationMs)
	}
}
