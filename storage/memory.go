package storage

import "sync"

// Memory is a volatile EEPROM. It counts writes so wear can be observed.
type Memory struct {
	mutex  sync.Mutex
	cells  map[uint16]byte
	writes int
}

func NewMemory() *Memory {
	return &Memory{
		cells: make(map[uint16]byte),
	}
}

func (m *Memory) ReadCell(addr uint16) (byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	v, ok := m.cells[addr]
	if !ok {
		return Erased, nil
	}
	return v, nil
}

func (m *Memory) WriteCell(addr uint16, v byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.cells[addr] = v
	m.writes++
	return nil
}

// Writes returns the number of cell writes since creation.
func (m *Memory) Writes() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.writes
}

func (m *Memory) Close() error {
	return nil
}
