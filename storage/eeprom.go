package storage

import (
	"fmt"
)

// Erased is the value of a cell that has never been written.
const Erased byte = 0xFF

// EEPROM is byte addressed durable memory.
type EEPROM interface {
	ReadCell(addr uint16) (byte, error)
	WriteCell(addr uint16, v byte) error
}

// Device is an EEPROM backed by a resource that has to be released.
type Device interface {
	EEPROM
	Close() error
}

const (
	KindSQLite = "sqlite"
	KindBolt   = "bolt"
	KindMemory = "memory"
)

// Open returns the storage device of the given kind. The path is ignored
// for the memory kind.
func Open(kind, path string) (Device, error) {
	switch kind {
	case KindSQLite:
		return OpenSQLite(path)
	case KindBolt:
		return OpenBolt(path)
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("storage kind %q unknown", kind)
	}
}
