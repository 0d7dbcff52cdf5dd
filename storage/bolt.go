package storage

import (
	"encoding/binary"
	"fmt"
	bolt "go.etcd.io/bbolt"
	"time"
)

const boltBucket = "eeprom"

// Bolt keeps cells in a single bbolt bucket keyed by big endian address.
type Bolt struct {
	db *bolt.DB
}

func OpenBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func cellKey(addr uint16) []byte {
	key := make([]byte, 2)
	binary.BigEndian.PutUint16(key, addr)
	return key
}

func (b *Bolt) ReadCell(addr uint16) (byte, error) {
	v := Erased
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(boltBucket)).Get(cellKey(addr))
		if len(data) == 1 {
			v = data[0]
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read cell %d: %w", addr, err)
	}
	return v, nil
}

func (b *Bolt) WriteCell(addr uint16, v byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put(cellKey(addr), []byte{v})
	})
	if err != nil {
		return fmt.Errorf("write cell %d: %w", addr, err)
	}
	return nil
}

func (b *Bolt) Close() error {
	return b.db.Close()
}
