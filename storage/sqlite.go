package storage

import (
	"errors"
	"fmt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type cell struct {
	Addr  uint16 `gorm:"primaryKey;autoIncrement:false"`
	Value byte
}

func (cell) TableName() string {
	return "eeprom_cells"
}

// SQLite keeps every cell as one row of a sqlite table.
type SQLite struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := db.AutoMigrate(&cell{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) ReadCell(addr uint16) (byte, error) {
	var c cell
	r := s.db.Where("addr = ?", addr).First(&c)
	if errors.Is(r.Error, gorm.ErrRecordNotFound) {
		return Erased, nil
	}
	if r.Error != nil {
		return 0, fmt.Errorf("read cell %d: %w", addr, r.Error)
	}
	return c.Value, nil
}

func (s *SQLite) WriteCell(addr uint16, v byte) error {
	r := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "addr"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&cell{Addr: addr, Value: v})
	if r.Error != nil {
		return fmt.Errorf("write cell %d: %w", addr, r.Error)
	}
	return nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
