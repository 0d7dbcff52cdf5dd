package sensors

import (
	"fmt"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3/rpi"
)

type StationSettings struct {
	GroveBus string `yaml:"groveBus"`

	MoistureAddress uint16 `yaml:"moistureAddress"`
	MoistureChannel byte   `yaml:"moistureChannel"`
	WetThreshold    int    `yaml:"wetThreshold"`
	DryThreshold    int    `yaml:"dryThreshold"`

	PumpGPIO      int  `yaml:"pumpGPIO"`
	PumpActiveLow bool `yaml:"pumpActiveLow"`

	TickIntervalMs int `yaml:"tickIntervalMs"`

	Storage     string `yaml:"storage"`
	StoragePath string `yaml:"storagePath"`
}

var (
	DefaultStationSettings = StationSettings{
		GroveBus:        "1",
		MoistureAddress: 0x08,
		MoistureChannel: 0x0,
		WetThreshold:    1000,
		DryThreshold:    2000,
		PumpGPIO:        23,
		PumpActiveLow:   true,
		TickIntervalMs:  200,
		Storage:         "sqlite",
		StoragePath:     "eeprom.sqlite",
	}
)

// RawSensor delivers uncalibrated readings.
type RawSensor interface {
	Name() string
	ReadRaw() (int, error)
}

func GetGPIO(gpio int) (gpio.PinIO, error) {
	switch gpio {
	case 2:
		return rpi.P1_3, nil
	case 3:
		return rpi.P1_5, nil
	case 4:
		return rpi.P1_7, nil
	case 5:
		return rpi.P1_29, nil
	case 6:
		return rpi.P1_31, nil
	case 7:
		return rpi.P1_26, nil
	case 8:
		return rpi.P1_24, nil
	case 9:
		return rpi.P1_21, nil
	case 10:
		return rpi.P1_19, nil
	case 11:
		return rpi.P1_23, nil
	case 12:
		return rpi.P1_32, nil
	case 13:
		return rpi.P1_33, nil
	case 16:
		return rpi.P1_36, nil
	case 17:
		return rpi.P1_11, nil
	case 18:
		return rpi.P1_12, nil
	case 19:
		return rpi.P1_35, nil
	case 20:
		return rpi.P1_38, nil
	case 21:
		return rpi.P1_40, nil
	case 22:
		return rpi.P1_15, nil
	case 23:
		return rpi.P1_16, nil
	case 24:
		return rpi.P1_18, nil
	case 25:
		return rpi.P1_22, nil
	case 26:
		return rpi.P1_37, nil
	case 27:
		return rpi.P1_13, nil
	default:
		return nil, fmt.Errorf("gpio %d cant found", gpio)
	}
}
