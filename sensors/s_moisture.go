package sensors

import (
	"encoding/binary"
	"fmt"
	"periph.io/x/conn/v3/i2c"
)

// moistureRegister is the first ADC channel register of the grove hat.
const moistureRegister = 0x20

type moisture struct {
	dev     i2c.Dev
	channel byte
}

func NewMoisture(bus i2c.Bus, address uint16, channel byte) RawSensor {
	return &moisture{
		dev: i2c.Dev{
			Bus:  bus,
			Addr: address,
		},
		channel: channel,
	}
}

func (s *moisture) Name() string {
	return "Moisture"
}

func (s *moisture) ReadRaw() (int, error) {
	write := []byte{moistureRegister + s.channel}
	read := make([]byte, 2)
	if err := s.dev.Tx(write, read); err != nil {
		return 0, fmt.Errorf("moisture channel %d: %w", s.channel, err)
	}

	return int(binary.LittleEndian.Uint16(read)), nil
}
