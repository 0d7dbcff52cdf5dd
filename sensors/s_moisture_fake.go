package sensors

import "sync"

// MoistureFake simulates soil that dries by DryRate per read and gets
// wetter by WetRate per read while Watering reports true.
type MoistureFake struct {
	mutex sync.Mutex
	value int

	DryRate  int
	WetRate  int
	Watering func() bool
}

func NewMoistureFake(value int) *MoistureFake {
	return &MoistureFake{
		value: value,
	}
}

func (s *MoistureFake) Name() string {
	return "Moisture"
}

func (s *MoistureFake) SetValue(val int) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.value = val
}

func (s *MoistureFake) ReadRaw() (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	val := s.value
	if s.Watering != nil && s.Watering() {
		s.value -= s.WetRate
	} else {
		s.value += s.DryRate
	}

	if s.value < 0 {
		s.value = 0
	}
	if s.value > 0xFFFF {
		s.value = 0xFFFF
	}

	return val, nil
}
