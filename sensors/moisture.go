package sensors

import "fmt"

// Calibration holds the raw readings of saturated (wet) and dry soil.
// Raw readings grow as the soil dries.
type Calibration struct {
	Wet int
	Dry int
}

func NewCalibration(wet, dry int) (Calibration, error) {
	if wet >= dry {
		return Calibration{}, fmt.Errorf("calibration wet %d must be below dry %d", wet, dry)
	}
	return Calibration{Wet: wet, Dry: dry}, nil
}

// Sample is one reading with its moisture percentage.
type Sample struct {
	Raw     int
	Percent int
}

func (c Calibration) Sample(raw int) Sample {
	return Sample{
		Raw:     raw,
		Percent: Convert(raw, c.Wet, c.Dry),
	}
}

// Convert maps raw to 0-100 % moisture, 100 at or below wet and 0 at or
// above dry. wet must be below dry.
func Convert(raw, wet, dry int) int {
	if raw <= wet {
		return 100
	}
	if raw >= dry {
		return 0
	}
	return (dry - raw) * 100 / (dry - wet)
}
