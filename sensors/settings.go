package sensors

import (
	"errors"
	"fmt"
	"github.com/ZamarianPatrick/lazypig-controller/storage"
	"gopkg.in/yaml.v2"
	"os"
)

// LoadStationSettings reads the settings file, creating it with
// DefaultStationSettings when it does not exist.
func LoadStationSettings(path string) (StationSettings, error) {
	var stationSettings StationSettings

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		stationSettings = DefaultStationSettings

		data, err := yaml.Marshal(stationSettings)
		if err != nil {
			return stationSettings, err
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return stationSettings, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return stationSettings, err
		}

		stationSettings = DefaultStationSettings
		if err := yaml.Unmarshal(data, &stationSettings); err != nil {
			return stationSettings, fmt.Errorf("%s: %w", path, err)
		}
	}

	return stationSettings, stationSettings.Validate()
}

func (s StationSettings) Validate() error {
	if _, err := NewCalibration(s.WetThreshold, s.DryThreshold); err != nil {
		return err
	}
	if s.TickIntervalMs <= 0 {
		return fmt.Errorf("tickIntervalMs %d must be positive", s.TickIntervalMs)
	}
	switch s.Storage {
	case storage.KindSQLite, storage.KindBolt, storage.KindMemory:
	default:
		return fmt.Errorf("storage %q unknown", s.Storage)
	}
	return nil
}
