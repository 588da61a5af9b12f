package plant

import "fmt"

// Status classifies a metric for display.
type Status int

const (
	StatusNormal Status = iota
	StatusAlert
	StatusWarning
	StatusInfo
)

func (s Status) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusAlert:
		return "alert"
	case StatusWarning:
		return "warning"
	case StatusInfo:
		return "info"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

const (
	lowMoisture   = 40
	minTemp       = 20
	maxTemp       = 30
	lowLight      = 300
	lowWaterLevel = 20
)

// MoistureStatus is Alert below 40%.
func MoistureStatus(r Reading) Status {
	if r.Moisture < lowMoisture {
		return StatusAlert
	}
	return StatusNormal
}

// TemperatureStatus is Warning outside 20-30°C.
func TemperatureStatus(r Reading) Status {
	if r.Temperature < minTemp || r.Temperature > maxTemp {
		return StatusWarning
	}
	return StatusNormal
}

// LightStatus is Info below 300 lux.
func LightStatus(r Reading) Status {
	if r.Light < lowLight {
		return StatusInfo
	}
	return StatusNormal
}

// WaterLevelStatus is Alert below 20%.
func WaterLevelStatus(r Reading) Status {
	if r.WaterLevel < lowWaterLevel {
		return StatusAlert
	}
	return StatusNormal
}

// LowMoisture reports whether the "needs attention" banner should show.
func LowMoisture(r Reading) bool {
	return r.Moisture < lowMoisture
}

// Tile is one metric box on the dashboard.
type Tile struct {
	Key    string
	Label  string
	Glyph  string
	Value  string
	Status Status
}

// Tiles returns the four dashboard tiles in display order.
func Tiles(r Reading) []Tile {
	tile := func(key string, v int, s Status) Tile {
		m := lookupMetric(key)
		return Tile{
			Key:    key,
			Label:  m.label,
			Glyph:  m.glyph,
			Value:  fmt.Sprintf("%d%s", v, m.unit),
			Status: s,
		}
	}
	return []Tile{
		tile(KeyMoisture, r.Moisture, MoistureStatus(r)),
		tile(KeyTemperature, r.Temperature, TemperatureStatus(r)),
		tile(KeyLight, r.Light, LightStatus(r)),
		tile(KeyWaterLevel, r.WaterLevel, WaterLevelStatus(r)),
	}
}
