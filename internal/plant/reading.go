// Package plant holds the plant sensor state shown by the monitor: the
// current reading, the fixed chart history, and the pure status rules
// that color each metric.
package plant

import "time"

const (
	// WaterStep is how much one watering raises moisture.
	WaterStep = 20
	// MaxMoisture caps moisture after watering.
	MaxMoisture = 100
)

// Reading is the current snapshot of all sensor values.
type Reading struct {
	Moisture    int    // percent, 0-100
	Temperature int    // degrees Celsius
	Light       int    // lux
	WaterLevel  int    // reservoir percent, never changed by watering
	LastWatered string // display timestamp
}

// HistoryPoint is one fixed sample used only for charting.
type HistoryPoint struct {
	Label       string // time-of-day tag, e.g. "9am"
	Moisture    int
	Temperature int
	Light       int
}

// DefaultReading returns the mock reading the monitor starts with.
func DefaultReading(now time.Time, layout string) Reading {
	return Reading{
		Moisture:    45,
		Temperature: 22,
		Light:       450,
		WaterLevel:  30,
		LastWatered: now.Format(layout),
	}
}

// DefaultHistory returns a fresh copy of the hardcoded morning history.
func DefaultHistory() []HistoryPoint {
	return []HistoryPoint{
		{Label: "9am", Moisture: 40, Temperature: 20, Light: 300},
		{Label: "10am", Moisture: 45, Temperature: 22, Light: 450},
		{Label: "11am", Moisture: 50, Temperature: 23, Light: 600},
		{Label: "12pm", Moisture: 48, Temperature: 24, Light: 550},
	}
}

// Water returns r after one watering: moisture rises by WaterStep up to
// MaxMoisture and LastWatered is set to now. r itself is left untouched.
func Water(r Reading, now time.Time, layout string) Reading {
	next := r
	next.Moisture = min(r.Moisture+WaterStep, MaxMoisture)
	next.LastWatered = now.Format(layout)
	return next
}
