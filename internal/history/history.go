// Package history provides the read-only sensor history behind the
// dashboard chart, split into per-metric series with min/peak/avg stats.
package history

import (
	"math"

	"github.com/luki/plantmon/internal/plant"
)

// Series is one metric across all history points.
type Series struct {
	Name   string
	Values []float64
	Min    float64
	Peak   float64
}

// Avg returns the average value, or 0 if empty.
func (s Series) Avg() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Last returns the most recent value, or 0 if empty.
func (s Series) Last() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.Values[len(s.Values)-1]
}

// Store holds a fixed sequence of history points. Nothing appends to or
// edits the sequence once the store is built.
type Store struct {
	points []plant.HistoryPoint
}

// NewStore copies points into a new store.
func NewStore(points []plant.HistoryPoint) *Store {
	cp := make([]plant.HistoryPoint, len(points))
	copy(cp, points)
	return &Store{points: cp}
}

// Len returns the number of points.
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a copy of the stored points.
func (s *Store) Points() []plant.HistoryPoint {
	out := make([]plant.HistoryPoint, len(s.points))
	copy(out, s.points)
	return out
}

// Labels returns the time-of-day tags in order.
func (s *Store) Labels() []string {
	labels := make([]string, len(s.points))
	for i, p := range s.points {
		labels[i] = p.Label
	}
	return labels
}

// Series extracts one metric (plant.KeyMoisture, KeyTemperature or
// KeyLight). ok is false for metrics the history does not record.
func (s *Store) Series(key string) (Series, bool) {
	var pick func(plant.HistoryPoint) int
	switch key {
	case plant.KeyMoisture:
		pick = func(p plant.HistoryPoint) int { return p.Moisture }
	case plant.KeyTemperature:
		pick = func(p plant.HistoryPoint) int { return p.Temperature }
	case plant.KeyLight:
		pick = func(p plant.HistoryPoint) int { return p.Light }
	default:
		return Series{}, false
	}

	ser := Series{
		Name:   key,
		Values: make([]float64, 0, len(s.points)),
		Min:    math.MaxFloat64,
		Peak:   -math.MaxFloat64,
	}
	for _, p := range s.points {
		v := float64(pick(p))
		ser.Values = append(ser.Values, v)
		if v < ser.Min {
			ser.Min = v
		}
		if v > ser.Peak {
			ser.Peak = v
		}
	}
	if len(ser.Values) == 0 {
		ser.Min, ser.Peak = 0, 0
	}
	return ser, true
}

// All returns the charted series in legend order.
func (s *Store) All() []Series {
	var out []Series
	for _, key := range []string{plant.KeyMoisture, plant.KeyTemperature, plant.KeyLight} {
		if ser, ok := s.Series(key); ok {
			out = append(out, ser)
		}
	}
	return out
}
