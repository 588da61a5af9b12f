package plant

import "strings"

// Metric keys, shared by tiles and chart series.
const (
	KeyMoisture    = "moisture"
	KeyTemperature = "temperature"
	KeyLight       = "light"
	KeyWaterLevel  = "waterLevel"
)

type metric struct {
	key   string
	label string
	unit  string
	glyph string
}

// metricTable maps metric keys to their display identity.
var metricTable = []metric{
	{KeyMoisture, "Moisture", "%", "◍"},
	{KeyTemperature, "Temperature", "°C", "▮"},
	{KeyLight, "Light", " lux", "☼"},
	{KeyWaterLevel, "Water Level", "%", "▤"},
}

func lookupMetric(key string) metric {
	for _, m := range metricTable {
		if strings.EqualFold(m.key, key) {
			return m
		}
	}
	return metric{key: key, label: "Sensor"}
}

// MetricLabel returns the human-readable name for a metric key.
func MetricLabel(key string) string {
	return lookupMetric(key).label
}
