package domain

// SensorRecord describes one sensor in the farm dataset: identity, threshold
// configuration and the readings it has produced. Read-only after loading.
type SensorRecord struct {
	ID       string
	Type     string
	Location string
	Config   ThresholdConfig
	Readings []Reading
}

// ThresholdConfig is the operating range configured for a sensor.
type ThresholdConfig struct {
	Min float64
	Max float64
}

// Reading is a single measurement event emitted by a sensor. Timestamps are
// kept verbatim as they appear in the dataset.
type Reading struct {
	Value     float64
	Unit      string
	Status    string
	Timestamp string
}
