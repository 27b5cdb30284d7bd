package imu

// Sample is one timestamped accelerometer reading in sensor-native units:
// fractions of g, sensor axis directions. Normalization to the body frame
// happens offline in the analyzer, never at acquisition time.
type Sample struct {
	Source string `json:"source"` // producing device, e.g. "mpu9250"

	T float64 `json:"t"` // seconds since recording start
	X float64 `json:"x"` // g
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// SampleSource is anything that can produce native accelerometer readings.
type SampleSource interface {
	Next() (Sample, error)
}
