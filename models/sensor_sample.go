package models

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// SensorKind names one of the two motion streams.
type SensorKind string

const (
	Accelerometer SensorKind = "accelerometer"
	Gyroscope     SensorKind = "gyroscope"
)

// SensorKinds lists every stream in upload order.
var SensorKinds = []SensorKind{Accelerometer, Gyroscope}

func (k SensorKind) String() string { return string(k) }

// ParseSensorKind validates a wire label.
func ParseSensorKind(s string) (SensorKind, error) {
	switch SensorKind(s) {
	case Accelerometer, Gyroscope:
		return SensorKind(s), nil
	}
	return "", fmt.Errorf("unknown sensor type: %s", s)
}

// Vector3 is one raw 3-axis reading.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// SensorSample is one timestamped reading with its derived magnitude.
// Accelerometer values are in g, gyroscope values in rad/s.
type SensorSample struct {
	ID        uuid.UUID `json:"-"` // display identity only
	Timestamp time.Time `json:"timestamp"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Z         float64   `json:"z"`
	Magnitude float64   `json:"magnitude"`
}

// NewSensorSample turns a raw vector into a sample. Magnitude is computed
// here once and never again; NaN and Inf pass straight through.
func NewSensorSample(v Vector3, capturedAt time.Time) SensorSample {
	return SensorSample{
		ID:        uuid.New(),
		Timestamp: capturedAt,
		X:         v.X,
		Y:         v.Y,
		Z:         v.Z,
		Magnitude: v.Norm(),
	}
}

// DisplayPoint is what the live view charts for each sample.
type DisplayPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Magnitude float64 `json:"magnitude"`
}

// DisplayPoints projects a window of samples for the display surface.
func DisplayPoints(samples []SensorSample) []DisplayPoint {
	out := make([]DisplayPoint, len(samples))
	for i, s := range samples {
		out[i] = DisplayPoint{X: s.X, Y: s.Y, Z: s.Z, Magnitude: s.Magnitude}
	}
	return out
}

// CSVHeader returns the ordered column names for a recorded-session export.
func (SensorSample) CSVHeader() []string {
	return []string{"timestamp", "x", "y", "z", "magnitude"}
}

// CSVRow serialises one recorded sample. Values stay in device units.
func (s *SensorSample) CSVRow() []string {
	return []string{
		s.Timestamp.UTC().Format(time.RFC3339Nano),
		ftoa(s.X, 6), ftoa(s.Y, 6), ftoa(s.Z, 6),
		ftoa(s.Magnitude, 6),
	}
}
