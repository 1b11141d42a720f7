package models

import "time"

//go:generate easyjson stored_sample.go

// StoredSample is one row of the collector's accelerometer or gyroscope table.
// Accelerometer rows are stored in m/s², gyroscope rows in rad/s.
//easyjson:json
type StoredSample struct {
	ID              int64     `json:"id"`
	UniqueTimestamp float64   `json:"unique_timestamp"` // ms since epoch, unique per table
	Timestamp       time.Time `json:"timestamp"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Z               float64   `json:"z"`
	Magnitude       float64   `json:"magnitude"`
}

// CSVHeader returns the ordered column names for a sensor export.
func (StoredSample) CSVHeader() []string {
	return []string{
		"id", "unique_timestamp", "timestamp",
		"x", "y", "z", "magnitude",
	}
}

// CSVRow serialises one stored sample into a CSV-compatible string slice.
func (s *StoredSample) CSVRow() []string {
	return []string{
		itoa64(s.ID),
		ftoa(s.UniqueTimestamp, 3),
		s.Timestamp.UTC().Format(time.RFC3339Nano),
		ftoa(s.X, 6), ftoa(s.Y, 6), ftoa(s.Z, 6),
		ftoa(s.Magnitude, 6),
	}
}

// SpeedPoint is the estimated swing speed attached to one accelerometer row.
//easyjson:json
type SpeedPoint struct {
	ID    int64   `json:"id"`
	Speed float64 `json:"speed"`
}

// SensorDataResponse is returned by /get-data and /get-data-between.
// SpeedData is only populated for range queries.
//easyjson:json
type SensorDataResponse struct {
	AccelerometerData []StoredSample `json:"accelerometer_data"`
	GyroscopeData     []StoredSample `json:"gyroscope_data"`
	SpeedData         []SpeedPoint   `json:"speed_data,omitempty"`
}

// IngestResult acknowledges a stored upload batch.
//easyjson:json
type IngestResult struct {
	Status         string `json:"status"`
	ProcessedCount int    `json:"processed_count"`
}

// ErrorResponse is the body of every collector error reply.
//easyjson:json
type ErrorResponse struct {
	Error string `json:"error"`
}
