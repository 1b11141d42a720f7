package models

//go:generate easyjson upload_batch.go

// UploadBatch is the JSON body POSTed for one recorded stream. It is built
// right before the request and dropped afterwards.
//easyjson:json
type UploadBatch struct {
	DeviceID   string          `json:"device_id"`
	Timestamp  string          `json:"timestamp"` // ISO-8601 upload time
	SensorType string          `json:"sensor_type"`
	Data       []SamplePayload `json:"data"`
}

// SamplePayload is one entry of UploadBatch.Data.
//easyjson:json
type SamplePayload struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Magnitude float64 `json:"magnitude"`
	Timestamp string  `json:"timestamp"` // ISO-8601 capture time
}
