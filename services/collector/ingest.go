package collector

import (
	"fmt"

	"speedsense/models"
	"speedsense/utils"
)

// StandardGravity converts uploaded accelerometer values from g to m/s².
const StandardGravity = 9.81

// RequestError is a rejected upload. Its message is returned to the client
// verbatim.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func badRequest(format string, args ...any) error {
	return &RequestError{Msg: fmt.Sprintf(format, args...)}
}

var ErrInvalidPayload = &RequestError{Msg: "Invalid payload"}

// BuildRecords validates one upload and converts it to table rows. Each row
// gets unique_timestamp = upload time in ms + its index in the batch.
// Every returned error is a *RequestError.
func BuildRecords(batch models.UploadBatch) (models.SensorKind, []models.StoredSample, error) {
	if batch.SensorType == "" || batch.Data == nil {
		return "", nil, ErrInvalidPayload
	}
	kind, err := models.ParseSensorKind(batch.SensorType)
	if err != nil {
		return "", nil, badRequest("Unknown sensor type: %s", batch.SensorType)
	}

	base, err := utils.ParseISO8601(batch.Timestamp)
	if err != nil {
		return "", nil, badRequest("Invalid timestamp format: %s", batch.Timestamp)
	}
	baseMs := utils.UnixMillis(base)

	scale := 1.0
	if kind == models.Accelerometer {
		scale = StandardGravity
	}

	rows := make([]models.StoredSample, len(batch.Data))
	for i, rec := range batch.Data {
		at, err := utils.ParseISO8601(rec.Timestamp)
		if err != nil {
			return "", nil, badRequest("Invalid timestamp format in record: %s", rec.Timestamp)
		}
		rows[i] = models.StoredSample{
			UniqueTimestamp: baseMs + float64(i),
			Timestamp:       at.UTC(),
			X:               rec.X * scale,
			Y:               rec.Y * scale,
			Z:               rec.Z * scale,
			Magnitude:       rec.Magnitude * scale,
		}
	}
	return kind, rows, nil
}
