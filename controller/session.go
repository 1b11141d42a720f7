package controller

import (
	"speedsense/models"
)

// Session owns the four sample sequences of one logger run: a live window
// and a recording buffer for each sensor kind. The live and recording sides
// are independent; clearing one never touches the other.
type Session struct {
	live     map[models.SensorKind]*RollingBuffer
	recorded map[models.SensorKind]*RecordingBuffer
}

func NewSession(liveCapacity int) *Session {
	s := &Session{
		live:     make(map[models.SensorKind]*RollingBuffer, len(models.SensorKinds)),
		recorded: make(map[models.SensorKind]*RecordingBuffer, len(models.SensorKinds)),
	}
	for _, k := range models.SensorKinds {
		s.live[k] = NewRollingBuffer(liveCapacity)
		s.recorded[k] = NewRecordingBuffer()
	}
	return s
}

// Live returns the rolling window for kind, or nil for an unknown kind.
func (s *Session) Live(kind models.SensorKind) *RollingBuffer {
	return s.live[kind]
}

// Recorded returns the recording buffer for kind, or nil for an unknown kind.
func (s *Session) Recorded(kind models.SensorKind) *RecordingBuffer {
	return s.recorded[kind]
}

// ResetRecordings clears both recording buffers together.
func (s *Session) ResetRecordings() {
	for _, k := range models.SensorKinds {
		s.recorded[k].Reset()
	}
}

// HasRecordedData reports whether either recording buffer holds a sample.
func (s *Session) HasRecordedData() bool {
	for _, k := range models.SensorKinds {
		if s.recorded[k].Len() > 0 {
			return true
		}
	}
	return false
}

// RecordedCounts returns the per-kind recording sizes.
func (s *Session) RecordedCounts() map[models.SensorKind]int {
	out := make(map[models.SensorKind]int, len(s.recorded))
	for k, b := range s.recorded {
		out[k] = b.Len()
	}
	return out
}
