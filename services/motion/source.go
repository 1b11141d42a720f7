package motion

import (
	"errors"
	"sync"
	"time"

	"speedsense/models"
)

// ErrUnavailable is returned when the device has no motion sensors.
var ErrUnavailable = errors.New("motion sensors unavailable")

// Update is one device-motion delivery carrying both vectors.
type Update struct {
	CaptureTime      time.Time
	UserAcceleration models.Vector3 // g, gravity removed
	RotationRate     models.Vector3 // rad/s
}

// Vector selects the reading for kind.
func (u Update) Vector(kind models.SensorKind) models.Vector3 {
	if kind == models.Gyroscope {
		return u.RotationRate
	}
	return u.UserAcceleration
}

// Handler receives updates on a source goroutine. It must not block.
type Handler func(Update)

// Source is the device motion subsystem. Every call to Start creates an
// independent subscription delivering at roughly the requested interval.
type Source interface {
	Available() bool
	Start(interval time.Duration, h Handler) (*Subscription, error)
}

// Subscription stops one stream of updates. Once Cancel returns the handler
// is never invoked again.
type Subscription struct {
	once sync.Once
	stop func()
}

// NewSubscription wraps stop, which must not return while a handler call
// is still in progress.
func NewSubscription(stop func()) *Subscription {
	return &Subscription{stop: stop}
}

// Cancel is safe to call more than once. It must not be called from inside
// the subscription's own handler.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.stop)
}
