package controller

import (
	"context"
	"sync"
	"time"

	"speedsense/models"
	"speedsense/services/motion"
	"speedsense/services/upload"
)

// manualSource delivers updates only when Push is called.
type manualSource struct {
	mu          sync.Mutex
	unavailable bool
	handlers    map[int]motion.Handler
	next        int
	starts      int

	// leaked keeps every handler callable after Cancel, to mimic a source
	// that delivers a late sample.
	leaked []motion.Handler
}

func newManualSource() *manualSource {
	return &manualSource{handlers: make(map[int]motion.Handler)}
}

func (m *manualSource) Available() bool { return !m.unavailable }

func (m *manualSource) Start(_ time.Duration, h motion.Handler) (*motion.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.next
	m.next++
	m.starts++
	m.handlers[id] = h
	m.leaked = append(m.leaked, h)
	return motion.NewSubscription(func() {
		m.mu.Lock()
		delete(m.handlers, id)
		m.mu.Unlock()
	}), nil
}

func (m *manualSource) Push(u motion.Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.handlers {
		h(u)
	}
}

func (m *manualSource) active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

func update(i int) motion.Update {
	return motion.Update{
		CaptureTime:      time.Date(2024, 5, 1, 12, 0, 0, i*int(10*time.Millisecond), time.UTC),
		UserAcceleration: models.Vector3{X: float64(i), Y: 0, Z: 0},
		RotationRate:     models.Vector3{X: 0, Y: float64(i), Z: 0},
	}
}

// recordingSink keeps every window it is refreshed with.
type recordingSink struct {
	mu      sync.Mutex
	windows map[models.SensorKind][][]models.DisplayPoint
}

func newRecordingSink() *recordingSink {
	return &recordingSink{windows: make(map[models.SensorKind][][]models.DisplayPoint)}
}

func (r *recordingSink) Refresh(kind models.SensorKind, window []models.DisplayPoint) {
	r.mu.Lock()
	r.windows[kind] = append(r.windows[kind], window)
	r.mu.Unlock()
}

func (r *recordingSink) count(kind models.SensorKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.windows[kind])
}

// stubUploader answers each upload with a fixed result per kind.
type stubUploader struct {
	mu      sync.Mutex
	calls   map[models.SensorKind][]models.SensorSample
	results map[models.SensorKind]upload.Outcome
	syncErr error
}

func newStubUploader() *stubUploader {
	return &stubUploader{
		calls:   make(map[models.SensorKind][]models.SensorSample),
		results: make(map[models.SensorKind]upload.Outcome),
	}
}

func (s *stubUploader) Upload(_ context.Context, samples []models.SensorSample, _ string, kind models.SensorKind) (<-chan upload.Result, error) {
	s.mu.Lock()
	s.calls[kind] = samples
	outcome := s.results[kind]
	err := s.syncErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	ch := make(chan upload.Result, 1)
	ch <- upload.Result{Kind: kind, Outcome: outcome, Samples: len(samples)}
	close(ch)
	return ch, nil
}
