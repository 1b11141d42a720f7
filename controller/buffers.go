package controller

import (
	"sync"

	"speedsense/models"
)

// DefaultLiveCapacity is how many samples a live window keeps per stream.
const DefaultLiveCapacity = 50

// ─── Rolling buffer ─────────────────────────────────────────────────────

// RollingBuffer keeps the most recent samples of one stream for display.
// Appends happen on the main queue; snapshots may be taken from anywhere.
type RollingBuffer struct {
	mu       sync.RWMutex
	capacity int
	items    []models.SensorSample
}

func NewRollingBuffer(capacity int) *RollingBuffer {
	if capacity <= 0 {
		capacity = DefaultLiveCapacity
	}
	return &RollingBuffer{
		capacity: capacity,
		items:    make([]models.SensorSample, 0, capacity+1),
	}
}

// Append adds s at the end and evicts the single oldest sample when the
// buffer grows past capacity.
func (b *RollingBuffer) Append(s models.SensorSample) {
	b.mu.Lock()
	b.items = append(b.items, s)
	if len(b.items) > b.capacity {
		copy(b.items, b.items[1:])
		b.items = b.items[:len(b.items)-1]
	}
	b.mu.Unlock()
}

// Snapshot copies the current window, oldest first.
func (b *RollingBuffer) Snapshot() []models.SensorSample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.SensorSample, len(b.items))
	copy(out, b.items)
	return out
}

func (b *RollingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

func (b *RollingBuffer) Capacity() int { return b.capacity }

// ─── Recording buffer ───────────────────────────────────────────────────

// RecordingBuffer accumulates every sample of one stream for a session.
// It has no capacity limit.
type RecordingBuffer struct {
	mu    sync.RWMutex
	items []models.SensorSample
}

func NewRecordingBuffer() *RecordingBuffer {
	return &RecordingBuffer{}
}

func (b *RecordingBuffer) Append(s models.SensorSample) {
	b.mu.Lock()
	b.items = append(b.items, s)
	b.mu.Unlock()
}

// Reset drops every recorded sample.
func (b *RecordingBuffer) Reset() {
	b.mu.Lock()
	b.items = nil
	b.mu.Unlock()
}

// Snapshot copies the recorded samples in delivery order.
func (b *RecordingBuffer) Snapshot() []models.SensorSample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.SensorSample, len(b.items))
	copy(out, b.items)
	return out
}

func (b *RecordingBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}
