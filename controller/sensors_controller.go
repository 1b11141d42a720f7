package controller

import (
	"fmt"
	"sync"
	"time"

	"speedsense/models"
	"speedsense/services/motion"
	"speedsense/utils"
)

// DisplaySink is a display surface for the live windows. Refresh runs on
// the main queue and must not block.
type DisplaySink interface {
	Refresh(kind models.SensorKind, window []models.DisplayPoint)
}

// SensorsController owns the live subscriptions, one per sensor kind. Each
// delivered sample is appended to the kind's rolling buffer on the main
// queue, and every sink is then refreshed with the current window.
type SensorsController struct {
	source   motion.Source
	session  *Session
	queue    *utils.MainQueue
	interval time.Duration
	log      *utils.Logger

	mu    sync.Mutex
	subs  map[models.SensorKind]*motion.Subscription
	sinks []DisplaySink
}

func NewSensorsController(source motion.Source, session *Session, queue *utils.MainQueue, interval time.Duration) *SensorsController {
	return &SensorsController{
		source:   source,
		session:  session,
		queue:    queue,
		interval: interval,
		log:      utils.L().Named("sensors"),
		subs:     make(map[models.SensorKind]*motion.Subscription),
	}
}

// AddSink registers a display surface.
func (sc *SensorsController) AddSink(s DisplaySink) {
	sc.mu.Lock()
	sc.sinks = append(sc.sinks, s)
	sc.mu.Unlock()
}

// StartLiveUpdates subscribes kind to the motion source. A second call for
// the same kind is a no-op.
func (sc *SensorsController) StartLiveUpdates(kind models.SensorKind) error {
	if sc.session.Live(kind) == nil {
		return fmt.Errorf("start live updates: unknown sensor type: %s", kind)
	}
	if !sc.source.Available() {
		sc.log.Warn("%s live updates not started: %v", kind, motion.ErrUnavailable)
		return fmt.Errorf("start %s live updates: %w", kind, motion.ErrUnavailable)
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if _, running := sc.subs[kind]; running {
		return nil
	}

	sub, err := sc.source.Start(sc.interval, func(u motion.Update) {
		sample := models.NewSensorSample(u.Vector(kind), u.CaptureTime)
		sc.queue.Async(func() { sc.appendLive(kind, sample) })
	})
	if err != nil {
		sc.log.Error("%s live updates: %v", kind, err)
		return fmt.Errorf("start %s live updates: %w", kind, err)
	}
	sc.subs[kind] = sub
	sc.log.Info("%s live updates started  (interval=%s)", kind, sc.interval)
	return nil
}

// StopLiveUpdates cancels the kind's subscription. The live window keeps
// its contents.
func (sc *SensorsController) StopLiveUpdates(kind models.SensorKind) {
	sc.mu.Lock()
	sub, running := sc.subs[kind]
	delete(sc.subs, kind)
	sc.mu.Unlock()

	if !running {
		return
	}
	sub.Cancel()
	sc.log.Info("%s live updates stopped  (window=%d)", kind, sc.session.Live(kind).Len())
}

// StopAll cancels every live subscription.
func (sc *SensorsController) StopAll() {
	for _, k := range models.SensorKinds {
		sc.StopLiveUpdates(k)
	}
}

// Window returns the current live window of kind.
func (sc *SensorsController) Window(kind models.SensorKind) []models.SensorSample {
	if b := sc.session.Live(kind); b != nil {
		return b.Snapshot()
	}
	return nil
}

// appendLive runs on the main queue.
func (sc *SensorsController) appendLive(kind models.SensorKind, s models.SensorSample) {
	buf := sc.session.Live(kind)
	buf.Append(s)

	sc.mu.Lock()
	sinks := sc.sinks
	sc.mu.Unlock()
	if len(sinks) == 0 {
		return
	}
	window := models.DisplayPoints(buf.Snapshot())
	for _, sink := range sinks {
		sink.Refresh(kind, window)
	}
}
