package controller

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"speedsense/models"
	"speedsense/services/motion"
	"speedsense/services/upload"
	"speedsense/utils"
	"speedsense/views"
)

// Status labels shown to the user.
const (
	StatusIdle           = "Idle"
	StatusRecording      = "Recording..."
	StatusStopped        = "Recording Stopped"
	StatusUploading      = "Uploading..."
	StatusUploadsStarted = "Upload Started for Both Sensors"
)

var (
	ErrRecordingActive = errors.New("recording in progress")
	ErrNothingRecorded = errors.New("no recorded data")
	ErrQueueStopped    = errors.New("main queue stopped")
)

// Uploader sends one recorded stream. *upload.Uploader satisfies it.
type Uploader interface {
	Upload(ctx context.Context, samples []models.SensorSample, endpoint string, kind models.SensorKind) (<-chan upload.Result, error)
}

// RecordingController drives a recording session: it subscribes both
// streams into the recording buffers, stops them, and uploads the result.
//
// recording, gen and sub are only touched on the main queue. Status and
// last results are written there too but may be read from anywhere.
type RecordingController struct {
	source   motion.Source
	session  *Session
	queue    *utils.MainQueue
	uploader Uploader
	endpoint string
	interval time.Duration
	log      *utils.Logger

	recording bool
	gen       uint64
	sub       *motion.Subscription
	discarded uint64

	stateMu sync.RWMutex
	status  string
	last    map[models.SensorKind]upload.Result
}

type RecordingParams struct {
	Source   motion.Source
	Session  *Session
	Queue    *utils.MainQueue
	Uploader Uploader
	Endpoint string
	Interval time.Duration
}

func NewRecordingController(p RecordingParams) *RecordingController {
	return &RecordingController{
		source:   p.Source,
		session:  p.Session,
		queue:    p.Queue,
		uploader: p.Uploader,
		endpoint: p.Endpoint,
		interval: p.Interval,
		log:      utils.L().Named("recording"),
		status:   StatusIdle,
		last:     make(map[models.SensorKind]upload.Result),
	}
}

// StartRecording clears both recording buffers and begins capturing.
func (rc *RecordingController) StartRecording() error {
	if !rc.source.Available() {
		rc.log.Warn("recording not started: %v", motion.ErrUnavailable)
		return fmt.Errorf("start recording: %w", motion.ErrUnavailable)
	}

	var err error
	if !rc.queue.Sync(func() { err = rc.startOnQueue() }) {
		return ErrQueueStopped
	}
	return err
}

func (rc *RecordingController) startOnQueue() error {
	if rc.recording {
		return ErrRecordingActive
	}

	rc.session.ResetRecordings()
	rc.gen++
	gen := rc.gen

	sub, err := rc.source.Start(rc.interval, func(u motion.Update) {
		acc := models.NewSensorSample(u.UserAcceleration, u.CaptureTime)
		gyr := models.NewSensorSample(u.RotationRate, u.CaptureTime)
		rc.queue.Async(func() { rc.appendRecorded(gen, acc, gyr) })
	})
	if err != nil {
		rc.log.Error("recording not started: %v", err)
		return fmt.Errorf("start recording: %w", err)
	}

	rc.sub = sub
	rc.recording = true
	rc.setStatus(StatusRecording)
	rc.log.Info("recording started  (session=%d, interval=%s)", gen, rc.interval)
	return nil
}

// appendRecorded runs on the main queue. Samples from a finished session
// are discarded.
func (rc *RecordingController) appendRecorded(gen uint64, acc, gyr models.SensorSample) {
	if !rc.recording || gen != rc.gen {
		rc.discarded++
		return
	}
	rc.session.Recorded(models.Accelerometer).Append(acc)
	rc.session.Recorded(models.Gyroscope).Append(gyr)
}

// StopRecording halts capture. The buffers stay readable. Stopping while
// idle does nothing.
func (rc *RecordingController) StopRecording() error {
	if !rc.queue.Sync(rc.stopOnQueue) {
		return ErrQueueStopped
	}
	return nil
}

func (rc *RecordingController) stopOnQueue() {
	if !rc.recording {
		return
	}
	rc.sub.Cancel()
	rc.sub = nil
	rc.recording = false
	rc.gen++
	rc.setStatus(StatusStopped)

	counts := rc.session.RecordedCounts()
	rc.log.Info("recording stopped  (accelerometer=%d, gyroscope=%d, discarded=%d)",
		counts[models.Accelerometer], counts[models.Gyroscope], rc.discarded)
}

// IsRecording reports whether a session is being captured.
func (rc *RecordingController) IsRecording() bool {
	var rec bool
	rc.queue.Sync(func() { rec = rc.recording })
	return rec
}

// UploadAll uploads the accelerometer and gyroscope recordings concurrently
// and independently. Each stream's result is sent on the returned channel,
// which is closed after both have finished.
func (rc *RecordingController) UploadAll(ctx context.Context) (<-chan upload.Result, error) {
	var (
		err       error
		snapshots map[models.SensorKind][]models.SensorSample
	)
	ran := rc.queue.Sync(func() {
		if rc.recording {
			err = ErrRecordingActive
			return
		}
		if !rc.session.HasRecordedData() {
			err = ErrNothingRecorded
			return
		}
		rc.setStatus(StatusUploading)
		snapshots = make(map[models.SensorKind][]models.SensorSample, len(models.SensorKinds))
		for _, k := range models.SensorKinds {
			snapshots[k] = rc.session.Recorded(k).Snapshot()
		}
	})
	if !ran {
		return nil, ErrQueueStopped
	}
	if err != nil {
		rc.log.Warn("upload not started: %v", err)
		return nil, err
	}

	out := make(chan upload.Result, len(models.SensorKinds))
	var wg sync.WaitGroup
	for _, k := range models.SensorKinds {
		samples := snapshots[k]
		ch, err := rc.uploader.Upload(ctx, samples, rc.endpoint, k)
		if err != nil {
			rc.finish(upload.FailedResult(k, len(samples), err), out)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for res := range ch {
				rc.finish(res, out)
			}
		}()
	}
	rc.queue.Sync(func() { rc.setStatus(StatusUploadsStarted) })

	go func() {
		wg.Wait()
		close(out)
	}()
	return out, nil
}

// finish records res on the main queue and hands it to the caller.
func (rc *RecordingController) finish(res upload.Result, out chan<- upload.Result) {
	rc.queue.Sync(func() {
		rc.stateMu.Lock()
		rc.last[res.Kind] = res
		rc.stateMu.Unlock()
	})
	out <- res
}

// ExportCSV writes each recorded stream to <dir>/<kind>.csv.
func (rc *RecordingController) ExportCSV(dir string) error {
	for _, k := range models.SensorKinds {
		samples := rc.session.Recorded(k).Snapshot()
		path := filepath.Join(dir, k.String()+".csv")
		w, err := views.CreateCSVFile(path, 0, views.SchemaRecorded)
		if err != nil {
			return err
		}
		for i := range samples {
			w.WriteRecord(&samples[i])
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("export %s: %w", k, err)
		}
		rc.log.Info("exported %d %s samples to %s", len(samples), k, path)
	}
	return nil
}

// Status returns the current status label.
func (rc *RecordingController) Status() string {
	rc.stateMu.RLock()
	defer rc.stateMu.RUnlock()
	return rc.status
}

// LastResult returns the most recent upload result for kind.
func (rc *RecordingController) LastResult(kind models.SensorKind) (upload.Result, bool) {
	rc.stateMu.RLock()
	defer rc.stateMu.RUnlock()
	res, ok := rc.last[kind]
	return res, ok
}

func (rc *RecordingController) setStatus(s string) {
	rc.stateMu.Lock()
	rc.status = s
	rc.stateMu.Unlock()
}
