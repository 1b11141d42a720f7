package motion

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"speedsense/models"
	"speedsense/utils"
)

// OpenFunc opens the serial device. Tests substitute an in-memory pipe.
type OpenFunc func(serial.OpenOptions) (io.ReadWriteCloser, error)

type serialSub struct {
	interval time.Duration
	last     time.Time
	h        Handler
}

// SerialSource reads "ax,ay,az,gx,gy,gz" lines from a wrist board over a
// serial link and fans each update out to every subscriber, throttled to
// the subscriber's interval. The port is opened on the first subscription
// and closed when the last one is cancelled.
type SerialSource struct {
	opts serial.OpenOptions
	open OpenFunc
	log  *utils.Logger

	mu     sync.Mutex
	port   io.ReadWriteCloser
	subs   map[uint64]*serialSub
	nextID uint64

	produced uint64
	dropped  uint64
}

func NewSerialSource(cfg utils.MotionConfig, open OpenFunc) *SerialSource {
	if open == nil {
		open = serial.Open
	}
	baud := cfg.BaudRate
	if baud <= 0 {
		baud = 115200
	}
	return &SerialSource{
		opts: serial.OpenOptions{
			PortName:              cfg.SerialPort,
			BaudRate:              uint(baud),
			DataBits:              8,
			StopBits:              1,
			MinimumReadSize:       1,
			ParityMode:            serial.PARITY_NONE,
			InterCharacterTimeout: 0,
		},
		open: open,
		log:  utils.L().Named("serial"),
		subs: make(map[uint64]*serialSub),
	}
}

func (s *SerialSource) Available() bool { return s.opts.PortName != "" }

func (s *SerialSource) Start(interval time.Duration, h Handler) (*Subscription, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port == nil {
		port, err := s.open(s.opts)
		if err != nil {
			return nil, fmt.Errorf("open serial port %s: %w", s.opts.PortName, err)
		}
		s.port = port
		go s.readLoop(port)
		s.log.Info("port opened  (%s @ %d baud)", s.opts.PortName, s.opts.BaudRate)
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = &serialSub{interval: interval, h: h}
	return NewSubscription(func() { s.cancel(id) }), nil
}

func (s *SerialSource) cancel(id uint64) {
	s.mu.Lock()
	delete(s.subs, id)
	var port io.ReadWriteCloser
	if len(s.subs) == 0 && s.port != nil {
		port = s.port
		s.port = nil
	}
	s.mu.Unlock()

	if port != nil {
		if err := port.Close(); err != nil {
			s.log.Warn("close port: %v", err)
		}
		p, d := s.Stats()
		s.log.Info("port closed  (produced=%d, dropped=%d)", p, d)
	}
}

func (s *SerialSource) readLoop(port io.ReadWriteCloser) {
	reader := bufio.NewReader(port)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			s.mu.Lock()
			current := s.port == port
			if current {
				s.port = nil
			}
			s.mu.Unlock()
			if current {
				s.log.Error("read: %v", err)
			}
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		u, err := ParseLine(line, time.Now())
		if err != nil {
			atomic.AddUint64(&s.dropped, 1)
			s.log.Debug("skip line %q: %v", line, err)
			continue
		}
		atomic.AddUint64(&s.produced, 1)
		s.dispatch(port, u)
	}
}

// dispatch runs handlers under mu so a returned Cancel never races a delivery.
func (s *SerialSource) dispatch(port io.ReadWriteCloser, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port != port {
		return
	}
	for _, sub := range s.subs {
		if !sub.last.IsZero() && u.CaptureTime.Sub(sub.last) < sub.interval-sub.interval/10 {
			continue
		}
		sub.last = u.CaptureTime
		sub.h(u)
	}
}

// Stats returns lines parsed and lines rejected since construction.
func (s *SerialSource) Stats() (uint64, uint64) {
	return atomic.LoadUint64(&s.produced), atomic.LoadUint64(&s.dropped)
}

// ParseLine decodes one "ax,ay,az,gx,gy,gz" record. Acceleration is in g,
// rotation rate in rad/s.
func ParseLine(line string, capturedAt time.Time) (Update, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 6 {
		return Update{}, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}
	var v [6]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Update{}, fmt.Errorf("field %d: %w", i, err)
		}
		v[i] = x
	}
	return Update{
		CaptureTime:      capturedAt,
		UserAcceleration: models.Vector3{X: v[0], Y: v[1], Z: v[2]},
		RotationRate:     models.Vector3{X: v[3], Y: v[4], Z: v[5]},
	}, nil
}
