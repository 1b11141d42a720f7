package motion

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"testing"
	"time"

	serial "github.com/jacobsa/go-serial/serial"
	"github.com/stretchr/testify/require"

	"speedsense/models"
	"speedsense/utils"
)

// ─── ParseLine ──────────────────────────────────────────────────────────

func TestParseLine(t *testing.T) {
	at := time.Unix(1700000000, 0)
	u, err := ParseLine("0.1, -0.2,0.3,1,2,3", at)
	require.NoError(t, err)
	require.Equal(t, at, u.CaptureTime)
	require.Equal(t, models.Vector3{X: 0.1, Y: -0.2, Z: 0.3}, u.UserAcceleration)
	require.Equal(t, models.Vector3{X: 1, Y: 2, Z: 3}, u.RotationRate)
	require.Equal(t, u.RotationRate, u.Vector(models.Gyroscope))
	require.Equal(t, u.UserAcceleration, u.Vector(models.Accelerometer))
}

func TestParseLine_Rejects(t *testing.T) {
	for _, line := range []string{"", "1,2,3", "1,2,3,4,5,6,7", "1,2,x,4,5,6"} {
		_, err := ParseLine(line, time.Now())
		require.Error(t, err, "line %q", line)
	}
}

// ─── Subscription ───────────────────────────────────────────────────────

func TestSubscription_CancelOnce(t *testing.T) {
	calls := 0
	sub := NewSubscription(func() { calls++ })
	sub.Cancel()
	sub.Cancel()
	require.Equal(t, 1, calls)

	var nilSub *Subscription
	require.NotPanics(t, nilSub.Cancel)
}

// ─── SerialSource ───────────────────────────────────────────────────────

// pipePort is an in-memory serial port: the test writes lines into it.
type pipePort struct {
	r *io.PipeReader
	w *io.PipeWriter

	mu     sync.Mutex
	closed bool
}

func newPipePort() *pipePort {
	r, w := io.Pipe()
	return &pipePort{r: r, w: w}
}

func (p *pipePort) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *pipePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *pipePort) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.r.Close()
}

func (p *pipePort) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *pipePort) send(t *testing.T, line string) {
	t.Helper()
	_, err := fmt.Fprintln(p.w, line)
	require.NoError(t, err)
}

type collected struct {
	mu      sync.Mutex
	updates []Update
}

func (c *collected) handle(u Update) {
	c.mu.Lock()
	c.updates = append(c.updates, u)
	c.mu.Unlock()
}

func (c *collected) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.updates)
}

func TestSerialSource_Unavailable(t *testing.T) {
	src := NewSerialSource(utils.MotionConfig{}, nil)
	require.False(t, src.Available())
	_, err := src.Start(10*time.Millisecond, func(Update) {})
	require.True(t, errors.Is(err, ErrUnavailable))
}

func TestSerialSource_OpenError(t *testing.T) {
	src := NewSerialSource(utils.MotionConfig{SerialPort: "/dev/null-port"}, func(serial.OpenOptions) (io.ReadWriteCloser, error) {
		return nil, errors.New("no such device")
	})
	_, err := src.Start(10*time.Millisecond, func(Update) {})
	require.ErrorContains(t, err, "no such device")
}

func TestSerialSource_FanOutAndClose(t *testing.T) {
	port := newPipePort()
	var opened []serial.OpenOptions
	src := NewSerialSource(utils.MotionConfig{SerialPort: "/dev/ttyUSB0", BaudRate: 57600}, func(o serial.OpenOptions) (io.ReadWriteCloser, error) {
		opened = append(opened, o)
		return port, nil
	})
	require.True(t, src.Available())

	var a, b collected
	subA, err := src.Start(0, a.handle)
	require.NoError(t, err)
	subB, err := src.Start(0, b.handle)
	require.NoError(t, err)
	require.Len(t, opened, 1, "port opened once for both subscriptions")
	require.EqualValues(t, 57600, opened[0].BaudRate)

	port.send(t, "0.1,0.2,0.3,1,2,3")
	port.send(t, "garbage")
	port.send(t, "0.4,0.5,0.6,4,5,6")
	require.Eventually(t, func() bool { return a.len() == 2 && b.len() == 2 }, time.Second, 5*time.Millisecond)

	produced, dropped := src.Stats()
	require.EqualValues(t, 2, produced)
	require.EqualValues(t, 1, dropped)

	subA.Cancel()
	require.False(t, port.isClosed(), "port stays open while a subscriber remains")

	port.send(t, "1,1,1,1,1,1")
	require.Eventually(t, func() bool { return b.len() == 3 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 2, a.len(), "no delivery after Cancel")

	subB.Cancel()
	require.True(t, port.isClosed(), "last cancel closes the port")
}

func TestSerialSource_Throttle(t *testing.T) {
	port := newPipePort()
	src := NewSerialSource(utils.MotionConfig{SerialPort: "/dev/ttyUSB0"}, func(serial.OpenOptions) (io.ReadWriteCloser, error) {
		return port, nil
	})

	var fast, slow collected
	subFast, err := src.Start(0, fast.handle)
	require.NoError(t, err)
	subSlow, err := src.Start(time.Hour, slow.handle)
	require.NoError(t, err)
	defer subFast.Cancel()
	defer subSlow.Cancel()

	for i := 0; i < 5; i++ {
		port.send(t, "0,0,0,0,0,0")
	}
	require.Eventually(t, func() bool { return fast.len() == 5 }, time.Second, 5*time.Millisecond)
	require.Equal(t, 1, slow.len(), "hourly subscriber sees only the first update")
}

// ─── SimulatedSource ────────────────────────────────────────────────────

func TestSimulatedSource_DeliversAndStops(t *testing.T) {
	src := NewSimulatedSource(42)
	require.True(t, src.Available())

	var c collected
	sub, err := src.Start(time.Millisecond, c.handle)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return c.len() >= 20 }, 2*time.Second, 5*time.Millisecond)

	sub.Cancel()
	n := c.len()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, n, c.len(), "no delivery after Cancel")
	require.EqualValues(t, n, src.Stats())
}

func TestSimulatedSource_SwingBurst(t *testing.T) {
	src := NewSimulatedSource(7)
	rng := rand.New(rand.NewSource(1))

	idle := src.read(time.Now(), 1.0, rng)
	require.Less(t, idle.UserAcceleration.Norm(), 0.1)

	peak := src.read(time.Now(), swingDuration/2, rng)
	require.Greater(t, peak.UserAcceleration.Norm(), 1.0)
	require.Greater(t, peak.RotationRate.Norm(), 5.0)
}
