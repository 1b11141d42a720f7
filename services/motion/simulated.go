package motion

import (
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"speedsense/models"
	"speedsense/utils"
)

const (
	swingPeriod   = 2.0  // seconds between simulated swings
	swingDuration = 0.25 // seconds a swing lasts
	swingPeakG    = 2.6  // peak user acceleration of a swing
	swingPeakRate = 12.0 // peak rotation rate of a swing, rad/s
)

// SimulatedSource produces synthetic wrist motion: a slow idle sway with
// noise and a sharp swing burst every couple of seconds.
type SimulatedSource struct {
	seed     int64
	started  uint64
	produced uint64
}

func NewSimulatedSource(seed int64) *SimulatedSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedSource{seed: seed}
}

func (s *SimulatedSource) Available() bool { return true }

// Start launches one ticker goroutine for h. Cancel waits for it to exit.
func (s *SimulatedSource) Start(interval time.Duration, h Handler) (*Subscription, error) {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	n := atomic.AddUint64(&s.started, 1)
	rng := rand.New(rand.NewSource(s.seed + int64(n)))

	quit := make(chan struct{})
	done := make(chan struct{})
	go s.run(interval, h, rng, quit, done)

	utils.L().Info("simulated motion started  (interval=%s, subscription=%d)", interval, n)
	return NewSubscription(func() {
		close(quit)
		<-done
		utils.L().Info("simulated motion stopped  (subscription=%d, produced=%d)",
			n, atomic.LoadUint64(&s.produced))
	}), nil
}

func (s *SimulatedSource) run(interval time.Duration, h Handler, rng *rand.Rand, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := interval.Seconds()
	var step float64
	for {
		select {
		case <-quit:
			return
		case now := <-ticker.C:
			h(s.read(now, step, rng))
			step += dt
			atomic.AddUint64(&s.produced, 1)
		}
	}
}

func (s *SimulatedSource) read(now time.Time, step float64, rng *rand.Rand) Update {
	noise := func(scale float64) float64 { return (rng.Float64() - 0.5) * scale }

	u := Update{
		CaptureTime: now,
		UserAcceleration: models.Vector3{
			X: 0.02*math.Sin(step*2*math.Pi*0.8) + noise(0.01),
			Y: 0.01*math.Cos(step*2*math.Pi*0.8) + noise(0.01),
			Z: noise(0.01),
		},
		RotationRate: models.Vector3{
			X: 0.05*math.Sin(step*2*math.Pi*0.5) + noise(0.005),
			Y: 0.05*math.Cos(step*2*math.Pi*0.5) + noise(0.005),
			Z: noise(0.005),
		},
	}

	phase := math.Mod(step, swingPeriod)
	if phase < swingDuration {
		env := math.Sin(math.Pi * phase / swingDuration)
		u.UserAcceleration.X += swingPeakG * env
		u.UserAcceleration.Y += 0.4 * swingPeakG * env
		u.RotationRate.Z += swingPeakRate * env
	}
	return u
}

// Stats returns the number of updates delivered across all subscriptions.
func (s *SimulatedSource) Stats() uint64 {
	return atomic.LoadUint64(&s.produced)
}
