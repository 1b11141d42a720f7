package collector

import "speedsense/models"

const (
	// PeakHeight is the minimum accelerometer magnitude (m/s²) of a swing peak.
	PeakHeight = 10.0
	// SpeedFloor ends the backward integration from a peak.
	SpeedFloor = 0.5
	// SampleInterval is the nominal time between accelerometer rows, seconds.
	SampleInterval = 0.01
)

// FindPeaks returns the indices of local maxima of x whose height is at least
// minHeight. A flat top counts once, at its midpoint (rounded down). The
// first and last samples are never peaks.
func FindPeaks(x []float64, minHeight float64) []int {
	var peaks []int
	last := len(x) - 1
	for i := 1; i < last; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}
		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			mid := (i + ahead - 1) / 2
			if x[mid] >= minHeight {
				peaks = append(peaks, mid)
			}
			i = ahead
		}
	}
	return peaks
}

// EstimateSpeeds attaches a swing speed to every accelerometer row. Rows at a
// peak get the magnitude integrated backwards until it drops to SpeedFloor;
// every other row gets 0.
func EstimateSpeeds(rows []models.StoredSample) []models.SpeedPoint {
	mags := make([]float64, len(rows))
	out := make([]models.SpeedPoint, len(rows))
	for i, r := range rows {
		mags[i] = r.Magnitude
		out[i] = models.SpeedPoint{ID: r.ID}
	}

	for _, peak := range FindPeaks(mags, PeakHeight) {
		var speed float64
		for i := peak; mags[i] > SpeedFloor && i > 0; i-- {
			speed += mags[i] * SampleInterval
		}
		out[peak].Speed = speed
	}
	return out
}
