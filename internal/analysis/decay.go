package analysis

import (
	"fmt"
	"math"
)

// DecayFit is a least-squares fit of peak(t) = A * exp(-lambda * t).
type DecayFit struct {
	Lambda    float64 // decay rate
	Amplitude float64 // fitted peak at t = 0
	Residual  float64 // RMS residual of the log-linear fit
}

// FitDecay fits an exponential decay to a peak history by linear
// regression on log(peak). Samples with non-positive peaks are
// skipped, they carry no decay information.
func FitDecay(times, peaks []float64) (DecayFit, error) {
	if len(times) != len(peaks) {
		return DecayFit{}, fmt.Errorf("length mismatch: %d times, %d peaks", len(times), len(peaks))
	}

	ts := make([]float64, 0, len(times))
	logs := make([]float64, 0, len(times))
	for i := range times {
		if peaks[i] <= 0 {
			continue
		}
		ts = append(ts, times[i])
		logs = append(logs, math.Log(peaks[i]))
	}
	if len(ts) < 2 {
		return DecayFit{}, fmt.Errorf("need at least 2 positive samples, got %d", len(ts))
	}

	n := float64(len(ts))
	var sumT, sumL, sumTT, sumTL float64
	for i := range ts {
		sumT += ts[i]
		sumL += logs[i]
		sumTT += ts[i] * ts[i]
		sumTL += ts[i] * logs[i]
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return DecayFit{}, fmt.Errorf("degenerate time axis")
	}

	slope := (n*sumTL - sumT*sumL) / denom
	intercept := (sumL - slope*sumT) / n

	var ss float64
	for i := range ts {
		r := logs[i] - (intercept + slope*ts[i])
		ss += r * r
	}

	return DecayFit{
		Lambda:    -slope,
		Amplitude: math.Exp(intercept),
		Residual:  math.Sqrt(ss / n),
	}, nil
}

// HalfLife converts a decay rate into the time for the peak to halve.
func (f DecayFit) HalfLife() float64 {
	if f.Lambda <= 0 {
		return math.Inf(1)
	}
	return math.Ln2 / f.Lambda
}

// PeakHistory extracts the max-magnitude value of each frame.
func PeakHistory(frames [][]float64) []float64 {
	peaks := make([]float64, len(frames))
	for i, u := range frames {
		max := 0.0
		for _, v := range u {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
		peaks[i] = max
	}
	return peaks
}
