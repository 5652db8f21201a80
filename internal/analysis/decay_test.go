package analysis

import (
	"math"
	"testing"
)

func TestFitDecayExact(t *testing.T) {
	// Synthetic samples of 2 * exp(-3t) must be recovered exactly.
	times := make([]float64, 50)
	peaks := make([]float64, 50)
	for i := range times {
		times[i] = float64(i) * 0.01
		peaks[i] = 2 * math.Exp(-3*times[i])
	}

	fit, err := FitDecay(times, peaks)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(fit.Lambda-3) > 1e-10 {
		t.Errorf("expected lambda 3, got %f", fit.Lambda)
	}
	if math.Abs(fit.Amplitude-2) > 1e-10 {
		t.Errorf("expected amplitude 2, got %f", fit.Amplitude)
	}
	if fit.Residual > 1e-10 {
		t.Errorf("expected near-zero residual, got %g", fit.Residual)
	}

	half := fit.HalfLife()
	if math.Abs(half-math.Ln2/3) > 1e-10 {
		t.Errorf("expected half-life %f, got %f", math.Ln2/3, half)
	}
}

func TestFitDecaySkipsNonPositive(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	peaks := []float64{1, 0, math.Exp(-2), -1}

	fit, err := FitDecay(times, peaks)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(fit.Lambda-1) > 1e-10 {
		t.Errorf("expected lambda 1, got %f", fit.Lambda)
	}
}

func TestFitDecayErrors(t *testing.T) {
	if _, err := FitDecay([]float64{0, 1}, []float64{1}); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, err := FitDecay([]float64{0}, []float64{1}); err == nil {
		t.Error("expected too-few-samples error")
	}
	if _, err := FitDecay([]float64{1, 1}, []float64{1, 2}); err == nil {
		t.Error("expected degenerate time axis error")
	}
}

func TestHalfLifeNonDecaying(t *testing.T) {
	fit := DecayFit{Lambda: -0.5}
	if !math.IsInf(fit.HalfLife(), 1) {
		t.Error("growing solution should report infinite half-life")
	}
}

func TestPeakHistory(t *testing.T) {
	frames := [][]float64{
		{0, 1, 0},
		{0, -0.5, 0.25},
	}
	peaks := PeakHistory(frames)
	if peaks[0] != 1 || peaks[1] != 0.5 {
		t.Errorf("unexpected peaks %v", peaks)
	}
}
