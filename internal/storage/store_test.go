package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/diffusion"
)

func sampleResult() *diffusion.Result {
	return &diffusion.Result{
		Frames: []diffusion.Frame{
			{Step: 0, Time: 0, U: diffusion.Solution{0, 0, 1, 0, 0}},
			{Step: 1, Time: 0.5, U: diffusion.Solution{0, 1.0 / 7, 4.0 / 7, 1.0 / 7, 0}},
		},
		Times:       []float64{0, 0.5},
		NewtonIters: []int{2},
		StepsTaken:  1,
		Metrics: map[string]float64{
			"peak": 4.0 / 7,
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Nx = 3

	runID, err := st.Save(cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Material != cfg.Material {
		t.Errorf("expected material %s, got %s", cfg.Material, meta.Material)
	}
	if meta.Steps != 1 {
		t.Errorf("expected 1 step, got %d", meta.Steps)
	}
	if meta.Metrics["peak"] != 4.0/7 {
		t.Errorf("expected peak %f, got %f", 4.0/7, meta.Metrics["peak"])
	}

	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 frames and 2 times, got %d and %d", len(frames), len(times))
	}
	// Rows carry the boundary-padded profile unchanged.
	if len(frames[0]) != 5 {
		t.Errorf("expected 5 values per frame, got %d", len(frames[0]))
	}
	if frames[0][0] != 0 || frames[0][4] != 0 {
		t.Error("boundary values should be zero")
	}
	if frames[1][2] != 4.0/7 {
		t.Errorf("expected center value %f, got %f", 4.0/7, frames[1][2])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg := config.DefaultConfig()
	cfg.Nx = 3
	if _, err := st.Save(cfg, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Nx = 3
	runID, err := st.Save(cfg, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "frames.csv")); os.IsNotExist(err) {
		t.Error("frames.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")

	cfg := config.DefaultConfig()
	cfg.Nx = 3
	if err := ExportJSON(path, cfg, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty export")
	}
}
