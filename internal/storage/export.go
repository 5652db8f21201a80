package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/heatlab/internal/config"
	"github.com/san-kum/heatlab/internal/diffusion"
)

type ExportData struct {
	Material string             `json:"material"`
	Profile  string             `json:"profile"`
	Solver   string             `json:"solver"`
	A        float64            `json:"a"`
	B        float64            `json:"b"`
	Dt       float64            `json:"dt"`
	Nx       int                `json:"nx"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	Frames   [][]float64        `json:"frames"`
	Iters    []int              `json:"newton_iters"`
	Metrics  map[string]float64 `json:"metrics"`
}

func ExportJSON(path string, cfg *config.Config, result *diffusion.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, cfg, result)
}

func ExportJSONStdout(cfg *config.Config, result *diffusion.Result) error {
	return writeExport(os.Stdout, cfg, result)
}

func writeExport(w io.Writer, cfg *config.Config, result *diffusion.Result) error {
	data := ExportData{
		Material: cfg.Material,
		Profile:  cfg.Profile,
		Solver:   cfg.Solver,
		A:        cfg.A,
		B:        cfg.B,
		Dt:       cfg.Dt,
		Nx:       cfg.Nx,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Frames:   make([][]float64, len(result.Frames)),
		Iters:    result.NewtonIters,
		Metrics:  result.Metrics,
	}
	for i, frame := range result.Frames {
		data.Frames[i] = frame.U
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
