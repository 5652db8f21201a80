package metrics

import (
	"github.com/san-kum/heatlab/internal/diffusion"
)

// Peak tracks the maximum absolute solution value of the latest frame.
type Peak struct {
	name string
	peak float64
	seen bool
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(f diffusion.Frame) {
	p.peak = f.U.MaxAbs()
	p.seen = true
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() {
	p.peak = 0
	p.seen = false
}

// MaxPrinciple counts timesteps whose peak exceeds the previous one
// beyond a relative tolerance. For positive diffusivity and zero
// boundaries the maximum must not grow, so Value below 1 flags a
// violation of the scheme, not of the data.
type MaxPrinciple struct {
	name       string
	tol        float64
	prev       float64
	samples    int
	violations int
}

func NewMaxPrinciple(tol float64) *MaxPrinciple {
	return &MaxPrinciple{name: "max_principle", tol: tol}
}

func (m *MaxPrinciple) Name() string { return m.name }

func (m *MaxPrinciple) Observe(f diffusion.Frame) {
	peak := f.U.MaxAbs()
	if m.samples > 0 && peak > m.prev*(1+m.tol)+m.tol {
		m.violations++
	}
	m.prev = peak
	m.samples++
}

func (m *MaxPrinciple) Value() float64 {
	if m.samples <= 1 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples-1)
}

func (m *MaxPrinciple) Violations() int { return m.violations }

func (m *MaxPrinciple) Reset() {
	m.prev = 0
	m.samples = 0
	m.violations = 0
}

// HeatContent integrates the latest padded frame by the trapezoid rule,
// the discrete total heat in the rod.
type HeatContent struct {
	name string
	dx   float64
	heat float64
}

func NewHeatContent(dx float64) *HeatContent {
	return &HeatContent{name: "heat_content", dx: dx}
}

func (h *HeatContent) Name() string { return h.name }

func (h *HeatContent) Observe(f diffusion.Frame) {
	if len(f.U) < 2 {
		h.heat = 0
		return
	}
	sum := 0.5 * (f.U[0] + f.U[len(f.U)-1])
	for _, v := range f.U[1 : len(f.U)-1] {
		sum += v
	}
	h.heat = sum * h.dx
}

func (h *HeatContent) Value() float64 { return h.heat }

func (h *HeatContent) Reset() { h.heat = 0 }
