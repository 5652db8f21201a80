package export

import (
	"strings"
	"testing"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/viz"
)

func TestProfileToSVG(t *testing.T) {
	grid, err := diffusion.NewGrid(-1, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	u := diffusion.Solution{0.5, 1.0, 0.5}

	svg := ProfileToSVG(grid, u, 400, 200, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing path element")
	}
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Error("missing stroke color")
	}
	// 5 padded points, one M plus four L segments.
	if strings.Count(svg, " L") != 4 {
		t.Errorf("expected 4 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestProfileToSVGDegenerate(t *testing.T) {
	grid, _ := diffusion.NewGrid(0, 1, 1)
	if svg := ProfileToSVG(grid, diffusion.Solution{}, 100, 100, "#fff"); svg != "" {
		t.Error("mismatched lengths should yield empty output")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasToSVG(c, 4)
	if !strings.Contains(svg, "<circle") {
		t.Error("expected circle elements for lit pixels")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 circles, got %d", strings.Count(svg, "<circle"))
	}

	if CanvasToSVG(nil, 4) != "" {
		t.Error("nil canvas should yield empty output")
	}
}
