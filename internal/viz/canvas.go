package viz

import (
	"math"
	"strings"

	"github.com/san-kum/heatlab/internal/diffusion"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a pixel at (x, y) in sub-pixel coordinates. The canvas
// size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawProfile renders a padded temperature profile as a curve over the
// full canvas width. umax fixes the vertical scale so successive
// frames do not rescale as the solution decays; pass 0 to autoscale.
func (c *Canvas) DrawProfile(u diffusion.Solution, umax float64) {
	padded := u.Padded()
	n := len(padded)
	if n < 2 {
		return
	}

	if umax <= 0 {
		for _, v := range padded {
			if a := math.Abs(v); a > umax {
				umax = a
			}
		}
		if umax == 0 {
			umax = 1
		}
	}

	cw, ch := c.Width*2, c.Height*4
	baseY := ch - 4
	span := float64(baseY - 2)

	// Baseline marks u = 0 with the Dirichlet endpoints ticked.
	c.DrawLine(0, baseY, cw-1, baseY)
	for dy := -2; dy <= 2; dy++ {
		c.Set(0, baseY+dy)
		c.Set(cw-1, baseY+dy)
	}

	scaleX := float64(cw-1) / float64(n-1)
	prevX, prevY := 0, baseY
	for i, v := range padded {
		px := int(float64(i) * scaleX)
		py := baseY - int(v/umax*span)
		if py < 0 {
			py = 0
		}
		if py >= ch {
			py = ch - 1
		}
		if i > 0 {
			c.DrawLine(prevX, prevY, px, py)
		}
		prevX, prevY = px, py
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
