package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/solver"
)

const (
	width           = 70
	height          = 20
	historyCapacity = 600
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives a live implicit-Euler run inside the terminal. Each
// animation tick advances one time step through the Newton solver.
type Model struct {
	grid     diffusion.Grid
	mat      material.Model
	makeMat  func(k0 float64) material.Model
	newton   *solver.Newton
	u        diffusion.Solution
	initial  diffusion.Solution
	t, dt, c float64
	k0       float64
	initK0   float64

	canvas       *Canvas
	peakHistory  []float64
	umax         float64
	lastIters    int
	running      bool
	failed       error
	materialName string
}

// NewModel builds the live view. makeMat rebuilds the material when
// the user tunes k0 with the arrow keys.
func NewModel(grid diffusion.Grid, materialName string, k0 float64, makeMat func(float64) material.Model, newton *solver.Newton, u0 diffusion.Solution, dt float64) Model {
	dx := grid.Dx()
	return Model{
		grid:         grid,
		mat:          makeMat(k0),
		makeMat:      makeMat,
		newton:       newton,
		u:            u0.Clone(),
		initial:      u0.Clone(),
		dt:           dt,
		c:            dt / (dx * dx),
		k0:           k0,
		initK0:       k0,
		canvas:       NewCanvas(width, height),
		peakHistory:  make([]float64, 0, historyCapacity),
		umax:         u0.MaxAbs(),
		running:      true,
		materialName: materialName,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.failed == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "up", "k":
			m.adjustK0(1.05)
		case "down", "j":
			m.adjustK0(0.95)
		}
	case TickMsg:
		if m.running && m.failed == nil {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) adjustK0(factor float64) {
	m.k0 *= factor
	m.mat = m.makeMat(m.k0)
}

// step advances one implicit time step. On solver failure the run
// freezes with the last accepted profile on screen.
func (m *Model) step() {
	next, stats, err := m.newton.Solve(m.u, m.c, m.mat)
	if err != nil {
		m.failed = err
		m.running = false
		return
	}
	m.u = next
	m.t += m.dt
	m.lastIters = stats.Iterations

	m.peakHistory = append(m.peakHistory, m.u.MaxAbs())
	if len(m.peakHistory) > historyCapacity {
		m.peakHistory = m.peakHistory[1:]
	}
}

func (m *Model) reset() {
	m.t = 0
	m.u = m.initial.Clone()
	m.peakHistory = m.peakHistory[:0]
	m.lastIters = 0
	m.failed = nil
	m.running = true
	m.k0 = m.initK0
	m.mat = m.makeMat(m.k0)
	m.umax = m.initial.MaxAbs()
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.canvas.DrawProfile(m.u, m.umax)
}

func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.materialName)+" DIFFUSION") + "\n")

	status := "RUNNING"
	if m.failed != nil {
		status = errorStyle.Render("FAILED: " + m.failed.Error())
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	if len(m.peakHistory) > 1 {
		chart := asciigraph.Plot(m.peakHistory, asciigraph.Height(4), asciigraph.Width(28), asciigraph.Caption("Peak"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4fs", m.t)) + "\n")
	peak := 0.0
	if len(m.peakHistory) > 0 {
		peak = m.peakHistory[len(m.peakHistory)-1]
	}
	s.WriteString(labelStyle.Render("Peak") + valueStyle.Render(fmt.Sprintf("%.4f", peak)) + "\n")
	s.WriteString(labelStyle.Render("Newton iters") + valueStyle.Render(fmt.Sprintf("%d", m.lastIters)) + "\n")
	s.WriteString(labelStyle.Render("k0") + valueStyle.Render(fmt.Sprintf("%.4f", m.k0)) + "\n")
	s.WriteString(labelStyle.Render("dt") + valueStyle.Render(fmt.Sprintf("%.2e", m.dt)) + "\n")
	s.WriteString(labelStyle.Render("Grid") + valueStyle.Render(fmt.Sprintf("%d interior", m.grid.Nx)) + "\n")

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Reset Q:Quit\n↑↓:Tune k0"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
