package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/heatlab/internal/diffusion"
	"github.com/san-kum/heatlab/internal/material"
	"github.com/san-kum/heatlab/internal/profile"
	"github.com/san-kum/heatlab/internal/solver"
)

var materialInfo = map[string]string{
	"constant":    "linear baseline",
	"rational":    "saturating diffusivity",
	"quadratic":   "temperature-enhanced",
	"exponential": "stiff growth",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

type app struct {
	state, cursor int
	materials     []string
	selected      string
	params        map[string]float64
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	width, height int
	liveModel     Model
}

// NewInteractiveApp builds the launcher shown when heatlab starts
// without a subcommand.
func NewInteractiveApp() *app {
	return &app{
		state:     stateMenu,
		materials: []string{"constant", "rational", "quadratic", "exponential"},
		params: map[string]float64{
			"k0": 0.5, "alpha": 1.0, "dt": 1e-4,
			"nx": 63, "width": 0.25, "amp": 1.0,
		},
		paramNames: []string{"k0", "dt", "nx", "width", "amp"},
		width:      80, height: 24,
	}
}

func (a app) Init() tea.Cmd { return nil }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil
	default:
		if a.state == stateSim {
			newLive, cmd := a.liveModel.Update(msg)
			a.liveModel = newLive.(Model)
			return a, cmd
		}
	}
	return a, nil
}

func (a app) handleKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateConfig:
		return a.configKey(msg)
	case stateSim:
		if msg.String() == "escape" {
			a.state = stateConfig
			return a, nil
		}
		newLive, cmd := a.liveModel.Update(msg)
		a.liveModel = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a app) menuKey(msg tea.KeyMsg) (app, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.materials)-1 {
			a.cursor++
		}
	case "enter", " ":
		a.selected = a.materials[a.cursor]
		a.state, a.paramCursor = stateConfig, 0
		a.paramNames = []string{"k0", "dt", "nx", "width", "amp"}
		if a.selected == "exponential" {
			a.paramNames = []string{"k0", "alpha", "dt", "nx", "width", "amp"}
		}
	}
	return a, nil
}

func (a app) configKey(msg tea.KeyMsg) (app, tea.Cmd) {
	if a.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(a.editBuf, "%f", &val)
			a.params[a.paramNames[a.paramCursor]] = val
			a.editing, a.editBuf = false, ""
		case "escape":
			a.editing, a.editBuf = false, ""
		case "backspace":
			if len(a.editBuf) > 0 {
				a.editBuf = a.editBuf[:len(a.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					a.editBuf += string(c)
				}
			}
		}
		return a, nil
	}
	switch msg.String() {
	case "q", "escape":
		a.state = stateMenu
	case "up", "k":
		if a.paramCursor > 0 {
			a.paramCursor--
		}
	case "down", "j":
		if a.paramCursor < len(a.paramNames)-1 {
			a.paramCursor++
		}
	case "enter", " ":
		a.editing, a.editBuf = true, fmt.Sprintf("%g", a.params[a.paramNames[a.paramCursor]])
	case "s":
		return a.start()
	}
	return a, nil
}

// start assembles a grid, Newton solver, and gaussian profile from the
// tuned parameters and hands off to the live view.
func (a app) start() (app, tea.Cmd) {
	n := int(a.params["nx"])
	if n < 1 {
		n = 63
	}
	grid, err := diffusion.NewGrid(-1, 1, n)
	if err != nil {
		return a, nil
	}

	dt := a.params["dt"]
	if dt <= 0 {
		dt = 1e-4
	}

	k0 := a.params["k0"]
	alpha := a.params["alpha"]
	var makeMat func(float64) material.Model
	switch a.selected {
	case "constant":
		makeMat = material.Constant
	case "quadratic":
		makeMat = material.Quadratic
	case "exponential":
		makeMat = func(k float64) material.Model { return material.Exponential(k, alpha) }
	default:
		makeMat = material.Rational
	}

	u0 := profile.Sample(profile.Gaussian(0, a.params["width"], a.params["amp"]), grid)

	a.liveModel = NewModel(grid, a.selected, k0, makeMat, solver.NewNewton(solver.NewTridiag()), u0, dt)
	a.state = stateSim
	return a, a.liveModel.Init()
}

func (a app) View() string {
	switch a.state {
	case stateMenu:
		return a.viewMenu()
	case stateConfig:
		return a.viewConfig()
	case stateSim:
		return a.liveModel.View()
	}
	return ""
}

var (
	menuHeader   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuPointer  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDetail   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuInactive = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuFaint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKeycap   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
)

func (a app) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuHeader.Render("HEATLAB") + "\n    " + menuSub.Render("nonlinear diffusion lab") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.materials {
		desc := materialInfo[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-14s", name)), menuDetail.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuInactive.Render(fmt.Sprintf("  %-14s", name)), menuFaint.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKeycap.Render("j/k") + menuInactive.Render(" navigate  ") + menuKeycap.Render("enter") + menuInactive.Render(" select  ") + menuKeycap.Render("q") + menuInactive.Render(" quit") + "\n")
	return b.String()
}

func (a app) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuHeader.Render(strings.ToUpper(a.selected)) + "\n    " + menuSub.Render(materialInfo[a.selected]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range a.paramNames {
		valStr := fmt.Sprintf("%10g", a.params[name])
		if a.editing && i == a.paramCursor {
			valStr = fmt.Sprintf("%10s", a.editBuf+"_")
		}
		if i == a.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuPointer.Render("▸"), menuActive.Render(fmt.Sprintf("%-8s", name)), menuDetail.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("    %s %s\n", menuInactive.Render(fmt.Sprintf("  %-8s", name)), menuFaint.Render(valStr)))
		}
	}
	b.WriteString("\n    " + menuKeycap.Render("j/k") + menuInactive.Render(" select  ") + menuKeycap.Render("enter") + menuInactive.Render(" edit  ") + menuKeycap.Render("s") + menuInactive.Render(" start  ") + menuKeycap.Render("esc") + menuInactive.Render(" back") + "\n")
	return b.String()
}

func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen()).Run()
	return err
}
