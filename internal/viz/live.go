package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/kuramoto/internal/kuramoto"
)

const (
	canvasWidth     = 40
	canvasHeight    = 20
	historyCapacity = 240
	maxStepsPerTick = 64
	couplingFactor  = 1.1
	couplingNudge   = 0.1
)

type TickMsg time.Time

// Builder recreates the network shown by the model, used for reset.
type Builder func() (*kuramoto.Network, error)

// Model is a bubbletea model that steps a network and draws its oscillators
// on a ring together with the order parameter vector.
type Model struct {
	net         *kuramoto.Network
	rebuild     Builder
	name        string
	arrangement kuramoto.Arrangement
	strength    float64

	stepsPerTick int
	running      bool
	showHelp     bool
	canvas       *Canvas
	history      []float64
	theme        Theme
	styles       styles
	err          error
}

// NewModel wraps net. The arrangement is re-applied whenever the coupling
// strength is changed from the keyboard.
func NewModel(net *kuramoto.Network, name string, a kuramoto.Arrangement, rebuild Builder) Model {
	theme := Themes[0]
	return Model{
		net:          net,
		rebuild:      rebuild,
		name:         name,
		arrangement:  a,
		strength:     net.CouplingStrength(),
		stepsPerTick: 1,
		running:      true,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		history:      []float64{net.OrderParameter()},
		theme:        theme,
		styles:       newStyles(theme),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			m.setStrength(m.strength*couplingFactor + couplingNudge)
		case "-", "_":
			m.setStrength((m.strength - couplingNudge) / couplingFactor)
		case "]":
			if m.stepsPerTick < maxStepsPerTick {
				m.stepsPerTick *= 2
			}
		case "[":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "t":
			m.theme = nextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		m.net.Step()
	}
	if !m.net.IsValid() {
		m.err = kuramoto.ErrInvalidState
		m.running = false
		return
	}
	m.history = append(m.history, m.net.OrderParameter())
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) setStrength(k float64) {
	if k < 0 {
		k = 0
	}
	if err := m.net.SetCoupling(m.arrangement, k); err != nil {
		m.err = err
		return
	}
	m.strength = k
	m.err = nil
}

func (m *Model) reset() {
	if m.rebuild == nil {
		return
	}
	net, err := m.rebuild()
	if err != nil {
		m.err = err
		return
	}
	m.net.Close()
	m.net = net
	m.strength = net.CouplingStrength()
	m.history = []float64{net.OrderParameter()}
	m.err = nil
}

// Network returns the network currently displayed.
func (m Model) Network() *kuramoto.Network { return m.net }

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	cx, cy := w/2, h/2
	radius := math.Min(float64(w), float64(h))/2 - 3

	m.canvas.Circle(cx, cy, int(radius), 96)
	for _, theta := range m.net.Phases() {
		x, y := polar(cx, cy, radius, theta)
		m.canvas.Blob(x, y)
	}

	ox, oy := m.net.OrderVector()
	x := cx + int(math.Round(ox*radius))
	y := cy - int(math.Round(oy*radius))
	m.canvas.Line(cx, cy, x, y)
}

func (m Model) View() string {
	m.draw()
	st := m.styles

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")

	status := st.good.Render("RUNNING")
	if !m.running {
		status = st.warn.Render("PAUSED")
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(5),
			asciigraph.Width(32),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("order r(t)"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	order := m.net.OrderParameter()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.net.Time()))
	row("Oscillators", fmt.Sprintf("%d", m.net.Size()))
	row("Mode", m.net.Mode().String())
	row("Topology", m.arrangement.String())
	row("Coupling", fmt.Sprintf("%.3f", m.strength))
	row("Order", fmt.Sprintf("%.3f %s", order, ProgressBar(order, 12)))
	row("Mean phase", fmt.Sprintf("%.3f rad", m.net.AveragePhase()))
	row("Speed", fmt.Sprintf("x%d", m.stepsPerTick))
	if m.err != nil {
		s.WriteString("\n" + st.warn.Render(m.err.Error()) + "\n")
	}

	if m.showHelp {
		s.WriteString(st.help.Render("\nSpace pause   r reset   q quit\n+/- coupling  [/] speed   t theme"))
	} else {
		s.WriteString(st.help.Render("\n? help"))
	}

	canvasView := st.canvas.Render(m.canvas.String())
	statsView := st.stats.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
