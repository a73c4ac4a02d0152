package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cylsim/internal/engine"
	"github.com/san-kum/cylsim/internal/metrics"
	"github.com/san-kum/cylsim/internal/sim"
	"github.com/san-kum/cylsim/internal/thermo"
)

const (
	canvasWidth     = 40
	canvasHeight    = 24
	historyCapacity = 240
	samplesPerTick  = 8
	DefaultFPS      = 30
	speedStep       = 1.1
)

type TickMsg time.Time

// Model runs a generator in real time.
type Model struct {
	gen     *engine.Generator
	initial *engine.Generator
	name    string
	fps     int
	canvas  *Canvas
	theme   Theme
	running bool

	pressureHistory    []float64
	temperatureHistory []float64

	preview     *sim.Result
	previewPeak float64
	err         error
}

// NewModel takes ownership of g. Reset returns to the state g has now.
func NewModel(g *engine.Generator, name string, fps int) Model {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return Model{
		gen:                g,
		initial:            g.Clone(),
		name:               name,
		fps:                fps,
		canvas:             NewCanvas(canvasWidth, canvasHeight),
		theme:              ThemeDark,
		running:            true,
		pressureHistory:    make([]float64, 0, historyCapacity),
		temperatureHistory: make([]float64, 0, historyCapacity),
	}
}

// Run starts the live view on the alternate screen and blocks until quit.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "+", "=":
			m.gen.Engine.Speed *= speedStep
		case "-", "_":
			m.gen.Engine.Speed /= speedStep
		case "p":
			m.runPreview()
		case "t":
			m.theme = NextTheme(m.theme)
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running && m.err == nil {
			m.advance()
		}
		return m, m.tick()
	}
	return m, nil
}

// StepsPerTick is the number of generator steps per frame, which keeps the
// simulation in real time.
func (m *Model) StepsPerTick() int {
	return max(1, int(math.Round(m.gen.Rate/float64(m.fps))))
}

// advance runs one frame of steps, sampling cylinder 0 into the histories.
// A failed step stops the model; nothing is stepped after it.
func (m *Model) advance() {
	n := m.StepsPerTick()
	stride := max(1, n/samplesPerTick)

	for i := 1; i <= n; i++ {
		if err := m.gen.Step(); err != nil {
			m.err = err
			m.running = false
			return
		}
		if i%stride == 0 {
			m.sample()
		}
	}
}

func (m *Model) sample() {
	c := &m.gen.Engine.Cylinders[0]
	m.pressureHistory = pushBounded(m.pressureHistory, c.Pressure()/thermo.Bar)
	m.temperatureHistory = pushBounded(m.temperatureHistory, c.Temperature())
}

func pushBounded(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

// runPreview simulates the next revolution on a copy of the generator.
func (m *Model) runPreview() {
	speed := math.Abs(m.gen.Engine.Speed)
	if speed == 0 || m.err != nil {
		m.preview = nil
		return
	}

	steps := max(1, int(math.Ceil(2*math.Pi/speed*m.gen.Rate)))
	cfg := sim.Config{Steps: steps, Decimate: max(1, steps/historyCapacity)}

	s := sim.New()
	peak := metrics.NewPeakPressure(0)
	s.AddMetric(peak)

	result, err := s.Preview(context.Background(), m.gen, cfg)
	if err != nil {
		m.preview = nil
		m.err = fmt.Errorf("preview: %w", err)
		return
	}
	m.preview = result
	m.previewPeak = peak.Value()
}

func (m *Model) reset() {
	m.gen = m.initial.Clone()
	m.pressureHistory = m.pressureHistory[:0]
	m.temperatureHistory = m.temperatureHistory[:0]
	m.preview = nil
	m.err = nil
	m.running = true
}

// draw renders cylinder 0 side on: crank circle at the bottom, rod up to the
// piston, bore walls and head above.
func (m *Model) draw() {
	m.canvas.Clear()
	c := &m.gen.Engine.Cylinders[0]
	pos := m.gen.Engine.Position

	pw, ph := m.canvas.PixelWidth(), m.canvas.PixelHeight()
	scale := float64(ph-4) / (c.CylinderHeight + c.CrankRadius)
	cx := pw / 2
	cy := ph - 2 - int(math.Round(c.CrankRadius*scale))
	px := func(v float64) int { return int(math.Round(v * scale)) }

	theta := pos + c.Phase
	sin, cos := math.Sincos(theta)
	pinX, pinY := cx+px(c.CrankRadius*sin), cy-px(c.CrankRadius*cos)

	pistonHeight := c.CylinderHeight - c.Volume(pos)/c.FaceArea
	if math.IsNaN(pistonHeight) {
		return
	}
	pistonY := cy - px(pistonHeight)

	bore := px(math.Sqrt(c.FaceArea / math.Pi))
	top := cy - px(c.CylinderHeight)
	skirt := cy - px(c.RodLength-c.CrankRadius)

	m.canvas.DrawCircle(cx, cy, px(c.CrankRadius))
	m.canvas.DrawLine(cx, cy, pinX, pinY)
	m.canvas.DrawLine(pinX, pinY, cx, pistonY)
	m.canvas.DrawRect(cx-bore+1, pistonY-2, cx+bore-1, pistonY+2)
	m.canvas.DrawLine(cx-bore, top, cx+bore, top)
	m.canvas.DrawLine(cx-bore, top, cx-bore, skirt)
	m.canvas.DrawLine(cx+bore, top, cx+bore, skirt)
}

func (m Model) View() string {
	st := newStyles(m.theme)
	m.draw()
	canvasView := st.canvas.Render(st.engine.Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.name)) + "\n")

	switch {
	case m.err != nil:
		s.WriteString(st.failed.Render("STOPPED") + "\n")
		s.WriteString(st.failed.Render(m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	}

	e := m.gen.Engine
	angle := math.Mod(e.Position, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3fs", m.gen.Time()))
	row("Speed", fmt.Sprintf("%.0f rpm", e.RPM()))
	row("Crank", fmt.Sprintf("%s %5.1f°", CycleBar(angle/(2*math.Pi), 12), angle*180/math.Pi))
	for i := range e.Cylinders {
		c := &e.Cylinders[i]
		row(fmt.Sprintf("Cyl %d", i), fmt.Sprintf("%7.3f bar %6.1f K", c.Pressure()/thermo.Bar, c.Temperature()))
	}

	if len(m.pressureHistory) > 1 {
		chart := asciigraph.Plot(m.pressureHistory, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("Pressure (bar)"))
		s.WriteString(st.graph.Render(chart) + "\n")
		chart = asciigraph.Plot(m.temperatureHistory, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("Temperature (K)"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	if m.preview != nil && len(m.preview.Cylinders) > 0 {
		pressure := make([]float64, len(m.preview.Cylinders[0].Pressure))
		for i, p := range m.preview.Cylinders[0].Pressure {
			pressure[i] = p / thermo.Bar
		}
		s.WriteString(st.preview.Render(fmt.Sprintf("Next revolution: peak %.3f bar", m.previewPeak/thermo.Bar)) + "\n")
		if len(pressure) > 1 {
			chart := asciigraph.Plot(pressure, asciigraph.Height(4), asciigraph.Width(40))
			s.WriteString(st.preview.Render(chart) + "\n")
		}
	}

	s.WriteString(st.help.Render("SP:Pause +/-:Speed P:Preview T:Theme R:Reset Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
}

// Preview returns the last previewed revolution, or nil.
func (m Model) Preview() *sim.Result { return m.preview }

func (m Model) Err() error { return m.err }

func (m Model) Generator() *engine.Generator { return m.gen }

func (m Model) Running() bool { return m.running }

func (m Model) Theme() Theme { return m.theme }

func (m Model) History() (pressure, temperature []float64) {
	return m.pressureHistory, m.temperatureHistory
}
