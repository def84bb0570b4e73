package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/Ryan-CodingExtraordinaire/careersim/internal/career"
	"github.com/Ryan-CodingExtraordinaire/careersim/internal/sim"
)

const historyCapacity = 2000

type TickMsg time.Time

// Model steps one career simulation in real time and renders the evolving
// trajectory.
type Model struct {
	dyn        sim.Dynamics
	integrator sim.Integrator
	state      sim.State
	initial    sim.State
	t          float64
	dt         float64
	years      float64
	fps        int

	payHistory      []float64
	statusHistory   []float64
	researchHistory []float64

	running  bool
	showHelp bool
	done     bool
}

func NewModel(dyn sim.Dynamics, integ sim.Integrator, x0 sim.State, dt, years float64, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		dyn:             dyn,
		integrator:      integ,
		state:           x0.Clone(),
		initial:         x0.Clone(),
		dt:              dt,
		years:           years,
		fps:             fps,
		payHistory:      make([]float64, 0, historyCapacity),
		statusHistory:   make([]float64, 0, historyCapacity),
		researchHistory: make([]float64, 0, historyCapacity),
		running:         true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
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
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.done {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.state = m.initial.Clone()
	m.t = 0
	m.done = false
	m.payHistory = m.payHistory[:0]
	m.statusHistory = m.statusHistory[:0]
	m.researchHistory = m.researchHistory[:0]
}

func (m *Model) step() {
	next := m.integrator.Step(m.dyn, m.state, m.t, m.dt)
	if !next.IsValid() {
		m.done = true
		return
	}
	m.state = next
	m.t += m.dt
	if m.t >= m.years {
		m.done = true
	}

	m.payHistory = append(m.payHistory, m.state[career.IPay])
	m.statusHistory = append(m.statusHistory, m.state[career.IStatus])
	m.researchHistory = append(m.researchHistory, m.state[career.IResearch])
	if len(m.payHistory) > historyCapacity {
		m.payHistory = m.payHistory[1:]
		m.statusHistory = m.statusHistory[1:]
		m.researchHistory = m.researchHistory[1:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("careersim live"))
	b.WriteString("\n")

	if len(m.payHistory) > 1 {
		b.WriteString(graphStyle.Render(asciigraph.Plot(m.payHistory,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("pay"),
		)))
		b.WriteString("\n")
		b.WriteString(graphStyle.Render(asciigraph.PlotMany(
			[][]float64{m.statusHistory, m.researchHistory},
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
			asciigraph.Caption("status / research"),
		)))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("year"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f / %.0f", m.t, m.years)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("pay"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f", m.state[career.IPay])))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("status"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f", m.state[career.IStatus])))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("research"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f", m.state[career.IResearch])))
	b.WriteString("\n")

	if m.done {
		b.WriteString(valueStyle.Render("career complete. press r to restart, q to quit."))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(helpStyle.Render("space: pause/resume  r: reset  ?: toggle help  q: quit"))
	} else {
		b.WriteString(helpStyle.Render("? for help"))
	}
	b.WriteString("\n")

	return b.String()
}
