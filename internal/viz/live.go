package viz

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/heatlab/internal/grid"
	"github.com/san-kum/heatlab/internal/solve"
)

const (
	graphWidth  = 70
	graphHeight = 8
	// Sweeps of diff history kept for the scrolling chart.
	historyCapacity = 600
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

type liveStatus struct {
	sweep   int
	diff    float64
	history []float64
	done    bool
	err     error
}

// Model drives the live convergence view. The solver runs on its own
// goroutine, publishing per-sweep status under the mutex; the UI polls
// it on a frame tick.
type Model struct {
	rows, cols int
	epsilon    float64
	started    time.Time

	mu     *sync.Mutex
	status *liveStatus
	cancel context.CancelFunc
}

// NewModel starts the solve in the background and returns the UI model
// observing it.
func NewModel(gs *grid.State, solver *solve.Solver, cfg solve.Config) Model {
	mu := &sync.Mutex{}
	status := &liveStatus{}
	ctx, cancel := context.WithCancel(context.Background())

	cfg.OnSweep = func(sweep int, diff float64) {
		mu.Lock()
		status.sweep = sweep
		status.diff = diff
		status.history = append(status.history, diff)
		if len(status.history) > historyCapacity {
			status.history = status.history[len(status.history)-historyCapacity:]
		}
		mu.Unlock()
	}

	go func() {
		_, err := solver.Run(ctx, gs, cfg)
		mu.Lock()
		status.done = true
		status.err = err
		mu.Unlock()
	}()

	return Model{
		rows:    gs.Rows(),
		cols:    gs.Cols(),
		epsilon: cfg.Epsilon,
		started: time.Now(),
		mu:      mu,
		status:  status,
		cancel:  cancel,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case TickMsg:
		m.mu.Lock()
		done := m.status.done
		m.mu.Unlock()
		if done {
			return m, tea.Quit
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m Model) View() string {
	m.mu.Lock()
	sweep := m.status.sweep
	diff := m.status.diff
	done := m.status.done
	err := m.status.err
	history := make([]float64, len(m.status.history))
	copy(history, m.status.history)
	m.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("heatlab — steady-state relaxation"))
	sb.WriteByte('\n')

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}
	line("grid", fmt.Sprintf("%d x %d", m.rows, m.cols))
	line("epsilon", fmt.Sprintf("%g", m.epsilon))
	line("sweep", fmt.Sprintf("%d", sweep))
	line("diff", fmt.Sprintf("%.8g", diff))
	line("elapsed", time.Since(m.started).Round(time.Millisecond).String())

	if len(history) >= 2 {
		data := make([]float64, len(history))
		for i, v := range history {
			if v <= 0 {
				v = math.SmallestNonzeroFloat64
			}
			data[i] = math.Log10(v)
		}
		chart := asciigraph.Plot(data,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("log10(diff)"),
		)
		sb.WriteString(graphStyle.Render(chart))
		sb.WriteByte('\n')
	}

	switch {
	case err != nil:
		sb.WriteString(errStyle.Render("stopped: " + err.Error()))
		sb.WriteByte('\n')
	case done:
		sb.WriteString(doneStyle.Render("converged"))
		sb.WriteByte('\n')
	}

	sb.WriteString(helpStyle.Render("q: quit"))
	sb.WriteByte('\n')
	return sb.String()
}

// RunLive blocks until the live view exits, returning any UI error.
func RunLive(gs *grid.State, solver *solve.Solver, cfg solve.Config) error {
	p := tea.NewProgram(NewModel(gs, solver, cfg))
	_, err := p.Run()
	return err
}
