// Package ui renders apply and destroy progress as a terminal dashboard
// when stdout is a TTY, and falls back to plain log output otherwise.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PhaseMsg reports a phase starting or finishing.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// ProgressMsg reports progress within a phase.
type ProgressMsg struct {
	Phase   string
	Current int
	Total   int
}

// LogMsg carries a free-form status line.
type LogMsg struct {
	Line string
}

// TickMsg drives the spinner animation.
type TickMsg struct{}

// DoneMsg ends the program.
type DoneMsg struct {
	Err error
}

// phaseState tracks one provisioning phase for display.
type phaseState struct {
	name    string
	active  bool
	done    bool
	err     error
	current int
	total   int
}

// Model is the Bubble Tea model for the progress dashboard.
type Model struct {
	ClusterName string
	Region      string
	Title       string

	phases    []phaseState
	lastLog   string
	startTime time.Time
	frame     int

	Err  error
	Done bool
}

// NewModel creates a dashboard model listing the given phase names.
func NewModel(title, clusterName, region string, phaseNames []string) Model {
	phases := make([]phaseState, len(phaseNames))
	for i, name := range phaseNames {
		phases[i] = phaseState{name: name}
	}
	return Model{
		ClusterName: clusterName,
		Region:      region,
		Title:       title,
		phases:      phases,
		startTime:   time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case PhaseMsg:
		m.applyPhase(msg)
		if msg.Err != nil {
			m.Err = msg.Err
			return m, tea.Quit
		}

	case ProgressMsg:
		for i := range m.phases {
			if m.phases[i].name == msg.Phase {
				m.phases[i].current = msg.Current
				m.phases[i].total = msg.Total
			}
		}

	case LogMsg:
		m.lastLog = msg.Line

	case TickMsg:
		m.frame++
		return m, tickCmd()

	case DoneMsg:
		m.Done = true
		m.Err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyPhase(msg PhaseMsg) {
	for i := range m.phases {
		if m.phases[i].name != msg.Phase {
			continue
		}
		// Anything before a starting phase is finished.
		for j := 0; j < i; j++ {
			m.phases[j].done = true
			m.phases[j].active = false
		}
		m.phases[i].active = !msg.Done
		m.phases[i].done = msg.Done
		m.phases[i].err = msg.Err
		return
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("eksail %s", m.Title)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%s)", m.ClusterName, m.Region)))
	b.WriteString("\n\n")

	for _, phase := range m.phases {
		b.WriteString(m.renderPhase(phase))
		b.WriteString("\n")
	}

	if m.lastLog != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.lastLog))
		b.WriteString("\n")
	}

	elapsed := time.Since(m.startTime).Round(time.Second)
	b.WriteString(footerStyle.Render(fmt.Sprintf("elapsed %s  (ctrl+c to abort)", elapsed)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderPhase(phase phaseState) string {
	var marker, name string

	switch {
	case phase.err != nil:
		marker = failedStyle.Render(crossMark)
		name = failedStyle.Render(phase.name)
	case phase.done:
		marker = doneStyle.Render(checkMark)
		name = doneStyle.Render(phase.name)
	case phase.active:
		marker = activeStyle.Render(spinnerFrames[m.frame%len(spinnerFrames)])
		name = activeStyle.Render(phase.name)
	default:
		marker = dimStyle.Render(pending)
		name = dimStyle.Render(phase.name)
	}

	line := fmt.Sprintf("  %s %s", marker, name)
	if phase.active && phase.total > 0 {
		line += dimStyle.Render(fmt.Sprintf("  %d/%d", phase.current, phase.total))
	}
	return line
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}
