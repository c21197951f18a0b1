package ui

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/imamik/eksail/internal/provisioning"
)

// IsTerminal reports whether stdout is an interactive terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Observer feeds provisioning events into a running Bubble Tea program.
type Observer struct {
	program *tea.Program
}

var _ provisioning.Observer = (*Observer)(nil)

// Printf implements provisioning.Logger. Phase transition lines from the
// pipeline are translated into phase updates, everything else becomes the
// status line.
func (o *Observer) Printf(format string, v ...interface{}) {
	line := fmt.Sprintf(format, v...)

	if phase, done, ok := parsePhaseLine(line); ok {
		o.program.Send(PhaseMsg{Phase: phase, Done: done})
		return
	}
	o.program.Send(LogMsg{Line: line})
}

// Event implements provisioning.Observer.
func (o *Observer) Event(event provisioning.Event) {
	label := string(event.Type)
	if event.Resource != "" {
		label += " " + event.Resource
	}
	o.program.Send(LogMsg{Line: label})
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.program.Send(ProgressMsg{Phase: phase, Current: current, Total: total})
}

// parsePhaseLine recognizes the pipeline's "[name (i/n)] starting" and
// "[name (i/n)] completed in ..." lines.
func parsePhaseLine(line string) (phase string, done bool, ok bool) {
	if !strings.HasPrefix(line, "[") {
		return "", false, false
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return "", false, false
	}

	name := line[1:end]
	if i := strings.Index(name, " ("); i >= 0 {
		name = name[:i]
	}
	rest := strings.TrimSpace(line[end+1:])

	switch {
	case rest == "starting":
		return name, false, true
	case strings.HasPrefix(rest, "completed"):
		return name, true, true
	default:
		return "", false, false
	}
}

// Run executes fn with a dashboard observer while the program renders.
// When stdout is not a terminal, fn runs with the plain console observer
// instead.
func Run(title, clusterName, region string, phaseNames []string, fn func(provisioning.Observer) error) error {
	if !IsTerminal() {
		return fn(provisioning.NewConsoleObserver())
	}

	model := NewModel(title, clusterName, region, phaseNames)
	program := tea.NewProgram(model)
	observer := &Observer{program: program}

	errCh := make(chan error, 1)
	go func() {
		err := fn(observer)
		program.Send(DoneMsg{Err: err})
		errCh <- err
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return <-errCh
}
