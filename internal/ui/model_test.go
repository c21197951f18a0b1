package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyMsg(t *testing.T, m Model, msg interface{}) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next
}

func TestModelPhaseTransitions(t *testing.T) {
	t.Parallel()

	m := NewModel("apply", "example", "eu-central-1", []string{"preflight", "infrastructure", "cluster"})

	m = applyMsg(t, m, PhaseMsg{Phase: "preflight"})
	assert.True(t, m.phases[0].active)

	m = applyMsg(t, m, PhaseMsg{Phase: "preflight", Done: true})
	assert.True(t, m.phases[0].done)
	assert.False(t, m.phases[0].active)

	// Starting a later phase marks everything before it done.
	m = applyMsg(t, m, PhaseMsg{Phase: "cluster"})
	assert.True(t, m.phases[1].done)
	assert.True(t, m.phases[2].active)
}

func TestModelProgress(t *testing.T) {
	t.Parallel()

	m := NewModel("apply", "example", "eu-central-1", []string{"infrastructure"})
	m = applyMsg(t, m, PhaseMsg{Phase: "infrastructure"})
	m = applyMsg(t, m, ProgressMsg{Phase: "infrastructure", Current: 2, Total: 3})

	assert.Equal(t, 2, m.phases[0].current)
	assert.Equal(t, 3, m.phases[0].total)
	assert.Contains(t, m.View(), "2/3")
}

func TestModelDone(t *testing.T) {
	t.Parallel()

	m := NewModel("apply", "example", "eu-central-1", []string{"preflight"})

	m = applyMsg(t, m, DoneMsg{})
	assert.True(t, m.Done)
	assert.NoError(t, m.Err)
}

func TestModelFailure(t *testing.T) {
	t.Parallel()

	m := NewModel("apply", "example", "eu-central-1", []string{"preflight", "infrastructure"})
	m = applyMsg(t, m, PhaseMsg{Phase: "infrastructure", Err: errors.New("boom")})

	assert.Error(t, m.phases[1].err)
	assert.Contains(t, m.View(), "[!!]")
}

func TestParsePhaseLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line      string
		wantPhase string
		wantDone  bool
		wantOK    bool
	}{
		{"[infrastructure (2/3)] starting", "infrastructure", false, true},
		{"[cluster (3/3)] completed in 12s", "cluster", true, true},
		{"[preflight] starting", "preflight", false, true},
		{"Starting provisioning with 3 phases...", "", false, false},
		{"[infrastructure (2/3)] failed: boom", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			phase, done, ok := parsePhaseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPhase, phase)
			assert.Equal(t, tt.wantDone, done)
		})
	}
}
