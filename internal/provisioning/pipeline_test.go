package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/eksail/internal/platform/aws"
)

type recordingPhase struct {
	name string
	err  error
	log  *[]string
}

func (p *recordingPhase) Name() string { return p.name }

func (p *recordingPhase) Provision(_ *Context) error {
	*p.log = append(*p.log, p.name)
	return p.err
}

func TestRunPhasesInOrder(t *testing.T) {
	t.Parallel()

	var log []string
	phases := []Phase{
		&recordingPhase{name: "first", log: &log},
		&recordingPhase{name: "second", log: &log},
		&recordingPhase{name: "third", log: &log},
	}

	ctx := NewContext(context.Background(), testConfig(t), aws.NewFakeClient())
	err := RunPhases(ctx, phases)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

func TestRunPhasesAbortsOnFailure(t *testing.T) {
	t.Parallel()

	var log []string
	phases := []Phase{
		&recordingPhase{name: "first", log: &log},
		&recordingPhase{name: "second", log: &log, err: errors.New("boom")},
		&recordingPhase{name: "third", log: &log},
	}

	ctx := NewContext(context.Background(), testConfig(t), aws.NewFakeClient())
	err := RunPhases(ctx, phases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second phase failed")
	assert.Equal(t, []string{"first", "second"}, log)
}
