package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	got := New("example", "dev").
		WithName("example-vpc").
		WithRole(RolePrivate).
		With("custom", "value").
		Build()

	assert.Equal(t, map[string]string{
		KeyCluster:     "example",
		KeyEnvironment: "dev",
		KeyManagedBy:   ManagedBy,
		KeyName:        "example-vpc",
		KeyRole:        RolePrivate,
		"custom":       "value",
	}, got)
}

func TestBuildReturnsCopy(t *testing.T) {
	t.Parallel()

	b := New("example", "dev")
	first := b.Build()
	first["mutated"] = "yes"

	_, ok := b.Build()["mutated"]
	assert.False(t, ok)
}

func TestToEC2Sorted(t *testing.T) {
	t.Parallel()

	got := ToEC2(map[string]string{"b": "2", "a": "1", "c": "3"})
	require.Len(t, got, 3)
	assert.Equal(t, "a", *got[0].Key)
	assert.Equal(t, "b", *got[1].Key)
	assert.Equal(t, "c", *got[2].Key)
	assert.Equal(t, "2", *got[1].Value)
}
