package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerIssue(t *testing.T) {
	iss := NewIssuer("c14n")

	assert.Equal(t, "c14n0", iss.Issue("x"))
	assert.Equal(t, "c14n1", iss.Issue("y"))
	assert.Equal(t, "c14n0", iss.Issue("x"), "reissue returns the existing label")

	assert.True(t, iss.Has("y"))
	assert.False(t, iss.Has("z"))
	assert.Equal(t, 2, iss.Len())
	assert.Equal(t, []string{"x", "y"}, iss.Order())
	assert.Equal(t, map[string]string{"x": "c14n0", "y": "c14n1"}, iss.Labels())

	label, ok := iss.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, "c14n1", label)
	_, ok = iss.Lookup("z")
	assert.False(t, ok)
}

func TestIssuerCloneIsIndependent(t *testing.T) {
	iss := NewIssuer("b")
	iss.Issue("a")

	fork := iss.Clone()
	fork.Issue("b")
	iss.Issue("c")

	assert.Equal(t, []string{"a", "b"}, fork.Order())
	assert.Equal(t, []string{"a", "c"}, iss.Order())

	label, _ := fork.Lookup("b")
	assert.Equal(t, "b1", label)
	label, _ = iss.Lookup("c")
	assert.Equal(t, "b1", label)
}

func TestIssuerOrderAndLabelsAreCopies(t *testing.T) {
	iss := NewIssuer("c14n")
	iss.Issue("x")

	iss.Order()[0] = "mutated"
	iss.Labels()["x"] = "mutated"

	assert.Equal(t, []string{"x"}, iss.Order())
	label, _ := iss.Lookup("x")
	assert.Equal(t, "c14n0", label)
}

func TestIssuerMergeForeignPrefix(t *testing.T) {
	canonical := NewIssuer("c14n")
	canonical.Issue("first")

	trial := NewIssuer("b")
	trial.Issue("n2")
	trial.Issue("first")
	trial.Issue("n3")

	require.NoError(t, canonical.Merge(trial))

	assert.Equal(t, []string{"first", "n2", "n3"}, canonical.Order())
	assert.Equal(t, map[string]string{"first": "c14n0", "n2": "c14n1", "n3": "c14n2"}, canonical.Labels())
}

func TestIssuerMergeFork(t *testing.T) {
	base := NewIssuer("c14n")
	base.Issue("a")

	fork := base.Clone()
	fork.Issue("b")
	fork.Issue("c")

	require.NoError(t, base.Merge(fork))
	assert.Equal(t, []string{"a", "b", "c"}, base.Order())
	label, _ := base.Lookup("c")
	assert.Equal(t, "c14n2", label)
}

func TestIssuerMergeConflict(t *testing.T) {
	base := NewIssuer("c14n")
	base.Issue("a")

	fork := base.Clone()
	fork.Issue("b") // c14n1 in the fork

	base.Issue("c") // base moves on; c14n1 now belongs to c

	err := base.Merge(fork)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInternal, CodeOf(err))

	assert.Equal(t, []string{"a", "c"}, base.Order(), "receiver unchanged on conflict")
}

func TestIssuerMergeConflictingExistingLabel(t *testing.T) {
	base := NewIssuer("c14n")
	other := NewIssuer("c14n")
	base.Issue("a")
	base.Issue("b")
	other.Issue("b")

	err := base.Merge(other)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInternal, CodeOf(err))
	assert.Contains(t, err.Error(), "_:b")
}
