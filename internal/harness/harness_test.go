package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const conformanceManifest = "testdata/conformance/manifest.yaml"

func loadConformance(t *testing.T) *Manifest {
	t.Helper()
	m, err := LoadManifest(conformanceManifest)
	require.NoError(t, err)
	return m
}

func TestConformanceGolden(t *testing.T) {
	m := loadConformance(t)
	outcomes := RunWithGolden(t, m)

	assert.Len(t, outcomes, len(m.Tests))
	assert.Equal(t, Summary{Passed: len(m.Tests)}, Summarize(outcomes))
}

func TestRun_OutcomeDetails(t *testing.T) {
	outcomes := Run(context.Background(), loadConformance(t))
	byName := make(map[string]Outcome, len(outcomes))
	for _, o := range outcomes {
		byName[o.Name] = o
	}

	single := byName["single-blank-node"]
	assert.True(t, single.Pass)
	assert.Empty(t, single.Code)
	assert.Equal(t, map[string]string{"s": "c14n0"}, single.Labels)

	unknown := byName["unknown-term-type"]
	assert.True(t, unknown.Pass)
	assert.Equal(t, "INVALID_TERM", unknown.Code)
	assert.Empty(t, unknown.Output)

	limited := byName["work-factor-exceeded"]
	assert.True(t, limited.Pass)
	assert.Equal(t, "DEGREE_LIMIT_EXCEEDED", limited.Code)
}

func TestRun_ReportsMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.nq"),
		[]byte("_:x <http://ex/p> \"v\" .\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "want.nq"),
		[]byte("_:wrong <http://ex/p> \"v\" .\n"), 0644))
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: mismatch
tests:
  - name: wrong-output
    input: in.nq
    expect: want.nq
  - name: wrong-label
    input: in.nq
    labels:
      x: c14n7
      missing: c14n0
  - name: wrong-error
    input: in.nq
    expect_error: INVALID_TERM
`), 0644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	outcomes := Run(context.Background(), m)
	require.Len(t, outcomes, 3)

	for _, o := range outcomes {
		assert.False(t, o.Pass, o.Name)
		assert.NotEmpty(t, o.Errors, o.Name)
	}
	assert.Contains(t, outcomes[0].Errors[0], "canonical output mismatch")
	assert.Equal(t, "_:c14n0 <http://ex/p> \"v\" .\n", outcomes[0].Output)
	assert.Len(t, outcomes[1].Errors, 2)
	assert.Contains(t, outcomes[2].Errors[0], "run succeeded")
	assert.Equal(t, Summary{Failed: 3}, Summarize(outcomes))
}

func TestRun_DecodeError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	m, err := ParseManifest([]byte(`
name: decode
tests:
  - name: bad-json
    input: bad.json
    format: rdfjs
    expect_error: DECODE_ERROR
  - name: missing-file
    input: nowhere.nq
`))
	require.NoError(t, err)
	m.dir = dir

	outcomes := Run(context.Background(), m)
	assert.True(t, outcomes[0].Pass)
	assert.Equal(t, CodeDecodeError, outcomes[0].Code)
	assert.False(t, outcomes[1].Pass)
	assert.Equal(t, CodeDecodeError, outcomes[1].Code)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := Run(ctx, loadConformance(t))
	for _, o := range outcomes {
		assert.False(t, o.Pass, o.Name)
		assert.Contains(t, o.Errors[0], "not run")
	}
}
