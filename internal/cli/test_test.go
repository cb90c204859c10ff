package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conformanceManifest = filepath.Join("..", "harness", "testdata", "conformance", "manifest.yaml")

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestTestCommand_Conformance(t *testing.T) {
	out, _, err := execute(t, "", "test", conformanceManifest)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS conformance/single-blank-node")
	assert.Contains(t, out, "12 passed, 0 failed, 12 total")
	assert.NotContains(t, out, "FAIL")
}

func TestTestCommand_FilterJSON(t *testing.T) {
	out, _, err := execute(t, "", "test", conformanceManifest, "--filter", "symmetric-*", "--workers", "2", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
	require.Len(t, resp.Data.Manifests, 1)
	assert.Equal(t, "conformance", resp.Data.Manifests[0].Manifest)
}

func TestTestCommand_FailingCase(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "in.nq", singleBlankNode)
	manifest := writeFile(t, dir, "manifest.yaml", `
name: failing
tests:
  - name: wants-error
    input: in.nq
    expect_error: INVALID_TERM
`)

	out, _, err := execute(t, "", "test", manifest)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL failing/wants-error")
}

func TestTestCommand_BadManifest(t *testing.T) {
	manifest := writeFile(t, t.TempDir(), "bad.yaml", "name: bad\n")

	out, _, err := execute(t, "", "test", manifest)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Load error")
}

func TestTestCommand_InvalidFilter(t *testing.T) {
	_, _, err := execute(t, "", "test", conformanceManifest, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
