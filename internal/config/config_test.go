package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/rdf"
)

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(nil, "empty.cue")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseCUE(t *testing.T) {
	src := `
algorithm:       "URDNA2015"
max_degree:      8
max_work_factor: 2
timeout:         "1m30s"
workers:         4
ledger:          "runs.db"
`
	cfg, err := Parse([]byte(src), "rdfc.cue")
	require.NoError(t, err)

	assert.Equal(t, "URDNA2015", cfg.Algorithm)
	assert.Equal(t, "sha256", cfg.Hash, "default kept")
	assert.Equal(t, 8, cfg.MaxDegree)
	assert.Equal(t, 2, cfg.MaxWorkFactor)
	assert.Equal(t, 90*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "runs.db", cfg.Ledger)
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"hash": "sha3-256", "workers": 2}`), "rdfc.json")
	require.NoError(t, err)
	assert.Equal(t, "sha3-256", cfg.Hash)
	assert.Equal(t, 2, cfg.Workers)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown field", `colour: "blue"`},
		{"unknown algorithm", `algorithm: "URGNA2012"`},
		{"unknown hash", `hash: "md5"`},
		{"negative degree", `max_degree: -1`},
		{"work factor below -1", `max_work_factor: -2`},
		{"zero workers", `workers: 0`},
		{"bad timeout", `timeout: "soon"`},
		{"wrong type", `workers: "four"`},
		{"syntax error", `workers: {`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.cue")
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdfc.cue")
	require.NoError(t, os.WriteFile(path, []byte(`hash: "sha384"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sha384", cfg.Hash)

	_, err = Load(filepath.Join(t.TempDir(), "missing.cue"))
	assert.Error(t, err)
}

func TestOptionsDriveCanonicalization(t *testing.T) {
	cfg, err := Parse([]byte(`max_degree: 1`), "rdfc.cue")
	require.NoError(t, err)

	ds := rdf.NewDataset(
		rdf.NewQuad(rdf.BlankNode("x"), rdf.IRI("http://ex/p"), rdf.BlankNode("y")),
		rdf.NewQuad(rdf.BlankNode("y"), rdf.IRI("http://ex/p"), rdf.BlankNode("x")),
	)
	_, err = canon.Canonicalize(context.Background(), ds, cfg.Options()...)
	assert.True(t, canon.IsDegreeLimitExceeded(err))
}
