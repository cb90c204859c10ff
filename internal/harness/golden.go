package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rdfc/internal/canon"
)

// goldenBytes is what a golden file holds for an outcome: the canonical
// N-Quads of a successful run, or the error code line of a failed one.
func goldenBytes(o Outcome) []byte {
	if o.Code != "" {
		return []byte("error: " + o.Code + "\n")
	}
	return []byte(o.Output)
}

// RunWithGolden runs m and compares each case against a golden file
// stored at testdata/golden/{manifest}-{case}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Expectation failures inside the manifest are reported through t as well.
func RunWithGolden(t *testing.T, m *Manifest, base ...canon.Option) []Outcome {
	t.Helper()

	outcomes := Run(context.Background(), m, base...)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, o := range outcomes {
		for _, msg := range o.Errors {
			t.Errorf("%s/%s: %s", m.Name, o.Name, msg)
		}
		g.Assert(t, m.Name+"-"+o.Name, goldenBytes(o))
	}
	return outcomes
}
