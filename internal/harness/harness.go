package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/codec"
	"github.com/roach88/rdfc/internal/rdf"
)

// CodeDecodeError marks an input document the codec could not read for a
// reason other than a malformed term.
const CodeDecodeError = "DECODE_ERROR"

// Outcome is the result of one case.
type Outcome struct {
	Name string `json:"name"`

	// Pass is true when every expectation of the case held.
	Pass bool `json:"pass"`

	// Output is the canonical N-Quads, empty when the run failed.
	Output string `json:"output,omitempty"`

	// Code is the error code of a failed run.
	Code string `json:"code,omitempty"`

	// Labels is the issued label map of a successful run.
	Labels map[string]string `json:"labels,omitempty"`

	// Errors lists the expectations that did not hold.
	Errors []string `json:"errors,omitempty"`
}

func (o *Outcome) addError(format string, args ...any) {
	o.Errors = append(o.Errors, fmt.Sprintf(format, args...))
	o.Pass = false
}

// Summary counts passing and failing outcomes.
type Summary struct {
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Summarize counts outcomes.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		if o.Pass {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// Run executes every case of m in order. base options apply to every case
// before the case's own overrides. Run only returns early when ctx is done;
// the remaining cases are then reported as failed with the context error.
func Run(ctx context.Context, m *Manifest, base ...canon.Option) []Outcome {
	outcomes := make([]Outcome, 0, len(m.Tests))
	for _, c := range m.Tests {
		if err := ctx.Err(); err != nil {
			o := Outcome{Name: c.Name, Pass: true}
			o.addError("not run: %v", err)
			outcomes = append(outcomes, o)
			continue
		}
		outcomes = append(outcomes, runCase(ctx, m, c, base))
	}
	return outcomes
}

func runCase(ctx context.Context, m *Manifest, c Case, base []canon.Option) Outcome {
	o := Outcome{Name: c.Name, Pass: true}

	res, code, err := execute(ctx, m, c, base)
	if err != nil {
		o.Code = code
		switch {
		case c.ExpectError == "":
			o.addError("unexpected error: %v", err)
		case c.ExpectError != code:
			o.addError("expected error %s, got %s: %v", c.ExpectError, code, err)
		}
		return o
	}

	o.Output = res.NQuads
	o.Labels = res.Labels

	if c.ExpectError != "" {
		o.addError("expected error %s, run succeeded", c.ExpectError)
		return o
	}

	if c.Expect != "" {
		want, err := os.ReadFile(m.resolve(c.Expect))
		if err != nil {
			o.addError("failed to read expected output: %v", err)
			return o
		}
		if string(want) != res.NQuads {
			o.addError("canonical output mismatch:\n--- expected\n%s--- actual\n%s", want, res.NQuads)
		}
	}

	keys := make([]string, 0, len(c.Labels))
	for k := range c.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		got, ok := res.Labels[k]
		switch {
		case !ok:
			o.addError("label for _:%s: not issued", k)
		case got != c.Labels[k]:
			o.addError("label for _:%s: expected %s, got %s", k, c.Labels[k], got)
		}
	}
	return o
}

// execute decodes the case input and canonicalizes it. On failure it
// returns the error code the case is judged by.
func execute(ctx context.Context, m *Manifest, c Case, base []canon.Option) (*canon.Result, string, error) {
	ds, err := decode(m.resolve(c.Input), c.Format)
	if err != nil {
		var te *rdf.TermError
		if errors.As(err, &te) {
			return nil, string(canon.ErrCodeInvalidTerm), err
		}
		return nil, CodeDecodeError, err
	}

	opts := append(append([]canon.Option{}, base...), c.Options.canonOptions()...)
	res, err := canon.Canonicalize(ctx, ds, opts...)
	if err != nil {
		code := string(canon.CodeOf(err))
		if code == "" {
			code = string(canon.ErrCodeInternal)
		}
		return nil, code, err
	}
	return res, "", nil
}

func decode(path, format string) (*rdf.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	switch format {
	case FormatRDFJS:
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return codec.DecodeRDFJS(data)
	case FormatJSONLD:
		return codec.ReadJSONLD(f, "")
	default:
		return codec.ParseNQuads(f)
	}
}
