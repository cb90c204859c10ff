package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/codec"
	"github.com/roach88/rdfc/internal/harness"
	"github.com/roach88/rdfc/internal/ledger"
)

// CanonizeOptions holds flags for the canonize command.
type CanonizeOptions struct {
	*RootOptions
	CanonFlags
	Ledger string // record the run in this ledger database
	Labels bool   // print the issued label map
	Output string // nquads | rdfjs
}

// CanonizeResult is the JSON payload of the canonize command.
type CanonizeResult struct {
	NQuads    string            `json:"nquads"`
	RDFJS     json.RawMessage   `json:"rdfjs,omitempty"`
	Algorithm string            `json:"algorithm"`
	Hash      string            `json:"hash"`
	Labels    map[string]string `json:"labels,omitempty"`
	Stats     canon.Stats       `json:"stats"`
	RunID     string            `json:"run_id,omitempty"`
}

// NewCanonizeCommand creates the canonize command.
func NewCanonizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CanonizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "canonize [file]",
		Short: "Print the canonical N-Quads of a dataset",
		Long: `Canonicalize an RDF dataset and print its canonical N-Quads.

Reads from stdin when no file (or "-") is given.

Exit codes:
  0 - Success
  1 - Invalid input or canonicalization failure
  2 - Command error (unreadable file, bad config, unsupported algorithm)

Examples:
  rdfc canonize credential.nq
  rdfc canonize --input-format jsonld credential.jsonld --labels
  cat data.nq | rdfc canonize --timeout 30s --workers 4
  rdfc canonize data.nq --ledger ./runs.db --format json
  rdfc canonize data.nq --output-format rdfjs`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCanonize(cmd.Context(), opts, inputArg(args), cmd)
		},
	}

	addCanonFlags(cmd, &opts.CanonFlags)
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the run in this SQLite ledger")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "print the blank node label map")
	cmd.Flags().StringVar(&opts.Output, "output-format", harness.FormatNQuads, "canonical output format (nquads|rdfjs)")

	return cmd
}

func runCanonize(ctx context.Context, opts *CanonizeOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	switch opts.Output {
	case harness.FormatNQuads, harness.FormatRDFJS:
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid output format %q: must be nquads or rdfjs", opts.Output))
	}

	cfg, canonOpts, err := opts.canonOptions(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ds, err := opts.readDataset(cmd, path)
	if err != nil {
		return err
	}
	for _, finding := range codec.Lint(ds) {
		f.VerboseLog("lint: %s", finding)
	}

	res, err := canon.Canonicalize(ctx, ds, canonOpts...)
	if err != nil {
		return f.canonFailure(err)
	}
	f.VerboseLog("canonicalized %d quads, %d blank nodes (%d ambiguous groups, %d permutations) in %s",
		res.Stats.Quads, res.Stats.BlankNodes, res.Stats.AmbiguousGroups, res.Stats.Permutations, res.Stats.Elapsed)

	ledgerPath := cfg.Ledger
	if cmd.Flags().Changed("ledger") {
		ledgerPath = opts.Ledger
	}
	var runID string
	if ledgerPath != "" {
		run, err := recordRun(ctx, ledgerPath, res)
		if err != nil {
			return err
		}
		runID = run.ID
		f.VerboseLog("recorded run %s (seq %d) in %s", run.ID, run.Seq, ledgerPath)
	}

	var rdfjs []byte
	if opts.Output == harness.FormatRDFJS {
		if rdfjs, err = codec.EncodeRDFJS(res.Quads); err != nil {
			return WrapExitError(ExitFailure, "failed to encode RDF/JS", err)
		}
	}

	if opts.Format == "json" {
		out := CanonizeResult{
			NQuads:    res.NQuads,
			RDFJS:     rdfjs,
			Algorithm: res.Algorithm,
			Hash:      res.Hash,
			Stats:     res.Stats,
			RunID:     runID,
		}
		if opts.Labels {
			out.Labels = res.Labels
		}
		return f.Success(out)
	}

	w := cmd.OutOrStdout()
	if rdfjs != nil {
		fmt.Fprintf(w, "%s\n", rdfjs)
	} else {
		fmt.Fprint(w, res.NQuads)
	}
	if opts.Labels {
		writeLabels(cmd.ErrOrStderr(), res.Labels)
	}
	return nil
}

// writeLabels prints the label map sorted by input identifier.
func writeLabels(w io.Writer, labels map[string]string) {
	ids := make([]string, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(w, "_:%s -> _:%s\n", id, labels[id])
	}
}

func recordRun(ctx context.Context, path string, res *canon.Result) (ledger.Run, error) {
	l, err := ledger.Open(path)
	if err != nil {
		return ledger.Run{}, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer l.Close()

	run, err := ledger.RunFromResult(res)
	if err != nil {
		return ledger.Run{}, WrapExitError(ExitCommandError, "failed to derive ledger entry", err)
	}
	stored, err := l.Record(ctx, run)
	if err != nil {
		return ledger.Run{}, WrapExitError(ExitCommandError, "failed to record run", err)
	}
	return stored, nil
}
