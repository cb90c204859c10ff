package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter  string // case name filter (glob pattern)
	Workers int
}

// ManifestResult holds the outcomes of one manifest.
type ManifestResult struct {
	Manifest string            `json:"manifest"`
	Outcomes []harness.Outcome `json:"outcomes"`
	Error    string            `json:"error,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Manifests []ManifestResult `json:"manifests"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <manifest.yaml>...",
		Short: "Run conformance manifests",
		Long: `Run conformance manifests and report each case.

A case passes when its canonical output matches the expected file, or when
it fails with the expected error code.

Exit codes:
  0 - All cases passed
  1 - One or more cases failed
  2 - Command error (unreadable or invalid manifest)

Examples:
  rdfc test ./conformance/manifest.yaml
  rdfc test ./conformance/*.yaml --filter "symmetric-*"
  rdfc test ./conformance/manifest.yaml --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter cases by glob pattern")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "parallel workers for ambiguous groups")

	return cmd
}

func runTests(ctx context.Context, opts *TestOptions, paths []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := filepath.Match(opts.Filter, ""); err != nil {
		return WrapExitError(ExitCommandError, "invalid filter pattern", err)
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	base := []canon.Option{
		canon.WithLogger(newLogger(opts.RootOptions, cmd.ErrOrStderr())),
		canon.WithWorkers(max(opts.Workers, 1)),
	}

	result := TestResult{Manifests: make([]ManifestResult, 0, len(paths))}
	loadFailed := false
	for _, path := range paths {
		m, err := harness.LoadManifest(path)
		if err != nil {
			loadFailed = true
			result.Manifests = append(result.Manifests, ManifestResult{Manifest: path, Error: err.Error()})
			if opts.Format != "json" {
				f.Status(false, "%s", path)
				fmt.Fprintf(cmd.OutOrStdout(), "  Load error: %v\n", err)
			}
			continue
		}
		m.Tests = filterCases(m.Tests, opts.Filter)

		outcomes := harness.Run(ctx, m, base...)
		result.Manifests = append(result.Manifests, ManifestResult{Manifest: m.Name, Outcomes: outcomes})
		summary := harness.Summarize(outcomes)
		result.Passed += summary.Passed
		result.Failed += summary.Failed
		result.Total += len(outcomes)

		if opts.Format != "json" {
			for _, o := range outcomes {
				f.Status(o.Pass, "%s/%s", m.Name, o.Name)
				for _, e := range o.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
				}
			}
		}
	}

	if opts.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	}

	if loadFailed {
		return NewExitError(ExitCommandError, "one or more manifests could not be loaded")
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d cases failed", result.Failed, result.Total))
	}
	return nil
}

// filterCases keeps the cases whose name matches pattern. An empty pattern
// keeps all of them.
func filterCases(cases []harness.Case, pattern string) []harness.Case {
	if pattern == "" {
		return cases
	}
	var kept []harness.Case
	for _, c := range cases {
		if ok, _ := filepath.Match(pattern, c.Name); ok {
			kept = append(kept, c)
		}
	}
	return kept
}
