package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/ledger"
)

// LedgerOptions holds flags for the ledger commands.
type LedgerOptions struct {
	*RootOptions
	Database string
	Limit    int
	Hash     string
}

// NewLedgerCommand creates the ledger command group.
func NewLedgerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Inspect recorded canonicalization runs",
	}
	cmd.AddCommand(newLedgerListCommand(rootOpts))
	return cmd
}

func newLedgerListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list --db <path>",
		Short: "List recorded runs in seq order",
		Long: `List the runs recorded by "rdfc canonize --ledger".

Runs are listed in the order they were recorded. --hash restricts the list
to runs whose canonical hash matches.

Examples:
  rdfc ledger list --db ./runs.db
  rdfc ledger list --db ./runs.db --hash 4a5b... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLedgerList(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the SQLite ledger (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum number of runs (0 = all)")
	cmd.Flags().StringVar(&opts.Hash, "hash", "", "only runs with this canonical hash (hex)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runLedgerList(ctx context.Context, opts *LedgerOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	l, err := ledger.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer l.Close()

	var runs []ledger.Run
	if opts.Hash != "" {
		runs, err = l.ByHash(ctx, opts.Hash)
		if err == nil && opts.Limit > 0 && len(runs) > opts.Limit {
			runs = runs[:opts.Limit]
		}
	} else {
		runs, err = l.List(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read ledger", err)
	}

	if opts.Format == "json" {
		if runs == nil {
			runs = []ledger.Run{}
		}
		return f.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tALGORITHM\tHASH\tQUADS\tBLANK\tCANONICAL HASH")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Seq, r.ID, r.Algorithm, r.HashAlg, r.InputQuads, r.BlankNodes, r.CanonicalHash)
	}
	return tw.Flush()
}
