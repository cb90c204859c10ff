package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/digest"
)

// HashOptions holds flags for the hash command.
type HashOptions struct {
	*RootOptions
	CanonFlags
}

// HashResult is the digest of a canonical dataset.
type HashResult struct {
	HashAlg string `json:"hash_alg"`
	Digest  string `json:"digest"` // hex
	CID     string `json:"cid"`
	Quads   int    `json:"quads"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the digest and CID of a dataset's canonical form",
		Long: `Canonicalize an RDF dataset and print the digest of its canonical
N-Quads, hex encoded, followed by the CIDv1 (raw codec) of the same bytes.

The digest uses --hash, which is also the hash the canonicalization runs
with.

Examples:
  rdfc hash credential.nq
  rdfc hash --hash sha384 credential.nq --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(cmd.Context(), opts, inputArg(args), cmd)
		},
	}

	addCanonFlags(cmd, &opts.CanonFlags)
	return cmd
}

func runHash(ctx context.Context, opts *HashOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	_, canonOpts, err := opts.canonOptions(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ds, err := opts.readDataset(cmd, path)
	if err != nil {
		return err
	}

	res, err := canon.Canonicalize(ctx, ds, canonOpts...)
	if err != nil {
		return f.canonFailure(err)
	}

	alg, ok := digest.Lookup(res.Hash)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unsupported hash algorithm %q", res.Hash))
	}
	data := []byte(res.NQuads)
	c, err := alg.CID(data)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to compute CID", err)
	}

	out := HashResult{
		HashAlg: alg.Name,
		Digest:  alg.HexSum(data),
		CID:     c.String(),
		Quads:   res.Stats.Quads,
	}
	if opts.Format == "json" {
		return f.Success(out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n%s\n", out.Digest, out.HashAlg, out.CID)
	return nil
}
