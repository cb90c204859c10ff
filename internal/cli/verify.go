package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/proof"
)

// VerifyOptions holds flags for the verify command.
type VerifyOptions struct {
	*RootOptions
	CanonFlags
	Proof string // path to the proof JSON
}

// VerifyResult is the JSON payload of the verify command.
type VerifyResult struct {
	Valid         bool   `json:"valid"`
	Type          string `json:"type"`
	HashAlg       string `json:"hash_alg"`
	CanonicalHash string `json:"canonical_hash"`
	Reason        string `json:"reason,omitempty"`
}

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VerifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "verify [file] --proof <proof.json>",
		Short: "Verify a proof against a dataset",
		Long: `Canonicalize an RDF dataset with the proof's algorithm and hash and
check both the recorded canonical hash and the signature.

Any dataset isomorphic to the signed one verifies.

Exit codes:
  0 - Proof valid
  1 - Proof invalid or canonicalization failure
  2 - Command error (unreadable proof or input)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd.Context(), opts, inputArg(args), cmd)
		},
	}

	addCanonFlags(cmd, &opts.CanonFlags)
	cmd.Flags().StringVar(&opts.Proof, "proof", "", "path to the proof JSON (required)")
	_ = cmd.MarkFlagRequired("proof")

	return cmd
}

func loadProof(path string) (*proof.Proof, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p proof.Proof
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse proof: %w", err)
	}
	return &p, nil
}

func runVerify(ctx context.Context, opts *VerifyOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p, err := loadProof(opts.Proof)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load proof", err)
	}
	_, canonOpts, err := opts.canonOptions(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ds, err := opts.readDataset(cmd, path)
	if err != nil {
		return err
	}

	err = proof.Verify(ctx, ds, p, canonOpts...)
	if err != nil && canon.CodeOf(err) != "" {
		return f.canonFailure(err)
	}

	result := VerifyResult{
		Valid:         err == nil,
		Type:          p.Type,
		HashAlg:       p.HashAlg,
		CanonicalHash: p.CanonicalHash,
	}
	if err != nil {
		result.Reason = err.Error()
	}

	if opts.Format == "json" {
		if encErr := f.Success(result); encErr != nil {
			return encErr
		}
	} else {
		if result.Valid {
			f.Status(true, "%s signature over %s %s", p.Type, p.HashAlg, p.CanonicalHash)
		} else {
			f.Status(false, "%s", result.Reason)
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, proof.ErrHashMismatch), errors.Is(err, proof.ErrSignatureInvalid):
		return WrapExitError(ExitFailure, "proof invalid", err)
	default:
		return WrapExitError(ExitCommandError, "proof unusable", err)
	}
}
