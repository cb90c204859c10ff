package cli

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/proof"
)

// SignOptions holds flags for the sign command.
type SignOptions struct {
	*RootOptions
	CanonFlags
	KeyType string // ed25519 | dilithium3
	Seed    string // hex ed25519 seed
	Out     string // proof output path
}

// NewSignCommand creates the sign command.
func NewSignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sign [file]",
		Short: "Sign the canonical form of a dataset",
		Long: `Canonicalize an RDF dataset, digest the canonical N-Quads and sign
the digest. The proof is written as JSON.

ed25519 keys come from --seed (32 bytes, hex). Without a seed, and always
for dilithium3, a fresh key is generated; the proof carries the public key.

Examples:
  rdfc sign credential.nq --seed $(cat key.hex) --out credential.proof.json
  rdfc sign credential.nq --key-type dilithium3`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSign(cmd.Context(), opts, inputArg(args), cmd)
		},
	}

	addCanonFlags(cmd, &opts.CanonFlags)
	cmd.Flags().StringVar(&opts.KeyType, "key-type", proof.TypeEd25519, "signature type (ed25519|dilithium3)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "hex-encoded 32-byte ed25519 seed")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "write the proof to this file instead of stdout")

	return cmd
}

func newSigner(keyType, seedHex string) (proof.Signer, error) {
	switch keyType {
	case proof.TypeEd25519:
		seed := make([]byte, 32)
		if seedHex != "" {
			var err error
			if seed, err = hex.DecodeString(seedHex); err != nil {
				return nil, fmt.Errorf("invalid seed hex: %w", err)
			}
		} else if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		return proof.Ed25519SignerFromSeed(seed)
	case proof.TypeDilithium3:
		if seedHex != "" {
			return nil, errors.New("--seed is only supported for ed25519")
		}
		return proof.NewDilithium3Signer(rand.Reader)
	default:
		return nil, fmt.Errorf("unsupported key type %q", keyType)
	}
}

func runSign(ctx context.Context, opts *SignOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	signer, err := newSigner(opts.KeyType, opts.Seed)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create signer", err)
	}
	_, canonOpts, err := opts.canonOptions(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	ds, err := opts.readDataset(cmd, path)
	if err != nil {
		return err
	}

	p, err := proof.Sign(ctx, ds, signer, canonOpts...)
	if err != nil {
		if canon.CodeOf(err) != "" {
			return f.canonFailure(err)
		}
		return WrapExitError(ExitFailure, "failed to sign", err)
	}
	f.VerboseLog("signed canonical hash %s (%s, %s)", p.CanonicalHash, p.HashAlg, p.Type)

	if opts.Out != "" {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.Out, append(data, '\n'), 0644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write proof", err)
		}
		if opts.Format == "json" {
			return f.Success(map[string]string{"proof": opts.Out, "canonical_hash": p.CanonicalHash})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "proof written to %s\n", opts.Out)
		return nil
	}

	if opts.Format == "json" {
		return f.Success(p)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
