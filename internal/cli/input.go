package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/codec"
	"github.com/roach88/rdfc/internal/config"
	"github.com/roach88/rdfc/internal/harness"
	"github.com/roach88/rdfc/internal/rdf"
)

// CanonFlags are the input and canonicalization flags shared by the
// canonize, hash, sign and verify commands. Flags set on the command line
// override the config file; the config file overrides the defaults.
type CanonFlags struct {
	InputFormat   string
	Config        string
	Algorithm     string
	Hash          string
	MaxDegree     int
	MaxWorkFactor int
	Timeout       time.Duration
	Workers       int
}

func addCanonFlags(cmd *cobra.Command, f *CanonFlags) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringVar(&f.InputFormat, "input-format", harness.FormatNQuads, "input format (nquads|rdfjs|jsonld)")
	flags.StringVar(&f.Config, "config", "", "path to a CUE or JSON config file")
	flags.StringVar(&f.Algorithm, "algorithm", defaults.Algorithm, "canonicalization algorithm (RDFC-1.0|URDNA2015)")
	flags.StringVar(&f.Hash, "hash", defaults.Hash, "hash algorithm (sha256|sha384|sha3-256)")
	flags.IntVar(&f.MaxDegree, "max-degree", defaults.MaxDegree, "maximum N-degree recursion depth (0 = unlimited)")
	flags.IntVar(&f.MaxWorkFactor, "max-work-factor", defaults.MaxWorkFactor, "deep iteration work factor (-1 = unlimited)")
	flags.DurationVar(&f.Timeout, "timeout", 0, "canonicalization timeout (0 = none)")
	flags.IntVar(&f.Workers, "workers", defaults.Workers, "parallel workers for ambiguous groups")
}

// loadConfig returns the config file named by --config, or the defaults,
// with explicitly set flags applied on top.
func (f *CanonFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		loaded, err := config.Load(f.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = f.Algorithm
	}
	if flags.Changed("hash") {
		cfg.Hash = f.Hash
	}
	if flags.Changed("max-degree") {
		cfg.MaxDegree = f.MaxDegree
	}
	if flags.Changed("max-work-factor") {
		cfg.MaxWorkFactor = f.MaxWorkFactor
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.Timeout.String()
	}
	if flags.Changed("workers") {
		if f.Workers < 1 {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("--workers must be at least 1, got %d", f.Workers))
		}
		cfg.Workers = f.Workers
	}
	return cfg, nil
}

// canonOptions resolves the run options for cmd, logging through root.
func (f *CanonFlags) canonOptions(cmd *cobra.Command, root *RootOptions) (*config.Config, []canon.Option, error) {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	opts := append(cfg.Options(), canon.WithLogger(newLogger(root, cmd.ErrOrStderr())))
	return cfg, opts, nil
}

// readDataset decodes the dataset at path, or stdin when path is empty or
// "-".
func (f *CanonFlags) readDataset(cmd *cobra.Command, path string) (*rdf.Dataset, error) {
	switch f.InputFormat {
	case harness.FormatNQuads, harness.FormatRDFJS, harness.FormatJSONLD:
	default:
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("invalid input format %q: must be one of nquads, rdfjs, jsonld", f.InputFormat))
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer file.Close()
		r = file
	}

	ds, err := decodeDataset(r, f.InputFormat)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to decode input", err)
	}
	return ds, nil
}

func decodeDataset(r io.Reader, format string) (*rdf.Dataset, error) {
	switch format {
	case harness.FormatRDFJS:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return codec.DecodeRDFJS(data)
	case harness.FormatJSONLD:
		return codec.ReadJSONLD(r, "")
	default:
		return codec.ParseNQuads(r)
	}
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
