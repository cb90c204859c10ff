// Package config loads rdfc settings from CUE (or JSON) files.
//
// Files are unified with the embedded #Config schema: unknown fields and
// out-of-range values are rejected, omitted fields take schema defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/rdfc/internal/canon"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded #Config.
type Config struct {
	Algorithm     string `json:"algorithm"`
	Hash          string `json:"hash"`
	MaxDegree     int    `json:"max_degree"`
	MaxWorkFactor int    `json:"max_work_factor"`
	Timeout       string `json:"timeout"`
	Workers       int    `json:"workers"`
	Ledger        string `json:"ledger"`
}

// Error is a configuration problem with its source position when known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the configuration an empty file produces.
func Default() *Config {
	return &Config{
		Algorithm:     canon.AlgorithmRDFC10,
		Hash:          "sha256",
		MaxWorkFactor: canon.DefaultMaxWorkFactor,
		Timeout:       "0s",
		Workers:       1,
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse validates CUE or JSON source against #Config.
// filename is used in error positions only.
func Parse(data []byte, filename string) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	file := ctx.CompileBytes(data, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := def.Unify(file)
	if err := v.Validate(); err != nil {
		return nil, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return nil, formatCUEError(err)
	}
	if _, err := time.ParseDuration(cfg.Timeout); err != nil {
		return nil, &Error{Message: fmt.Sprintf("timeout: %v", err)}
	}
	return &cfg, nil
}

// TimeoutDuration returns the parsed timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Options converts the configuration to canonicalization options.
func (c *Config) Options() []canon.Option {
	return []canon.Option{
		canon.WithAlgorithm(c.Algorithm),
		canon.WithHash(c.Hash),
		canon.WithMaxDegree(c.MaxDegree),
		canon.WithMaxWorkFactor(c.MaxWorkFactor),
		canon.WithTimeout(c.TimeoutDuration()),
		canon.WithWorkers(c.Workers),
	}
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Message: first.Error(), Pos: positions[0]}
	}
	return &Error{Message: first.Error()}
}
