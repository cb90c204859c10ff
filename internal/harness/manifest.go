package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rdfc/internal/canon"
)

// Input formats a case may declare.
const (
	FormatNQuads = "nquads"
	FormatRDFJS  = "rdfjs"
	FormatJSONLD = "jsonld"
)

// Manifest is a named list of conformance cases.
type Manifest struct {
	// Name identifies the manifest and prefixes golden file names.
	Name string `yaml:"name"`

	// Description explains what the manifest covers.
	Description string `yaml:"description"`

	Tests []Case `yaml:"tests"`

	// dir is the manifest's directory; case paths resolve against it.
	dir string
}

// Case is one conformance test.
type Case struct {
	Name string `yaml:"name"`

	// Input is the path of the input document.
	Input string `yaml:"input"`

	// Format is nquads (default), rdfjs or jsonld.
	Format string `yaml:"format,omitempty"`

	// Expect is the path of the expected canonical N-Quads.
	Expect string `yaml:"expect,omitempty"`

	// ExpectError is the error code the run must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Labels is a subset of the expected input-to-canonical label map.
	Labels map[string]string `yaml:"labels,omitempty"`

	Options *CaseOptions `yaml:"options,omitempty"`
}

// CaseOptions overrides canonicalization options for one case.
// Unset fields keep the defaults.
type CaseOptions struct {
	Algorithm     string `yaml:"algorithm,omitempty"`
	Hash          string `yaml:"hash,omitempty"`
	MaxDegree     *int   `yaml:"max_degree,omitempty"`
	MaxWorkFactor *int   `yaml:"max_work_factor,omitempty"`
	Workers       int    `yaml:"workers,omitempty"`
}

// canonOptions converts the overrides to canonicalization options.
func (o *CaseOptions) canonOptions() []canon.Option {
	if o == nil {
		return nil
	}
	var opts []canon.Option
	if o.Algorithm != "" {
		opts = append(opts, canon.WithAlgorithm(o.Algorithm))
	}
	if o.Hash != "" {
		opts = append(opts, canon.WithHash(o.Hash))
	}
	if o.MaxDegree != nil {
		opts = append(opts, canon.WithMaxDegree(*o.MaxDegree))
	}
	if o.MaxWorkFactor != nil {
		opts = append(opts, canon.WithMaxWorkFactor(*o.MaxWorkFactor))
	}
	if o.Workers > 0 {
		opts = append(opts, canon.WithWorkers(o.Workers))
	}
	return opts
}

// LoadManifest reads and parses a manifest YAML file.
// Unknown fields are rejected so typos in case keys fail loudly.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// ParseManifest parses manifest YAML. Relative case paths resolve against
// the working directory.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateManifest(&m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// Dir returns the directory case paths resolve against.
func (m *Manifest) Dir() string { return m.dir }

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.dir == "" {
		return path
	}
	return filepath.Join(m.dir, path)
}

func validateManifest(m *Manifest) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(m.Tests) == 0 {
		return fmt.Errorf("tests list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(m.Tests))
	for i := range m.Tests {
		c := &m.Tests[i]
		if c.Name == "" {
			return fmt.Errorf("tests[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("tests[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if c.Input == "" {
			return fmt.Errorf("tests[%d] (%s): input is required", i, c.Name)
		}
		switch c.Format {
		case "":
			c.Format = FormatNQuads
		case FormatNQuads, FormatRDFJS, FormatJSONLD:
		default:
			return fmt.Errorf("tests[%d] (%s): unknown format %q", i, c.Name, c.Format)
		}
		if c.Expect != "" && c.ExpectError != "" {
			return fmt.Errorf("tests[%d] (%s): expect and expect_error are mutually exclusive", i, c.Name)
		}
		if c.ExpectError != "" && len(c.Labels) > 0 {
			return fmt.Errorf("tests[%d] (%s): labels cannot be checked on an expected error", i, c.Name)
		}
	}
	return nil
}
