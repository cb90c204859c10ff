package canon

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/roach88/rdfc/internal/digest"
)

// Algorithm names accepted by WithAlgorithm. Both select the same
// algorithm; URDNA2015 is the name used before standardization.
const (
	AlgorithmRDFC10    = "RDFC-1.0"
	AlgorithmURDNA2015 = "URDNA2015"
)

// DefaultMaxWorkFactor leaves deep iterations unbounded. Ordinary symmetric
// graphs (small cliques, long undirected cycles) exceed any low factor;
// WithTimeout or an explicit factor bounds untrusted input.
const DefaultMaxWorkFactor = -1

// Options configures a canonicalization run. Build it with Option values;
// the zero value is not meaningful on its own.
type Options struct {
	Algorithm string
	Hash      string

	// MaxDegree caps N-degree recursion depth. 0 means no cap.
	MaxDegree int

	// MaxWorkFactor sets the deep iteration limit per blank node to
	// nonUnique^MaxWorkFactor. Negative means no limit.
	MaxWorkFactor int

	// Timeout is applied on top of the caller's context. 0 means none.
	Timeout time.Duration

	// Workers is the number of goroutines hashing one ambiguous group.
	Workers int

	Logger *slog.Logger
	Tracer trace.Tracer
	Meter  metric.Meter
}

// Option configures a canonicalization run.
type Option func(*Options)

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Algorithm:     AlgorithmRDFC10,
		Hash:          digest.Default,
		MaxWorkFactor: DefaultMaxWorkFactor,
		Workers:       1,
	}
}

// WithAlgorithm selects the algorithm by name.
func WithAlgorithm(name string) Option {
	return func(o *Options) { o.Algorithm = name }
}

// WithHash selects the digest by name (see digest.Names).
func WithHash(name string) Option {
	return func(o *Options) { o.Hash = name }
}

// WithMaxDegree caps recursion depth of the N-degree hash.
func WithMaxDegree(n int) Option {
	return func(o *Options) { o.MaxDegree = n }
}

// WithMaxWorkFactor sets the deep iteration bound exponent.
func WithMaxWorkFactor(n int) Option {
	return func(o *Options) { o.MaxWorkFactor = n }
}

// WithTimeout bounds the wall time of a run.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

// WithWorkers sets the parallelism used inside one ambiguous group.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithTracer sets the tracer. Defaults to the global tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) { o.Tracer = t }
}

// WithMeter sets the meter. Defaults to the global meter provider.
func WithMeter(m metric.Meter) Option {
	return func(o *Options) { o.Meter = m }
}

// resolve validates the options and picks the digest.
func (o Options) resolve() (digest.Algorithm, error) {
	switch o.Algorithm {
	case AlgorithmRDFC10, AlgorithmURDNA2015:
	default:
		return digest.Algorithm{}, unsupportedError("unknown algorithm %q", o.Algorithm)
	}
	alg, ok := digest.Lookup(o.Hash)
	if !ok {
		return digest.Algorithm{}, unsupportedError("unknown hash %q", o.Hash)
	}
	if o.Algorithm == AlgorithmURDNA2015 && alg.Name != digest.SHA256.Name {
		return digest.Algorithm{}, unsupportedError("%s is defined for sha256 only, got %s", o.Algorithm, alg.Name)
	}
	return alg, nil
}
