package canon

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/rdfc/internal/digest"
	"github.com/roach88/rdfc/internal/rdf"
)

const (
	instrumentationName = "github.com/roach88/rdfc/internal/canon"
	canonicalPrefix     = "c14n"
)

// Stats describes the work a run performed.
type Stats struct {
	Quads             int
	BlankNodes        int
	UniqueFirstDegree int
	AmbiguousGroups   int
	NDegreeCalls      int64
	Permutations      int64
	MaxDepth          int64
	Elapsed           time.Duration
}

// Result is a successful canonicalization.
type Result struct {
	// NQuads is the canonical N-Quads document. Empty for an empty dataset.
	NQuads string

	// Labels maps input blank node identifiers to canonical labels.
	Labels map[string]string

	// Quads are the relabelled quads in canonical order.
	Quads []rdf.Quad

	Algorithm string
	Hash      string
	Stats     Stats
}

// run carries the state of one canonicalization call.
type run struct {
	opts        Options
	alg         digest.Algorithm
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *runMetrics
	index       *blankIndex
	firstDegree map[string]string
	canonical   *Issuer
	budget      *budget

	unique    int
	ambiguous int
}

type runMetrics struct {
	runs         metric.Int64Counter
	permutations metric.Int64Counter
	duration     metric.Float64Histogram
}

func newRunMetrics(m metric.Meter, logger *slog.Logger) *runMetrics {
	rm := &runMetrics{}
	var err error
	if rm.runs, err = m.Int64Counter("rdfc.canonicalize.runs",
		metric.WithDescription("Canonicalization runs by outcome"),
		metric.WithUnit("1")); err != nil {
		logger.Debug("metric unavailable", "name", "rdfc.canonicalize.runs", "error", err)
		rm.runs = nil
	}
	if rm.permutations, err = m.Int64Counter("rdfc.canonicalize.permutations",
		metric.WithDescription("Permutations tried by the N-degree hash"),
		metric.WithUnit("1")); err != nil {
		logger.Debug("metric unavailable", "name", "rdfc.canonicalize.permutations", "error", err)
		rm.permutations = nil
	}
	if rm.duration, err = m.Float64Histogram("rdfc.canonicalize.duration",
		metric.WithDescription("Canonicalization wall time"),
		metric.WithUnit("ms")); err != nil {
		logger.Debug("metric unavailable", "name", "rdfc.canonicalize.duration", "error", err)
		rm.duration = nil
	}
	return rm
}

func (m *runMetrics) record(ctx context.Context, alg string, stats Stats, err error) {
	outcome := "ok"
	if err != nil {
		outcome = string(CodeOf(err))
	}
	attrs := metric.WithAttributes(
		attribute.String("algorithm", alg),
		attribute.String("outcome", outcome),
	)
	if m.runs != nil {
		m.runs.Add(ctx, 1, attrs)
	}
	if m.permutations != nil {
		m.permutations.Add(ctx, stats.Permutations, metric.WithAttributes(attribute.String("algorithm", alg)))
	}
	if m.duration != nil {
		m.duration.Record(ctx, float64(stats.Elapsed.Microseconds())/1000, attrs)
	}
}

// Canonize returns the canonical N-Quads document for ds.
func Canonize(ctx context.Context, ds *rdf.Dataset, opts ...Option) (string, error) {
	res, err := Canonicalize(ctx, ds, opts...)
	if err != nil {
		return "", err
	}
	return res.NQuads, nil
}

// Canonicalize labels every blank node of ds canonically and serializes the
// result. Datasets that differ only in blank node identifiers or quad order
// produce identical output.
//
// ds is not modified. Every failure is a *Error; nothing is retried.
func Canonicalize(ctx context.Context, ds *rdf.Dataset, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Tracer == nil {
		o.Tracer = otel.Tracer(instrumentationName)
	}
	if o.Meter == nil {
		o.Meter = otel.Meter(instrumentationName)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}

	alg, err := o.resolve()
	if err != nil {
		return nil, err
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	ctx, span := o.Tracer.Start(ctx, "canon.Canonicalize", trace.WithAttributes(
		attribute.String("rdfc.algorithm", o.Algorithm),
		attribute.String("rdfc.hash", alg.Name),
		attribute.Int("rdfc.quads", ds.Len()),
	))
	defer span.End()

	r := &run{
		opts:        o,
		alg:         alg,
		logger:      o.Logger,
		tracer:      o.Tracer,
		metrics:     newRunMetrics(o.Meter, o.Logger),
		firstDegree: make(map[string]string),
		canonical:   NewIssuer(canonicalPrefix),
		budget:      newBudget(o.MaxDegree),
	}

	start := time.Now()
	res, err := r.execute(ctx, ds.Quads())
	stats := r.stats(ds.Len())
	stats.Elapsed = time.Since(start)
	r.metrics.record(ctx, o.Algorithm, stats, err)

	span.SetAttributes(
		attribute.Int("rdfc.blank_nodes", stats.BlankNodes),
		attribute.Int("rdfc.ambiguous_groups", stats.AmbiguousGroups),
		attribute.Int64("rdfc.ndegree_calls", stats.NDegreeCalls),
		attribute.Int64("rdfc.permutations", stats.Permutations),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(CodeOf(err)))
		o.Logger.Debug("canonicalization failed", "code", CodeOf(err), "error", err)
		return nil, err
	}
	span.SetStatus(codes.Ok, "")

	res.Algorithm = o.Algorithm
	res.Hash = alg.Name
	res.Stats = stats
	o.Logger.Debug("canonicalization complete",
		"quads", stats.Quads,
		"blank_nodes", stats.BlankNodes,
		"ndegree_calls", stats.NDegreeCalls,
		"elapsed", stats.Elapsed)
	return res, nil
}

func (r *run) stats(quads int) Stats {
	s := Stats{
		Quads:        quads,
		NDegreeCalls: r.budget.calls.Load(),
		Permutations: r.budget.permutations.Load(),
		MaxDepth:     r.budget.maxSeen.Load(),
	}
	if r.index != nil {
		s.BlankNodes = len(r.index.order)
	}
	s.UniqueFirstDegree = r.unique
	s.AmbiguousGroups = r.ambiguous
	return s
}

// execute runs the labelling phases and the serializer.
func (r *run) execute(ctx context.Context, quads []rdf.Quad) (*Result, error) {
	idx, err := buildIndex(quads)
	if err != nil {
		return nil, err
	}
	r.index = idx

	if err := ctx.Err(); err != nil {
		return nil, timeoutError(err)
	}

	hashes, groups := r.computeFirstDegree()

	var ambiguous []string
	nonUnique := 0
	for _, h := range hashes {
		ids := groups[h]
		if len(ids) == 1 {
			r.canonical.Issue(ids[0])
			continue
		}
		ambiguous = append(ambiguous, h)
		nonUnique += len(ids)
	}
	r.unique = len(hashes) - len(ambiguous)
	r.ambiguous = len(ambiguous)
	r.logger.Debug("first-degree hashes computed",
		"blank_nodes", len(idx.order),
		"unique", r.unique,
		"ambiguous_groups", r.ambiguous)

	r.budget.setWorkFactor(r.opts.MaxWorkFactor, nonUnique)

	for _, h := range ambiguous {
		if err := ctx.Err(); err != nil {
			return nil, timeoutError(err)
		}
		if err := r.resolveGroup(ctx, h, groups[h]); err != nil {
			return nil, err
		}
	}

	nquads, out, err := serialize(quads, r.canonical)
	if err != nil {
		return nil, err
	}
	return &Result{
		NQuads: nquads,
		Labels: r.canonical.Labels(),
		Quads:  out,
	}, nil
}

// resolveGroup hashes every still-unlabelled member of a first-degree group
// with the N-degree hash and commits the winning issuers in (hash,
// discovery order) order.
func (r *run) resolveGroup(ctx context.Context, firstDegree string, ids []string) error {
	var pending []string
	for _, id := range ids {
		if !r.canonical.Has(id) {
			pending = append(pending, id)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "canon.resolveGroup", trace.WithAttributes(
		attribute.String("rdfc.first_degree_hash", firstDegree),
		attribute.Int("rdfc.group_size", len(pending)),
	))
	defer span.End()

	results, err := r.hashGroup(ctx, pending)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(CodeOf(err)))
		return err
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].hash < results[j].hash })
	for _, res := range results {
		if err := r.canonical.Merge(res.issuer); err != nil {
			return err
		}
	}

	r.logger.Debug("n-degree group resolved",
		"first_degree_hash", firstDegree,
		"members", len(pending),
		"labelled", r.canonical.Len())
	return nil
}

// hashGroup computes the N-degree hash of each id, in parallel when the run
// has more than one worker. Results keep the order of ids.
func (r *run) hashGroup(ctx context.Context, ids []string) ([]ndegreeResult, error) {
	results := make([]ndegreeResult, len(ids))
	hashOne := func(ctx context.Context, i int) error {
		temp := NewIssuer(tempPrefix)
		temp.Issue(ids[i])
		res, err := r.hashNDegree(ctx, ids[i], temp, 1)
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	}

	if r.opts.Workers <= 1 || len(ids) == 1 {
		for i := range ids {
			if err := hashOne(ctx, i); err != nil {
				return nil, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i := range ids {
		g.Go(func() error { return hashOne(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
