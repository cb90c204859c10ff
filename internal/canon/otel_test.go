package canon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/roach88/rdfc/internal/testutil"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestCanonicalizeSpans(t *testing.T) {
	sr, tp := newRecorder(t)
	ds := testutil.Dataset(
		[]string{"_:x", "<http://ex/p>", "_:y"},
		[]string{"_:y", "<http://ex/p>", "_:x"},
	)

	_, err := Canonicalize(context.Background(), ds, WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	spans := sr.Ended()
	names := make([]string, len(spans))
	for i, s := range spans {
		names[i] = s.Name()
	}
	assert.Contains(t, names, "canon.Canonicalize")
	assert.Contains(t, names, "canon.resolveGroup")

	for _, s := range spans {
		if s.Name() != "canon.Canonicalize" {
			continue
		}
		assert.Equal(t, codes.Ok, s.Status().Code)
		v, ok := attrValue(s.Attributes(), "rdfc.blank_nodes")
		require.True(t, ok)
		assert.Equal(t, int64(2), v.AsInt64())
		v, ok = attrValue(s.Attributes(), "rdfc.algorithm")
		require.True(t, ok)
		assert.Equal(t, AlgorithmRDFC10, v.AsString())
	}
}

func TestCanonicalizeSpanRecordsFailure(t *testing.T) {
	sr, tp := newRecorder(t)
	ds := testutil.Dataset(
		[]string{"_:x", "<http://ex/p>", "_:y"},
		[]string{"_:y", "<http://ex/p>", "_:x"},
	)

	_, err := Canonicalize(context.Background(), ds, WithTracer(tp.Tracer("test")), WithMaxDegree(1))
	require.Error(t, err)

	var found bool
	for _, s := range sr.Ended() {
		if s.Name() == "canon.Canonicalize" {
			found = true
			assert.Equal(t, codes.Error, s.Status().Code)
			assert.Equal(t, string(ErrCodeDegreeLimitExceeded), s.Status().Description)
		}
	}
	assert.True(t, found)
}
