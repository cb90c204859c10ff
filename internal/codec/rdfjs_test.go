package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfc/internal/rdf"
)

func TestDecodeRDFJS(t *testing.T) {
	input := `[
  {
    "subject": {"termType": "BlankNode", "value": "b0"},
    "predicate": {"termType": "NamedNode", "value": "http://ex/p"},
    "object": {"termType": "Literal", "value": "hi", "language": "en",
               "datatype": {"termType": "NamedNode", "value": "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"}},
    "graph": {"termType": "DefaultGraph", "value": ""}
  },
  {
    "subject": {"termType": "NamedNode", "value": "http://ex/s"},
    "predicate": {"termType": "NamedNode", "value": "http://ex/p"},
    "object": {"termType": "Literal", "value": "plain",
               "datatype": {"termType": "NamedNode", "value": "http://www.w3.org/2001/XMLSchema#string"}}
  },
  {
    "subject": {"termType": "NamedNode", "value": "http://ex/s"},
    "predicate": {"termType": "NamedNode", "value": "http://ex/p"},
    "object": {"termType": "BlankNode", "value": "b0"},
    "graph": {"termType": "NamedNode", "value": "http://ex/g"}
  }
]`
	ds, err := DecodeRDFJS([]byte(input))
	require.NoError(t, err)

	want := []rdf.Quad{
		rdf.NewQuad(rdf.BlankNode("b0"), rdf.IRI("http://ex/p"), rdf.NewLangLiteral("hi", "en")),
		rdf.NewQuad(rdf.IRI("http://ex/s"), rdf.IRI("http://ex/p"), rdf.NewLiteral("plain")),
		rdf.NewQuadInGraph(rdf.IRI("http://ex/s"), rdf.IRI("http://ex/p"), rdf.BlankNode("b0"), rdf.IRI("http://ex/g")),
	}
	assert.Equal(t, want, ds.Quads())
}

func TestDecodeRDFJSUnknownTermType(t *testing.T) {
	input := `[{"subject": {"termType": "Variable", "value": "x"},
	            "predicate": {"termType": "NamedNode", "value": "http://ex/p"},
	            "object": {"termType": "Literal", "value": "v"}}]`
	_, err := DecodeRDFJS([]byte(input))
	require.Error(t, err)

	var termErr *rdf.TermError
	require.True(t, errors.As(err, &termErr))
	assert.Equal(t, rdf.PositionSubject, termErr.Position)
	assert.Contains(t, err.Error(), "Variable")
}

func TestDecodeRDFJSMissingTerm(t *testing.T) {
	_, err := DecodeRDFJS([]byte(`[{"subject": {"termType": "NamedNode", "value": "http://ex/s"}}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing predicate")
}

func TestEncodeDecodeRDFJS(t *testing.T) {
	quads := []rdf.Quad{
		rdf.NewQuadInGraph(rdf.BlankNode("x"), rdf.IRI("http://ex/p"),
			rdf.NewTypedLiteral("1", "http://www.w3.org/2001/XMLSchema#integer"), rdf.BlankNode("g")),
		rdf.NewQuad(rdf.IRI("http://ex/s"), rdf.IRI("http://ex/p"), rdf.NewLangLiteral("bonjour", "fr")),
	}
	data, err := EncodeRDFJS(quads)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"termType":"DefaultGraph"`)

	ds, err := DecodeRDFJS(data)
	require.NoError(t, err)
	assert.Equal(t, quads, ds.Quads())
}
