package rdf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadValidate(t *testing.T) {
	s := IRI("http://ex/s")
	p := IRI("http://ex/p")
	o := NewLiteral("o")

	tests := []struct {
		name    string
		quad    Quad
		wantPos Position
	}{
		{"literal subject", NewQuad(NewLiteral("x"), p, o), PositionSubject},
		{"blank predicate", NewQuad(s, BlankNode("b"), o), PositionPredicate},
		{"literal predicate", NewQuad(s, NewLiteral("p"), o), PositionPredicate},
		{"default graph as object", NewQuad(s, p, DefaultGraph{}), PositionObject},
		{"literal graph", NewQuadInGraph(s, p, o, NewLiteral("g")), PositionGraph},
		{"default graph as subject", NewQuad(DefaultGraph{}, p, o), PositionSubject},
		{"missing predicate", Quad{Subject: s, Object: o}, PositionPredicate},
		{"empty IRI", NewQuad(IRI(""), p, o), PositionSubject},
		{"IRI with space", NewQuad(s, IRI("http://ex/a b"), o), PositionPredicate},
		{"IRI with angle bracket", NewQuad(s, p, IRI("http://ex/<x>")), PositionObject},
		{"empty blank id", NewQuad(BlankNode(""), p, o), PositionSubject},
		{"language with datatype", NewQuad(s, p, Literal{Value: "x", Language: "en", Datatype: "http://ex/dt"}), PositionObject},
		{"langString without language", NewQuad(s, p, Literal{Value: "x", Datatype: RDFLangString}), PositionObject},
		{"bad language tag", NewQuad(s, p, NewLangLiteral("x", "en_US")), PositionObject},
		{"digit-leading language tag", NewQuad(s, p, NewLangLiteral("x", "1en")), PositionObject},
		{"invalid utf8 literal", NewQuad(s, p, NewLiteral("\xff")), PositionObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.quad.Validate()
			require.Error(t, err)

			var termErr *TermError
			require.True(t, errors.As(err, &termErr))
			assert.Equal(t, tt.wantPos, termErr.Position)
			assert.NotEmpty(t, termErr.Error())
		})
	}
}

func TestQuadValidateAccepts(t *testing.T) {
	p := IRI("http://ex/p")
	valid := []Quad{
		NewQuad(IRI("http://ex/s"), p, IRI("http://ex/o")),
		NewQuad(BlankNode("b0"), p, BlankNode("b1")),
		NewQuad(BlankNode("b0"), p, NewLangLiteral("x", "en-US")),
		NewQuad(BlankNode("b0"), p, NewLangLiteral("x", "de-CH-1996")),
		NewQuadInGraph(BlankNode("b0"), p, NewLiteral("x"), BlankNode("g")),
		{Subject: IRI("urn:x"), Predicate: p, Object: NewLiteral("nil graph")},
		NewQuad(IRI("http://ex/s"), p, NewLiteral("tab\tand\nnewline")),
	}
	for _, q := range valid {
		assert.NoError(t, q.Validate(), q.String())
	}
}

func TestTermErrorMessage(t *testing.T) {
	err := NewQuad(NewLiteral("x"), IRI("http://ex/p"), NewLiteral("o")).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subject")
	assert.Contains(t, err.Error(), `"x"`)
}
