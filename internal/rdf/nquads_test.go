package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendQuad(t *testing.T) {
	tests := []struct {
		name string
		quad Quad
		want string
	}{
		{
			name: "iri object default graph",
			quad: NewQuad(IRI("http://ex/s"), IRI("http://ex/p"), IRI("http://ex/o")),
			want: "<http://ex/s> <http://ex/p> <http://ex/o> .\n",
		},
		{
			name: "nil graph is default graph",
			quad: Quad{Subject: BlankNode("b0"), Predicate: IRI("http://ex/p"), Object: NewLiteral("v")},
			want: "_:b0 <http://ex/p> \"v\" .\n",
		},
		{
			name: "named graph",
			quad: NewQuadInGraph(IRI("http://ex/s"), IRI("http://ex/p"), NewLiteral("v"), IRI("http://ex/g")),
			want: "<http://ex/s> <http://ex/p> \"v\" <http://ex/g> .\n",
		},
		{
			name: "blank graph",
			quad: NewQuadInGraph(IRI("http://ex/s"), IRI("http://ex/p"), NewLiteral("v"), BlankNode("g")),
			want: "<http://ex/s> <http://ex/p> \"v\" _:g .\n",
		},
		{
			name: "language tag",
			quad: NewQuad(IRI("http://ex/s"), IRI("http://ex/p"), NewLangLiteral("chat", "fr")),
			want: "<http://ex/s> <http://ex/p> \"chat\"@fr .\n",
		},
		{
			name: "typed literal",
			quad: NewQuad(IRI("http://ex/s"), IRI("http://ex/p"),
				NewTypedLiteral("5", "http://www.w3.org/2001/XMLSchema#integer")),
			want: "<http://ex/s> <http://ex/p> \"5\"^^<http://www.w3.org/2001/XMLSchema#integer> .\n",
		},
		{
			name: "explicit xsd string omitted",
			quad: NewQuad(IRI("http://ex/s"), IRI("http://ex/p"), Literal{Value: "x", Datatype: XSDString}),
			want: "<http://ex/s> <http://ex/p> \"x\" .\n",
		},
		{
			name: "language wins over langString datatype",
			quad: NewQuad(IRI("http://ex/s"), IRI("http://ex/p"), Literal{Value: "x", Language: "en", Datatype: RDFLangString}),
			want: "<http://ex/s> <http://ex/p> \"x\"@en .\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendQuad(nil, tt.quad)))
		})
	}
}

func TestLiteralEscaping(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak", `"line\nbreak"`},
		{"carriage\rreturn", `"carriage\rreturn"`},
		{"tab\tstays", "\"tab\tstays\""},
		{"nul\x00", `"nul\u0000"`},
		{"bell\x07", `"bell\u0007"`},
		{"vt\x0b ff\x0c", `"vt\u000B ff\u000C"`},
		{"esc\x1b", `"esc\u001B"`},
		{"del\x7f", `"del\u007F"`},
		{"unicode é 日本", `"unicode é 日本"`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, string(AppendTerm(nil, NewLiteral(tt.value))))
		})
	}
}

func TestQuadString(t *testing.T) {
	q := NewQuad(BlankNode("a"), IRI("http://ex/p"), BlankNode("b"))
	assert.Equal(t, "_:a <http://ex/p> _:b .", q.String())
}

func TestAppendTermDefaultGraphIsEmpty(t *testing.T) {
	assert.Empty(t, AppendTerm(nil, DefaultGraph{}))
	assert.Empty(t, AppendTerm(nil, nil))
}
