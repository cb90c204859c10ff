package codec

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/rdfc/internal/rdf"
)

// RDF/JS termType values.
const (
	termNamedNode    = "NamedNode"
	termBlankNode    = "BlankNode"
	termLiteral      = "Literal"
	termDefaultGraph = "DefaultGraph"
)

// JSTerm is an RDF/JS term object as JavaScript hosts serialize it.
type JSTerm struct {
	TermType string  `json:"termType"`
	Value    string  `json:"value"`
	Language string  `json:"language,omitempty"`
	Datatype *JSTerm `json:"datatype,omitempty"`
}

// JSQuad is an RDF/JS quad object. A missing graph is the default graph.
type JSQuad struct {
	Subject   *JSTerm `json:"subject"`
	Predicate *JSTerm `json:"predicate"`
	Object    *JSTerm `json:"object"`
	Graph     *JSTerm `json:"graph,omitempty"`
}

// DecodeRDFJS decodes a JSON array of RDF/JS quads.
func DecodeRDFJS(data []byte) (*rdf.Dataset, error) {
	var quads []JSQuad
	if err := json.Unmarshal(data, &quads); err != nil {
		return nil, fmt.Errorf("decode rdf/js: %w", err)
	}
	return FromRDFJS(quads)
}

// FromRDFJS converts RDF/JS quads. Term placement is not validated here;
// canonicalization rejects misplaced terms.
func FromRDFJS(quads []JSQuad) (*rdf.Dataset, error) {
	ds := rdf.NewDataset()
	for i, jq := range quads {
		var q rdf.Quad
		var err error
		if q.Subject, err = fromJSTerm(i, rdf.PositionSubject, jq.Subject); err != nil {
			return nil, err
		}
		if q.Predicate, err = fromJSTerm(i, rdf.PositionPredicate, jq.Predicate); err != nil {
			return nil, err
		}
		if q.Object, err = fromJSTerm(i, rdf.PositionObject, jq.Object); err != nil {
			return nil, err
		}
		if jq.Graph == nil {
			q.Graph = rdf.DefaultGraph{}
		} else if q.Graph, err = fromJSTerm(i, rdf.PositionGraph, jq.Graph); err != nil {
			return nil, err
		}
		ds.Add(q)
	}
	return ds, nil
}

func fromJSTerm(i int, pos rdf.Position, t *JSTerm) (rdf.Term, error) {
	if t == nil {
		return nil, fmt.Errorf("quad %d: missing %s", i, pos)
	}
	switch t.TermType {
	case termNamedNode:
		return rdf.IRI(t.Value), nil
	case termBlankNode:
		return rdf.BlankNode(t.Value), nil
	case termLiteral:
		lit := rdf.Literal{Value: t.Value, Language: t.Language}
		if t.Datatype != nil && t.Datatype.Value != rdf.XSDString {
			lit.Datatype = t.Datatype.Value
		}
		if lit.Language != "" && lit.Datatype == rdf.RDFLangString {
			lit.Datatype = ""
		}
		return lit, nil
	case termDefaultGraph:
		return rdf.DefaultGraph{}, nil
	default:
		return nil, fmt.Errorf("quad %d: %w", i, &rdf.TermError{
			Position: pos,
			Reason:   fmt.Sprintf("unknown termType %q", t.TermType),
		})
	}
}

// EncodeRDFJS renders quads as a JSON array of RDF/JS quads.
func EncodeRDFJS(quads []rdf.Quad) ([]byte, error) {
	out := make([]JSQuad, len(quads))
	for i, q := range quads {
		out[i] = JSQuad{
			Subject:   toJSTerm(q.Subject),
			Predicate: toJSTerm(q.Predicate),
			Object:    toJSTerm(q.Object),
			Graph:     toJSTerm(q.GraphTerm()),
		}
	}
	return json.Marshal(out)
}

func toJSTerm(t rdf.Term) *JSTerm {
	switch v := t.(type) {
	case rdf.IRI:
		return &JSTerm{TermType: termNamedNode, Value: string(v)}
	case rdf.BlankNode:
		return &JSTerm{TermType: termBlankNode, Value: string(v)}
	case rdf.Literal:
		return &JSTerm{
			TermType: termLiteral,
			Value:    v.Value,
			Language: v.Language,
			Datatype: &JSTerm{TermType: termNamedNode, Value: v.EffectiveDatatype()},
		}
	case rdf.DefaultGraph:
		return &JSTerm{TermType: termDefaultGraph}
	default:
		return nil
	}
}
