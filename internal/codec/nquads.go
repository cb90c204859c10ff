package codec

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/roach88/rdfc/internal/rdf"
)

const defaultGraphName = "@default"

// ParseNQuads reads an N-Quads document.
func ParseNQuads(r io.Reader) (*rdf.Dataset, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read n-quads: %w", err)
	}
	return ParseNQuadsString(string(b))
}

// ParseNQuadsString parses an N-Quads document held in a string.
// ECHAR and UCHAR escapes in literals, and UCHAR escapes in IRIs, are
// decoded.
func ParseNQuadsString(s string) (*rdf.Dataset, error) {
	protected, err := protectLiterals(s)
	if err != nil {
		return nil, fmt.Errorf("parse n-quads: %w", err)
	}
	lds, err := ld.ParseNQuads(protected)
	if err != nil {
		return nil, fmt.Errorf("parse n-quads: %w", err)
	}
	ds, err := fromLD(lds, true)
	if err != nil {
		return nil, fmt.Errorf("parse n-quads: %w", err)
	}
	return ds, nil
}

// fromLD converts a json-gold dataset. Graphs are visited in name order so
// discovery order does not depend on map iteration. nquads is set for
// datasets parsed from text that went through protectLiterals.
func fromLD(lds *ld.RDFDataset, nquads bool) (*rdf.Dataset, error) {
	names := make([]string, 0, len(lds.Graphs))
	for name := range lds.Graphs {
		names = append(names, name)
	}
	sort.Strings(names)

	ds := rdf.NewDataset()
	for _, name := range names {
		graph, err := graphTerm(name, nquads)
		if err != nil {
			return nil, err
		}
		for _, q := range lds.Graphs[name] {
			s, err := fromLDNode(q.Subject, nquads)
			if err != nil {
				return nil, err
			}
			p, err := fromLDNode(q.Predicate, nquads)
			if err != nil {
				return nil, err
			}
			o, err := fromLDNode(q.Object, nquads)
			if err != nil {
				return nil, err
			}
			ds.Add(rdf.NewQuadInGraph(s, p, o, graph))
		}
	}
	return ds, nil
}

func graphTerm(name string, nquads bool) (rdf.Term, error) {
	switch {
	case name == "" || name == defaultGraphName:
		return rdf.DefaultGraph{}, nil
	case strings.HasPrefix(name, "_:"):
		return rdf.BlankNode(name[2:]), nil
	default:
		iri, err := ldIRI(name, nquads)
		if err != nil {
			return nil, err
		}
		return rdf.IRI(iri), nil
	}
}

func fromLDNode(n ld.Node, nquads bool) (rdf.Term, error) {
	switch v := n.(type) {
	case *ld.IRI:
		iri, err := ldIRI(v.Value, nquads)
		if err != nil {
			return nil, err
		}
		return rdf.IRI(iri), nil
	case *ld.BlankNode:
		return rdf.BlankNode(strings.TrimPrefix(v.Attribute, "_:")), nil
	case *ld.Literal:
		value := v.Value
		if nquads {
			value = restoreLiteral(value)
		}
		if v.Language != "" {
			return rdf.NewLangLiteral(value, v.Language), nil
		}
		datatype, err := ldIRI(v.Datatype, nquads)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, datatype), nil
	default:
		return nil, fmt.Errorf("unsupported json-gold node %T", n)
	}
}

func ldIRI(s string, nquads bool) (string, error) {
	if !nquads {
		return s, nil
	}
	return unescapeIRI(s)
}
