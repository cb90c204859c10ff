package testutil

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/roach88/rdfc/internal/rdf"
)

// Shuffle returns a new dataset holding the quads of ds in a seeded random
// order.
//
// The same seed always yields the same order, so a failing invariance test
// can be replayed.
func Shuffle(ds *rdf.Dataset, seed uint64) *rdf.Dataset {
	quads := ds.Quads()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(quads), func(i, j int) { quads[i], quads[j] = quads[j], quads[i] })
	return rdf.NewDataset(quads...)
}

// RenameBlankNodes returns a copy of ds with every blank node identifier
// passed through fn. fn must be injective for the result to be isomorphic.
func RenameBlankNodes(ds *rdf.Dataset, fn func(id string) string) *rdf.Dataset {
	quads := ds.Quads()
	for i, q := range quads {
		quads[i] = q.Map(fn)
	}
	return rdf.NewDataset(quads...)
}

// ScrambleLabels renames blank nodes to opaque identifiers assigned in a
// seeded random order, so neither the old names nor their sort order survive.
func ScrambleLabels(ds *rdf.Dataset, seed uint64) *rdf.Dataset {
	ids := ds.BlankNodes()
	rng := rand.New(rand.NewPCG(seed, ^seed))
	perm := rng.Perm(len(ids))
	names := make(map[string]string, len(ids))
	for i, id := range ids {
		names[id] = fmt.Sprintf("n%03dx", perm[i])
	}
	return RenameBlankNodes(ds, func(id string) string { return names[id] })
}

// Q builds a quad from compact term strings: "_:id" is a blank node,
// "<iri>" an IRI and anything else a plain literal. An optional fourth
// argument names the graph.
//
// Panics on a malformed call; meant for test tables only.
func Q(terms ...string) rdf.Quad {
	if len(terms) != 3 && len(terms) != 4 {
		panic(fmt.Sprintf("testutil.Q: want 3 or 4 terms, got %d", len(terms)))
	}
	q := rdf.NewQuad(term(terms[0]), term(terms[1]), term(terms[2]))
	if len(terms) == 4 {
		q.Graph = term(terms[3])
	}
	return q
}

func term(s string) rdf.Term {
	switch {
	case strings.HasPrefix(s, "_:"):
		return rdf.BlankNode(s[2:])
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return rdf.IRI(s[1 : len(s)-1])
	default:
		return rdf.NewLiteral(s)
	}
}

// Dataset builds a dataset from Q-style rows.
func Dataset(rows ...[]string) *rdf.Dataset {
	ds := rdf.NewDataset()
	for _, r := range rows {
		ds.Add(Q(r...))
	}
	return ds
}
