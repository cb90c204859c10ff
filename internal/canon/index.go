package canon

import "github.com/roach88/rdfc/internal/rdf"

// blankIndex maps each blank node to the quads that mention it.
type blankIndex struct {
	quads map[string][]rdf.Quad
	order []string // discovery order
}

// buildIndex validates every quad and indexes it under the blank node of
// each subject, object and graph position. A node filling two positions of
// one quad gets that quad twice; its first-degree hash depends on it.
func buildIndex(quads []rdf.Quad) (*blankIndex, error) {
	idx := &blankIndex{quads: make(map[string][]rdf.Quad)}
	for _, q := range quads {
		if err := q.Validate(); err != nil {
			return nil, invalidTermError(err)
		}
		for _, t := range [...]rdf.Term{q.Subject, q.Object, q.Graph} {
			b, ok := t.(rdf.BlankNode)
			if !ok {
				continue
			}
			id := string(b)
			if _, ok := idx.quads[id]; !ok {
				idx.order = append(idx.order, id)
			}
			idx.quads[id] = append(idx.quads[id], q)
		}
	}
	return idx, nil
}

// Index returns the blank node to quads map for ds.
// Fails with INVALID_TERM when a quad holds a term where RDF forbids it.
func Index(ds *rdf.Dataset) (map[string][]rdf.Quad, error) {
	idx, err := buildIndex(ds.Quads())
	if err != nil {
		return nil, err
	}
	return idx.quads, nil
}
