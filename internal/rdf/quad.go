package rdf

// Position names a slot in a quad.
type Position byte

const (
	PositionSubject   Position = 's'
	PositionPredicate Position = 'p'
	PositionObject    Position = 'o'
	PositionGraph     Position = 'g'
)

func (p Position) String() string {
	switch p {
	case PositionSubject:
		return "subject"
	case PositionPredicate:
		return "predicate"
	case PositionObject:
		return "object"
	case PositionGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// Quad is a triple plus the graph it belongs to.
type Quad struct {
	Subject   Term
	Predicate Term
	Object    Term
	Graph     Term // nil means DefaultGraph
}

// NewQuad creates a quad in the default graph.
func NewQuad(s, p, o Term) Quad {
	return Quad{Subject: s, Predicate: p, Object: o, Graph: DefaultGraph{}}
}

// NewQuadInGraph creates a quad in the named graph g.
func NewQuadInGraph(s, p, o, g Term) Quad {
	return Quad{Subject: s, Predicate: p, Object: o, Graph: g}
}

// GraphTerm returns the quad's graph, substituting DefaultGraph for nil.
func (q Quad) GraphTerm() Term {
	if q.Graph == nil {
		return DefaultGraph{}
	}
	return q.Graph
}

// BlankNodes returns the blank node identifiers in subject, object and graph
// position, in that order, with repeats removed.
func (q Quad) BlankNodes() []string {
	var ids []string
	for _, t := range [...]Term{q.Subject, q.Object, q.Graph} {
		b, ok := t.(BlankNode)
		if !ok {
			continue
		}
		id := string(b)
		dup := false
		for _, seen := range ids {
			if seen == id {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, id)
		}
	}
	return ids
}

// Map returns a copy of q with every blank node replaced by fn(id).
func (q Quad) Map(fn func(id string) string) Quad {
	return Quad{
		Subject:   mapTerm(q.Subject, fn),
		Predicate: q.Predicate,
		Object:    mapTerm(q.Object, fn),
		Graph:     mapTerm(q.Graph, fn),
	}
}

func mapTerm(t Term, fn func(string) string) Term {
	if b, ok := t.(BlankNode); ok {
		return BlankNode(fn(string(b)))
	}
	return t
}

// String returns the quad's N-Quads line without the trailing newline.
func (q Quad) String() string {
	line := AppendQuad(nil, q)
	return string(line[:len(line)-1])
}
