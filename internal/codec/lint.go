package codec

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rdfc/internal/rdf"
)

// Finding is a lint observation about one quad. Findings never change how
// a dataset canonicalizes.
type Finding struct {
	Quad     int
	Position rdf.Position
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("quad %d %s: %s", f.Quad, f.Position, f.Message)
}

// Lint reports literals and IRIs whose text is not in Unicode NFC.
// Canonicalization compares code points, so two renderings of the same
// visible text canonicalize differently.
func Lint(ds *rdf.Dataset) []Finding {
	var out []Finding
	for i, q := range ds.Quads() {
		slots := [...]struct {
			pos  rdf.Position
			term rdf.Term
		}{
			{rdf.PositionSubject, q.Subject},
			{rdf.PositionPredicate, q.Predicate},
			{rdf.PositionObject, q.Object},
			{rdf.PositionGraph, q.Graph},
		}
		for _, s := range slots {
			if msg := lintTerm(s.term); msg != "" {
				out = append(out, Finding{Quad: i, Position: s.pos, Message: msg})
			}
		}
	}
	return out
}

func lintTerm(t rdf.Term) string {
	switch v := t.(type) {
	case rdf.Literal:
		if !norm.NFC.IsNormalString(v.Value) {
			return fmt.Sprintf("literal %q is not NFC normalized", v.Value)
		}
	case rdf.IRI:
		if !norm.NFC.IsNormalString(string(v)) {
			return fmt.Sprintf("IRI <%s> is not NFC normalized", string(v))
		}
	}
	return ""
}
