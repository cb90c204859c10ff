package canon

import (
	"sort"

	"github.com/roach88/rdfc/internal/rdf"
)

// Placeholders used by the first-degree hash: the node being hashed is
// rendered as _:a and every other blank node as _:z.
const (
	selfLabel  = "a"
	otherLabel = "z"
)

// hashFirstDegree hashes the sorted N-Quads lines of every quad mentioning
// id, with blank nodes replaced by placeholders.
func (r *run) hashFirstDegree(id string) string {
	quads := r.index.quads[id]
	lines := make([]string, 0, len(quads))
	placeholder := func(b string) string {
		if b == id {
			return selfLabel
		}
		return otherLabel
	}
	for _, q := range quads {
		lines = append(lines, string(rdf.AppendQuad(nil, q.Map(placeholder))))
	}
	sort.Strings(lines)

	h := r.alg.New()
	for _, l := range lines {
		h.Write([]byte(l))
	}
	return hexDigest(h)
}

// computeFirstDegree fills r.firstDegree and returns the hash groups in
// ascending hash order. Members of a group keep discovery order.
func (r *run) computeFirstDegree() (hashes []string, groups map[string][]string) {
	groups = make(map[string][]string)
	for _, id := range r.index.order {
		h := r.hashFirstDegree(id)
		r.firstDegree[id] = h
		if _, ok := groups[h]; !ok {
			hashes = append(hashes, h)
		}
		groups[h] = append(groups[h], id)
	}
	sort.Strings(hashes)
	return hashes, groups
}
