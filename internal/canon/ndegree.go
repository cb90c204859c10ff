package canon

import (
	"context"
	"sort"

	"github.com/roach88/rdfc/internal/rdf"
)

// tempPrefix labels blank nodes inside N-degree trials.
const tempPrefix = "b"

// ndegreeResult is the outcome of hashing one blank node's neighbourhood:
// the hash and the trial issuer holding the labels the chosen paths issued.
type ndegreeResult struct {
	id     string
	hash   string
	issuer *Issuer
}

// hashRelated hashes the relationship between the node being hashed and
// related, as seen from pos within q.
func (r *run) hashRelated(related string, q rdf.Quad, issuer *Issuer, pos rdf.Position) string {
	var ident string
	if label, ok := r.canonical.Lookup(related); ok {
		ident = "_:" + label
	} else if label, ok := issuer.Lookup(related); ok {
		ident = "_:" + label
	} else {
		ident = r.firstDegree[related]
	}

	h := r.alg.New()
	h.Write([]byte{byte(pos)})
	if pos != rdf.PositionGraph {
		h.Write([]byte("<"))
		h.Write([]byte(predicateIRI(q)))
		h.Write([]byte(">"))
	}
	h.Write([]byte(ident))
	return hexDigest(h)
}

func predicateIRI(q rdf.Quad) string {
	if iri, ok := q.Predicate.(rdf.IRI); ok {
		return string(iri)
	}
	return ""
}

// relatedGroups groups the blank nodes adjacent to id by related hash.
func (r *run) relatedGroups(id string, issuer *Issuer) map[string][]string {
	groups := make(map[string][]string)
	for _, q := range r.index.quads[id] {
		slots := [...]struct {
			term rdf.Term
			pos  rdf.Position
		}{
			{q.Subject, rdf.PositionSubject},
			{q.Object, rdf.PositionObject},
			{q.Graph, rdf.PositionGraph},
		}
		for _, s := range slots {
			b, ok := s.term.(rdf.BlankNode)
			if !ok || string(b) == id {
				continue
			}
			h := r.hashRelated(string(b), q, issuer, s.pos)
			groups[h] = append(groups[h], string(b))
		}
	}
	return groups
}

// hashNDegree computes the N-degree hash of id. issuer is never modified;
// the returned issuer is either issuer itself or a fork of it.
func (r *run) hashNDegree(ctx context.Context, id string, issuer *Issuer, depth int) (ndegreeResult, error) {
	if err := r.budget.enter(ctx, id, depth); err != nil {
		return ndegreeResult{}, err
	}

	groups := r.relatedGroups(id, issuer)
	hashes := make([]string, 0, len(groups))
	for h := range groups {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)

	data := r.alg.New()
	for _, relatedHash := range hashes {
		data.Write([]byte(relatedHash))

		var chosenPath string
		var chosenIssuer *Issuer

		perm := newPermuter(groups[relatedHash])
		for perm.next() {
			if err := r.budget.trial(ctx); err != nil {
				return ndegreeResult{}, err
			}

			trial := issuer.Clone()
			path, recursion, ok := r.buildPath(perm.current(), trial, chosenPath)
			if !ok {
				continue
			}

			pruned := false
			for _, related := range recursion {
				res, err := r.hashNDegree(ctx, related, trial, depth+1)
				if err != nil {
					return ndegreeResult{}, err
				}
				path += "_:" + trial.Issue(related)
				path += "<" + res.hash + ">"
				trial = res.issuer
				if worse(path, chosenPath) {
					pruned = true
					break
				}
			}
			if pruned {
				continue
			}

			if chosenPath == "" || path < chosenPath {
				chosenPath = path
				chosenIssuer = trial
			}
		}

		data.Write([]byte(chosenPath))
		issuer = chosenIssuer
	}

	return ndegreeResult{id: id, hash: hexDigest(data), issuer: issuer}, nil
}

// buildPath renders one permutation as a path of labels, issuing trial
// labels to nodes without a canonical one. Nodes newly labelled here are
// returned for recursion. ok is false once the path can no longer beat
// chosen.
func (r *run) buildPath(order []string, trial *Issuer, chosen string) (path string, recursion []string, ok bool) {
	for _, related := range order {
		if label, found := r.canonical.Lookup(related); found {
			path += "_:" + label
		} else {
			if !trial.Has(related) {
				recursion = append(recursion, related)
			}
			path += "_:" + trial.Issue(related)
		}
		if worse(path, chosen) {
			return "", nil, false
		}
	}
	return path, recursion, true
}

// worse reports whether path can be abandoned in favour of chosen.
func worse(path, chosen string) bool {
	return chosen != "" && len(path) >= len(chosen) && path > chosen
}
