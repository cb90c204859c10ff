// Package canon implements RDF dataset canonicalization (RDFC-1.0, also
// known by its draft name URDNA2015).
//
// Canonicalization assigns every blank node a label of the form c14nN so
// that datasets equal up to blank node renaming serialize to byte-identical
// canonical N-Quads.
//
// PHASES:
//
//  1. Index: every blank node is mapped to the quads that mention it.
//  2. First-degree hash: each node's quads are rendered with the node as
//     _:a and every other blank node as _:z, sorted and hashed. Nodes with a
//     unique hash are labelled immediately, in hash order.
//  3. N-degree hash: nodes that share a first-degree hash are told apart by
//     hashing paths through their neighbourhood. Symmetric neighbourhoods are
//     searched permutation by permutation on forked issuers; the smallest
//     path wins.
//  4. Serialize: quads are relabelled, rendered and sorted.
//
// DETERMINISM:
//
// Output never depends on input order, input labels, map iteration or
// worker scheduling. Groups are resolved one at a time in hash order, and
// results within a group are committed in (hash, discovery order) even when
// Options.Workers hashes them concurrently.
//
// BOUNDS:
//
// Symmetric inputs can make the N-degree hash exponential. MaxDegree,
// MaxWorkFactor and Timeout turn runaway inputs into DEGREE_LIMIT_EXCEEDED
// or CANONICALIZATION_TIMEOUT errors; nothing loops silently.
package canon
