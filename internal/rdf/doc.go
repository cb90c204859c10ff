// Package rdf provides the dataset model shared by every other package in
// rdfc: terms, quads, datasets and the canonical N-Quads line format.
//
// This package imports nothing internal. Terms are a closed set: IRI,
// BlankNode, Literal and DefaultGraph are the only implementations of Term,
// and every consumer switches over them exhaustively.
//
// Key constraints:
//   - Blank node identifiers are stored without the "_:" prefix
//   - A Literal with an empty Datatype is an xsd:string
//   - A nil Quad.Graph is the default graph
//   - Dataset order is discovery order only; it never affects canonical output
package rdf
