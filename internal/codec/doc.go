// Package codec converts external RDF representations into rdf.Dataset
// values and back: N-Quads and JSON-LD through json-gold, and the RDF/JS
// term-object JSON that JavaScript hosts marshal.
package codec
