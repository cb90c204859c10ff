package rdf

// Well-known datatype IRIs.
const (
	XSDString     = "http://www.w3.org/2001/XMLSchema#string"
	RDFLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// Kind identifies which concrete type a Term is.
type Kind int

const (
	KindIRI Kind = iota + 1
	KindBlankNode
	KindLiteral
	KindDefaultGraph
)

func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "IRI"
	case KindBlankNode:
		return "BlankNode"
	case KindLiteral:
		return "Literal"
	case KindDefaultGraph:
		return "DefaultGraph"
	default:
		return "Unknown"
	}
}

// Term is a sealed interface over the RDF term kinds.
// Only IRI, BlankNode, Literal and DefaultGraph implement it.
type Term interface {
	Kind() Kind
	term() // Sealed
}

// IRI is an absolute IRI, stored without angle brackets.
type IRI string

func (IRI) Kind() Kind { return KindIRI }
func (IRI) term()      {}

// BlankNode is a blank node identifier without the "_:" prefix.
type BlankNode string

func (BlankNode) Kind() Kind { return KindBlankNode }
func (BlankNode) term()      {}

// Literal is an RDF literal.
// Datatype is empty for xsd:string. Language implies rdf:langString.
type Literal struct {
	Value    string
	Language string
	Datatype string
}

func (Literal) Kind() Kind { return KindLiteral }
func (Literal) term()      {}

// EffectiveDatatype returns the datatype IRI the literal carries once the
// xsd:string and rdf:langString defaults are applied.
func (l Literal) EffectiveDatatype() string {
	switch {
	case l.Language != "":
		return RDFLangString
	case l.Datatype == "":
		return XSDString
	default:
		return l.Datatype
	}
}

// DefaultGraph names the unnamed graph of a dataset.
type DefaultGraph struct{}

func (DefaultGraph) Kind() Kind { return KindDefaultGraph }
func (DefaultGraph) term()      {}

// NewLiteral creates a plain xsd:string literal.
func NewLiteral(value string) Literal {
	return Literal{Value: value}
}

// NewLangLiteral creates a language-tagged literal.
func NewLangLiteral(value, lang string) Literal {
	return Literal{Value: value, Language: lang}
}

// NewTypedLiteral creates a literal with an explicit datatype.
// xsd:string is normalized to the empty datatype.
func NewTypedLiteral(value, datatype string) Literal {
	if datatype == XSDString {
		datatype = ""
	}
	return Literal{Value: value, Datatype: datatype}
}

// IsBlank reports whether t is a blank node.
func IsBlank(t Term) bool {
	_, ok := t.(BlankNode)
	return ok
}
