package rdf

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TermError reports a term that is not allowed where it appears.
type TermError struct {
	Position Position
	Term     Term
	Reason   string
}

func (e *TermError) Error() string {
	if e.Term == nil {
		return fmt.Sprintf("invalid %s: %s", e.Position, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Position, describe(e.Term), e.Reason)
}

func describe(t Term) string {
	if t.Kind() == KindDefaultGraph {
		return "DefaultGraph"
	}
	s := string(AppendTerm(nil, t))
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}

// Validate checks every term of q against the slot it occupies.
// Returns the first *TermError found, or nil.
func (q Quad) Validate() error {
	if err := checkSlot(PositionSubject, q.Subject, KindIRI, KindBlankNode); err != nil {
		return err
	}
	if err := checkSlot(PositionPredicate, q.Predicate, KindIRI); err != nil {
		return err
	}
	if err := checkSlot(PositionObject, q.Object, KindIRI, KindBlankNode, KindLiteral); err != nil {
		return err
	}
	return checkSlot(PositionGraph, q.GraphTerm(), KindIRI, KindBlankNode, KindDefaultGraph)
}

func checkSlot(pos Position, t Term, allowed ...Kind) error {
	if t == nil {
		return &TermError{Position: pos, Reason: "missing term"}
	}
	ok := false
	for _, k := range allowed {
		if t.Kind() == k {
			ok = true
			break
		}
	}
	if !ok {
		return &TermError{Position: pos, Term: t, Reason: fmt.Sprintf("%s not allowed here", t.Kind())}
	}
	if reason := ValidateTerm(t); reason != "" {
		return &TermError{Position: pos, Term: t, Reason: reason}
	}
	return nil
}

// ValidateTerm checks a term's own well-formedness.
// Returns an empty string when the term is valid, otherwise the reason.
func ValidateTerm(t Term) string {
	switch v := t.(type) {
	case IRI:
		return validateIRI(string(v))
	case BlankNode:
		return validateBlankID(string(v))
	case Literal:
		return validateLiteral(v)
	case DefaultGraph:
		return ""
	default:
		return "unknown term type"
	}
}

func validateIRI(s string) string {
	if s == "" {
		return "empty IRI"
	}
	if !utf8.ValidString(s) {
		return "IRI is not valid UTF-8"
	}
	for _, r := range s {
		if r <= 0x20 || r == 0x7F || strings.ContainsRune("<>\"{}|^`\\", r) {
			return fmt.Sprintf("IRI contains forbidden character %q", r)
		}
	}
	return ""
}

func validateBlankID(s string) string {
	if s == "" {
		return "empty blank node identifier"
	}
	for _, r := range s {
		if r <= 0x20 || r == 0x7F {
			return fmt.Sprintf("blank node identifier contains %q", r)
		}
	}
	return ""
}

func validateLiteral(l Literal) string {
	if !utf8.ValidString(l.Value) {
		return "literal is not valid UTF-8"
	}
	if l.Language != "" {
		if l.Datatype != "" && l.Datatype != RDFLangString {
			return "language-tagged literal with datatype " + l.Datatype
		}
		if !validLanguageTag(l.Language) {
			return "malformed language tag " + l.Language
		}
		return ""
	}
	if l.Datatype == RDFLangString {
		return "rdf:langString literal without a language tag"
	}
	if l.Datatype != "" {
		return validateIRI(l.Datatype)
	}
	return ""
}

// validLanguageTag matches [a-zA-Z]+(-[a-zA-Z0-9]+)*.
func validLanguageTag(tag string) bool {
	for i, part := range strings.Split(tag, "-") {
		if part == "" {
			return false
		}
		for _, c := range []byte(part) {
			alpha := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
			digit := c >= '0' && c <= '9'
			if !alpha && !(digit && i > 0) {
				return false
			}
		}
	}
	return true
}
