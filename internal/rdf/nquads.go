package rdf

const hexDigits = "0123456789ABCDEF"

// AppendTerm appends the N-Quads form of t to b.
// DefaultGraph and nil append nothing.
func AppendTerm(b []byte, t Term) []byte {
	switch v := t.(type) {
	case IRI:
		b = append(b, '<')
		b = append(b, v...)
		return append(b, '>')
	case BlankNode:
		b = append(b, "_:"...)
		return append(b, v...)
	case Literal:
		b = append(b, '"')
		b = appendEscaped(b, v.Value)
		b = append(b, '"')
		switch {
		case v.Language != "":
			b = append(b, '@')
			b = append(b, v.Language...)
		case v.Datatype != "" && v.Datatype != XSDString:
			b = append(b, "^^<"...)
			b = append(b, v.Datatype...)
			b = append(b, '>')
		}
		return b
	default:
		return b
	}
}

// AppendQuad appends the canonical N-Quads line for q, including the
// terminating " .\n". The graph is omitted for the default graph.
func AppendQuad(b []byte, q Quad) []byte {
	b = AppendTerm(b, q.Subject)
	b = append(b, ' ')
	b = AppendTerm(b, q.Predicate)
	b = append(b, ' ')
	b = AppendTerm(b, q.Object)
	if g := q.GraphTerm(); g.Kind() != KindDefaultGraph {
		b = append(b, ' ')
		b = AppendTerm(b, g)
	}
	return append(b, " .\n"...)
}

// appendEscaped writes a literal's lexical form using the canonical
// N-Quads escapes: ECHAR for quote, backslash, LF and CR; \uXXXX for the
// remaining C0 controls (tab excepted) and DEL.
func appendEscaped(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			b = append(b, '\\', '"')
		case c == '\\':
			b = append(b, '\\', '\\')
		case c == '\n':
			b = append(b, '\\', 'n')
		case c == '\r':
			b = append(b, '\\', 'r')
		case c == '\t':
			b = append(b, c)
		case c < 0x20 || c == 0x7F:
			b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
		default:
			b = append(b, c)
		}
	}
	return b
}
