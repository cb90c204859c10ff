package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// json-gold unescapes literals by plain string replacement, which loses
// information ("\\n" turns into a newline) and skips \b, \f and UCHAR.
// protectLiterals decodes each literal itself and re-encodes the value so
// that json-gold's replacements leave it alone: the only backslashes left
// are in \" pairs, and backslash, LF, CR and the sentinel itself become
// sentinel sequences that restoreLiteral reverses.
const litSentinel = "\uE000"

var (
	litProtector = strings.NewReplacer(
		litSentinel, litSentinel+"0",
		`\`, litSentinel+"1",
		"\n", litSentinel+"2",
		"\r", litSentinel+"3",
		`"`, `\"`,
	)
	litRestorer = strings.NewReplacer(
		litSentinel+"0", litSentinel,
		litSentinel+"1", `\`,
		litSentinel+"2", "\n",
		litSentinel+"3", "\r",
	)
)

var echars = map[byte]rune{
	't': '\t', 'b': '\b', 'n': '\n', 'r': '\r', 'f': '\f',
	'"': '"', '\'': '\'', '\\': '\\',
}

var errUnterminatedLiteral = errors.New("unterminated literal")

// protectLiterals rewrites the literals of an N-Quads document for
// json-gold. IRIs and everything outside literals are copied unchanged.
func protectLiterals(s string) (string, error) {
	if !strings.Contains(s, `\`) && !strings.Contains(s, litSentinel) {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	line := 1
	for i := 0; i < len(s); {
		switch s[i] {
		case '\n':
			line++
			b.WriteByte('\n')
			i++
		case '<':
			end := strings.IndexAny(s[i:], ">\n")
			if end < 0 || s[i+end] == '\n' {
				// Malformed; json-gold reports it.
				b.WriteByte('<')
				i++
				continue
			}
			b.WriteString(s[i : i+end+1])
			i += end + 1
		case '"':
			value, n, err := unquoteLiteral(s[i:])
			if err != nil {
				return "", fmt.Errorf("line %d: %w", line, err)
			}
			b.WriteByte('"')
			b.WriteString(litProtector.Replace(value))
			b.WriteByte('"')
			i += n
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String(), nil
}

// restoreLiteral undoes the sentinel sequences protectLiterals wrote.
func restoreLiteral(s string) string {
	if !strings.Contains(s, litSentinel) {
		return s
	}
	return litRestorer.Replace(s)
}

// unquoteLiteral decodes the quoted literal at the start of s and returns
// its value and the number of bytes consumed, both quotes included.
func unquoteLiteral(s string) (string, int, error) {
	var b strings.Builder
	for i := 1; i < len(s); {
		switch c := s[i]; c {
		case '"':
			return b.String(), i + 1, nil
		case '\n', '\r':
			return "", 0, errUnterminatedLiteral
		case '\\':
			r, n, err := decodeEscape(s[i:], true)
			if err != nil {
				return "", 0, err
			}
			b.WriteRune(r)
			i += n
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, errUnterminatedLiteral
}

// unescapeIRI decodes UCHAR escapes in an IRI. ECHAR is not allowed there.
func unescapeIRI(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			i++
			continue
		}
		r, n, err := decodeEscape(s[i:], false)
		if err != nil {
			return "", fmt.Errorf("IRI <%s>: %w", s, err)
		}
		b.WriteRune(r)
		i += n
	}
	return b.String(), nil
}

// decodeEscape decodes the escape sequence at the start of s.
func decodeEscape(s string, echar bool) (rune, int, error) {
	if len(s) < 2 {
		return 0, 0, errors.New("dangling backslash")
	}
	switch s[1] {
	case 'u', 'U':
		n := 4
		if s[1] == 'U' {
			n = 8
		}
		if len(s) < 2+n {
			return 0, 0, fmt.Errorf("truncated escape %q", s)
		}
		v, err := strconv.ParseUint(s[2:2+n], 16, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid escape %q", s[:2+n])
		}
		r := rune(v)
		if !utf8.ValidRune(r) {
			return 0, 0, fmt.Errorf("escape %q is not a valid code point", s[:2+n])
		}
		return r, 2 + n, nil
	}
	if r, ok := echars[s[1]]; ok && echar {
		return r, 2, nil
	}
	return 0, 0, fmt.Errorf("invalid escape %q", s[:2])
}
