package canon

import (
	"encoding/hex"
	"hash"
	"sort"
	"strings"

	"github.com/roach88/rdfc/internal/rdf"
)

// serialize relabels every blank node with its canonical label and returns
// the sorted canonical N-Quads document together with the relabelled quads
// in the same order.
func serialize(quads []rdf.Quad, canonical *Issuer) (string, []rdf.Quad, error) {
	type line struct {
		text string
		quad rdf.Quad
	}
	var missing string
	label := func(id string) string {
		l, ok := canonical.Lookup(id)
		if !ok && missing == "" {
			missing = id
		}
		return l
	}

	lines := make([]line, len(quads))
	for i, q := range quads {
		cq := q.Map(label)
		lines[i] = line{text: string(rdf.AppendQuad(nil, cq)), quad: cq}
	}
	if missing != "" {
		return "", nil, internalError(missing, "blank node has no canonical label")
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].text < lines[j].text })

	var sb strings.Builder
	out := make([]rdf.Quad, len(lines))
	for i, l := range lines {
		sb.WriteString(l.text)
		out[i] = l.quad
	}
	return sb.String(), out, nil
}

func hexDigest(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
