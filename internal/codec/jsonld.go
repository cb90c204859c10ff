package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piprate/json-gold/ld"

	"github.com/roach88/rdfc/internal/rdf"
)

// offlineLoader refuses every remote document. JSON-LD input must carry
// its contexts inline.
type offlineLoader struct{}

func (offlineLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, fmt.Errorf("remote context %s not available offline", u)
}

// FromJSONLD expands doc (a decoded JSON value) to RDF.
// base resolves relative IRIs; it may be empty.
func FromJSONLD(doc any, base string) (*rdf.Dataset, error) {
	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions(base)
	opts.DocumentLoader = offlineLoader{}

	out, err := proc.ToRDF(doc, opts)
	if err != nil {
		return nil, fmt.Errorf("json-ld to rdf: %w", err)
	}
	lds, ok := out.(*ld.RDFDataset)
	if !ok {
		return nil, fmt.Errorf("json-ld to rdf: unexpected result %T", out)
	}
	return fromLD(lds, false)
}

// ReadJSONLD decodes a JSON-LD document from r and expands it to RDF.
func ReadJSONLD(r io.Reader, base string) (*rdf.Dataset, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json-ld: %w", err)
	}
	return FromJSONLD(doc, base)
}
