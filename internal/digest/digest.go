// Package digest names the hash functions rdfc can canonicalize and sign
// with, and derives multihash and CID identifiers from canonical bytes.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"sort"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/sha3"
)

// multicodec table entry for sha2-384.
const codeSHA2_384 uint64 = 0x20

// Algorithm is a named hash function with its multicodec code.
type Algorithm struct {
	Name          string
	New           func() hash.Hash
	MultihashCode uint64
}

var (
	SHA256  = Algorithm{Name: "sha256", New: sha256.New, MultihashCode: multihash.SHA2_256}
	SHA384  = Algorithm{Name: "sha384", New: sha512.New384, MultihashCode: codeSHA2_384}
	SHA3256 = Algorithm{Name: "sha3-256", New: sha3.New256, MultihashCode: multihash.SHA3_256}
)

var registry = map[string]Algorithm{
	SHA256.Name:  SHA256,
	SHA384.Name:  SHA384,
	SHA3256.Name: SHA3256,
}

// Default is the digest used when none is configured.
const Default = "sha256"

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, bool) {
	a, ok := registry[name]
	return a, ok
}

// Names returns the registered algorithm names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sum returns the raw digest of data.
func (a Algorithm) Sum(data []byte) []byte {
	h := a.New()
	h.Write(data)
	return h.Sum(nil)
}

// HexSum returns the lower-case hex digest of data.
func (a Algorithm) HexSum(data []byte) string {
	return hex.EncodeToString(a.Sum(data))
}

// HexString is HexSum over a string.
func (a Algorithm) HexString(s string) string {
	h := a.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// Multihash wraps the digest of data in a multihash.
func (a Algorithm) Multihash(data []byte) (multihash.Multihash, error) {
	mh, err := multihash.Encode(a.Sum(data), a.MultihashCode)
	if err != nil {
		return nil, err
	}
	return multihash.Multihash(mh), nil
}

// CID returns a CIDv1 with the raw multicodec addressing data.
func (a Algorithm) CID(data []byte) (cid.Cid, error) {
	mh, err := a.Multihash(data)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
