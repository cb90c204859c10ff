// Package proof signs and verifies RDF datasets by their canonical form.
//
// The signed message is digest(canonical N-Quads), so any dataset
// isomorphic to the signed one verifies, whatever its blank node labels or
// quad order.
package proof

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/rdfc/internal/canon"
	"github.com/roach88/rdfc/internal/digest"
	"github.com/roach88/rdfc/internal/rdf"
)

// Signature types.
const (
	TypeEd25519    = "ed25519"
	TypeDilithium3 = "dilithium3"
)

var (
	// ErrSignatureInvalid is returned when the signature does not verify.
	ErrSignatureInvalid = errors.New("signature invalid")

	// ErrHashMismatch is returned when the dataset no longer canonicalizes
	// to the hash recorded in the proof.
	ErrHashMismatch = errors.New("canonical hash mismatch")
)

// Proof binds a signature to the canonical hash of a dataset.
type Proof struct {
	Type          string `json:"type"`
	Algorithm     string `json:"algorithm"`
	HashAlg       string `json:"hash_alg"`
	CanonicalHash string `json:"canonical_hash"` // hex
	PublicKey     string `json:"public_key"`     // base64
	Signature     string `json:"signature"`      // base64
}

// Signer signs canonical digests.
type Signer interface {
	Type() string
	PublicKey() ([]byte, error)
	Sign(digest []byte) ([]byte, error)
}

// Sign canonicalizes ds and signs its digest. The proof records the
// algorithm and hash the run used, so Verify can repeat it.
func Sign(ctx context.Context, ds *rdf.Dataset, signer Signer, opts ...canon.Option) (*Proof, error) {
	res, err := canon.Canonicalize(ctx, ds, opts...)
	if err != nil {
		return nil, err
	}
	alg, ok := digest.Lookup(res.Hash)
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm: %q", res.Hash)
	}
	sum := alg.Sum([]byte(res.NQuads))

	sig, err := signer.Sign(sum)
	if err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	pub, err := signer.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return &Proof{
		Type:          signer.Type(),
		Algorithm:     res.Algorithm,
		HashAlg:       alg.Name,
		CanonicalHash: hex.EncodeToString(sum),
		PublicKey:     base64.StdEncoding.EncodeToString(pub),
		Signature:     base64.StdEncoding.EncodeToString(sig),
	}, nil
}

// Verify canonicalizes ds with the proof's algorithm and hash and checks
// both the recorded hash and the signature. opts may add bounds such as a
// timeout; the proof's algorithm and hash always take precedence.
func Verify(ctx context.Context, ds *rdf.Dataset, p *Proof, opts ...canon.Option) error {
	if p == nil {
		return errors.New("nil proof")
	}
	alg, ok := digest.Lookup(p.HashAlg)
	if !ok {
		return fmt.Errorf("unsupported hash algorithm: %q", p.HashAlg)
	}
	pub, err := decodeBase64(p.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key base64: %w", err)
	}
	sig, err := decodeBase64(p.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature base64: %w", err)
	}

	opts = append(slices.Clip(opts), canon.WithAlgorithm(p.Algorithm), canon.WithHash(p.HashAlg))
	nquads, err := canon.Canonize(ctx, ds, opts...)
	if err != nil {
		return err
	}
	sum := alg.Sum([]byte(nquads))

	recorded, err := hex.DecodeString(p.CanonicalHash)
	if err != nil || subtle.ConstantTimeCompare(recorded, sum) != 1 {
		return ErrHashMismatch
	}
	return verifySignature(p.Type, pub, sum, sig)
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
