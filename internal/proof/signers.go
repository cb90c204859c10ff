package proof

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// Ed25519Signer signs with an ed25519 private key.
type Ed25519Signer struct {
	key ed25519.PrivateKey
}

// Ed25519SignerFromSeed derives the key from a 32-byte seed.
func Ed25519SignerFromSeed(seed []byte) (*Ed25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return &Ed25519Signer{key: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *Ed25519Signer) Type() string { return TypeEd25519 }

func (s *Ed25519Signer) PublicKey() ([]byte, error) {
	return []byte(s.key.Public().(ed25519.PublicKey)), nil
}

func (s *Ed25519Signer) Sign(digest []byte) ([]byte, error) {
	return ed25519.Sign(s.key, digest), nil
}

// Dilithium3Signer signs with a post-quantum dilithium3 key.
type Dilithium3Signer struct {
	pk *mode3.PublicKey
	sk *mode3.PrivateKey
}

// NewDilithium3Signer generates a fresh keypair from rand.
func NewDilithium3Signer(rand io.Reader) (*Dilithium3Signer, error) {
	pk, sk, err := mode3.GenerateKey(rand)
	if err != nil {
		return nil, fmt.Errorf("generate dilithium3 key: %w", err)
	}
	return &Dilithium3Signer{pk: pk, sk: sk}, nil
}

func (s *Dilithium3Signer) Type() string { return TypeDilithium3 }

func (s *Dilithium3Signer) PublicKey() ([]byte, error) {
	return s.pk.MarshalBinary()
}

func (s *Dilithium3Signer) Sign(digest []byte) ([]byte, error) {
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.sk, digest, sig)
	return sig, nil
}

func verifySignature(typ string, pub, digest, sig []byte) error {
	switch typ {
	case TypeEd25519:
		if len(pub) != ed25519.PublicKeySize {
			return fmt.Errorf("invalid ed25519 public key length %d", len(pub))
		}
		if len(sig) != ed25519.SignatureSize || !ed25519.Verify(ed25519.PublicKey(pub), digest, sig) {
			return ErrSignatureInvalid
		}
		return nil
	case TypeDilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return fmt.Errorf("invalid dilithium3 public key: %w", err)
		}
		if len(sig) != mode3.SignatureSize || !mode3.Verify(&pk, digest, sig) {
			return ErrSignatureInvalid
		}
		return nil
	default:
		return fmt.Errorf("unsupported signature type: %q", typ)
	}
}
