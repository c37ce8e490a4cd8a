package crypto

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// Keypair is an ephemeral ML-KEM-768 keypair used for the sealed
// temporary-key exchange. It lives for a single bridge request.
type Keypair struct {
	// PublicKey is the raw ML-KEM-768 public key bytes.
	PublicKey []byte
	// SecretKey is the raw ML-KEM-768 secret key bytes.
	SecretKey []byte
	// PublicKeyB64 is the public key encoded as URL-safe base64.
	PublicKeyB64 string
}

// GenerateKeypair creates a new ML-KEM-768 keypair using rng as the
// entropy source. A nil rng falls back to crypto/rand.
func GenerateKeypair(rng io.Reader) (*Keypair, error) {
	pub, priv, err := mlkem768.GenerateKeyPair(rng)
	if err != nil {
		return nil, fmt.Errorf("generate keypair: %w", err)
	}

	// MarshalBinary never fails for valid keys from GenerateKeyPair
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &Keypair{
		PublicKey:    pubBytes,
		SecretKey:    privBytes,
		PublicKeyB64: ToBase64URL(pubBytes),
	}, nil
}

// Decapsulate recovers the shared secret from an encapsulated key.
func (k *Keypair) Decapsulate(encapsulatedKey []byte) ([]byte, error) {
	if len(k.SecretKey) != MLKEMSecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}
	if len(encapsulatedKey) != MLKEMCiphertextSize {
		return nil, ErrInvalidCiphertextSize
	}

	var privKey mlkem768.PrivateKey
	if err := privKey.Unpack(k.SecretKey); err != nil {
		return nil, fmt.Errorf("unpack secret key: %w", err)
	}

	sharedSecret := make([]byte, MLKEMSharedKeySize)
	privKey.DecapsulateTo(sharedSecret, encapsulatedKey)

	return sharedSecret, nil
}

// Encapsulate encapsulates a fresh shared secret against a raw public key.
// This is the bridge's side of the sealed exchange; the client uses it only
// in tests and the interop helper.
func Encapsulate(publicKey []byte) (ciphertext, sharedSecret []byte, err error) {
	scheme := mlkem768.Scheme()

	pk, err := scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("unmarshal public key: %w", err)
	}

	return scheme.Encapsulate(pk)
}

// DeriveSealedKey derives the 32-byte AES key for a sealed temporary-key
// exchange from the KEM shared secret.
//
// The derivation uses HKDF-SHA-512 with:
//   - IKM: the KEM shared secret
//   - Salt: SHA-256 hash of the KEM ciphertext
//   - Info: the HKDFContext domain-separation string
func DeriveSealedKey(sharedSecret, ctKem []byte) ([]byte, error) {
	saltHash := sha256.Sum256(ctKem)
	return expandSharedSecret(sharedSecret, saltHash[:], []byte(HKDFContext), AESKeySize)
}
