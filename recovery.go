package formvault

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"

	"github.com/formvault/client-go/internal/crypto"
)

// DerivedKey is an opaque handle to a password-derived AES-256-GCM key.
// The raw key bytes are zeroed immediately after the key schedule is built
// and cannot be read back out: the handle can only wrap and unwrap. This
// makes accidentally logging or transmitting the derived key a compile-time
// impossibility rather than a runtime discipline.
type DerivedKey struct {
	aead cipher.AEAD
}

func (k *DerivedKey) seal(random io.Reader, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, crypto.AESNonceSize)
	if _, err := io.ReadFull(random, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	return append(nonce, k.aead.Seal(nil, nonce, plaintext, nil)...), nil
}

func (k *DerivedKey) open(blob []byte) ([]byte, error) {
	return k.aead.Open(nil, blob[:crypto.AESNonceSize], blob[crypto.AESNonceSize:], nil)
}

// RecoveryKeyManager implements the envelope-encryption scheme: it
// generates a per-account master recovery key, stretches the user's
// password into a wrapping key, and wraps/unwraps the master key with it.
//
// Registration ordering is strict and no step is skippable: generate the
// master key, encrypt the PII fields with it, generate a salt, derive the
// password key, wrap the master key, and only then transmit. Any failure
// aborts the whole attempt; an unwrapped master key with no wrapped copy
// never leaves this process.
type RecoveryKeyManager struct {
	random io.Reader
}

// NewRecoveryKeyManager creates a RecoveryKeyManager. Only WithRandom is
// meaningful here.
func NewRecoveryKeyManager(opts ...Option) *RecoveryKeyManager {
	cfg := newConfig(opts)
	return &RecoveryKeyManager{random: cfg.random}
}

// GenerateMasterKey draws a fresh 32-byte master recovery key from the
// CSPRNG. Generated exactly once per registration; must be wrapped before
// any network call.
func (m *RecoveryKeyManager) GenerateMasterKey() ([]byte, error) {
	key := make([]byte, crypto.MasterKeySize)
	if _, err := io.ReadFull(m.random, key); err != nil {
		return nil, fmt.Errorf("generate master key: %w", err)
	}
	return key, nil
}

// GenerateSalt draws a fresh 16-byte salt from the CSPRNG. The salt is not
// secret; it is stored server-side alongside the wrapped master key.
func (m *RecoveryKeyManager) GenerateSalt() ([]byte, error) {
	salt := make([]byte, crypto.SaltSize)
	if _, err := io.ReadFull(m.random, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey stretches a password into an opaque wrapping key using
// PBKDF2-HMAC-SHA-256 with 100,000 iterations. The salt must be exactly
// 16 bytes.
func (m *RecoveryKeyManager) DeriveKey(password string, salt []byte) (*DerivedKey, error) {
	raw, err := crypto.DerivePasswordKey([]byte(password), salt)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidSaltSize) {
			return nil, &FormatError{Field: "salt", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.SaltSize, len(salt))}
		}
		return nil, err
	}

	aead, err := crypto.NewGCM(raw)
	for i := range raw {
		raw[i] = 0
	}
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	return &DerivedKey{aead: aead}, nil
}

// WrapMasterKey encrypts the 32-byte master key under the derived key and
// returns the base64 blob. The raw blob is always exactly 60 bytes:
// IV[12] || ciphertext[32] || tag[16].
func (m *RecoveryKeyManager) WrapMasterKey(masterKey []byte, key *DerivedKey) (string, error) {
	if len(masterKey) != crypto.MasterKeySize {
		return "", &FormatError{Field: "master key", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.MasterKeySize, len(masterKey))}
	}

	blob, err := key.seal(m.random, masterKey)
	if err != nil {
		return "", fmt.Errorf("wrap master key: %w", err)
	}

	return crypto.ToBase64(blob), nil
}

// UnwrapMasterKey decrypts a wrapped master key blob with the derived key,
// returning the 32 raw key bytes. A key derived from the wrong password
// fails tag verification exactly like a corrupted blob; the two cases are
// indistinguishable so the error gives no oracle for offline password
// guessing.
func (m *RecoveryKeyManager) UnwrapMasterKey(blob string, key *DerivedKey) ([]byte, error) {
	raw, err := crypto.FromBase64(blob)
	if err != nil {
		return nil, &FormatError{Field: "recovery key blob", Reason: "invalid base64"}
	}
	if len(raw) != crypto.WrappedKeySize {
		return nil, &FormatError{Field: "recovery key blob", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.WrappedKeySize, len(raw))}
	}

	masterKey, err := key.open(raw)
	if err != nil {
		return nil, &DecryptionError{Op: "recovery key"}
	}
	if len(masterKey) != crypto.MasterKeySize {
		return nil, &FormatError{Field: "recovery key", Reason: fmt.Sprintf("decrypted to %d bytes, want %d", len(masterKey), crypto.MasterKeySize)}
	}

	return masterKey, nil
}
