package formvault

import (
	"errors"
	"fmt"
	"io"

	"github.com/formvault/client-go/internal/crypto"
)

// TextCipher performs authenticated symmetric encryption of short UTF-8
// strings given raw 256-bit key bytes. It does no key derivation; the
// caller supplies the key.
//
// Output format: base64(IV[12] || ciphertext || tag[16]), standard base64
// with padding. Every Encrypt call draws a fresh IV, so encrypting the same
// plaintext twice never yields the same blob.
type TextCipher struct {
	random io.Reader
}

// NewTextCipher creates a TextCipher. Only WithRandom is meaningful here.
func NewTextCipher(opts ...Option) *TextCipher {
	cfg := newConfig(opts)
	return &TextCipher{random: cfg.random}
}

// Encrypt encrypts plaintext with the given 32-byte key and returns the
// base64 blob.
func (c *TextCipher) Encrypt(plaintext string, key []byte) (string, error) {
	blob, err := crypto.Seal(c.random, key, []byte(plaintext))
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidKeySize) {
			return "", &FormatError{Field: "key", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.AESKeySize, len(key))}
		}
		return "", fmt.Errorf("encrypt: %w", err)
	}
	return crypto.ToBase64(blob), nil
}

// Decrypt decrypts a base64 blob produced by Encrypt. Authentication
// failure (wrong key or any tampering) returns a DecryptionError; no
// unauthenticated plaintext is ever returned.
func (c *TextCipher) Decrypt(blob string, key []byte) (string, error) {
	raw, err := crypto.FromBase64(blob)
	if err != nil {
		return "", &FormatError{Field: "blob", Reason: "invalid base64"}
	}

	plaintext, err := crypto.DecryptAES(key, raw)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrCiphertextTooShort):
			return "", &FormatError{Field: "blob", Reason: "too short"}
		case errors.Is(err, crypto.ErrInvalidKeySize):
			return "", &FormatError{Field: "key", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.AESKeySize, len(key))}
		default:
			return "", &DecryptionError{Op: "field"}
		}
	}

	return string(plaintext), nil
}
