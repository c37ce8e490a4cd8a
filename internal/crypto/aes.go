package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// NewGCM builds an AES-256-GCM AEAD from raw key bytes.
func NewGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), AESKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return cipher.NewGCM(block)
}

// EncryptAES encrypts plaintext using AES-256-GCM with the given nonce.
// Returns: nonce (12 bytes) || ciphertext || tag (16 bytes).
func EncryptAES(key, plaintext, nonce []byte) ([]byte, error) {
	if len(nonce) != AESNonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, len(nonce), AESNonceSize)
	}

	aead, err := NewGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ciphertext...), nil
}

// Seal encrypts plaintext with a fresh nonce drawn from rng.
// Every call draws new nonce bytes, so identical inputs never produce
// identical output under the same key.
func Seal(rng io.Reader, key, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, AESNonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, fmt.Errorf("read nonce: %w", err)
	}
	return EncryptAES(key, plaintext, nonce)
}

// DecryptAES decrypts a nonce || ciphertext || tag blob using AES-256-GCM.
// Tag verification failure yields ErrDecryptionFailed; no partial plaintext
// is ever returned.
func DecryptAES(key, blob []byte) ([]byte, error) {
	if len(blob) < AESNonceSize+AESTagSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrCiphertextTooShort, len(blob))
	}

	aead, err := NewGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, blob[:AESNonceSize], blob[AESNonceSize:], nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
