package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// expandSharedSecret expands the KEM shared secret from a sealed
// temporary-key exchange into length bytes of key material using
// HKDF-SHA-512. Salt and info bind the output to a single exchange.
func expandSharedSecret(sharedSecret, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(sha512.New, sharedSecret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("expand shared secret: %w", err)
	}

	return key, nil
}
