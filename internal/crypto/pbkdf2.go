package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// DerivePasswordKey stretches a password into a 32-byte AES key using
// PBKDF2-HMAC-SHA-256 with PBKDF2Iterations iterations.
//
// The salt must be exactly SaltSize bytes. The output is suitable only
// for AES-256-GCM; callers should wrap it in an opaque handle rather
// than retaining the raw bytes.
func DerivePasswordKey(password, salt []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidSaltSize, len(salt), SaltSize)
	}
	return pbkdf2.Key(password, salt, PBKDF2Iterations, AESKeySize, sha256.New), nil
}
