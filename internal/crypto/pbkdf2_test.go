package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestDerivePasswordKey_Deterministic(t *testing.T) {
	password := []byte("correct horse battery staple")
	salt := make([]byte, SaltSize)

	key1, err := DerivePasswordKey(password, salt)
	if err != nil {
		t.Fatalf("DerivePasswordKey() error = %v", err)
	}
	key2, err := DerivePasswordKey(password, salt)
	if err != nil {
		t.Fatalf("DerivePasswordKey() error = %v", err)
	}

	if len(key1) != AESKeySize {
		t.Errorf("key length = %d, want %d", len(key1), AESKeySize)
	}
	if !bytes.Equal(key1, key2) {
		t.Error("same password and salt produced different keys")
	}
}

func TestDerivePasswordKey_DifferentInputs(t *testing.T) {
	saltA := make([]byte, SaltSize)
	saltB := make([]byte, SaltSize)
	saltB[0] = 1

	keyA, err := DerivePasswordKey([]byte("password"), saltA)
	if err != nil {
		t.Fatal(err)
	}
	keyB, err := DerivePasswordKey([]byte("password"), saltB)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(keyA, keyB) {
		t.Error("different salts produced the same key")
	}

	keyC, err := DerivePasswordKey([]byte("Password"), saltA)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(keyA, keyC) {
		t.Error("different passwords produced the same key")
	}
}

func TestDerivePasswordKey_InvalidSaltSize(t *testing.T) {
	tests := []struct {
		name     string
		saltSize int
	}{
		{"empty", 0},
		{"too short", 8},
		{"too long", 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DerivePasswordKey([]byte("pw"), make([]byte, tt.saltSize))
			if !errors.Is(err, ErrInvalidSaltSize) {
				t.Errorf("error = %v, want ErrInvalidSaltSize", err)
			}
		})
	}
}
