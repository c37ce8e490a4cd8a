// Package crypto provides the cryptographic primitives for the FormVault
// envelope-encryption scheme.
//
// # Algorithm Suite
//
//   - AES-256-GCM: authenticated encryption for PII fields and for wrapping
//     the master recovery key. Provides confidentiality and integrity; tag
//     verification failure never yields partial plaintext.
//
//   - PBKDF2-HMAC-SHA-256 (100,000 iterations): password key stretching for
//     the user-derived key that wraps the master recovery key.
//
//   - SHA-256: one-way digests for non-reversible email and IP indexes.
//
//   - ML-KEM-768 (NIST FIPS 203) + HKDF-SHA-512 (RFC 5869): optional sealed
//     delivery of server-issued temporary keys, so the ephemeral key does
//     not ride the response body in the clear.
//
// # Critical Security Notes
//
// AES-GCM nonces MUST be unique for each encryption with the same key.
// Nonce reuse completely breaks the security of AES-GCM. Seal draws a fresh
// nonce from the injected CSPRNG on every call; there is no code path that
// encrypts with a caller-supplied nonce outside of EncryptAES, which exists
// for the interop helper and tests.
//
// Key material must never be logged, transmitted unencrypted, or retained
// past the operation that uses it. This package keeps keys in local
// variables only.
package crypto
