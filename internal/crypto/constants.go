package crypto

const (
	// AESKeySize is the size of an AES-256 key in bytes.
	AESKeySize = 32
	// AESNonceSize is the size of an AES-GCM nonce (IV) in bytes.
	AESNonceSize = 12
	// AESTagSize is the size of an AES-GCM authentication tag in bytes.
	AESTagSize = 16

	// SaltSize is the size of a password salt in bytes.
	SaltSize = 16
	// MasterKeySize is the size of a master recovery key in bytes.
	MasterKeySize = 32
	// WrappedKeySize is the raw size of a wrapped master recovery key:
	// nonce || 32-byte key || tag.
	WrappedKeySize = AESNonceSize + MasterKeySize + AESTagSize

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA-256 iteration count
	// (OWASP 2023 floor for SHA-256).
	PBKDF2Iterations = 100000

	// HashHexLen is the length of a lowercase-hex SHA-256 digest.
	HashHexLen = 64

	// MLKEMPublicKeySize is the size of an ML-KEM-768 public key in bytes.
	MLKEMPublicKeySize = 1184
	// MLKEMSecretKeySize is the size of an ML-KEM-768 secret key in bytes.
	MLKEMSecretKeySize = 2400
	// MLKEMCiphertextSize is the size of an ML-KEM-768 ciphertext in bytes.
	MLKEMCiphertextSize = 1088
	// MLKEMSharedKeySize is the size of the shared secret from ML-KEM-768 in bytes.
	MLKEMSharedKeySize = 32

	// HKDFContext is the context string used when deriving an AES key from a
	// sealed temporary-key exchange, for domain separation.
	HKDFContext = "formvault:tempkey:v1"
)
