package api

// TemporaryKeyRequest is the POST /kdf/temporary-key request body.
// ClientKemPk is only set when the caller opted into the sealed key
// exchange; it is the client's ephemeral ML-KEM-768 public key as
// URL-safe base64.
type TemporaryKeyRequest struct {
	EmailHash   string `json:"email_hash"`
	CanisterID  string `json:"canister_id"`
	ClientKemPk string `json:"client_kem_pk,omitempty"`
}

// TemporaryKeyResponse is the POST /kdf/temporary-key success body.
// Exactly one of EncryptionKey (hex, plain exchange) or KemCiphertext
// (URL-safe base64, sealed exchange) carries the key material.
type TemporaryKeyResponse struct {
	EncryptionKey string `json:"encryption_key,omitempty"`
	KeyID         string `json:"key_id"`
	KemCiphertext string `json:"kem_ciphertext,omitempty"`
}
