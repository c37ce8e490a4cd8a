package formvault

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/formvault/client-go/internal/api"
	"github.com/formvault/client-go/internal/crypto"
)

// TemporaryKey is an ephemeral, server-issued encryption key for an
// anonymous submission. The bridge knows this key, so it can decrypt what
// is encrypted under it: a weaker trust model than a user-derived key,
// which is why submissions using it are tagged Temporary on the wire.
type TemporaryKey struct {
	// Key is the raw 32-byte AES key.
	Key []byte
	// KeyID identifies the key server-side so the backend can find it again.
	KeyID string
	// Sealed reports whether the key arrived as a KEM ciphertext rather
	// than plain hex.
	Sealed bool
}

// TemporaryKeyClient requests ephemeral keys from the oracle bridge for
// pre-account (waitlist) submissions, where no password exists yet to
// derive a key from.
type TemporaryKeyClient struct {
	api    *api.Client
	random io.Reader
	sealed bool
}

// NewTemporaryKeyClient creates a client for the given bridge URL.
func NewTemporaryKeyClient(bridgeURL string, opts ...Option) (*TemporaryKeyClient, error) {
	if bridgeURL == "" {
		return nil, ErrMissingBridgeURL
	}

	cfg := newConfig(opts)
	apiClient, err := api.NewClient(cfg.apiConfig(bridgeURL))
	if err != nil {
		return nil, err
	}

	return &TemporaryKeyClient{
		api:    apiClient,
		random: cfg.random,
		sealed: cfg.sealed,
	}, nil
}

// RequestKey asks the bridge for an ephemeral key for the given email hash.
// On any failure the error is returned as-is — the caller must treat the
// operation as not completed and must never proceed with a locally-invented
// substitute key.
func (c *TemporaryKeyClient) RequestKey(ctx context.Context, emailHash, canisterID string) (*TemporaryKey, error) {
	if len(emailHash) != crypto.HashHexLen {
		return nil, &FormatError{Field: "email hash", Reason: fmt.Sprintf("need %d hex chars, got %d", crypto.HashHexLen, len(emailHash))}
	}

	req := &api.TemporaryKeyRequest{
		EmailHash:  emailHash,
		CanisterID: canisterID,
	}

	var keypair *crypto.Keypair
	if c.sealed {
		kp, err := crypto.GenerateKeypair(c.random)
		if err != nil {
			return nil, fmt.Errorf("generate KEM keypair: %w", err)
		}
		keypair = kp
		req.ClientKemPk = kp.PublicKeyB64
	}

	resp, err := c.api.RequestTemporaryKey(ctx, req)
	if err != nil {
		return nil, wrapError(err)
	}

	if keypair != nil && resp.KemCiphertext != "" {
		return c.unsealKey(keypair, resp)
	}

	key, err := decodeHexKey(resp.EncryptionKey)
	if err != nil {
		return nil, err
	}

	return &TemporaryKey{Key: key, KeyID: resp.KeyID}, nil
}

// unsealKey decapsulates a sealed temporary key and derives the AES key.
func (c *TemporaryKeyClient) unsealKey(keypair *crypto.Keypair, resp *api.TemporaryKeyResponse) (*TemporaryKey, error) {
	ctKem, err := crypto.FromBase64URL(resp.KemCiphertext)
	if err != nil {
		return nil, &FormatError{Field: "kem_ciphertext", Reason: "invalid base64url"}
	}

	sharedSecret, err := keypair.Decapsulate(ctKem)
	if err != nil {
		return nil, &FormatError{Field: "kem_ciphertext", Reason: err.Error()}
	}

	key, err := crypto.DeriveSealedKey(sharedSecret, ctKem)
	if err != nil {
		return nil, fmt.Errorf("derive sealed key: %w", err)
	}

	return &TemporaryKey{Key: key, KeyID: resp.KeyID, Sealed: true}, nil
}

func decodeHexKey(encoded string) ([]byte, error) {
	key, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, &FormatError{Field: "encryption_key", Reason: "invalid hex"}
	}
	if len(key) != crypto.AESKeySize {
		return nil, &FormatError{Field: "encryption_key", Reason: fmt.Sprintf("need %d bytes, got %d", crypto.AESKeySize, len(key))}
	}
	return key, nil
}
