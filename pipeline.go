package formvault

import (
	"context"
	"fmt"

	"github.com/formvault/client-go/internal/crypto"
)

// EncryptionType discriminates who can decrypt a submission's fields.
type EncryptionType string

const (
	// EncryptionTemporary marks fields encrypted with a server-issued
	// ephemeral key: the server can decrypt them.
	EncryptionTemporary EncryptionType = "Temporary"
	// EncryptionUserDerived marks fields encrypted with a client-generated
	// master key wrapped by a password-derived key: zero-knowledge with
	// respect to the server.
	EncryptionUserDerived EncryptionType = "UserDerived"
)

// WaitlistForm is the plaintext input for an anonymous waitlist submission.
// Values are transient; they are never persisted or logged by this package.
type WaitlistForm struct {
	Email     string
	FirstName string
	LastName  string
}

// RegistrationForm is the plaintext input for a full account registration.
type RegistrationForm struct {
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth string
	Password    string
}

// WaitlistSubmission is the fully-encrypted waitlist payload handed to the
// transport layer. Each *_encrypted field is an independent
// base64(IV || ciphertext || tag) blob with its own IV.
type WaitlistSubmission struct {
	EmailHash          string         `json:"email_hash"`
	EmailEncrypted     string         `json:"email_encrypted"`
	FirstNameEncrypted string         `json:"first_name_encrypted"`
	LastNameEncrypted  string         `json:"last_name_encrypted"`
	KeyID              string         `json:"key_id"`
	EncryptionType     EncryptionType `json:"encryption_type"`
}

// RegistrationSubmission is the fully-encrypted registration payload.
// PasswordSalt is base64 of 16 public bytes; EncryptedRecoveryKey is the
// wrapped master key (base64 of exactly 60 bytes).
type RegistrationSubmission struct {
	EmailHash            string         `json:"email_hash"`
	EmailEncrypted       string         `json:"email_encrypted"`
	FirstNameEncrypted   string         `json:"first_name_encrypted"`
	LastNameEncrypted    string         `json:"last_name_encrypted"`
	DOBEncrypted         string         `json:"dob_encrypted"`
	EncryptedRecoveryKey string         `json:"encrypted_recovery_key"`
	PasswordSalt         string         `json:"password_salt"`
	EncryptionType       EncryptionType `json:"encryption_type"`
}

// Pipeline orchestrates hashing, key acquisition, and field encryption into
// the two submission flows. Every key it touches lives only for the
// duration of one call; nothing is cached.
type Pipeline struct {
	canisterID string
	cipher     *TextCipher
	recovery   *RecoveryKeyManager
	tempKeys   *TemporaryKeyClient
}

// NewPipeline creates a pipeline targeting the given oracle bridge and
// canister.
func NewPipeline(bridgeURL, canisterID string, opts ...Option) (*Pipeline, error) {
	if canisterID == "" {
		return nil, ErrMissingCanisterID
	}

	tempKeys, err := NewTemporaryKeyClient(bridgeURL, opts...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		canisterID: canisterID,
		cipher:     NewTextCipher(opts...),
		recovery:   NewRecoveryKeyManager(opts...),
		tempKeys:   tempKeys,
	}, nil
}

// EncryptWaitlist builds an anonymous waitlist submission: hash the email,
// obtain an ephemeral key from the bridge, encrypt each field independently.
// If the key request fails, no encryption happens and no payload is
// produced.
func (p *Pipeline) EncryptWaitlist(ctx context.Context, form WaitlistForm) (*WaitlistSubmission, error) {
	emailHash := HashEmail(form.Email)

	tempKey, err := p.tempKeys.RequestKey(ctx, emailHash, p.canisterID)
	if err != nil {
		return nil, err
	}

	fields, err := p.encryptFields(tempKey.Key, form.Email, form.FirstName, form.LastName)
	if err != nil {
		return nil, err
	}

	return &WaitlistSubmission{
		EmailHash:          emailHash,
		EmailEncrypted:     fields[0],
		FirstNameEncrypted: fields[1],
		LastNameEncrypted:  fields[2],
		KeyID:              tempKey.KeyID,
		EncryptionType:     EncryptionTemporary,
	}, nil
}

// EncryptRegistration builds a full registration submission. The steps are
// strictly ordered: generate the master key, encrypt each PII field with
// it, generate a salt, derive the wrapping key from the password, wrap the
// master key. Any failure aborts the attempt; no partial payload is ever
// returned.
func (p *Pipeline) EncryptRegistration(form RegistrationForm) (*RegistrationSubmission, error) {
	emailHash := HashEmail(form.Email)

	masterKey, err := p.recovery.GenerateMasterKey()
	if err != nil {
		return nil, err
	}

	fields, err := p.encryptFields(masterKey, form.Email, form.FirstName, form.LastName, form.DateOfBirth)
	if err != nil {
		return nil, err
	}

	salt, err := p.recovery.GenerateSalt()
	if err != nil {
		return nil, err
	}

	derivedKey, err := p.recovery.DeriveKey(form.Password, salt)
	if err != nil {
		return nil, err
	}

	wrapped, err := p.recovery.WrapMasterKey(masterKey, derivedKey)
	if err != nil {
		return nil, err
	}

	return &RegistrationSubmission{
		EmailHash:            emailHash,
		EmailEncrypted:       fields[0],
		FirstNameEncrypted:   fields[1],
		LastNameEncrypted:    fields[2],
		DOBEncrypted:         fields[3],
		EncryptedRecoveryKey: wrapped,
		PasswordSalt:         crypto.ToBase64(salt),
		EncryptionType:       EncryptionUserDerived,
	}, nil
}

// RecoverMasterKey re-derives the wrapping key from the password and the
// stored salt, then unwraps the stored recovery-key blob. A wrong password
// fails exactly like a corrupted blob.
func (p *Pipeline) RecoverMasterKey(password, saltB64, wrappedKeyB64 string) ([]byte, error) {
	salt, err := crypto.FromBase64(saltB64)
	if err != nil {
		return nil, &FormatError{Field: "salt", Reason: "invalid base64"}
	}

	derivedKey, err := p.recovery.DeriveKey(password, salt)
	if err != nil {
		return nil, err
	}

	return p.recovery.UnwrapMasterKey(wrappedKeyB64, derivedKey)
}

// DecryptField decrypts one stored field blob with a recovered master key.
func (p *Pipeline) DecryptField(blob string, key []byte) (string, error) {
	return p.cipher.Decrypt(blob, key)
}

// encryptFields encrypts each value independently, so every blob carries
// its own IV and fields can be rotated without touching the others.
func (p *Pipeline) encryptFields(key []byte, values ...string) ([]string, error) {
	blobs := make([]string, len(values))
	for i, value := range values {
		blob, err := p.cipher.Encrypt(value, key)
		if err != nil {
			return nil, fmt.Errorf("encrypt field %d: %w", i, err)
		}
		blobs[i] = blob
	}
	return blobs, nil
}
