package formvault

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func newTestPipeline(t *testing.T, handler http.HandlerFunc) *Pipeline {
	t.Helper()
	server := newBridge(t, handler)
	pipeline, err := NewPipeline(server.URL, "test-canister")
	if err != nil {
		t.Fatal(err)
	}
	return pipeline
}

func TestNewPipeline_Validation(t *testing.T) {
	if _, err := NewPipeline("", "canister"); !errors.Is(err, ErrMissingBridgeURL) {
		t.Errorf("error = %v, want ErrMissingBridgeURL", err)
	}
	if _, err := NewPipeline("https://bridge.example.com", ""); !errors.Is(err, ErrMissingCanisterID) {
		t.Errorf("error = %v, want ErrMissingCanisterID", err)
	}
}

func TestEncryptWaitlist(t *testing.T) {
	keyHex := strings.Repeat("ab", 32)
	key, _ := hex.DecodeString(keyHex)

	var gotHash string
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			EmailHash  string `json:"email_hash"`
			CanisterID string `json:"canister_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotHash = req.EmailHash
		if req.CanisterID != "test-canister" {
			t.Errorf("canister_id = %q", req.CanisterID)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"encryption_key": keyHex,
			"key_id":         "wk-1",
		})
	})

	form := WaitlistForm{
		Email:     "Ada@Example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	sub, err := pipeline.EncryptWaitlist(context.Background(), form)
	if err != nil {
		t.Fatalf("EncryptWaitlist() error = %v", err)
	}

	// Email hash is computed over the lower-cased address.
	if sub.EmailHash != HashEmail("ada@example.com") {
		t.Error("EmailHash is not the normalized email hash")
	}
	if gotHash != sub.EmailHash {
		t.Error("hash sent to bridge differs from payload hash")
	}
	if sub.KeyID != "wk-1" {
		t.Errorf("KeyID = %q", sub.KeyID)
	}
	if sub.EncryptionType != EncryptionTemporary {
		t.Errorf("EncryptionType = %q, want Temporary", sub.EncryptionType)
	}

	// Every field decrypts independently with the temporary key.
	cipher := NewTextCipher()
	for _, tt := range []struct {
		blob, want string
	}{
		{sub.EmailEncrypted, form.Email},
		{sub.FirstNameEncrypted, form.FirstName},
		{sub.LastNameEncrypted, form.LastName},
	} {
		got, err := cipher.Decrypt(tt.blob, key)
		if err != nil {
			t.Fatalf("decrypt field: %v", err)
		}
		if got != tt.want {
			t.Errorf("field = %q, want %q", got, tt.want)
		}
	}

	// Independent IVs: identical plaintexts would still differ, and
	// distinct fields certainly must.
	if sub.FirstNameEncrypted == sub.LastNameEncrypted {
		t.Error("two fields produced identical blobs")
	}
}

func TestEncryptWaitlist_BridgeFailureAbortsFlow(t *testing.T) {
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "key service down"})
	})

	sub, err := pipeline.EncryptWaitlist(context.Background(), WaitlistForm{Email: "a@b.com"})
	if err == nil {
		t.Fatal("expected error")
	}
	if sub != nil {
		t.Error("no payload may be produced when the key request fails")
	}
	if err.Error() != "key service down" {
		t.Errorf("Error() = %q, want server message verbatim", err.Error())
	}
}

func TestEncryptRegistration_RoundTrip(t *testing.T) {
	// Registration never talks to the bridge.
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("registration must not call the bridge")
	})

	form := RegistrationForm{
		Email:       "Grace@Example.com",
		FirstName:   "Grace",
		LastName:    "Hopper",
		DateOfBirth: "1906-12-09",
		Password:    "Tr0ub4dor&3",
	}

	sub, err := pipeline.EncryptRegistration(form)
	if err != nil {
		t.Fatalf("EncryptRegistration() error = %v", err)
	}

	if sub.EncryptionType != EncryptionUserDerived {
		t.Errorf("EncryptionType = %q, want UserDerived", sub.EncryptionType)
	}
	if sub.EmailHash != HashEmail(form.Email) {
		t.Error("EmailHash mismatch")
	}

	// Recover the master key from password + stored salt + wrapped key.
	master, err := pipeline.RecoverMasterKey(form.Password, sub.PasswordSalt, sub.EncryptedRecoveryKey)
	if err != nil {
		t.Fatalf("RecoverMasterKey() error = %v", err)
	}
	if len(master) != 32 {
		t.Errorf("master key length = %d, want 32", len(master))
	}

	for _, tt := range []struct {
		name, blob, want string
	}{
		{"email", sub.EmailEncrypted, form.Email},
		{"first name", sub.FirstNameEncrypted, form.FirstName},
		{"last name", sub.LastNameEncrypted, form.LastName},
		{"dob", sub.DOBEncrypted, form.DateOfBirth},
	} {
		got, err := pipeline.DecryptField(tt.blob, master)
		if err != nil {
			t.Fatalf("decrypt %s: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRecoverMasterKey_WrongPassword(t *testing.T) {
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {})

	sub, err := pipeline.EncryptRegistration(RegistrationForm{
		Email:    "a@b.com",
		Password: "right password",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := pipeline.RecoverMasterKey("wrong password", sub.PasswordSalt, sub.EncryptedRecoveryKey); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("error = %v, want ErrDecryptionFailed", err)
	}
}

func TestRecoverMasterKey_FormatErrors(t *testing.T) {
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {})

	sub, err := pipeline.EncryptRegistration(RegistrationForm{
		Email:    "a@b.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("bad salt base64", func(t *testing.T) {
		if _, err := pipeline.RecoverMasterKey("pw", "%%%", sub.EncryptedRecoveryKey); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("error = %v, want ErrInvalidFormat", err)
		}
	})

	t.Run("bad wrapped key", func(t *testing.T) {
		if _, err := pipeline.RecoverMasterKey("pw", sub.PasswordSalt, "%%%"); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("error = %v, want ErrInvalidFormat", err)
		}
	})
}

func TestSubmissionJSONShape(t *testing.T) {
	keyHex := strings.Repeat("ab", 32)
	pipeline := newTestPipeline(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"encryption_key": keyHex,
			"key_id":         "k",
		})
	})

	t.Run("waitlist", func(t *testing.T) {
		sub, err := pipeline.EncryptWaitlist(context.Background(), WaitlistForm{Email: "a@b.com"})
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(sub)
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}

		for _, field := range []string{
			"email_hash", "email_encrypted", "first_name_encrypted",
			"last_name_encrypted", "key_id", "encryption_type",
		} {
			if _, ok := raw[field]; !ok {
				t.Errorf("missing field %q", field)
			}
		}
		if raw["encryption_type"] != "Temporary" {
			t.Errorf("encryption_type = %v", raw["encryption_type"])
		}
	})

	t.Run("registration", func(t *testing.T) {
		sub, err := pipeline.EncryptRegistration(RegistrationForm{Email: "a@b.com", Password: "pw"})
		if err != nil {
			t.Fatal(err)
		}

		data, err := json.Marshal(sub)
		if err != nil {
			t.Fatal(err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatal(err)
		}

		for _, field := range []string{
			"email_hash", "email_encrypted", "first_name_encrypted",
			"last_name_encrypted", "dob_encrypted", "encrypted_recovery_key",
			"password_salt", "encryption_type",
		} {
			if _, ok := raw[field]; !ok {
				t.Errorf("missing field %q", field)
			}
		}
		if raw["encryption_type"] != "UserDerived" {
			t.Errorf("encryption_type = %v", raw["encryption_type"])
		}
	})
}
