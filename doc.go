// Package formvault envelope-encrypts signup form PII in the caller's
// process, so that personally identifiable information never leaves for the
// backend in a form the backend can read without the user's cooperation.
//
// Two flows are supported:
//
//   - Waitlist (anonymous, pre-account): no password exists yet, so the
//     client asks the oracle bridge for an ephemeral key and encrypts each
//     field with it. The server can decrypt these submissions; this is a
//     deliberately weaker trust model, tagged Temporary on the wire.
//
//   - Registration (full account): the client generates a random 256-bit
//     master recovery key, encrypts each PII field with it, then wraps the
//     master key with a key stretched from the user's password
//     (PBKDF2-HMAC-SHA-256, 100,000 iterations). The backend stores only
//     ciphertext, the wrapped key, and the public salt — it never holds a
//     usable key. Tagged UserDerived on the wire.
//
// Basic usage:
//
//	pipeline, err := formvault.NewPipeline(bridgeURL, canisterID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	submission, err := pipeline.EncryptRegistration(formvault.RegistrationForm{
//	    Email:       "ada@example.com",
//	    FirstName:   "Ada",
//	    LastName:    "Lovelace",
//	    DateOfBirth: "1815-12-10",
//	    Password:    password,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// hand submission to the transport layer
//
// Later, the same password (plus the stored salt and wrapped key) recovers
// the master key and with it every encrypted field:
//
//	master, err := pipeline.RecoverMasterKey(password, submission.PasswordSalt, submission.EncryptedRecoveryKey)
//	if err != nil {
//	    // wrong password and tampered data are indistinguishable here
//	    log.Fatal(err)
//	}
//	email, err := pipeline.DecryptField(submission.EmailEncrypted, master)
//
// Every encrypted blob on the wire is base64(IV[12] || ciphertext || tag[16])
// with a fresh IV per encryption call. Each field is encrypted independently
// so fields can be rotated or re-encrypted without touching the others.
//
// All failures surface as returned errors; nothing is logged and no
// partially-encrypted payload is ever produced.
package formvault
