package formvault

import (
	"errors"
	"fmt"

	"github.com/formvault/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingBridgeURL is returned when no oracle bridge URL is provided.
	ErrMissingBridgeURL = errors.New("oracle bridge URL is required")

	// ErrMissingCanisterID is returned when no canister ID is provided.
	ErrMissingCanisterID = errors.New("canister ID is required")

	// ErrNetwork is returned when the temporary-key request fails at the
	// transport level. Retrying is at the caller's discretion.
	ErrNetwork = errors.New("network error")

	// ErrDecryptionFailed is returned when AES-GCM tag verification fails.
	// A wrong password and corrupted or tampered data are deliberately
	// indistinguishable, so this error gives no oracle for password guessing.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidFormat is returned for malformed key or blob encodings.
	ErrInvalidFormat = errors.New("invalid format")
)

// FormVaultError is implemented by all SDK errors.
type FormVaultError interface {
	error
	FormVaultError() // marker method
}

// APIError represents a non-2xx response from the oracle bridge. The
// server's error message, when present, is surfaced verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("temporary key request failed: status %d", e.StatusCode)
}

// FormVaultError implements the FormVaultError interface.
func (e *APIError) FormVaultError() {}

// NetworkError represents a transport-level failure reaching the bridge.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// FormVaultError implements the FormVaultError interface.
func (e *NetworkError) FormVaultError() {}

// DecryptionError represents an AES-GCM authentication failure. Op names
// the operation ("field", "recovery key") but never which cause failed.
type DecryptionError struct {
	Op string
}

func (e *DecryptionError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("decrypt %s: decryption failed", e.Op)
	}
	return "decryption failed"
}

// Is implements errors.Is for sentinel error matching.
func (e *DecryptionError) Is(target error) bool {
	return target == ErrDecryptionFailed
}

// FormVaultError implements the FormVaultError interface.
func (e *DecryptionError) FormVaultError() {}

// FormatError represents a malformed key or blob encoding: bad base64,
// odd-length hex, or a decoded value of the wrong size.
type FormatError struct {
	Field  string
	Reason string
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid format: %s", e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// FormVaultError implements the FormVaultError interface.
func (e *FormatError) FormVaultError() {}

// wrapError converts internal API errors to public errors so that
// errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:     netErr.Err,
			URL:     netErr.URL,
			Attempt: netErr.Attempt,
		}
	}

	return err
}
