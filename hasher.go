package formvault

import (
	"strings"

	"github.com/formvault/client-go/internal/crypto"
)

// HashEmail returns the lowercase-hex SHA-256 digest of the lower-cased
// email address. The digest is deterministic and non-reversible; the
// backend uses it as an index for duplicate detection without ever seeing
// the address itself.
func HashEmail(email string) string {
	return crypto.SHA256Hex([]byte(strings.ToLower(email)))
}

// HashIP returns the lowercase-hex SHA-256 digest of an IP address, hashed
// as-is (no normalization). Used for rate-limiting indexes.
func HashIP(ip string) string {
	return crypto.SHA256Hex([]byte(ip))
}
