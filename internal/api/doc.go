// Package api implements the HTTP client for the oracle bridge, the
// external service that issues ephemeral encryption keys for anonymous
// submissions. It handles request/response encoding, error parsing, and
// retries; all cryptography lives in internal/crypto and the public package.
package api
