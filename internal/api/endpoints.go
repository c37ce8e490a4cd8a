package api

import "context"

// RequestTemporaryKey asks the bridge for an ephemeral encryption key for
// an anonymous submission.
func (c *Client) RequestTemporaryKey(ctx context.Context, req *TemporaryKeyRequest) (*TemporaryKeyResponse, error) {
	var result TemporaryKeyResponse
	if err := c.Do(ctx, "POST", "/kdf/temporary-key", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
