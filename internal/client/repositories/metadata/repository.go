// Package metadata is the CLI's local key/value store. It keeps the session
// token between runs.
package metadata

import "context"

// Well-known keys.
const (
	KeyToken = "session.token"
)

// Repository stores opaque values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
