package credstore

import "context"

// KV is the storage medium behind a Store.
//
// Get returns (nil, nil) for an absent key. Delete removes all given keys as
// one unit; absent keys are ignored.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
