package object

import "context"

// ObjectStore defines the contract for storing, fetching, and removing
// binary objects by key. Payloads are passed as byte slices; the upload
// workflow buffers files fully in memory before forwarding them.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}
