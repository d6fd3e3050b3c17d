package ports

import "context"

// FileStore holds attachment payloads keyed by stored name. Implementations
// must refuse to overwrite an existing name: every version is written exactly
// once and never replaced.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Open(ctx context.Context, name string) ([]byte, error)
}
