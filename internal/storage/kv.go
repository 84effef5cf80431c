package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
)

// KV is the local key-value store the task records live in.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend named by kind rooted at path. For diskv the path
// is a directory, for sqlite a database file.
func Open(kind, path string) (KV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: empty path")
	}
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendDiskv:
		return OpenDiskv(path)
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}
