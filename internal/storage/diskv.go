package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvStore keeps one file per key under a base directory.
type DiskvStore struct {
	d *diskv.Diskv
}

func OpenDiskv(basePath string) (*DiskvStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      filepath.Join(basePath, ".tmp"),
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
	}, nil
}

func flatTransform(string) []string { return []string{} }

func (s *DiskvStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *DiskvStore) Put(_ context.Context, key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *DiskvStore) Close() error {
	return nil
}
