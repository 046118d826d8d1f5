package repository

import (
	"context"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv"
)

// FileStore keeps each key in its own file under a base directory. It is the
// local on-device store used by default.
type FileStore struct {
	disk *diskv.Diskv
}

// NewFileStore creates a FileStore rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1 << 20,
		FilePerm:     0o644,
		PathPerm:     0o755,
	})
	return &FileStore{disk: d}, nil
}

// Ensure FileStore implements KeyValueStore
var _ KeyValueStore = (*FileStore)(nil)

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if !s.disk.Has(key) {
		return "", false, nil
	}
	data, err := s.disk.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return string(data), true, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := s.disk.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}
