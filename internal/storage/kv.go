package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrLocked         = errors.New("storage: data directory is locked by another process")
	ErrUnknownBackend = errors.New("storage: unknown backend")
	ErrInvalidKey     = errors.New("storage: invalid key")
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"

	sqliteFileName = "taskpad.db"
)

// KV is a local key-value store holding opaque blobs.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open selects a backend by name. dir is ignored by the memory backend.
func Open(backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile, "":
		return OpenFileKV(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, sqliteFileName))
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
