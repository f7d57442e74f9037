package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	fileKV, err := OpenFileKV(filepath.Join(t.TempDir(), "file"))
	require.NoError(t, err)
	sqliteKV, err := OpenSQLite(filepath.Join(t.TempDir(), "sqlite", "taskpad.db"))
	require.NoError(t, err)
	out := map[string]KV{
		BackendFile:   fileKV,
		BackendSQLite: sqliteKV,
		BackendMemory: NewMemoryKV(),
	}
	t.Cleanup(func() {
		for _, kv := range out {
			_ = kv.Close()
		}
	})
	return out
}

func TestKVGetPutOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get(ctx, "missing")
			require.NoError(t, err)
			require.False(t, ok)

			require.NoError(t, kv.Put(ctx, "k", []byte("first")))
			require.NoError(t, kv.Put(ctx, "k", []byte("second")))

			got, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "second", string(got))
		})
	}
}

func TestKVRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "  ", "../escape", `a\b`, ".."} {
				err := kv.Put(ctx, key, []byte("x"))
				require.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
			}
		})
	}
}

func TestFileKVExclusiveLock(t *testing.T) {
	dir := t.TempDir()
	first, err := OpenFileKV(dir)
	require.NoError(t, err)

	_, err = OpenFileKV(dir)
	require.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Close())
	second, err := OpenFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestFileKVWritesKeyFileAndNoTemp(t *testing.T) {
	dir := t.TempDir()
	kv, err := OpenFileKV(dir)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Put(context.Background(), DefaultTaskKey, []byte(`[]`)))

	b, err := os.ReadFile(filepath.Join(dir, DefaultTaskKey+".json"))
	require.NoError(t, err)
	require.Equal(t, "[]", string(b))

	_, err = os.Stat(filepath.Join(dir, DefaultTaskKey+".json.tmp"))
	require.True(t, errors.Is(err, os.ErrNotExist), "temp file should be renamed away")
}

func TestFileKVHonorsCanceledContext(t *testing.T) {
	kv, err := OpenFileKV(t.TempDir())
	require.NoError(t, err)
	defer kv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, kv.Put(ctx, "k", []byte("v")), context.Canceled)
}

func TestOpenBackendSelection(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open("SQLite", dir)
	require.NoError(t, err)
	require.IsType(t, &SQLiteKV{}, kv)
	require.NoError(t, kv.Close())
	require.FileExists(t, filepath.Join(dir, sqliteFileName))

	kv, err = Open("", dir)
	require.NoError(t, err)
	require.IsType(t, &FileKV{}, kv)
	require.NoError(t, kv.Close())

	kv, err = Open("memory", "")
	require.NoError(t, err)
	require.IsType(t, &MemoryKV{}, kv)

	_, err = Open("redis", dir)
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpad.db")
	ctx := context.Background()

	kv, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, DefaultTaskKey, []byte(`[{"id":"a"}]`)))
	require.NoError(t, kv.Close())

	kv, err = OpenSQLite(path)
	require.NoError(t, err)
	defer kv.Close()
	got, ok, err := kv.Get(ctx, DefaultTaskKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"a"}]`, string(got))
}
