package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, WriteFile(path, []byte(`{"a":1}`), DefaultPerm))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(got))
}

func TestWriteFileReplacesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, WriteFile(path, []byte("new"), DefaultPerm))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should have been renamed away")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestWriteFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, WriteFile(dir, []byte("x"), DefaultPerm))
}

func TestWriteFileMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "data.json")
	require.Error(t, WriteFile(path, []byte("x"), DefaultPerm))
}

func TestWriteFileSyncsDirectoryAfterRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	var synced []string
	orig := dirSync
	t.Cleanup(func() { dirSync = orig })
	dirSync = func(d string) error {
		// The rename has happened by the time the directory is synced.
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "v1", string(got))
		synced = append(synced, d)
		return nil
	}

	require.NoError(t, WriteFile(path, []byte("v1"), DefaultPerm))
	require.Equal(t, []string{dir}, synced)
}

func TestWriteFileReportsDirectorySyncFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	orig := dirSync
	t.Cleanup(func() { dirSync = orig })
	ioErr := errors.New("input/output error")
	dirSync = func(string) error { return ioErr }

	err := WriteFile(path, []byte("v1"), DefaultPerm)
	require.ErrorIs(t, err, ioErr)
}

func TestSyncDirOnRealDirectory(t *testing.T) {
	require.NoError(t, syncDir(t.TempDir()))
}
