// Package atomicfile writes files so that readers never observe a partial write.
//
// Data is written to a temporary file in the destination directory, flushed to
// stable storage, and renamed over the destination. The directory is then
// synced so the rename itself survives a crash. A crash leaves either the old
// content or the new content, never a mix.
package atomicfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPerm is used when the destination does not exist yet.
const DefaultPerm fs.FileMode = 0o644

// dirSync flushes a directory entry after rename. Tests replace it.
var dirSync = syncDir

// WriteFile atomically replaces path with data. The permission bits of an
// existing destination are preserved; perm applies to new files only.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("atomicfile: %s is a directory", path)
		}
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := fdatasync(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("atomicfile: sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	if err := dirSync(dir); err != nil {
		return fmt.Errorf("atomicfile: sync dir %s: %w", dir, err)
	}
	return nil
}
