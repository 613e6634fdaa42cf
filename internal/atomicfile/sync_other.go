//go:build !linux && !freebsd && !darwin && !windows

package atomicfile

import "os"

// fdatasync falls back to os.File.Sync where no cheaper primitive is wired.
func fdatasync(f *os.File) error {
	return f.Sync()
}

// syncDir is a no-op where directory sync is not reliably supported.
func syncDir(string) error { return nil }
