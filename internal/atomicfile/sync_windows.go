//go:build windows

package atomicfile

import (
	"os"

	"golang.org/x/sys/windows"
)

// fdatasync flushes file data to disk using FlushFileBuffers.
func fdatasync(f *os.File) error {
	return windows.FlushFileBuffers(windows.Handle(f.Fd()))
}

// syncDir is a no-op: directories cannot be flushed through an ordinary
// handle, and NTFS journals the rename.
func syncDir(string) error { return nil }
