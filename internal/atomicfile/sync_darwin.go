//go:build darwin

package atomicfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync flushes file data to disk.
//
// macOS has no fdatasync; F_FULLFSYNC pushes past the drive cache and falls
// back to fsync on filesystems that reject it.
func fdatasync(f *os.File) error {
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err == nil {
		return nil
	}
	return unix.Fsync(int(f.Fd()))
}

// syncDir fsyncs a directory so a rename into it is on disk.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return unix.Fsync(int(d.Fd()))
}
