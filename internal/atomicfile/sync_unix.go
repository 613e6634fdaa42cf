//go:build linux || freebsd

package atomicfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// fdatasync flushes file data to disk. The new name is made durable
// separately by syncDir.
func fdatasync(f *os.File) error {
	return unix.Fdatasync(int(f.Fd()))
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
