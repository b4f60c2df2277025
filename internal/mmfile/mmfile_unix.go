//go:build unix

package mmfile

import (
	"errors"

	"golang.org/x/sys/unix"
)

// MapRegion maps length bytes of the file at fd, starting at offset, and
// returns the mapping. offset must be page-aligned (see Align). The mapping
// is read-only and private; the descriptor may be closed by the caller once
// the call returns, the pages stay alive until the cleanup func runs.
func MapRegion(fd uintptr, offset int64, length int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(fd), offset, length, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
