//go:build !unix

package mmfile

import "errors"

// ErrUnsupported reports that the platform has no region mapping; callers
// fall back to a buffered read.
var ErrUnsupported = errors.New("mmfile: mapping not supported on this platform")

// MapRegion always fails on platforms without mmap so the caller takes the
// buffered-read path.
func MapRegion(fd uintptr, offset int64, length int) ([]byte, func() error, error) {
	return nil, nil, ErrUnsupported
}
