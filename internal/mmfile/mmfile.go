// Package mmfile provides platform-specific helpers for memory-mapping a
// region of an open file.
package mmfile

import "os"

// Align splits an arbitrary file offset into a page-aligned mapping offset
// and the remainder within the first mapped page. MapRegion requires the
// aligned offset; the caller adds the remainder back when indexing.
func Align(offset int64) (aligned int64, within int) {
	page := int64(os.Getpagesize())
	within = int(offset % page)
	return offset - int64(within), within
}
