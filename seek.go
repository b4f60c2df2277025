package accessor

import "io"

// Seek moves the cursor within the window, following the io.Seeker
// contract with io.SeekStart, io.SeekCurrent, and io.SeekEnd. On a write
// accessor, seeking past the window end grows the window and zero-fills
// the gap; on a read accessor it is ErrBeyondEnd. The returned position
// is the new cursor, or the unchanged cursor on error.
func (a *Accessor) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = int64(a.cursor) + offset
	case io.SeekEnd:
		target = int64(a.windowSize) + offset
	default:
		return int64(a.cursor), ErrInvalidParameter
	}
	if target < 0 || int64(int(target)) != target {
		return int64(a.cursor), ErrInvalidParameter
	}
	newCursor := int(target)

	if a.writable && newCursor > a.windowSize {
		oldSize := a.windowSize
		if err := a.grow(newCursor); err != nil {
			return int64(a.cursor), err
		}
		// The stretch between the old end and the new cursor may hold
		// stale bytes from before a Truncate.
		clear(a.st.data[a.baseOffset+oldSize : a.baseOffset+newCursor])
	}
	if newCursor > a.windowSize {
		return int64(a.cursor), ErrBeyondEnd
	}

	a.cursor = newCursor
	a.avail = a.windowSize - newCursor
	return int64(newCursor), nil
}

// Truncate cuts the window at the cursor, discarding everything after
// it. The backing allocation is kept.
func (a *Accessor) Truncate() error {
	if !a.writable {
		return ErrReadOnly
	}
	a.windowSize = a.cursor
	a.avail = 0
	return nil
}
