package accessor

import "errors"

// Sentinel errors returned by accessor operations. OS-level failures are
// wrapped, so errors.Is matches both the sentinel and the underlying error.
var (
	// ErrInvalidParameter reports an argument outside its valid domain,
	// or an operation the accessor's mode forbids.
	ErrInvalidParameter = errors.New("accessor: invalid parameter")

	// ErrBeyondEnd reports a transfer or seek that does not fit the window.
	ErrBeyondEnd = errors.New("accessor: beyond window end")

	// ErrReadOnly reports a write on a read-only accessor.
	ErrReadOnly = errors.New("accessor: read only")

	// ErrMalformedData reports encoded data that cannot be decoded, such
	// as a varint wider than 64 bits.
	ErrMalformedData = errors.New("accessor: malformed data")

	// ErrOpen reports a failure to open or stat a file.
	ErrOpen = errors.New("accessor: open failed")

	// ErrWrite reports an incomplete or failed file write.
	ErrWrite = errors.New("accessor: write failed")

	// ErrHost reports an unexpected failure from the operating system.
	ErrHost = errors.New("accessor: host error")
)
