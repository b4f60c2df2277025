package accessor

import (
	"encoding/binary"
	"sync"

	"github.com/binsect/accessor/internal/codec"
)

// Endianness selects the byte order of multi-byte transfers. Big and
// Little are absolute; Native and Reverse resolve against the host at
// first use.
type Endianness uint8

const (
	Big Endianness = iota
	Little
	Native
	Reverse

	endiannessCount
)

func (e Endianness) String() string {
	switch e {
	case Big:
		return "big"
	case Little:
		return "little"
	case Native:
		return "native"
	case Reverse:
		return "reverse"
	}
	return "invalid"
}

var (
	nativeOnce sync.Once
	nativeBig  bool
)

// nativeIsBig probes the host byte order once, the same way every mixed
// layout is ruled out: encode a known 64-bit pattern natively and read it
// back byte-wise.
func nativeIsBig() bool {
	nativeOnce.Do(func() {
		var b [8]byte
		binary.NativeEndian.PutUint64(b[:], 0x123456789abcdef0)
		var back uint64
		for _, c := range b {
			back = back<<8 | uint64(c)
		}
		switch back {
		case 0x123456789abcdef0:
			nativeBig = true
		case 0xf0debc9a78563412:
			nativeBig = false
		default:
			panic("accessor: unsupported mixed host endianness")
		}
	})
	return nativeBig
}

func (e Endianness) valid() bool {
	return e < endiannessCount
}

// isBig resolves e to a concrete byte order.
func (e Endianness) isBig() bool {
	switch e {
	case Big:
		return true
	case Little:
		return false
	case Reverse:
		return !nativeIsBig()
	default:
		return nativeIsBig()
	}
}

// isReverse reports whether e resolves to the opposite of the host order.
// Block transfers reverse their bytes exactly in that case.
func (e Endianness) isReverse() bool {
	return e.isBig() != nativeIsBig()
}

// NativeEndianness returns the host byte order as Big or Little.
func NativeEndianness() Endianness {
	if nativeIsBig() {
		return Big
	}
	return Little
}

// BigOrLittle resolves e to the absolute Big or Little it stands for.
func BigOrLittle(e Endianness) Endianness {
	if e.isBig() {
		return Big
	}
	return Little
}

// NativeOrReverse resolves e to Native or Reverse relative to the host.
func NativeOrReverse(e Endianness) Endianness {
	if e.isReverse() {
		return Reverse
	}
	return Native
}

// Opposite returns the endianness decoding the same bytes with their
// order flipped: Big and Little swap, Native and Reverse swap.
func Opposite(e Endianness) Endianness {
	switch e {
	case Big:
		return Little
	case Little:
		return Big
	case Native:
		return Reverse
	default:
		return Native
	}
}

var (
	defaultMu         sync.RWMutex
	defaultEndianness = Native
)

// DefaultEndianness returns the endianness newly opened accessors start
// with.
func DefaultEndianness() Endianness {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEndianness
}

// SetDefaultEndianness changes the endianness newly opened accessors
// start with. Existing accessors are unaffected.
func SetDefaultEndianness(e Endianness) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEndianness = e
	return nil
}

// SwapBytes reverses b in place. Reading a block in one endianness and
// writing it in the opposite one is equivalent to one SwapBytes.
func SwapBytes(b []byte) {
	codec.Reverse(b)
}

// Swap16 reverses the byte order of a 16-bit value.
func Swap16(x uint16) uint16 { return codec.Swap16(x) }

// Swap24 reverses the byte order of the low 24 bits of x.
func Swap24(x uint32) uint32 { return codec.Swap24(x) }

// Swap32 reverses the byte order of a 32-bit value.
func Swap32(x uint32) uint32 { return codec.Swap32(x) }

// Swap64 reverses the byte order of a 64-bit value.
func Swap64(x uint64) uint64 { return codec.Swap64(x) }

// SwapUint reverses the byte order of the low width bytes of x.
// width must be between 1 and 8.
func SwapUint(x uint64, width int) (uint64, error) {
	if width < 1 || width > codec.MaxWidth {
		return 0, ErrInvalidParameter
	}
	return codec.SwapUint(x, width), nil
}

// SwapInt reverses the byte order of the low width bytes of x,
// sign-extending the result from the encoded width.
func SwapInt(x int64, width int) (int64, error) {
	if width < 1 || width > codec.MaxWidth {
		return 0, ErrInvalidParameter
	}
	return codec.SwapInt(x, width), nil
}
