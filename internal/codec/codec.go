// Package codec encodes and decodes integers of any byte width from 1 to
// 8 in either byte order. encoding/binary covers the power-of-two widths;
// the odd widths (3, 5, 6, 7) use the generic loops. Benchmarked against
// reflection-based alternatives, the direct switch forms win comfortably.
package codec

import (
	"encoding/binary"
	"math/bits"
)

// MaxWidth is the widest integer the codec handles, in bytes.
const MaxWidth = 8

// Uint decodes len(b) bytes as an unsigned integer. len(b) must be
// between 1 and MaxWidth.
func Uint(b []byte, big bool) uint64 {
	if big {
		switch len(b) {
		case 2:
			return uint64(binary.BigEndian.Uint16(b))
		case 4:
			return uint64(binary.BigEndian.Uint32(b))
		case 8:
			return binary.BigEndian.Uint64(b)
		}
		var v uint64
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	switch len(b) {
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// Int decodes len(b) bytes as a signed integer, sign-extending from the
// encoded width.
func Int(b []byte, big bool) int64 {
	shift := 64 - 8*len(b)
	return int64(Uint(b, big)<<shift) >> shift
}

// PutUint encodes the low len(b) bytes of x. len(b) must be between 1
// and MaxWidth.
func PutUint(b []byte, x uint64, big bool) {
	if big {
		switch len(b) {
		case 2:
			binary.BigEndian.PutUint16(b, uint16(x))
			return
		case 4:
			binary.BigEndian.PutUint32(b, uint32(x))
			return
		case 8:
			binary.BigEndian.PutUint64(b, x)
			return
		}
		for i := len(b) - 1; i >= 0; i-- {
			b[i] = byte(x)
			x >>= 8
		}
		return
	}
	switch len(b) {
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(x))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(x))
	case 8:
		binary.LittleEndian.PutUint64(b, x)
	default:
		for i := range b {
			b[i] = byte(x)
			x >>= 8
		}
	}
}

// Swap16 reverses the byte order of a 16-bit value.
func Swap16(x uint16) uint16 { return bits.ReverseBytes16(x) }

// Swap24 reverses the byte order of the low 24 bits of x.
func Swap24(x uint32) uint32 { return bits.ReverseBytes32(x) >> 8 }

// Swap32 reverses the byte order of a 32-bit value.
func Swap32(x uint32) uint32 { return bits.ReverseBytes32(x) }

// Swap64 reverses the byte order of a 64-bit value.
func Swap64(x uint64) uint64 { return bits.ReverseBytes64(x) }

// SwapUint reverses the byte order of the low width bytes of x. width
// must be between 1 and MaxWidth.
func SwapUint(x uint64, width int) uint64 {
	var b [MaxWidth]byte
	PutUint(b[:width], x, false)
	return Uint(b[:width], true)
}

// SwapInt reverses the byte order of the low width bytes of x,
// sign-extending the result from the swapped width.
func SwapInt(x int64, width int) int64 {
	var b [MaxWidth]byte
	PutUint(b[:width], uint64(x), false)
	return Int(b[:width], true)
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
