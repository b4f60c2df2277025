package accessor

import (
	"encoding/binary"
	"math"

	"github.com/binsect/accessor/internal/codec"
)

// writeUint is the transfer behind every fixed-width write: grow, encode,
// cursor advance.
func (a *Accessor) writeUint(e Endianness, x uint64, width int) error {
	if !e.valid() || width < 1 || width > codec.MaxWidth {
		return ErrInvalidParameter
	}
	p, err := a.reserve(width)
	if err != nil {
		return err
	}
	codec.PutUint(p, x, e.isBig())
	return nil
}

// WriteUint writes the low width bytes (1 to 8) of x using the
// accessor's endianness.
func (a *Accessor) WriteUint(x uint64, width int) error {
	return a.writeUint(a.order, x, width)
}

// WriteUintE writes the low width bytes (1 to 8) of x using an explicit
// endianness.
func (a *Accessor) WriteUintE(e Endianness, x uint64, width int) error {
	return a.writeUint(e, x, width)
}

// WriteInt writes the low width bytes (1 to 8) of x using the accessor's
// endianness.
func (a *Accessor) WriteInt(x int64, width int) error {
	return a.writeUint(a.order, uint64(x), width)
}

// WriteIntE writes the low width bytes (1 to 8) of x using an explicit
// endianness.
func (a *Accessor) WriteIntE(e Endianness, x int64, width int) error {
	return a.writeUint(e, uint64(x), width)
}

// WriteUint8 writes one unsigned byte.
func (a *Accessor) WriteUint8(x uint8) error {
	p, err := a.reserve(1)
	if err != nil {
		return err
	}
	p[0] = x
	return nil
}

// WriteInt8 writes one signed byte.
func (a *Accessor) WriteInt8(x int8) error {
	return a.WriteUint8(uint8(x))
}

// WriteUint16 writes a 16-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) WriteUint16(x uint16) error {
	return a.writeUint(a.order, uint64(x), 2)
}

// WriteUint16E writes a 16-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) WriteUint16E(e Endianness, x uint16) error {
	return a.writeUint(e, uint64(x), 2)
}

// WriteUint24 writes the low 24 bits of x using the accessor's
// endianness.
func (a *Accessor) WriteUint24(x uint32) error {
	return a.writeUint(a.order, uint64(x), 3)
}

// WriteUint24E writes the low 24 bits of x using an explicit endianness.
func (a *Accessor) WriteUint24E(e Endianness, x uint32) error {
	return a.writeUint(e, uint64(x), 3)
}

// WriteUint32 writes a 32-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) WriteUint32(x uint32) error {
	return a.writeUint(a.order, uint64(x), 4)
}

// WriteUint32E writes a 32-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) WriteUint32E(e Endianness, x uint32) error {
	return a.writeUint(e, uint64(x), 4)
}

// WriteUint64 writes a 64-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) WriteUint64(x uint64) error {
	return a.writeUint(a.order, x, 8)
}

// WriteUint64E writes a 64-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) WriteUint64E(e Endianness, x uint64) error {
	return a.writeUint(e, x, 8)
}

// WriteInt16 writes a 16-bit signed integer using the accessor's
// endianness.
func (a *Accessor) WriteInt16(x int16) error {
	return a.writeUint(a.order, uint64(uint16(x)), 2)
}

// WriteInt16E writes a 16-bit signed integer using an explicit
// endianness.
func (a *Accessor) WriteInt16E(e Endianness, x int16) error {
	return a.writeUint(e, uint64(uint16(x)), 2)
}

// WriteInt24 writes the low 24 bits of x using the accessor's
// endianness.
func (a *Accessor) WriteInt24(x int32) error {
	return a.writeUint(a.order, uint64(uint32(x)), 3)
}

// WriteInt24E writes the low 24 bits of x using an explicit endianness.
func (a *Accessor) WriteInt24E(e Endianness, x int32) error {
	return a.writeUint(e, uint64(uint32(x)), 3)
}

// WriteInt32 writes a 32-bit signed integer using the accessor's
// endianness.
func (a *Accessor) WriteInt32(x int32) error {
	return a.writeUint(a.order, uint64(uint32(x)), 4)
}

// WriteInt32E writes a 32-bit signed integer using an explicit
// endianness.
func (a *Accessor) WriteInt32E(e Endianness, x int32) error {
	return a.writeUint(e, uint64(uint32(x)), 4)
}

// WriteInt64 writes a 64-bit signed integer using the accessor's
// endianness.
func (a *Accessor) WriteInt64(x int64) error {
	return a.writeUint(a.order, uint64(x), 8)
}

// WriteInt64E writes a 64-bit signed integer using an explicit
// endianness.
func (a *Accessor) WriteInt64E(e Endianness, x int64) error {
	return a.writeUint(e, uint64(x), 8)
}

// WriteFloat32 writes an IEEE 754 32-bit float using the accessor's
// endianness.
func (a *Accessor) WriteFloat32(x float32) error {
	return a.writeUint(a.order, uint64(math.Float32bits(x)), 4)
}

// WriteFloat32E writes an IEEE 754 32-bit float using an explicit
// endianness.
func (a *Accessor) WriteFloat32E(e Endianness, x float32) error {
	return a.writeUint(e, uint64(math.Float32bits(x)), 4)
}

// WriteFloat64 writes an IEEE 754 64-bit float using the accessor's
// endianness.
func (a *Accessor) WriteFloat64(x float64) error {
	return a.writeUint(a.order, math.Float64bits(x), 8)
}

// WriteFloat64E writes an IEEE 754 64-bit float using an explicit
// endianness.
func (a *Accessor) WriteFloat64E(e Endianness, x float64) error {
	return a.writeUint(e, math.Float64bits(x), 8)
}

// WriteUvarint writes x as a base-128 varint, 1 to 10 bytes.
func (a *Accessor) WriteUvarint(x uint64) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], x)
	p, err := a.reserve(n)
	if err != nil {
		return err
	}
	copy(p, tmp[:n])
	return nil
}

// WriteVarint writes x as a zigzag-encoded signed varint, so small
// magnitudes of either sign stay short.
func (a *Accessor) WriteVarint(x int64) error {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutVarint(tmp[:], x)
	p, err := a.reserve(n)
	if err != nil {
		return err
	}
	copy(p, tmp[:n])
	return nil
}

// WriteBytes writes p at the cursor.
func (a *Accessor) WriteBytes(p []byte) error {
	dst, err := a.reserve(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	return nil
}

// WriteBytesE writes p at the cursor, reversed when e resolves to the
// opposite of the host order.
func (a *Accessor) WriteBytesE(e Endianness, p []byte) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	dst, err := a.reserve(len(p))
	if err != nil {
		return err
	}
	copy(dst, p)
	if e.isReverse() {
		codec.Reverse(dst)
	}
	return nil
}

// WriteRepeated writes count copies of b.
func (a *Accessor) WriteRepeated(b byte, count int) error {
	dst, err := a.reserve(count)
	if err != nil {
		return err
	}
	for i := range dst {
		dst[i] = b
	}
	return nil
}

// Write implements io.Writer at the cursor, growing the window as
// needed.
func (a *Accessor) Write(p []byte) (int, error) {
	if err := a.WriteBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// NextWritable reserves count bytes at the cursor and returns them as a
// writable slice into the backing store, without copying. The slice is
// invalidated by the next growth.
func (a *Accessor) NextWritable(count int) ([]byte, error) {
	return a.reserve(count)
}
