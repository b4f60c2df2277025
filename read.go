package accessor

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/binsect/accessor/internal/codec"
)

// readUint is the transfer behind every fixed-width unsigned read: bounds
// check, decode, coverage, cursor advance.
func (a *Accessor) readUint(e Endianness, width int) (uint64, error) {
	if !e.valid() || width < 1 || width > codec.MaxWidth {
		return 0, ErrInvalidParameter
	}
	p, err := a.take(width)
	if err != nil {
		return 0, err
	}
	return codec.Uint(p, e.isBig()), nil
}

func (a *Accessor) readInt(e Endianness, width int) (int64, error) {
	if !e.valid() || width < 1 || width > codec.MaxWidth {
		return 0, ErrInvalidParameter
	}
	p, err := a.take(width)
	if err != nil {
		return 0, err
	}
	return codec.Int(p, e.isBig()), nil
}

// ReadUint reads an unsigned integer of width bytes (1 to 8) using the
// accessor's endianness.
func (a *Accessor) ReadUint(width int) (uint64, error) {
	return a.readUint(a.order, width)
}

// ReadUintE reads an unsigned integer of width bytes (1 to 8) using an
// explicit endianness.
func (a *Accessor) ReadUintE(e Endianness, width int) (uint64, error) {
	return a.readUint(e, width)
}

// ReadInt reads a signed integer of width bytes (1 to 8) using the
// accessor's endianness, sign-extending from the encoded width.
func (a *Accessor) ReadInt(width int) (int64, error) {
	return a.readInt(a.order, width)
}

// ReadIntE reads a signed integer of width bytes (1 to 8) using an
// explicit endianness, sign-extending from the encoded width.
func (a *Accessor) ReadIntE(e Endianness, width int) (int64, error) {
	return a.readInt(e, width)
}

// ReadUint8 reads one unsigned byte.
func (a *Accessor) ReadUint8() (uint8, error) {
	p, err := a.take(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadInt8 reads one signed byte.
func (a *Accessor) ReadInt8() (int8, error) {
	p, err := a.take(1)
	if err != nil {
		return 0, err
	}
	return int8(p[0]), nil
}

// ReadUint16 reads a 16-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) ReadUint16() (uint16, error) {
	v, err := a.readUint(a.order, 2)
	return uint16(v), err
}

// ReadUint16E reads a 16-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) ReadUint16E(e Endianness) (uint16, error) {
	v, err := a.readUint(e, 2)
	return uint16(v), err
}

// ReadUint24 reads a 24-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) ReadUint24() (uint32, error) {
	v, err := a.readUint(a.order, 3)
	return uint32(v), err
}

// ReadUint24E reads a 24-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) ReadUint24E(e Endianness) (uint32, error) {
	v, err := a.readUint(e, 3)
	return uint32(v), err
}

// ReadUint32 reads a 32-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) ReadUint32() (uint32, error) {
	v, err := a.readUint(a.order, 4)
	return uint32(v), err
}

// ReadUint32E reads a 32-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) ReadUint32E(e Endianness) (uint32, error) {
	v, err := a.readUint(e, 4)
	return uint32(v), err
}

// ReadUint64 reads a 64-bit unsigned integer using the accessor's
// endianness.
func (a *Accessor) ReadUint64() (uint64, error) {
	return a.readUint(a.order, 8)
}

// ReadUint64E reads a 64-bit unsigned integer using an explicit
// endianness.
func (a *Accessor) ReadUint64E(e Endianness) (uint64, error) {
	return a.readUint(e, 8)
}

// ReadInt16 reads a 16-bit signed integer using the accessor's
// endianness.
func (a *Accessor) ReadInt16() (int16, error) {
	v, err := a.readInt(a.order, 2)
	return int16(v), err
}

// ReadInt16E reads a 16-bit signed integer using an explicit endianness.
func (a *Accessor) ReadInt16E(e Endianness) (int16, error) {
	v, err := a.readInt(e, 2)
	return int16(v), err
}

// ReadInt24 reads a 24-bit signed integer using the accessor's
// endianness, sign-extending to 32 bits.
func (a *Accessor) ReadInt24() (int32, error) {
	v, err := a.readInt(a.order, 3)
	return int32(v), err
}

// ReadInt24E reads a 24-bit signed integer using an explicit endianness,
// sign-extending to 32 bits.
func (a *Accessor) ReadInt24E(e Endianness) (int32, error) {
	v, err := a.readInt(e, 3)
	return int32(v), err
}

// ReadInt32 reads a 32-bit signed integer using the accessor's
// endianness.
func (a *Accessor) ReadInt32() (int32, error) {
	v, err := a.readInt(a.order, 4)
	return int32(v), err
}

// ReadInt32E reads a 32-bit signed integer using an explicit endianness.
func (a *Accessor) ReadInt32E(e Endianness) (int32, error) {
	v, err := a.readInt(e, 4)
	return int32(v), err
}

// ReadInt64 reads a 64-bit signed integer using the accessor's
// endianness.
func (a *Accessor) ReadInt64() (int64, error) {
	return a.readInt(a.order, 8)
}

// ReadInt64E reads a 64-bit signed integer using an explicit endianness.
func (a *Accessor) ReadInt64E(e Endianness) (int64, error) {
	return a.readInt(e, 8)
}

// ReadFloat32 reads an IEEE 754 32-bit float using the accessor's
// endianness.
func (a *Accessor) ReadFloat32() (float32, error) {
	return a.ReadFloat32E(a.order)
}

// ReadFloat32E reads an IEEE 754 32-bit float using an explicit
// endianness.
func (a *Accessor) ReadFloat32E(e Endianness) (float32, error) {
	v, err := a.readUint(e, 4)
	return math.Float32frombits(uint32(v)), err
}

// ReadFloat64 reads an IEEE 754 64-bit float using the accessor's
// endianness.
func (a *Accessor) ReadFloat64() (float64, error) {
	return a.ReadFloat64E(a.order)
}

// ReadFloat64E reads an IEEE 754 64-bit float using an explicit
// endianness.
func (a *Accessor) ReadFloat64E(e Endianness) (float64, error) {
	v, err := a.readUint(e, 8)
	return math.Float64frombits(v), err
}

// ReadUvarint reads a base-128 varint: 7-bit groups from least to most
// significant, high bit set on every byte but the last. A run past the
// window is ErrBeyondEnd, a value wider than 64 bits is ErrMalformedData;
// the cursor does not move on either.
func (a *Accessor) ReadUvarint() (uint64, error) {
	v, n := binary.Uvarint(a.remaining())
	if n == 0 {
		// A full-length run of continuation bytes is an overflow, not a
		// short buffer: binary.Uvarint only reports n < 0 when a byte
		// past the ten-byte maximum exists.
		if a.avail >= binary.MaxVarintLen64 {
			return 0, ErrMalformedData
		}
		return 0, ErrBeyondEnd
	}
	if n < 0 {
		return 0, ErrMalformedData
	}
	a.cov.Record(a.cursor, n)
	a.cursor += n
	a.avail -= n
	return v, nil
}

// ReadVarint reads a zigzag-encoded signed varint. Error behavior
// matches ReadUvarint.
func (a *Accessor) ReadVarint() (int64, error) {
	v, n := binary.Varint(a.remaining())
	if n == 0 {
		if a.avail >= binary.MaxVarintLen64 {
			return 0, ErrMalformedData
		}
		return 0, ErrBeyondEnd
	}
	if n < 0 {
		return 0, ErrMalformedData
	}
	a.cov.Record(a.cursor, n)
	a.cursor += n
	a.avail -= n
	return v, nil
}

// ReadBytes reads count bytes into a fresh slice.
func (a *Accessor) ReadBytes(count int) ([]byte, error) {
	p, err := a.take(count)
	if err != nil {
		return nil, err
	}
	out := make([]byte, count)
	copy(out, p)
	return out, nil
}

// ReadBytesE reads count bytes into a fresh slice, reversing the block
// when e resolves to the opposite of the host order.
func (a *Accessor) ReadBytesE(e Endianness, count int) ([]byte, error) {
	if !e.valid() {
		return nil, ErrInvalidParameter
	}
	out, err := a.ReadBytes(count)
	if err != nil {
		return nil, err
	}
	if e.isReverse() {
		codec.Reverse(out)
	}
	return out, nil
}

// Read implements io.Reader over the window: it fills p with up to
// Available() bytes and reports io.EOF at the window end. Partial reads
// still log coverage.
func (a *Accessor) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if a.avail == 0 {
		return 0, io.EOF
	}
	n := min(len(p), a.avail)
	src, err := a.take(n)
	if err != nil {
		return 0, err
	}
	copy(p, src)
	return n, nil
}

// Next consumes count bytes and returns them as a slice into the backing
// store, without copying. The slice stays valid until the accessor chain
// is closed; treat it as read-only.
func (a *Accessor) Next(count int) ([]byte, error) {
	return a.take(count)
}

// Peek copies up to len(p) bytes at the cursor into p without moving the
// cursor and returns the number of bytes copied, which is short only at
// the window end.
func (a *Accessor) Peek(p []byte) int {
	n := min(len(p), a.avail)
	copy(p, a.remaining()[:n])
	return n
}

// PeekE is Peek with the copied block reversed when e resolves to the
// opposite of the host order. An invalid endianness copies nothing and
// returns 0.
func (a *Accessor) PeekE(e Endianness, p []byte) int {
	if !e.valid() {
		return 0
	}
	n := a.Peek(p)
	if e.isReverse() {
		codec.Reverse(p[:n])
	}
	return n
}

// Remaining returns the bytes between the cursor and the window end as a
// slice into the backing store, without moving the cursor or logging
// coverage. Treat it as read-only; it is invalidated by growth or close.
func (a *Accessor) Remaining() []byte {
	return a.remaining()
}

// CountBeforeDelimiter scans forward from the cursor for delim and
// returns the number of bytes before its first occurrence, considering
// only matches starting within limit bytes of the cursor. limit may be
// UntilEnd. The cursor does not move. No occurrence is ErrBeyondEnd.
func (a *Accessor) CountBeforeDelimiter(limit int, delim []byte) (int, error) {
	if len(delim) < 1 || (limit < 0 && limit != UntilEnd) {
		return 0, ErrInvalidParameter
	}
	if a.avail < len(delim) {
		return 0, ErrBeyondEnd
	}
	lastStart := a.avail - len(delim)
	if limit == UntilEnd || limit > lastStart {
		limit = lastStart
	}
	i := bytes.Index(a.remaining()[:limit+len(delim)], delim)
	if i < 0 {
		return 0, ErrBeyondEnd
	}
	return i, nil
}
