package accessor

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, fill func(w *Accessor)) *Accessor {
	t.Helper()
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	fill(w)

	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadBytes(w.Size())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := OpenMemory(got, 0, UntilEnd)
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestScalarRoundTrip(t *testing.T) {
	for _, e := range []Endianness{Big, Little, Native, Reverse} {
		r := roundTrip(t, func(w *Accessor) {
			require.NoError(t, w.WriteUint16E(e, 0xbeef))
			require.NoError(t, w.WriteUint24E(e, 0xc0ffee))
			require.NoError(t, w.WriteUint32E(e, 0xdeadbeef))
			require.NoError(t, w.WriteUint64E(e, 0x0123456789abcdef))
			require.NoError(t, w.WriteInt16E(e, -12345))
			require.NoError(t, w.WriteInt24E(e, -0x123456))
			require.NoError(t, w.WriteInt32E(e, -123456789))
			require.NoError(t, w.WriteInt64E(e, -1234567890123456789))
			require.NoError(t, w.WriteFloat32E(e, 3.25))
			require.NoError(t, w.WriteFloat64E(e, -2.5e300))
		})

		u16, err := r.ReadUint16E(e)
		require.NoError(t, err, "order %s", e)
		assert.Equal(t, uint16(0xbeef), u16)
		u24, err := r.ReadUint24E(e)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xc0ffee), u24)
		u32, err := r.ReadUint32E(e)
		require.NoError(t, err)
		assert.Equal(t, uint32(0xdeadbeef), u32)
		u64, err := r.ReadUint64E(e)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x0123456789abcdef), u64)
		i16, err := r.ReadInt16E(e)
		require.NoError(t, err)
		assert.Equal(t, int16(-12345), i16)
		i24, err := r.ReadInt24E(e)
		require.NoError(t, err)
		assert.Equal(t, int32(-0x123456), i24)
		i32, err := r.ReadInt32E(e)
		require.NoError(t, err)
		assert.Equal(t, int32(-123456789), i32)
		i64, err := r.ReadInt64E(e)
		require.NoError(t, err)
		assert.Equal(t, int64(-1234567890123456789), i64)
		f32, err := r.ReadFloat32E(e)
		require.NoError(t, err)
		assert.Equal(t, float32(3.25), f32)
		f64, err := r.ReadFloat64E(e)
		require.NoError(t, err)
		assert.Equal(t, -2.5e300, f64)
		assert.Equal(t, 0, r.Available())
	}
}

func TestScalarByteLayout(t *testing.T) {
	a, err := OpenMemory([]byte{0x12, 0x34, 0x56, 0x78}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	v, err := a.ReadUint32E(Big)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	_, err = a.Seek(0, io.SeekStart)
	require.NoError(t, err)
	v, err = a.ReadUint32E(Little)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x78563412), v)
}

func TestOppositeOrderIsByteSwap(t *testing.T) {
	a, err := OpenMemory([]byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	big, err := a.ReadUint64E(Big)
	require.NoError(t, err)
	_, err = a.Seek(0, io.SeekStart)
	require.NoError(t, err)
	little, err := a.ReadUint64E(Little)
	require.NoError(t, err)

	swapped, err := SwapUint(big, 8)
	require.NoError(t, err)
	assert.Equal(t, little, swapped)
}

func TestReadWidthGeneric(t *testing.T) {
	a, err := OpenMemory([]byte{0xff, 0xff, 0xff, 0xff, 0xff}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	u, err := a.ReadUintE(Big, 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xffffffffff), u)

	_, err = a.Seek(0, io.SeekStart)
	require.NoError(t, err)
	i, err := a.ReadIntE(Big, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), i, "sign extension from the encoded width")

	_, err = a.ReadUint(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = a.ReadUint(9)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorIs(t, a.WriteUintE(endiannessCount, 0, 2), ErrInvalidParameter)
}

func TestVarintRoundTrip(t *testing.T) {
	uvals := []uint64{0, 1, 127, 128, 300, 1 << 21, math.MaxUint64}
	ivals := []int64{0, -1, 1, -64, 64, math.MinInt64, math.MaxInt64}

	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	for _, v := range uvals {
		require.NoError(t, w.WriteUvarint(v))
	}
	for _, v := range ivals {
		require.NoError(t, w.WriteVarint(v))
	}
	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)

	for _, want := range uvals {
		got, err := w.ReadUvarint()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	for _, want := range ivals {
		got, err := w.ReadVarint()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, w.Available())
	require.NoError(t, w.Close())
}

func TestVarint_SmallMagnitudesStayShort(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteVarint(-1))
	assert.Equal(t, 1, w.Size(), "zigzag keeps -1 in one byte")
}

func TestVarint_Errors(t *testing.T) {
	// Ten continuation bytes never terminate a 64-bit value.
	bad := bytes.Repeat([]byte{0x80}, 10)
	a, err := OpenMemory(bad, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.ReadUvarint()
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 0, a.Cursor(), "cursor stays put on malformed input")
	_, err = a.ReadVarint()
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 0, a.Cursor())

	// Same overflow with an eleventh byte present.
	long, err := OpenMemory(bytes.Repeat([]byte{0x80}, 11), 0, UntilEnd)
	require.NoError(t, err)
	defer long.Close()
	_, err = long.ReadUvarint()
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 0, long.Cursor())

	// A run that hits the window end before terminating.
	trunc, err := OpenMemory([]byte{0x80, 0x80}, 0, UntilEnd)
	require.NoError(t, err)
	defer trunc.Close()
	_, err = trunc.ReadVarint()
	assert.ErrorIs(t, err, ErrBeyondEnd)
	assert.Equal(t, 0, trunc.Cursor())
}

func TestBytesE_ReversesAgainstHostOrder(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	a, err := OpenMemory(src, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	same, err := a.ReadBytesE(Native, 4)
	require.NoError(t, err)
	assert.Equal(t, src, same)

	_, err = a.Seek(0, io.SeekStart)
	require.NoError(t, err)
	rev, err := a.ReadBytesE(Reverse, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 3, 2, 1}, rev)

	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.WriteBytesE(Reverse, src))
	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 3, 2, 1}, got)
}

func TestPeek(t *testing.T) {
	a, err := OpenMemory([]byte{1, 2, 3}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	p := make([]byte, 2)
	assert.Equal(t, 2, a.Peek(p))
	assert.Equal(t, []byte{1, 2}, p)
	assert.Equal(t, 0, a.Cursor(), "peek does not move the cursor")

	big := make([]byte, 8)
	assert.Equal(t, 3, a.Peek(big), "short at the window end")

	assert.Equal(t, 2, a.PeekE(Reverse, p))
	assert.Equal(t, []byte{2, 1}, p)

	// An out-of-range endianness copies nothing.
	p = []byte{9, 9}
	assert.Equal(t, 0, a.PeekE(endiannessCount, p))
	assert.Equal(t, []byte{9, 9}, p)
}

func TestNextIsZeroCopy(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	a, err := OpenMemory(data, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	p, err := a.Next(2)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Cursor())

	data[0] = 99
	assert.Equal(t, byte(99), p[0], "slice aliases the backing data")
}

func TestIOReader(t *testing.T) {
	a, err := OpenMemory([]byte("hello world"), 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	got, err := io.ReadAll(a)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)

	n, err := a.Read(make([]byte, 4))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestIOWriterAndCopy(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	n, err := io.Copy(w, bytes.NewReader([]byte("stream me")))
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, 9, w.Size())
}

func TestWriteRepeated(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteRepeated('x', 5))
	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadBytes(5)
	require.NoError(t, err)
	assert.Equal(t, []byte("xxxxx"), got)
}

func TestNextWritable(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	p, err := w.NextWritable(4)
	require.NoError(t, err)
	copy(p, "abcd")

	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), got)
}

func TestCountBeforeDelimiter(t *testing.T) {
	a, err := OpenMemory([]byte("key\x00value\r\n"), 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	n, err := a.CountBeforeDelimiter(UntilEnd, []byte{0})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 0, a.Cursor(), "scanning does not move the cursor")

	n, err = a.CountBeforeDelimiter(UntilEnd, []byte("\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	// The delimiter must START within limit bytes of the cursor.
	_, err = a.CountBeforeDelimiter(2, []byte{0})
	assert.ErrorIs(t, err, ErrBeyondEnd)
	n, err = a.CountBeforeDelimiter(3, []byte{0})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = a.CountBeforeDelimiter(UntilEnd, []byte("zz"))
	assert.ErrorIs(t, err, ErrBeyondEnd)

	_, err = a.CountBeforeDelimiter(UntilEnd, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = a.CountBeforeDelimiter(-2, []byte{0})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
