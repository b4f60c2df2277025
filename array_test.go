package accessor

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceRoundTrip(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	u16s := []uint16{0, 1, 0xffff}
	i32s := []int32{-1, 0, 1 << 30}
	f64s := []float64{0.5, -1e100}

	require.NoError(t, WriteSliceE(w, Big, u16s))
	require.NoError(t, WriteSliceE(w, Big, i32s))
	require.NoError(t, WriteSliceE(w, Big, f64s))
	assert.Equal(t, 3*2+3*4+2*8, w.Size())

	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	gotU16, err := ReadSliceE[uint16](w, Big, 3)
	require.NoError(t, err)
	assert.Equal(t, u16s, gotU16)
	gotI32, err := ReadSliceE[int32](w, Big, 3)
	require.NoError(t, err)
	assert.Equal(t, i32s, gotI32)
	gotF64, err := ReadSliceE[float64](w, Big, 2)
	require.NoError(t, err)
	assert.Equal(t, f64s, gotF64)
	assert.Equal(t, 0, w.Available())
}

func TestSlice_UsesAccessorOrder(t *testing.T) {
	a, err := OpenMemory([]byte{0x12, 0x34, 0x56, 0x78}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.SetEndianness(Big))

	got, err := ReadSlice[uint16](a, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint16{0x1234, 0x5678}, got)
}

func TestSlice_AllOrNothing(t *testing.T) {
	a, err := OpenMemory(make([]byte, 10), 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	_, err = ReadSlice[uint32](a, 3)
	assert.ErrorIs(t, err, ErrBeyondEnd, "12 bytes do not fit in 10")
	assert.Equal(t, 0, a.Cursor(), "partial transfers never happen")

	_, err = ReadSlice[uint32](a, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestUint24Slice(t *testing.T) {
	// Big-endian 0x000102, 0xfffefd.
	a, err := OpenMemory([]byte{0x00, 0x01, 0x02, 0xff, 0xfe, 0xfd}, 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	got, err := a.ReadUint24SliceE(Big, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0x000102, 0xfffefd}, got)

	_, err = a.Seek(0, io.SeekStart)
	require.NoError(t, err)
	signed, err := a.ReadInt24SliceE(Big, 2)
	require.NoError(t, err)
	assert.Equal(t, []int32{0x000102, int32(0xfffefd) - 0x1000000}, signed,
		"high bit set sign-extends")
}

func TestInt24SliceRoundTrip(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	vals := []int32{-0x800000, -1, 0, 1, 0x7fffff}
	require.NoError(t, w.WriteInt24SliceE(Little, vals))
	assert.Equal(t, 15, w.Size())

	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadInt24SliceE(Little, len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestUint24SliceRoundTrip(t *testing.T) {
	w, err := OpenWriteMemory(0, 0)
	require.NoError(t, err)
	defer w.Close()

	vals := []uint32{0, 0xc0ffee, 0xffffff}
	require.NoError(t, w.WriteUint24Slice(vals))

	_, err = w.Seek(0, io.SeekStart)
	require.NoError(t, err)
	got, err := w.ReadUint24Slice(len(vals))
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestSlice_CoverageRecordsWholeTransfer(t *testing.T) {
	a, err := OpenMemory(make([]byte, 12), 0, UntilEnd)
	require.NoError(t, err)
	defer a.Close()

	a.EnableCoverage(true)
	_, err = ReadSlice[uint32](a, 3)
	require.NoError(t, err)

	recs := a.CoverageRecords()
	require.Len(t, recs, 1)
	assert.Equal(t, 12, recs[0].Size)
}
