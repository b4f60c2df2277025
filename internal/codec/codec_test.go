package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintRoundTrip(t *testing.T) {
	for width := 1; width <= MaxWidth; width++ {
		mask := ^uint64(0)
		if width < 8 {
			mask = 1<<(8*width) - 1
		}
		for _, big := range []bool{false, true} {
			for _, x := range []uint64{0, 1, 0x80, 0x1234567890abcdef, ^uint64(0)} {
				b := make([]byte, width)
				PutUint(b, x, big)
				assert.Equal(t, x&mask, Uint(b, big),
					"width %d big %v x %#x", width, big, x)
			}
		}
	}
}

func TestUintByteLayout(t *testing.T) {
	b := []byte{0x12, 0x34, 0x56}
	assert.Equal(t, uint64(0x123456), Uint(b, true))
	assert.Equal(t, uint64(0x563412), Uint(b, false))

	out := make([]byte, 3)
	PutUint(out, 0x123456, true)
	assert.Equal(t, b, out)
	PutUint(out, 0x563412, false)
	assert.Equal(t, b, out)
}

func TestIntSignExtension(t *testing.T) {
	b := make([]byte, 3)

	v := int32(-0x123456)
	PutUint(b, uint64(uint32(v)), true)
	assert.Equal(t, int64(-0x123456), Int(b, true))

	PutUint(b, 0x7fffff, true)
	assert.Equal(t, int64(0x7fffff), Int(b, true), "high bit clear stays positive")

	PutUint(b, 0x800000, true)
	assert.Equal(t, int64(-0x800000), Int(b, true), "high bit set goes negative")
}

func TestFixedSwaps(t *testing.T) {
	assert.Equal(t, uint16(0x3412), Swap16(0x1234))
	assert.Equal(t, uint32(0x563412), Swap24(0x123456))
	assert.Equal(t, uint32(0x78563412), Swap32(0x12345678))
	assert.Equal(t, uint64(0xf0debc9a78563412), Swap64(0x123456789abcdef0))
}

func TestSwapUint(t *testing.T) {
	assert.Equal(t, uint64(Swap16(0x1234)), SwapUint(0x1234, 2))
	assert.Equal(t, uint64(Swap24(0x123456)), SwapUint(0x123456, 3))
	assert.Equal(t, uint64(Swap32(0x12345678)), SwapUint(0x12345678, 4))
	assert.Equal(t, uint64(Swap64(0x123456789abcdef0)), SwapUint(0x123456789abcdef0, 8))
	assert.Equal(t, uint64(0x0504030201), SwapUint(0x0102030405, 5))
	assert.Equal(t, uint64(0xab), SwapUint(0xab, 1))

	for width := 1; width <= MaxWidth; width++ {
		x := uint64(0x0123456789abcdef)
		if width < 8 {
			x &= 1<<(8*width) - 1
		}
		require.Equal(t, x, SwapUint(SwapUint(x, width), width),
			"double swap at width %d", width)
	}
}

func TestSwapInt(t *testing.T) {
	// 0x123480 reversed over 3 bytes is 0x803412, negative at 24 bits.
	assert.Equal(t, int64(0x803412)-0x1000000, SwapInt(0x123480, 3))
	assert.Equal(t, int64(-1), SwapInt(-1, 4))
	assert.Equal(t, int64(0x3412), SwapInt(0x1234, 2))
}

func TestReverse(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	Reverse(b)
	assert.Equal(t, []byte{5, 4, 3, 2, 1}, b)

	empty := []byte{}
	Reverse(empty)
	assert.Empty(t, empty)
}
