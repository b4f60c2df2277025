package accessor

import (
	"math"

	"github.com/binsect/accessor/internal/buf"
	"github.com/binsect/accessor/internal/codec"
)

// Scalar is the set of fixed-width element types the slice transfers
// handle. 24-bit elements have no Go type and use the dedicated
// Uint24/Int24 slice methods instead.
type Scalar interface {
	uint16 | uint32 | uint64 | int16 | int32 | int64 | float32 | float64
}

func scalarWidth[T Scalar]() int {
	switch any(*new(T)).(type) {
	case uint16, int16:
		return 2
	case uint32, int32, float32:
		return 4
	default:
		return 8
	}
}

func getScalar[T Scalar](b []byte, big bool) T {
	var v T
	switch p := any(&v).(type) {
	case *uint16:
		*p = uint16(codec.Uint(b, big))
	case *int16:
		*p = int16(codec.Uint(b, big))
	case *uint32:
		*p = uint32(codec.Uint(b, big))
	case *int32:
		*p = int32(codec.Uint(b, big))
	case *uint64:
		*p = codec.Uint(b, big)
	case *int64:
		*p = int64(codec.Uint(b, big))
	case *float32:
		*p = math.Float32frombits(uint32(codec.Uint(b, big)))
	case *float64:
		*p = math.Float64frombits(codec.Uint(b, big))
	}
	return v
}

func putScalar[T Scalar](b []byte, v T, big bool) {
	switch x := any(v).(type) {
	case uint16:
		codec.PutUint(b, uint64(x), big)
	case int16:
		codec.PutUint(b, uint64(uint16(x)), big)
	case uint32:
		codec.PutUint(b, uint64(x), big)
	case int32:
		codec.PutUint(b, uint64(uint32(x)), big)
	case uint64:
		codec.PutUint(b, x, big)
	case int64:
		codec.PutUint(b, uint64(x), big)
	case float32:
		codec.PutUint(b, uint64(math.Float32bits(x)), big)
	case float64:
		codec.PutUint(b, math.Float64bits(x), big)
	}
}

// ReadSlice reads count elements of T using the accessor's endianness.
func ReadSlice[T Scalar](a *Accessor, count int) ([]T, error) {
	return ReadSliceE[T](a, a.order, count)
}

// ReadSliceE reads count elements of T using an explicit endianness. The
// whole transfer is bounds-checked up front; on error the cursor does
// not move.
func ReadSliceE[T Scalar](a *Accessor, e Endianness, count int) ([]T, error) {
	if !e.valid() || count < 0 {
		return nil, ErrInvalidParameter
	}
	w := scalarWidth[T]()
	n, ok := buf.Mul(count, w)
	if !ok {
		return nil, ErrInvalidParameter
	}
	p, err := a.take(n)
	if err != nil {
		return nil, err
	}
	big := e.isBig()
	out := make([]T, count)
	for i := range out {
		out[i] = getScalar[T](p[i*w:(i+1)*w], big)
	}
	return out, nil
}

// WriteSlice writes every element of s using the accessor's endianness.
func WriteSlice[T Scalar](a *Accessor, s []T) error {
	return WriteSliceE(a, a.order, s)
}

// WriteSliceE writes every element of s using an explicit endianness.
func WriteSliceE[T Scalar](a *Accessor, e Endianness, s []T) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	w := scalarWidth[T]()
	n, ok := buf.Mul(len(s), w)
	if !ok {
		return ErrInvalidParameter
	}
	dst, err := a.reserve(n)
	if err != nil {
		return err
	}
	big := e.isBig()
	for i, v := range s {
		putScalar(dst[i*w:(i+1)*w], v, big)
	}
	return nil
}

// ReadUint24Slice reads count 24-bit unsigned integers using the
// accessor's endianness, widening each to uint32.
func (a *Accessor) ReadUint24Slice(count int) ([]uint32, error) {
	return a.ReadUint24SliceE(a.order, count)
}

// ReadUint24SliceE reads count 24-bit unsigned integers using an
// explicit endianness, widening each to uint32.
func (a *Accessor) ReadUint24SliceE(e Endianness, count int) ([]uint32, error) {
	if !e.valid() || count < 0 {
		return nil, ErrInvalidParameter
	}
	n, ok := buf.Mul(count, 3)
	if !ok {
		return nil, ErrInvalidParameter
	}
	p, err := a.take(n)
	if err != nil {
		return nil, err
	}
	big := e.isBig()
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(codec.Uint(p[i*3:(i+1)*3], big))
	}
	return out, nil
}

// ReadInt24Slice reads count 24-bit signed integers using the accessor's
// endianness, sign-extending each to int32.
func (a *Accessor) ReadInt24Slice(count int) ([]int32, error) {
	return a.ReadInt24SliceE(a.order, count)
}

// ReadInt24SliceE reads count 24-bit signed integers using an explicit
// endianness, sign-extending each to int32.
func (a *Accessor) ReadInt24SliceE(e Endianness, count int) ([]int32, error) {
	if !e.valid() || count < 0 {
		return nil, ErrInvalidParameter
	}
	n, ok := buf.Mul(count, 3)
	if !ok {
		return nil, ErrInvalidParameter
	}
	p, err := a.take(n)
	if err != nil {
		return nil, err
	}
	big := e.isBig()
	out := make([]int32, count)
	for i := range out {
		out[i] = int32(codec.Int(p[i*3:(i+1)*3], big))
	}
	return out, nil
}

// WriteUint24Slice writes the low 24 bits of every element using the
// accessor's endianness.
func (a *Accessor) WriteUint24Slice(s []uint32) error {
	return a.WriteUint24SliceE(a.order, s)
}

// WriteUint24SliceE writes the low 24 bits of every element using an
// explicit endianness.
func (a *Accessor) WriteUint24SliceE(e Endianness, s []uint32) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	n, ok := buf.Mul(len(s), 3)
	if !ok {
		return ErrInvalidParameter
	}
	dst, err := a.reserve(n)
	if err != nil {
		return err
	}
	big := e.isBig()
	for i, v := range s {
		codec.PutUint(dst[i*3:(i+1)*3], uint64(v), big)
	}
	return nil
}

// WriteInt24Slice writes the low 24 bits of every element using the
// accessor's endianness.
func (a *Accessor) WriteInt24Slice(s []int32) error {
	return a.WriteInt24SliceE(a.order, s)
}

// WriteInt24SliceE writes the low 24 bits of every element using an
// explicit endianness.
func (a *Accessor) WriteInt24SliceE(e Endianness, s []int32) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	n, ok := buf.Mul(len(s), 3)
	if !ok {
		return ErrInvalidParameter
	}
	dst, err := a.reserve(n)
	if err != nil {
		return err
	}
	big := e.isBig()
	for i, v := range s {
		codec.PutUint(dst[i*3:(i+1)*3], uint64(uint32(v)), big)
	}
	return nil
}
