package accessor

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"

	"github.com/binsect/accessor/internal/codec"
)

func utf16Codec(e Endianness) *encoding.Decoder {
	if e.isBig() {
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
}

func utf16Encoder(e Endianness) *encoding.Encoder {
	if e.isBig() {
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
}

func utf32Codec(e Endianness) *encoding.Decoder {
	if e.isBig() {
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	}
	return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
}

func utf32Encoder(e Endianness) *encoding.Encoder {
	if e.isBig() {
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewEncoder()
	}
	return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewEncoder()
}

// ReadCString reads a NUL-terminated byte string and returns it without
// the terminator. The cursor moves past the terminator. A missing
// terminator within the window is ErrBeyondEnd and the cursor does not
// move.
func (a *Accessor) ReadCString() (string, error) {
	rem := a.remaining()
	n := 0
	for n < len(rem) && rem[n] != 0 {
		n++
	}
	if n == len(rem) {
		return "", ErrBeyondEnd
	}
	s := string(rem[:n])
	a.cov.Record(a.cursor, n+1)
	a.cursor += n + 1
	a.avail -= n + 1
	return s, nil
}

// ReadPString reads a Pascal string: one length byte followed by that
// many characters.
func (a *Accessor) ReadPString() (string, error) {
	rem := a.remaining()
	if len(rem) < 1 {
		return "", ErrBeyondEnd
	}
	n := int(rem[0])
	if len(rem) < n+1 {
		return "", ErrBeyondEnd
	}
	s := string(rem[1 : n+1])
	a.cov.Record(a.cursor, n+1)
	a.cursor += n + 1
	a.avail -= n + 1
	return s, nil
}

// ReadFixedString reads exactly length bytes as a string, embedded NULs
// and all.
func (a *Accessor) ReadFixedString(length int) (string, error) {
	p, err := a.take(length)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadPaddedString reads exactly length bytes and strips trailing pad
// characters from the result. The cursor always moves by length.
func (a *Accessor) ReadPaddedString(length int, pad byte) (string, error) {
	p, err := a.take(length)
	if err != nil {
		return "", err
	}
	n := len(p)
	for n > 0 && p[n-1] == pad {
		n--
	}
	return string(p[:n]), nil
}

// ReadString16 reads a NUL-terminated UTF-16 string using the accessor's
// endianness and returns it decoded.
func (a *Accessor) ReadString16() (string, error) {
	return a.ReadString16E(a.order)
}

// ReadString16E reads a NUL-terminated UTF-16 string using an explicit
// endianness. The cursor moves past the two-byte terminator; a missing
// terminator within the window is ErrBeyondEnd and the cursor does not
// move.
func (a *Accessor) ReadString16E(e Endianness) (string, error) {
	if !e.valid() {
		return "", ErrInvalidParameter
	}
	rem := a.remaining()
	n := 0 // units before the terminator
	for {
		if len(rem)-2*n < 2 {
			return "", ErrBeyondEnd
		}
		if rem[2*n] == 0 && rem[2*n+1] == 0 {
			break
		}
		n++
	}
	s, err := utf16Codec(e).Bytes(rem[:2*n])
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	total := 2 * (n + 1)
	a.cov.Record(a.cursor, total)
	a.cursor += total
	a.avail -= total
	return string(s), nil
}

// ReadString32 reads a NUL-terminated UTF-32 string using the accessor's
// endianness and returns it decoded.
func (a *Accessor) ReadString32() (string, error) {
	return a.ReadString32E(a.order)
}

// ReadString32E reads a NUL-terminated UTF-32 string using an explicit
// endianness, with the same cursor behavior as ReadString16E.
func (a *Accessor) ReadString32E(e Endianness) (string, error) {
	if !e.valid() {
		return "", ErrInvalidParameter
	}
	rem := a.remaining()
	n := 0
	for {
		if len(rem)-4*n < 4 {
			return "", ErrBeyondEnd
		}
		if codec.Uint(rem[4*n:4*n+4], e.isBig()) == 0 {
			break
		}
		n++
	}
	s, err := utf32Codec(e).Bytes(rem[:4*n])
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	total := 4 * (n + 1)
	a.cov.Record(a.cursor, total)
	a.cursor += total
	a.avail -= total
	return string(s), nil
}

// WriteCString writes s followed by a NUL terminator. s must not contain
// a NUL of its own for the result to read back intact.
func (a *Accessor) WriteCString(s string) error {
	p, err := a.reserve(len(s) + 1)
	if err != nil {
		return err
	}
	copy(p, s)
	p[len(s)] = 0
	return nil
}

// WritePString writes s as a Pascal string: one length byte followed by
// the characters. Strings longer than 255 bytes are ErrInvalidParameter.
func (a *Accessor) WritePString(s string) error {
	if !a.writable {
		return ErrReadOnly
	}
	if len(s) > 0xff {
		return ErrInvalidParameter
	}
	p, err := a.reserve(len(s) + 1)
	if err != nil {
		return err
	}
	p[0] = byte(len(s))
	copy(p[1:], s)
	return nil
}

// WritePaddedString writes s into a field of exactly paddedLength bytes,
// filling the tail with pad. A string longer than the field is
// ErrInvalidParameter.
func (a *Accessor) WritePaddedString(s string, paddedLength int, pad byte) error {
	if !a.writable {
		return ErrReadOnly
	}
	if paddedLength < 0 || len(s) > paddedLength {
		return ErrInvalidParameter
	}
	p, err := a.reserve(paddedLength)
	if err != nil {
		return err
	}
	copy(p, s)
	for i := len(s); i < paddedLength; i++ {
		p[i] = pad
	}
	return nil
}

// WriteString16 writes s as NUL-terminated UTF-16 using the accessor's
// endianness.
func (a *Accessor) WriteString16(s string) error {
	return a.WriteString16E(a.order, s)
}

// WriteString16E writes s as NUL-terminated UTF-16 using an explicit
// endianness.
func (a *Accessor) WriteString16E(e Endianness, s string) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	if !a.writable {
		return ErrReadOnly
	}
	enc, err := utf16Encoder(e).Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	p, err := a.reserve(len(enc) + 2)
	if err != nil {
		return err
	}
	copy(p, enc)
	p[len(enc)] = 0
	p[len(enc)+1] = 0
	return nil
}

// WriteString32 writes s as NUL-terminated UTF-32 using the accessor's
// endianness.
func (a *Accessor) WriteString32(s string) error {
	return a.WriteString32E(a.order, s)
}

// WriteString32E writes s as NUL-terminated UTF-32 using an explicit
// endianness.
func (a *Accessor) WriteString32E(e Endianness, s string) error {
	if !e.valid() {
		return ErrInvalidParameter
	}
	if !a.writable {
		return ErrReadOnly
	}
	enc, err := utf32Encoder(e).Bytes([]byte(s))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	p, err := a.reserve(len(enc) + 4)
	if err != nil {
		return err
	}
	copy(p, enc)
	clear(p[len(enc):])
	return nil
}
