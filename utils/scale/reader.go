package scale

import (
	"errors"
	"math/big"
)

var (
	// ErrUnexpectedEOF is returned when a value extends past the end of the input.
	ErrUnexpectedEOF = errors.New("scale: unexpected end of input")
	// ErrNonCanonical is returned when a compact integer uses a wider mode than necessary.
	ErrNonCanonical = errors.New("scale: non-canonical compact encoding")
	// ErrOverflow is returned when a value does not fit the target width.
	ErrOverflow = errors.New("scale: value overflows target width")
)

// Reader consumes SCALE encoded values from a byte slice.
//
// Unlike Writer, every read is bounds-checked: the reader is also used on
// storage values that come from parsed documents.
type Reader struct {
	buf    []byte
	offset int
}

// NewReader creates a Reader to consume the provided byte slice.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// Position returns the current cursor index of the Reader.
func (r *Reader) Position() int {
	return r.offset
}

// Empty reports whether every byte has been consumed.
func (r *Reader) Empty() bool {
	return r.offset == len(r.buf)
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.offset+n > len(r.buf) {
		return nil, ErrUnexpectedEOF
	}
	res := r.buf[r.offset : r.offset+n]
	r.offset += n
	return res, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U32 reads a 4-byte little-endian integer.
func (r *Reader) U32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// U64 reads an 8-byte little-endian integer.
func (r *Reader) U64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, nil
}

// U128 reads a 16-byte little-endian integer.
func (r *Reader) U128() (*big.Int, error) {
	b, err := r.take(16)
	if err != nil {
		return nil, err
	}
	be := make([]byte, 16)
	for i := range b {
		be[15-i] = b[i]
	}
	return new(big.Int).SetBytes(be), nil
}

// Fixed reads exactly n bytes. The result shares memory with the input.
func (r *Reader) Fixed(n int) ([]byte, error) {
	return r.take(n)
}

// Vec reads a compact length prefix followed by that many bytes.
func (r *Reader) Vec() ([]byte, error) {
	n, err := r.Compact()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.buf)-r.offset) {
		return nil, ErrUnexpectedEOF
	}
	return r.take(int(n))
}

// Compact reads a SCALE compact integer and rejects non-canonical forms.
func (r *Reader) Compact() (uint64, error) {
	first, err := r.U8()
	if err != nil {
		return 0, err
	}
	switch first & 0b11 {
	case 0b00:
		return uint64(first >> 2), nil
	case 0b01:
		second, err := r.U8()
		if err != nil {
			return 0, err
		}
		v := uint64(uint16(first)|uint16(second)<<8) >> 2
		if v < 1<<6 {
			return 0, ErrNonCanonical
		}
		return v, nil
	case 0b10:
		r.offset--
		x, err := r.U32()
		if err != nil {
			return 0, err
		}
		v := uint64(x >> 2)
		if v < 1<<14 {
			return 0, ErrNonCanonical
		}
		return v, nil
	default:
		n := int(first>>2) + 4
		if n > 8 {
			return 0, ErrOverflow
		}
		b, err := r.take(n)
		if err != nil {
			return 0, err
		}
		var v uint64
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		if v < 1<<30 || (n > 4 && b[n-1] == 0) {
			return 0, ErrNonCanonical
		}
		return v, nil
	}
}
