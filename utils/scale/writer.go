// Package scale implements the subset of the SCALE binary codec the chain
// specification builder needs: fixed-width little-endian integers, compact
// (variable length) integers and length-prefixed byte vectors.
//
// SCALE is the encoding the parachain runtime uses for its storage values and
// that key derivation uses for junction chain codes, so byte-for-byte agreement
// with the runtime matters more than speed here.
package scale

import (
	"math/big"
)

// Writer appends SCALE encoded values to a byte slice.
// It is not safe for concurrent use.
type Writer struct {
	buf []byte
}

// NewWriter creates a Writer that appends to the provided initial slice.
// Often called with `make([]byte, 0, capacity)` to pre-allocate memory.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// Bytes returns the accumulated content of the Writer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// U8 appends a single byte.
func (w *Writer) U8(v uint8) {
	w.buf = append(w.buf, v)
}

// Bool appends 0x01 for true and 0x00 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

// U32 appends v as 4 little-endian bytes.
func (w *Writer) U32(v uint32) {
	w.buf = append(w.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// U64 appends v as 8 little-endian bytes.
func (w *Writer) U64(v uint64) {
	for i := 0; i < 8; i++ {
		w.buf = append(w.buf, byte(v>>(8*i)))
	}
}

// U128 appends v as 16 little-endian bytes. Negative values and values wider
// than 128 bits cannot be represented and return ErrOverflow.
func (w *Writer) U128(v *big.Int) error {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return ErrOverflow
	}
	be := v.Bytes() // big-endian, minimal
	le := make([]byte, 16)
	for i := 0; i < len(be); i++ {
		le[i] = be[len(be)-1-i]
	}
	w.buf = append(w.buf, le...)
	return nil
}

// Fixed appends v verbatim, without a length prefix.
func (w *Writer) Fixed(v []byte) {
	w.buf = append(w.buf, v...)
}

// Vec appends a compact length prefix followed by v.
func (w *Writer) Vec(v []byte) {
	w.Compact(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

// String appends s the same way as a byte vector.
func (w *Writer) String(s string) {
	w.Vec([]byte(s))
}

// Option appends the SCALE Option tag: 0x00 for None, 0x01 followed by the
// value written by some for Some.
func (w *Writer) Option(present bool, some func(*Writer)) {
	if !present {
		w.U8(0)
		return
	}
	w.U8(1)
	some(w)
}

// Compact appends v in SCALE compact form.
//
// The two least significant bits of the first byte select the mode:
//   - 0b00: single byte, values below 2^6
//   - 0b01: two bytes, values below 2^14
//   - 0b10: four bytes, values below 2^30
//   - 0b11: big-integer mode, the upper six bits hold (length - 4) and the
//     value follows as `length` little-endian bytes
func (w *Writer) Compact(v uint64) {
	switch {
	case v < 1<<6:
		w.U8(byte(v << 2))
	case v < 1<<14:
		x := uint16(v<<2) | 0b01
		w.buf = append(w.buf, byte(x), byte(x>>8))
	case v < 1<<30:
		w.U32(uint32(v<<2) | 0b10)
	default:
		n := 0
		for x := v; x != 0; x >>= 8 {
			n++
		}
		if n < 4 {
			n = 4
		}
		w.U8(byte((n-4)<<2) | 0b11)
		for i := 0; i < n; i++ {
			w.buf = append(w.buf, byte(v>>(8*i)))
		}
	}
}

// Encode is a convenience wrapper that runs fn against a fresh Writer and
// returns the produced bytes.
func Encode(fn func(*Writer)) []byte {
	w := NewWriter(make([]byte, 0, 64))
	fn(w)
	return w.Bytes()
}
