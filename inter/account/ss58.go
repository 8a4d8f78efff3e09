package account

import (
	"bytes"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// DefaultFormat is the generic substrate SS58 network identifier.
const DefaultFormat uint16 = 42

// maxFormat is the largest identifier the two-byte prefix can carry.
const maxFormat = 16383

var ss58Prefix = []byte("SS58PRE")

// EncodeSS58 renders id as an SS58 address for the given network format.
// Formats above 16383 are clamped to DefaultFormat.
func EncodeSS58(id ID, format uint16) string {
	if format > maxFormat {
		format = DefaultFormat
	}
	payload := append(formatPrefix(format), id[:]...)
	sum := ss58Checksum(payload)
	return base58.Encode(append(payload, sum[:2]...))
}

// DecodeSS58 parses an SS58 address and returns the account together with
// the network format it was encoded for.
func DecodeSS58(s string) (ID, uint16, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return ID{}, 0, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if len(raw) < 1 {
		return ID{}, 0, ErrInvalidEncoding
	}

	var (
		format    uint16
		prefixLen int
	)
	switch {
	case raw[0] < 64:
		format, prefixLen = uint16(raw[0]), 1
	case raw[0] < 128:
		if len(raw) < 2 {
			return ID{}, 0, ErrInvalidEncoding
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0b0011_1111
		format, prefixLen = uint16(lower)|uint16(upper)<<8, 2
	default:
		return ID{}, 0, fmt.Errorf("%w: reserved prefix 0x%02x", ErrInvalidEncoding, raw[0])
	}

	if len(raw) != prefixLen+Length+2 {
		return ID{}, 0, fmt.Errorf("%w: got %d payload bytes", ErrInvalidLength, len(raw)-prefixLen-2)
	}
	body := raw[:prefixLen+Length]
	sum := ss58Checksum(body)
	if !bytes.Equal(sum[:2], raw[prefixLen+Length:]) {
		return ID{}, 0, fmt.Errorf("%w: checksum mismatch", ErrInvalidEncoding)
	}

	id, err := FromBytes(body[prefixLen:])
	return id, format, err
}

func formatPrefix(format uint16) []byte {
	if format < 64 {
		return []byte{byte(format)}
	}
	first := byte((format&0b0000_0000_1111_1100)>>2) | 0b0100_0000
	second := byte(format>>8) | byte(format&0b11)<<6
	return []byte{first, second}
}

func ss58Checksum(payload []byte) [blake2b.Size]byte {
	return blake2b.Sum512(append(append([]byte(nil), ss58Prefix...), payload...))
}
