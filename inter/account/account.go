// Package account defines the ledger address type of the parachain.
//
// An ID is the 32-byte output of the signer identification transform applied
// to a public key. For sr25519 and ed25519 keys the transform is the identity;
// for ecdsa keys it is the blake2b-256 hash of the compressed point. The
// package does not know which transform produced an ID; it only stores,
// compares and renders the bytes.
package account

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Length is the width of an ID in bytes.
const Length = 32

var (
	// ErrInvalidLength is returned when decoded bytes are not Length long.
	ErrInvalidLength = errors.New("account: invalid length")
	// ErrInvalidEncoding is returned for strings that are neither SS58 nor 0x hex.
	ErrInvalidEncoding = errors.New("account: invalid encoding")
)

// ID is a ledger address. The zero value is a valid (all-zero) address.
type ID [Length]byte

// FromBytes copies b into an ID. b must be exactly Length bytes.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != Length {
		return id, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), Length)
	}
	copy(id[:], b)
	return id, nil
}

// FromString parses either a 0x-prefixed hex string or an SS58 address of any
// network format.
func FromString(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, err := hexutil.Decode(s)
		if err != nil {
			return ID{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
		}
		return FromBytes(b)
	}
	id, _, err := DecodeSS58(s)
	return id, err
}

// MustFromString is FromString for developer-supplied literals; it panics on
// malformed input.
func MustFromString(s string) ID {
	id, err := FromString(s)
	if err != nil {
		panic(fmt.Sprintf("account literal %q is malformed: %v", s, err))
	}
	return id
}

// Bytes returns a copy of the address bytes.
func (id ID) Bytes() []byte {
	return append([]byte(nil), id[:]...)
}

// Hex returns the 0x-prefixed hex form.
func (id ID) Hex() string {
	return hexutil.Encode(id[:])
}

// String returns the SS58 form using DefaultFormat.
func (id ID) String() string {
	return EncodeSS58(id, DefaultFormat)
}

// IsZero reports whether every byte is zero.
func (id ID) IsZero() bool {
	return id == ID{}
}

// Less orders IDs by their raw bytes.
func (id ID) Less(other ID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// MarshalText implements encoding.TextMarshaler using the SS58 form, which is
// how genesis configs spell accounts.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and accepts SS58 or hex.
func (id *ID) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*id = res
	return nil
}
