// Package sessionkey provides the consensus-role public keys of the parachain
// and the session key bundle a collator registers at genesis.
//
// A PubKey carries its scheme next to the raw bytes, so the same bundle can
// hold sr25519 block-authoring keys today and other schemes later without the
// genesis code needing to know curve details.
package sessionkey

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrEmpty is returned when parsing an empty key.
	ErrEmpty = errors.New("sessionkey: empty pubkey")
	// ErrUnknownType is returned for a scheme byte outside Types.
	ErrUnknownType = errors.New("sessionkey: unknown key type")
	// ErrBadLength is returned when Raw has the wrong width for its type.
	ErrBadLength = errors.New("sessionkey: bad key length")
)

// PubKey is a typed consensus public key.
type PubKey struct {
	// Type identifies the signature scheme (see Types).
	Type uint8
	// Raw contains the encoded public key bytes.
	Raw []byte
}

// Types lists the supported key schemes.
var Types = struct {
	Sr25519   uint8
	Ed25519   uint8
	Secp256k1 uint8
}{
	Sr25519:   0x73,
	Ed25519:   0x65,
	Secp256k1: 0xc0,
}

// rawLength is the encoded width of each scheme's public key; secp256k1 keys
// are stored compressed.
var rawLength = map[uint8]int{
	Types.Sr25519:   32,
	Types.Ed25519:   32,
	Types.Secp256k1: 33,
}

// TypeName returns a human readable scheme name for t.
func TypeName(t uint8) string {
	switch t {
	case Types.Sr25519:
		return "sr25519"
	case Types.Ed25519:
		return "ed25519"
	case Types.Secp256k1:
		return "ecdsa"
	default:
		return fmt.Sprintf("unknown(0x%02x)", t)
	}
}

// Empty reports whether the key is the zero value.
func (pk PubKey) Empty() bool {
	return len(pk.Raw) == 0 && pk.Type == 0
}

// Validate checks that Type is known and Raw has the matching width.
func (pk PubKey) Validate() error {
	if pk.Empty() {
		return ErrEmpty
	}
	want, ok := rawLength[pk.Type]
	if !ok {
		return fmt.Errorf("%w: 0x%02x", ErrUnknownType, pk.Type)
	}
	if len(pk.Raw) != want {
		return fmt.Errorf("%w: %s key has %d bytes, want %d", ErrBadLength, TypeName(pk.Type), len(pk.Raw), want)
	}
	return nil
}

// Equal compares type and bytes.
func (pk PubKey) Equal(other PubKey) bool {
	return pk.Type == other.Type && string(pk.Raw) == string(other.Raw)
}

// String returns "0x" followed by the type byte and the raw key in hex.
func (pk PubKey) String() string {
	return hexutil.Encode(pk.Bytes())
}

// Bytes returns [Type] + Raw.
func (pk PubKey) Bytes() []byte {
	return append([]byte{pk.Type}, pk.Raw...)
}

// Copy returns a deep copy; Raw is not shared.
func (pk PubKey) Copy() PubKey {
	return PubKey{
		Type: pk.Type,
		Raw:  common.CopyBytes(pk.Raw),
	}
}

// New builds a key of type t from raw and validates its width.
func New(t uint8, raw []byte) (PubKey, error) {
	pk := PubKey{Type: t, Raw: common.CopyBytes(raw)}
	if err := pk.Validate(); err != nil {
		return PubKey{}, err
	}
	return pk, nil
}

// Unchecked builds a key of type t from raw without validating it. Used for
// frozen literal keys embedded in presets.
func Unchecked(t uint8, raw []byte) PubKey {
	return PubKey{Type: t, Raw: common.CopyBytes(raw)}
}

// FromString parses the output of String (with or without the 0x prefix).
func FromString(str string) (PubKey, error) {
	return FromBytes(common.FromHex(str))
}

// FromBytes splits b into the type byte and the raw key.
func FromBytes(b []byte) (PubKey, error) {
	if len(b) == 0 {
		return PubKey{}, ErrEmpty
	}
	return PubKey{Type: b[0], Raw: common.CopyBytes(b[1:])}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (pk PubKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PubKey) UnmarshalText(input []byte) error {
	res, err := FromString(string(input))
	if err != nil {
		return err
	}
	*pk = res
	return nil
}
