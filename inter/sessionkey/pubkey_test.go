// Tests for typed consensus keys and the session key bundle: text and byte
// forms, copying, and width validation per scheme.
package sessionkey

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

const auraRaw = "0a38d76ecfbd4b13077669bb9c9ebaaf0847723426f809d20a67c62f2bebc75a"

// TestFromString verifies that a hexadecimal string (with or without 0x prefix)
// can be parsed into a PubKey.
func TestFromString(t *testing.T) {
	require := require.New(t)

	exp := PubKey{
		Type: Types.Sr25519,
		Raw:  common.FromHex(auraRaw),
	}

	// Case 1: no prefix.
	{
		got, err := FromString("73" + auraRaw)
		require.NoError(err)
		require.Equal(exp, got)
	}

	// Case 2: with prefix.
	{
		got, err := FromString("0x73" + auraRaw)
		require.NoError(err)
		require.Equal(exp, got)
	}

	// Case 3: empty input.
	{
		_, err := FromString("")
		require.ErrorIs(err, ErrEmpty)
	}

	// Case 4: "0x" only.
	{
		_, err := FromString("0x")
		require.ErrorIs(err, ErrEmpty)
	}
}

func TestString(t *testing.T) {
	pk := Unchecked(Types.Sr25519, common.FromHex(auraRaw))
	require.Equal(t, "0x73"+auraRaw, pk.String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		key  PubKey
		want error
	}{
		{"sr25519 ok", PubKey{Types.Sr25519, make([]byte, 32)}, nil},
		{"ed25519 ok", PubKey{Types.Ed25519, make([]byte, 32)}, nil},
		{"secp256k1 ok", PubKey{Types.Secp256k1, make([]byte, 33)}, nil},
		{"sr25519 short", PubKey{Types.Sr25519, make([]byte, 31)}, ErrBadLength},
		{"secp256k1 uncompressed", PubKey{Types.Secp256k1, make([]byte, 65)}, ErrBadLength},
		{"unknown type", PubKey{0x01, make([]byte, 32)}, ErrUnknownType},
		{"zero value", PubKey{}, ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	require := require.New(t)

	raw := make([]byte, 32)
	pk, err := New(Types.Ed25519, raw)
	require.NoError(err)
	raw[0] = 0xff
	require.Equal(byte(0), pk.Raw[0])

	_, err = New(Types.Ed25519, raw[:5])
	require.ErrorIs(err, ErrBadLength)
}

func TestCopy(t *testing.T) {
	require := require.New(t)

	original := PubKey{Type: Types.Sr25519, Raw: []byte{0xAA, 0xBB}}
	cp := original.Copy()
	require.Equal(original, cp)

	cp.Raw[0] = 0xFF
	require.Equal(uint8(0xAA), original.Raw[0], "original modified through copy")
	require.False(original.Equal(cp))
}

func TestEmptyAndBytes(t *testing.T) {
	require := require.New(t)

	require.True(PubKey{}.Empty())
	require.False(PubKey{Type: Types.Sr25519, Raw: []byte{1}}.Empty())
	require.Equal([]byte{0x01, 0x02, 0x03}, PubKey{Type: 0x01, Raw: []byte{0x02, 0x03}}.Bytes())
}

func TestMarshalUnmarshal(t *testing.T) {
	require := require.New(t)

	original := Unchecked(Types.Sr25519, common.FromHex(auraRaw))
	data, err := json.Marshal(original)
	require.NoError(err)
	require.Equal(`"`+original.String()+`"`, string(data))

	var decoded PubKey
	require.NoError(json.Unmarshal(data, &decoded))
	require.Equal(original, decoded)
}

func TestKeysBundle(t *testing.T) {
	require := require.New(t)

	aura := Unchecked(Types.Sr25519, common.FromHex(auraRaw))
	keys := AuraOnly(aura)

	require.NoError(keys.Validate())
	require.True(keys.Contains(aura))
	require.True(keys.Equal(AuraOnly(aura.Copy())))
	require.Len(keys.Fields(), 1)
	require.Equal("aura", keys.Fields()[0].Name)
	require.Equal([]byte("aura"), keys.Fields()[0].TypeID())

	data, err := json.Marshal(keys)
	require.NoError(err)
	require.JSONEq(`{"aura":"0x73`+auraRaw+`"}`, string(data))

	bad := AuraOnly(PubKey{Type: Types.Sr25519, Raw: []byte{1}})
	require.ErrorIs(bad.Validate(), ErrBadLength)
	require.False(bad.Equal(keys))
}

func TestTypeName(t *testing.T) {
	require.Equal(t, "sr25519", TypeName(Types.Sr25519))
	require.Equal(t, "ed25519", TypeName(Types.Ed25519))
	require.Equal(t, "ecdsa", TypeName(Types.Secp256k1))
	require.Equal(t, "unknown(0x01)", TypeName(0x01))
}
