package keys

import (
	"crypto/ed25519"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

func TestParseURI(t *testing.T) {
	require := require.New(t)

	// Case 1: seed uri uses the development phrase
	uri, err := ParseURI(SeedURI("Alice//stash"))
	require.NoError(err)
	require.Equal(DevPhrase, uri.Phrase)
	require.Len(uri.Path, 2)
	require.True(uri.Path[0].Hard)
	require.True(uri.Path[1].Hard)
	require.Equal("//Alice//stash", uri.String())

	// Case 2: soft junctions and password
	uri, err = ParseURI(DevPhrase + "//polkadot/0///secret")
	require.NoError(err)
	require.Equal("secret", uri.Password)
	require.Len(uri.Path, 2)
	require.False(uri.Path[1].Hard)
	require.Equal("//polkadot/0", uri.String())

	// Case 3: empty junction
	_, err = ParseURI("//")
	require.ErrorIs(err, ErrInvalidJunction)
	_, err = ParseURI("//Alice//")
	require.ErrorIs(err, ErrInvalidJunction)
}

func TestJunctionChainCode(t *testing.T) {
	require := require.New(t)

	j := NewJunction("Alice", true)
	var want [ChainCodeLength]byte
	copy(want[:], []byte{0x14, 'A', 'l', 'i', 'c', 'e'})
	require.Equal(want, j.ChainCode)

	n := NewJunction("1", false)
	want = [ChainCodeLength]byte{1}
	require.Equal(want, n.ChainCode)

	long := "a-junction-name-well-beyond-thirty-two-bytes"
	l := NewJunction(long, true)
	enc := append([]byte{byte(len(long) << 2)}, long...)
	require.Equal(blake2b.Sum256(enc), l.ChainCode)
}

func TestSchemeByName(t *testing.T) {
	for name, want := range map[string]Scheme{
		"sr25519":   Sr25519,
		"SR25519":   Sr25519,
		"ed25519":   Ed25519,
		"ecdsa":     Ecdsa,
		"secp256k1": Ecdsa,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := SchemeByName(name)
			require.NoError(t, err)
			require.Equal(t, want.Name(), got.Name())
		})
	}
	_, err := SchemeByName("bls")
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestPublicFromSeed(t *testing.T) {
	for _, scheme := range []Scheme{Sr25519, Ed25519, Ecdsa} {
		t.Run(scheme.Name(), func(t *testing.T) {
			require := require.New(t)

			alice, err := PublicFromSeed(scheme, "Alice")
			require.NoError(err)
			require.NoError(alice.Validate())
			require.Equal(scheme.KeyType(), alice.Type)

			again, err := PublicFromSeed(scheme, "Alice")
			require.NoError(err)
			require.True(alice.Equal(again))

			bob, err := PublicFromSeed(scheme, "Bob")
			require.NoError(err)
			require.False(alice.Equal(bob))

			stash, err := PublicFromSeed(scheme, "Alice//stash")
			require.NoError(err)
			require.False(alice.Equal(stash))
		})
	}
}

// TestKnownDevKeys pins the public keys of the well-known development seeds,
// as printed by `subkey inspect //Alice` and friends.
func TestKnownDevKeys(t *testing.T) {
	tests := []struct {
		scheme Scheme
		seed   string
		want   string
	}{
		{Sr25519, "Alice", "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"},
		{Sr25519, "Bob", "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"},
		{Sr25519, "Alice//stash", "0xbe5ddb1579b72e84524fc29e78609e3caf42e85aa118ebfe0b0ad404b5bdd25f"},
		{Ed25519, "Alice", "0x88dc3417d5058ec4b4503e0c12ea1a0a89be200fe98922423d4334014fa6b0ee"},
		{Ecdsa, "Alice", "0x020a1091341fe5664bfa1782d5e04779689068c916b04cb365ec3153755684d9a1"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme.Name()+"/"+tt.seed, func(t *testing.T) {
			pub, err := PublicFromSeed(tt.scheme, tt.seed)
			require.NoError(t, err)
			require.Equal(t, tt.want, hexutil.Encode(pub.Raw))
		})
	}
}

func TestSoftDerivation(t *testing.T) {
	require := require.New(t)

	_, err := Derive(Ed25519, "//Alice/soft")
	require.ErrorIs(err, ErrSoftNotSupported)
	_, err = Derive(Ecdsa, "//Alice/soft")
	require.ErrorIs(err, ErrSoftNotSupported)

	soft, err := Derive(Sr25519, "//Alice/soft")
	require.NoError(err)
	hard, err := Derive(Sr25519, "//Alice//soft")
	require.NoError(err)
	require.False(soft.Public().Equal(hard.Public()))
}

func TestInvalidPhrase(t *testing.T) {
	require := require.New(t)

	_, err := Derive(Sr25519, "not a mnemonic at all//Alice")
	require.ErrorIs(err, ErrInvalidPhrase)
	_, err = Derive(Ed25519, "0x1234//Alice")
	require.ErrorIs(err, ErrInvalidPhrase)

	_, err = PublicFromSeed(Sr25519, "")
	require.ErrorIs(err, ErrInvalidJunction)
}

func TestHexSeed(t *testing.T) {
	require := require.New(t)

	seed := "0x" + "11111111111111111111111111111111" + "11111111111111111111111111111111"
	pair, err := Derive(Ed25519, seed)
	require.NoError(err)

	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = 0x11
	}
	want := ed25519.NewKeyFromSeed(raw).Public().(ed25519.PublicKey)
	require.Equal([]byte(want), pair.Public().Raw)
}

func TestSignatures(t *testing.T) {
	msg := []byte("collator")

	t.Run("ed25519", func(t *testing.T) {
		pair, err := PairFromSeed(Ed25519, "Alice")
		require.NoError(t, err)
		sig, err := pair.Sign(msg)
		require.NoError(t, err)
		require.True(t, ed25519.Verify(pair.Public().Raw, msg, sig))
	})

	t.Run("ecdsa", func(t *testing.T) {
		pair, err := PairFromSeed(Ecdsa, "Alice")
		require.NoError(t, err)
		sig, err := pair.Sign(msg)
		require.NoError(t, err)
		require.Len(t, sig, 65)

		digest := blake2b.Sum256(msg)
		pub, err := crypto.SigToPub(digest[:], sig)
		require.NoError(t, err)
		require.Equal(t, pair.Public().Raw, crypto.CompressPubkey(pub))
	})

	t.Run("sr25519", func(t *testing.T) {
		pair, err := PairFromSeed(Sr25519, "Alice")
		require.NoError(t, err)
		sig, err := pair.Sign(msg)
		require.NoError(t, err)
		require.Len(t, sig, 64)
		require.Equal(t, sessionkey.Types.Sr25519, pair.Public().Type)
	})
}
