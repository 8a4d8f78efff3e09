package keys

import (
	"fmt"
	"strings"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

// Scheme is a signature scheme able to build key pairs from 32-byte seeds.
type Scheme interface {
	// Name is the lower-case scheme name ("sr25519", "ed25519", "ecdsa").
	Name() string
	// KeyType is the sessionkey type byte of public keys of this scheme.
	KeyType() uint8
	// FromSeed builds the root pair for a 32-byte seed.
	FromSeed(seed [32]byte) (Pair, error)
}

// Pair is a signature-capable key pair.
type Pair interface {
	// Public returns the typed public key.
	Public() sessionkey.PubKey
	// Derive walks path starting at this pair.
	Derive(path []Junction) (Pair, error)
	// Sign signs msg with the scheme's signing rules.
	Sign(msg []byte) ([]byte, error)
}

// The supported schemes.
var (
	Sr25519 Scheme = sr25519Scheme{}
	Ed25519 Scheme = ed25519Scheme{}
	Ecdsa   Scheme = ecdsaScheme{}
)

// SchemeByName looks a scheme up by its name.
func SchemeByName(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "sr25519", "sr":
		return Sr25519, nil
	case "ed25519", "ed":
		return Ed25519, nil
	case "ecdsa", "secp256k1":
		return Ecdsa, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: sr25519, ed25519, ecdsa)", ErrUnknownScheme, name)
	}
}

// rootSeed turns a phrase into the 32-byte root seed shared by every scheme.
// A 0x-prefixed phrase is taken as the raw seed; anything else must be a
// BIP-39 mnemonic and goes through the substrate variant of the BIP-39 seed
// function (entropy, not the sentence, is the PBKDF2 input).
func rootSeed(phrase, password string) ([32]byte, error) {
	var seed [32]byte
	if strings.HasPrefix(phrase, "0x") {
		raw, err := hexutil.Decode(phrase)
		if err != nil || len(raw) != 32 {
			return seed, fmt.Errorf("%w: hex seed must be 32 bytes", ErrInvalidPhrase)
		}
		copy(seed[:], raw)
		return seed, nil
	}
	msk, err := schnorrkel.MiniSecretKeyFromMnemonic(phrase, password)
	if err != nil {
		return seed, fmt.Errorf("%w: %v", ErrInvalidPhrase, err)
	}
	return msk.Encode(), nil
}
