package keys

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

const ecdsaTag = "Secp256k1HDKD"

type ecdsaScheme struct{}

func (ecdsaScheme) Name() string   { return "ecdsa" }
func (ecdsaScheme) KeyType() uint8 { return sessionkey.Types.Secp256k1 }

// FromSeed uses the seed directly as the secp256k1 secret scalar. Seeds
// outside the curve order are rejected by go-ethereum.
func (ecdsaScheme) FromSeed(seed [32]byte) (Pair, error) {
	key, err := crypto.ToECDSA(seed[:])
	if err != nil {
		return nil, fmt.Errorf("ecdsa seed: %w", err)
	}
	return &ecdsaPair{seed: seed, key: key}, nil
}

type ecdsaPair struct {
	seed [32]byte
	key  *ecdsa.PrivateKey
}

// Public returns the 33-byte compressed point.
func (p *ecdsaPair) Public() sessionkey.PubKey {
	return sessionkey.Unchecked(sessionkey.Types.Secp256k1, crypto.CompressPubkey(&p.key.PublicKey))
}

func (p *ecdsaPair) Derive(path []Junction) (Pair, error) {
	seed := p.seed
	for _, j := range path {
		if !j.Hard {
			return nil, fmt.Errorf("%w: ecdsa junction %s", ErrSoftNotSupported, j)
		}
		seed = hdkdSeed(ecdsaTag, seed, j.ChainCode)
	}
	return Ecdsa.FromSeed(seed)
}

// Sign produces a 65-byte recoverable signature over blake2b-256(msg).
func (p *ecdsaPair) Sign(msg []byte) ([]byte, error) {
	digest := blake2b.Sum256(msg)
	return crypto.Sign(digest[:], p.key)
}
