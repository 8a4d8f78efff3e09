package keys

import (
	"crypto/ed25519"
	"fmt"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

const ed25519Tag = "Ed25519HDKD"

type ed25519Scheme struct{}

func (ed25519Scheme) Name() string   { return "ed25519" }
func (ed25519Scheme) KeyType() uint8 { return sessionkey.Types.Ed25519 }

func (ed25519Scheme) FromSeed(seed [32]byte) (Pair, error) {
	return &ed25519Pair{seed: seed, key: ed25519.NewKeyFromSeed(seed[:])}, nil
}

type ed25519Pair struct {
	seed [32]byte
	key  ed25519.PrivateKey
}

func (p *ed25519Pair) Public() sessionkey.PubKey {
	return sessionkey.Unchecked(sessionkey.Types.Ed25519, p.key.Public().(ed25519.PublicKey))
}

func (p *ed25519Pair) Derive(path []Junction) (Pair, error) {
	seed := p.seed
	for _, j := range path {
		if !j.Hard {
			return nil, fmt.Errorf("%w: ed25519 junction %s", ErrSoftNotSupported, j)
		}
		seed = hdkdSeed(ed25519Tag, seed, j.ChainCode)
	}
	return Ed25519.FromSeed(seed)
}

func (p *ed25519Pair) Sign(msg []byte) ([]byte, error) {
	return ed25519.Sign(p.key, msg), nil
}
