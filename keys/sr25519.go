package keys

import (
	"fmt"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"

	"github.com/rony4d/go-collator-spec/inter/sessionkey"
)

// signingContext is the transcript label the runtime verifies sr25519
// signatures against.
var signingContext = []byte("substrate")

type sr25519Scheme struct{}

func (sr25519Scheme) Name() string   { return "sr25519" }
func (sr25519Scheme) KeyType() uint8 { return sessionkey.Types.Sr25519 }

func (sr25519Scheme) FromSeed(seed [32]byte) (Pair, error) {
	msk, err := schnorrkel.NewMiniSecretKeyFromRaw(seed)
	if err != nil {
		return nil, err
	}
	return newSr25519Pair(msk.ExpandEd25519())
}

type sr25519Pair struct {
	secret *schnorrkel.SecretKey
	public [32]byte
}

func newSr25519Pair(secret *schnorrkel.SecretKey) (*sr25519Pair, error) {
	pub, err := secret.Public()
	if err != nil {
		return nil, err
	}
	return &sr25519Pair{secret: secret, public: pub.Encode()}, nil
}

func (p *sr25519Pair) Public() sessionkey.PubKey {
	return sessionkey.Unchecked(sessionkey.Types.Sr25519, p.public[:])
}

func (p *sr25519Pair) Derive(path []Junction) (Pair, error) {
	cur := p
	for _, j := range path {
		var (
			next *sr25519Pair
			err  error
		)
		if j.Hard {
			var msk *schnorrkel.MiniSecretKey
			msk, _, err = cur.secret.HardDeriveMiniSecretKey([]byte{}, j.ChainCode)
			if err != nil {
				return nil, fmt.Errorf("sr25519 hard junction %s: %w", j, err)
			}
			next, err = newSr25519Pair(msk.ExpandEd25519())
		} else {
			var ext *schnorrkel.ExtendedKey
			ext, err = schnorrkel.DeriveKeySimple(cur.secret, []byte{}, j.ChainCode)
			if err != nil {
				return nil, fmt.Errorf("sr25519 soft junction %s: %w", j, err)
			}
			var secret *schnorrkel.SecretKey
			secret, err = ext.Secret()
			if err != nil {
				return nil, err
			}
			next, err = newSr25519Pair(secret)
		}
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func (p *sr25519Pair) Sign(msg []byte) ([]byte, error) {
	sig, err := p.secret.Sign(schnorrkel.NewSigningContext(signingContext, msg))
	if err != nil {
		return nil, err
	}
	enc := sig.Encode()
	return enc[:], nil
}
