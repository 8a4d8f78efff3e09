package keys

import (
	"strconv"

	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-collator-spec/utils/scale"
)

// ChainCodeLength is the width of a junction chain code.
const ChainCodeLength = 32

// Junction is one step of a derivation path.
type Junction struct {
	name      string
	Hard      bool
	ChainCode [ChainCodeLength]byte
}

// NewJunction encodes name into a chain code. Names that parse as unsigned
// 64-bit integers are encoded as such, everything else as a SCALE string. An
// encoding longer than the chain code is replaced by its blake2b-256 hash;
// shorter ones are zero padded.
func NewJunction(name string, hard bool) Junction {
	var enc []byte
	if n, err := strconv.ParseUint(name, 10, 64); err == nil {
		enc = scale.Encode(func(w *scale.Writer) { w.U64(n) })
	} else {
		enc = scale.Encode(func(w *scale.Writer) { w.String(name) })
	}

	j := Junction{name: name, Hard: hard}
	if len(enc) > ChainCodeLength {
		j.ChainCode = blake2b.Sum256(enc)
	} else {
		copy(j.ChainCode[:], enc)
	}
	return j
}

// String renders the junction in URI form.
func (j Junction) String() string {
	if j.Hard {
		return "//" + j.name
	}
	return "/" + j.name
}

// hdkdSeed is the hard derivation used by the schemes whose secrets are plain
// 32-byte seeds: blake2b-256 over the SCALE tuple (tag, seed, chain code).
func hdkdSeed(tag string, seed [32]byte, cc [ChainCodeLength]byte) [32]byte {
	enc := scale.Encode(func(w *scale.Writer) {
		w.String(tag)
		w.Fixed(seed[:])
		w.Fixed(cc[:])
	})
	return blake2b.Sum256(enc)
}
