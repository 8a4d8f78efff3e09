package chainspec

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
)

// Blake2b256 is the multihash code of blake2b with a 256-bit digest.
const Blake2b256 = multihash.BLAKE2B_MIN + 31

// Fingerprint returns the content identifier of an exported document: a
// CIDv1 over the raw bytes with a blake2b-256 multihash. Two operators
// holding the same file compute the same fingerprint.
func Fingerprint(data []byte) (cid.Cid, error) {
	digest := blake2b.Sum256(data)
	mh, err := multihash.Encode(digest[:], Blake2b256)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
