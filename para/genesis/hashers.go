package genesis

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Twox128 is the storage prefix hasher of the runtime: two xxHash64 digests
// of data, seeded 0 and 1, each written little-endian.
func Twox128(data []byte) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[:8], twox64(data, 0))
	binary.LittleEndian.PutUint64(out[8:], twox64(data, 1))
	return out
}

// Twox64Concat is the map key hasher used for keys chosen by trusted
// parties: the seed-0 xxHash64 digest followed by the key itself.
func Twox64Concat(data []byte) []byte {
	out := make([]byte, 8, 8+len(data))
	binary.LittleEndian.PutUint64(out, twox64(data, 0))
	return append(out, data...)
}

// Blake2_128Concat is the map key hasher used for user-controlled keys such
// as accounts: a 16-byte blake2b digest followed by the key itself.
func Blake2_128Concat(data []byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return append(h.Sum(nil), data...)
}

func twox64(data []byte, seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	d.Write(data)
	return d.Sum64()
}

// ValueKey is the storage key of a plain module value:
// Twox128(module) ++ Twox128(item).
func ValueKey(module, item string) []byte {
	key := make([]byte, 0, 32)
	key = append(key, Twox128([]byte(module))...)
	return append(key, Twox128([]byte(item))...)
}

// MapKey is the storage key of one map entry. hashedKey is the map key
// already passed through the map's hasher.
func MapKey(module, item string, hashedKey []byte) []byte {
	return append(ValueKey(module, item), hashedKey...)
}
