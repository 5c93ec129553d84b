package substrate

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

type Hasher func(key []byte) []byte

// Twox128 is the concatenation of two little-endian xxhash64 digests seeded
// with 0 and 1.
func Twox128(data []byte) []byte {
	out := make([]byte, 0, 16)
	for seed := uint64(0); seed < 2; seed++ {
		out = binary.LittleEndian.AppendUint64(out, twox64(data, seed))
	}
	return out
}

func Twox64Concat(key []byte) []byte {
	out := binary.LittleEndian.AppendUint64(make([]byte, 0, 8+len(key)), twox64(key, 0))
	return append(out, key...)
}

func Blake2_128Concat(key []byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(key)
	return append(h.Sum(nil), key...)
}

// StorageKey builds the key of a storage map entry. Plain storage values are
// built by passing a nil hasher.
func StorageKey(pallet, item string, hasher Hasher, key []byte) []byte {
	out := append(Twox128([]byte(pallet)), Twox128([]byte(item))...)
	if hasher != nil {
		out = append(out, hasher(key)...)
	}
	return out
}

func twox64(data []byte, seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	_, _ = d.Write(data)
	return d.Sum64()
}
