// Package hash wraps xxHash64 for wire checksums and series fingerprints.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint hashes parallel keys and values into a single 64-bit digest.
//
// Each entry contributes its key as a little-endian uint32 and its value as
// little-endian IEEE 754 bits, so the result is independent of the encoding
// and compression a series was stored with.
func Fingerprint(keys []int, values []float64) uint64 {
	d := xxhash.New()

	var entry [12]byte
	for i, key := range keys {
		binary.LittleEndian.PutUint32(entry[0:4], uint32(int32(key))) //nolint:gosec
		binary.LittleEndian.PutUint64(entry[4:12], math.Float64bits(values[i]))
		_, _ = d.Write(entry[:])
	}

	return d.Sum64()
}
