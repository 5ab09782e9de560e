//
// hash.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package hash

import (
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/markkurossi/okvs/band"
)

// MaxDigest is the largest single blake2b digest this package draws
// from: blake2b supports variable output up to 64 bytes per call.
const MaxDigest = 64

// Expand returns an n-byte digest of data. For n <= 64 this is a
// single blake2b call at that output size; for n > 64 it concatenates
// independent 64-byte (and one final shorter) digests, each
// domain-separated by a 4-byte little-endian counter appended to
// data, matching the "hash into
// however many bytes are needed" extension spec.md describes. No
// caller in this module currently requests more than 64 bytes
// (hash_to_index needs 16, hash_to_band needs at most 32, and the EMM
// label is exactly 64), but the extension keeps the adapter total
// over n.
func Expand(data []byte, n int) []byte {
	if n <= MaxDigest {
		return digest(data, n)
	}

	out := make([]byte, 0, n)
	remaining := n
	var counter uint32
	for remaining > 0 {
		chunk := MaxDigest
		if remaining < chunk {
			chunk = remaining
		}
		seed := make([]byte, len(data)+4)
		copy(seed, data)
		seed[len(data)+0] = byte(counter)
		seed[len(data)+1] = byte(counter >> 8)
		seed[len(data)+2] = byte(counter >> 16)
		seed[len(data)+3] = byte(counter >> 24)
		out = append(out, digest(seed, chunk)...)
		remaining -= chunk
		counter++
	}
	return out[:n]
}

func digest(data []byte, n int) []byte {
	h, err := blake2b.New(n, nil)
	if err != nil {
		// n is always in [1,64] here; New only fails outside that range.
		panic(err)
	}
	h.Write(data)
	return h.Sum(nil)
}

// ToIndex maps key uniformly into [0, rangeN) by reducing the low 16
// bytes of its digest, read little-endian, modulo rangeN.
func ToIndex(key []byte, rangeN int) int {
	if rangeN <= 0 {
		return 0
	}
	sum := Expand(key, 16)
	v := new(big.Int).SetBytes(reverse(sum))
	v.Mod(v, big.NewInt(int64(rangeN)))
	return int(v.Int64())
}

// ToBand maps key to a w-bit band with bit 0 forced to 1, so that no
// row the adapter produces is ever the zero vector.
func ToBand(key []byte, w int) band.Word {
	nbytes := (w + 7) / 8
	sum := Expand(key, nbytes)
	word := band.FromBytes(sum, w)
	word.W0 |= 1
	return word
}

// reverse returns a big-endian copy of a little-endian byte slice, so
// big.Int (which reads big-endian) sees the value correctly.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
