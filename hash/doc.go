//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package hash implements the two key-derived hash adapters the
// RB-OKVS matrix construction is built on: hash_to_index, which
// places a key's row at a column offset, and hash_to_band, which
// derives the row's random w-bit pattern. Both are built on blake2b's
// variable-output digest, following the same "hash into a []byte
// sized to the caller's need" pattern the pack uses for fsenv cache
// keys and PRG seeds.
package hash
