//
// matrix.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package okvs

import (
	"github.com/markkurossi/okvs/band"
	"github.com/markkurossi/okvs/hash"
	"github.com/markkurossi/okvs/internal/radix"
)

// Pair is a single (key, value) input to Encode.
type Pair struct {
	Key   []byte
	Value Value
}

// buildMatrix hashes every pair to its (start, band) row and returns
// the three parallel arrays sorted by ascending start column, stable
// on ties (spec.md §9's tie-break resolution: the input order of
// pairs acts as a deterministic secondary key).
func buildMatrix(pairs []Pair, cols, w int) (starts []int, bands []band.Word, values []Value) {
	n := len(pairs)
	rawStarts := make([]int, n)
	rawBands := make([]band.Word, n)

	for i, p := range pairs {
		rawStarts[i] = hash.ToIndex(p.Key, cols-w)
		rawBands[i] = hash.ToBand(p.Key, w)
	}

	perm := radix.SortIndices(rawStarts, cols-w)

	starts = make([]int, n)
	bands = make([]band.Word, n)
	values = make([]Value, n)
	for k, idx := range perm {
		starts[k] = rawStarts[idx]
		bands[k] = rawBands[idx]
		values[k] = pairs[idx].Value
	}
	return starts, bands, values
}
