//
// okvs_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package okvs

import (
	"encoding/binary"
	"errors"
	"testing"
)

func key8(i int) []byte {
	k := make([]byte, 8)
	for j := range k {
		k[j] = byte(i)
	}
	return k
}

// TestRoundTripSmall is spec.md §8 scenario 1: n=100, keys [i;8],
// values OkvsValue<32>([i;32]).
func TestRoundTripSmall(t *testing.T) {
	const n = 100
	var pairs []Pair
	for i := 0; i < n; i++ {
		v := make(Value, 32)
		for j := range v {
			v[j] = byte(i)
		}
		pairs = append(pairs, Pair{Key: key8(i), Value: v})
	}

	o, err := New(Config{N: n, Epsilon: 0.1, Lambda: 40}, 32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	enc, err := o.Encode(pairs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) != o.Params().Cols {
		t.Fatalf("encoding length: got %d, want %d", len(enc), o.Params().Cols)
	}

	for i, p := range pairs {
		got := o.Decode(enc, p.Key)
		if string(got) != string(p.Value) {
			t.Fatalf("Decode(%d): got %x, want %x", i, got, p.Value)
		}
	}
}

// TestRoundTripLarge is spec.md §8 scenario 2: n=10_000, keys
// i.to_le_bytes() (usize, 8 bytes), values (i as u32).to_le_bytes().
func TestRoundTripLarge(t *testing.T) {
	const n = 10000
	var pairs []Pair
	for i := 0; i < n; i++ {
		k := make([]byte, 8)
		binary.LittleEndian.PutUint64(k, uint64(i))
		v := make(Value, 4)
		binary.LittleEndian.PutUint32(v, uint32(i))
		pairs = append(pairs, Pair{Key: k, Value: v})
	}

	o, err := New(Config{N: n, Epsilon: 0.1, Lambda: 40}, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	enc, err := o.Encode(pairs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	for i, p := range pairs {
		got := o.Decode(enc, p.Key)
		if string(got) != string(p.Value) {
			t.Fatalf("Decode(%d): got %x, want %x", i, got, p.Value)
		}
	}
}

// TestEncodingLength is property P2.
func TestEncodingLength(t *testing.T) {
	const n = 500
	var pairs []Pair
	for i := 0; i < n; i++ {
		// key8 repeats after 256, so build distinct 8-byte keys here.
		k := make([]byte, 8)
		binary.LittleEndian.PutUint64(k, uint64(i))
		pairs = append(pairs, Pair{Key: k, Value: NewZeroValue(8)})
	}
	o, err := New(Config{N: n, Epsilon: 0.05, Lambda: 40}, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	enc, err := o.Encode(pairs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(enc) != o.Params().Cols {
		t.Fatalf("|encoding| = %d, want cols = %d", len(enc), o.Params().Cols)
	}
}

// TestZeroRowRarity is property P7 (scaled down from n=10^4 to keep
// the test fast; the bound it checks is still meaningful at lambda=40).
func TestZeroRowRarity(t *testing.T) {
	const n = 500
	const seeds = 100

	for s := 0; s < seeds; s++ {
		var pairs []Pair
		for i := 0; i < n; i++ {
			// Vary the key material per seed so each run hashes to a
			// fresh, independent matrix.
			k := make([]byte, 8)
			binary.LittleEndian.PutUint64(k, uint64(i)^uint64(s)<<32)
			pairs = append(pairs, Pair{Key: k, Value: NewZeroValue(8)})
		}
		o, err := New(Config{N: n, Epsilon: 0.1, Lambda: 40}, 8)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if _, err := o.Encode(pairs); err != nil {
			if errors.Is(err, ErrZeroRow) {
				t.Fatalf("seed %d: unexpected ZeroRow failure: %v", s, err)
			}
			t.Fatalf("seed %d: Encode: %v", s, err)
		}
	}
}

func TestEncodeRejectsWrongValueLength(t *testing.T) {
	o, err := New(Config{N: 4, Epsilon: 0.1, Lambda: 40}, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pairs := []Pair{
		{Key: key8(0), Value: NewZeroValue(8)},
		{Key: key8(1), Value: NewZeroValue(4)},
	}
	if _, err := o.Encode(pairs); err == nil {
		t.Fatal("expected an error for mismatched value length")
	}
}
