//
// emm.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package emm

import (
	"bytes"
	"fmt"

	"github.com/markkurossi/okvs/okvs"
)

// Pair is one user key and the ordered values an EMM stores under it.
// len(Values) may differ across Pairs in the same Setup call; the
// resulting encoding does not reveal it (spec.md §1, volume-hiding).
type Pair struct {
	Key    []byte
	Values []Value
}

// EMM describes a built VH-EMM instance: the underlying OKVS
// parameters, the fixed wire length its values encode to, and the
// Decoder that parses them back. EMM holds no secrets itself;
// ClientState does.
type EMM struct {
	OKVS     *okvs.OKVS
	ValueLen int
	Decode   Decoder
}

// Setup builds an OKVS-backed VH-EMM over pairs. It draws a fresh
// ClientState from cfg.Rand (defaulting to crypto/rand.Reader) and
// returns it alongside the built EMM descriptor and the encoding; the
// caller must retain both to Query the result.
func Setup(pairs []Pair, valueLen int, decode Decoder, cfg okvs.Config) ([]okvs.Value, *EMM, *ClientState, error) {
	cs, err := NewClientState(cfg.Rand)
	if err != nil {
		return nil, nil, nil, err
	}

	var okvsPairs []okvs.Pair
	for _, p := range pairs {
		h := label(cs.KF, p.Key)
		for j, v := range p.Values {
			encoded := v.Encode()
			if len(encoded) != valueLen {
				return nil, nil, nil, fmt.Errorf("emm: value %d for key %x has length %d, want %d", j, p.Key, len(encoded), valueLen)
			}
			cell, err := seal(cs.KE, h, j, encoded)
			if err != nil {
				return nil, nil, nil, err
			}
			okvsPairs = append(okvsPairs, okvs.Pair{
				Key:   subKey(h, j),
				Value: okvs.Value(cell),
			})
		}
	}

	cfg.N = len(okvsPairs)
	o, err := okvs.New(cfg, cellSize(valueLen))
	if err != nil {
		return nil, nil, nil, err
	}
	encoding, err := o.Encode(okvsPairs)
	if err != nil {
		return nil, nil, nil, err
	}

	return encoding, &EMM{OKVS: o, ValueLen: valueLen, Decode: decode}, cs, nil
}

// Query recovers the expectedCount values stored under key. A label
// mismatch or AEAD failure on any slot means key was never inserted
// (or was inserted with fewer values than expectedCount); both report
// ErrDecode for that slot, giving the EMM its soundness (spec.md
// §4.6).
func Query(e *EMM, encoding []okvs.Value, cs *ClientState, key []byte, expectedCount int) ([]Value, error) {
	h := label(cs.KF, key)

	values := make([]Value, expectedCount)
	for i := 0; i < expectedCount; i++ {
		sk := subKey(h, i)
		cell := e.OKVS.Decode(encoding, sk)

		plaintext, err := open(cs.KE, h, i, []byte(cell))
		if err != nil {
			return nil, decodeError(i)
		}
		if len(plaintext) != LabelSize+e.ValueLen {
			return nil, decodeError(i)
		}
		if !bytes.Equal(plaintext[:LabelSize], h) {
			return nil, decodeError(i)
		}

		v, err := e.Decode(plaintext[LabelSize:])
		if err != nil {
			return nil, decodeError(i)
		}
		values[i] = v
	}
	return values, nil
}
