//
// okvs.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package okvs

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"

	"github.com/markkurossi/okvs/hash"
)

// Config configures an OKVS instance: the number of keys it must
// hold, the rate (column overhead) and security parameter it is
// built at, and its entropy source. Modeled on the teacher's
// env.Config{Rand io.Reader}: read-only once handed to New, safe for
// concurrent reads thereafter.
type Config struct {
	// N is the number of (key, value) pairs Encode will be called
	// with.
	N int

	// Epsilon is the rate: cols = ceil((1+Epsilon) * N). Typical range
	// 0.03-0.1.
	Epsilon float64

	// Lambda is the statistical security/failure parameter: zero-row
	// failure probability is at most 2^-Lambda. Typical range 20-40.
	Lambda int

	// Rand is the source of randomness used when the caller needs
	// fresh secrets derived alongside this OKVS (e.g. the EMM's
	// ClientState). It is not used by Encode/Decode themselves, which
	// are pure functions of their inputs. Defaults to crypto/rand.Reader.
	Rand io.Reader
}

func (c Config) rand() io.Reader {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.Reader
}

// Params holds the derived, read-only parameters of an OKVS instance:
// the encoding width (Cols) and the per-row band width (W).
type Params struct {
	Cols int
	W    int
}

// OKVS is an RB-OKVS instance built for a fixed value size and
// parameter set. An OKVS is safe for concurrent Decode calls; Encode
// is not safe to call concurrently with itself on the same instance
// (spec.md §5: build is a single bulk synchronous transformation).
type OKVS struct {
	cfg       Config
	params    Params
	valueSize int
}

// New creates an OKVS sized for cfg.N keys and valueSize-byte values.
func New(cfg Config, valueSize int) (*OKVS, error) {
	if cfg.N <= 0 {
		return nil, fmt.Errorf("%w: N must be positive", ErrInvalidConfig)
	}
	if valueSize <= 0 {
		return nil, fmt.Errorf("%w: valueSize must be positive", ErrInvalidConfig)
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = 0.1
	}
	if cfg.Lambda <= 0 {
		cfg.Lambda = 40
	}
	cfg.Rand = cfg.rand()

	params := computeParams(cfg.N, cfg.Epsilon, cfg.Lambda)
	if params.W <= 0 || params.Cols <= params.W {
		return nil, fmt.Errorf("%w: band width %d does not fit in %d columns", ErrInvalidConfig, params.W, params.Cols)
	}

	return &OKVS{cfg: cfg, params: params, valueSize: valueSize}, nil
}

// computeParams derives cols and w from (n, epsilon, lambda) per
// spec.md §3: cols = ceil((1+epsilon)*n), w = min(ceil((lambda+15.21)/0.2691), floor(0.8*cols)).
func computeParams(n int, epsilon float64, lambda int) Params {
	cols := int(math.Ceil((1 + epsilon) * float64(n)))
	w := int(math.Ceil((float64(lambda) + 15.21) / 0.2691))
	maxW := int(math.Floor(0.8 * float64(cols)))
	if w > maxW {
		w = maxW
	}
	return Params{Cols: cols, W: w}
}

// Params returns the derived (Cols, W) parameters this instance was
// built with.
func (o *OKVS) Params() Params {
	return o.params
}

// ValueSize returns the fixed byte length every Value in this
// instance's pairs/encoding must have.
func (o *OKVS) ValueSize() int {
	return o.valueSize
}

// Encode builds the encoding for pairs. Every Value must have length
// ValueSize(); keys need not be distinct bytes-wise but distinct keys
// are assumed by the round-trip guarantee (spec.md §3 invariant 1).
func (o *OKVS) Encode(pairs []Pair) ([]Value, error) {
	for i, p := range pairs {
		if len(p.Value) != o.valueSize {
			return nil, fmt.Errorf("okvs: pair %d has value length %d, want %d", i, len(p.Value), o.valueSize)
		}
	}

	starts, bands, values := buildMatrix(pairs, o.params.Cols, o.params.W)
	return solve(starts, bands, values, o.params.W, o.params.Cols, o.valueSize)
}

// Decode recovers the value associated with key from encoding. Decode
// is undefined (returns garbage, never an error) for a key that was
// not part of the pairs Encode produced encoding from; spec.md §1
// deliberately leaves this case unspecified at the OKVS layer — the
// EMM layer (package emm) is what detects it.
func (o *OKVS) Decode(encoding []Value, key []byte) Value {
	start := hash.ToIndex(key, o.params.Cols-o.params.W)
	b := hash.ToBand(key, o.params.W)

	acc := NewZeroValue(o.valueSize)
	for i := 0; i < o.params.W; i++ {
		if b.Bit(i) {
			acc = acc.Xor(encoding[start+i])
		}
	}
	return acc
}
