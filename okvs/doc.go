//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package okvs implements RB-OKVS, a random-band Oblivious Key-Value
// Store. Encode turns a list of (key, value) pairs into a flat
// encoding such that Decode recovers each inserted value given only
// its key; the encoding discloses nothing about the inserted keys to
// a holder who does not already know them.
//
// The encoding is the solution x to a sparse linear system M*x = y
// over GF(2), where row i of M is a random w-bit band starting at a
// key-derived column offset. Decode is the key's own row dotted with
// the encoding; Encode solves for x with a banded Gaussian
// elimination that runs in time proportional to n*w by exploiting the
// fact that, once rows are sorted by start column, no row's band can
// touch a pivot more than w columns behind it.
package okvs
