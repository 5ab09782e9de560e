//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package band implements the fixed-width bit vector used to
// represent RB-OKVS matrix rows. A band is a short (w ≤ 256 bit)
// random run that starts at a key-derived column offset; the package
// represents it as a 256-bit word so that XOR, shift, and
// trailing-zero operations stay in machine registers instead of a
// variable-length bit vector.
package band
