//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements the global environment for the rbokvsctl
// driver: the entropy source and parameter defaults shared by every
// okvs/emm instance the driver builds in one run.
package env

import (
	"crypto/rand"
	"io"

	"github.com/markkurossi/okvs/okvs"
)

// Config defines the driver-wide configuration: the entropy source
// and the default (Epsilon, Lambda) every okvs.Config the driver
// builds inherits unless a flag overrides it. Config must not be
// modified after being passed to any driver command; it is safe for
// concurrent use by multiple goroutines as they do not modify it.
type Config struct {
	Rand    io.Reader
	Epsilon float64
	Lambda  int
}

// GetRandom returns the source of entropy for OKVS/EMM secret
// generation, defaulting to crypto/rand.Reader.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// OKVSConfig builds an okvs.Config for n keys using this
// environment's entropy source and rate/security defaults.
func (config *Config) OKVSConfig(n int) okvs.Config {
	return okvs.Config{
		N:       n,
		Epsilon: config.Epsilon,
		Lambda:  config.Lambda,
		Rand:    config.GetRandom(),
	}
}
