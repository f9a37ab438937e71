// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package mtd implements the moving-target-defense parameter rotation: the
// deterministic per-epoch derivation of warping parameters from a secret
// seed, and the manager that tracks the current epoch, caches recent
// parameter sets and enforces monotonic time.
package mtd

import (
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/hashing"
)

// SystemSalt is a fixed constant folded into the base derivation, so that
// the base digest differs from a plain hash of seed and epoch under the same
// tag. It is the same in every build; deployments sharing a seed derive
// identical parameters.
var SystemSalt = [32]byte{
	0x5a, 0x4b, 0x4d, 0x54, 0x44, 0x3a, 0x3a, 0x53,
	0x59, 0x53, 0x54, 0x45, 0x4d, 0x3a, 0x3a, 0x53,
	0x41, 0x4c, 0x54, 0x3a, 0x3a, 0x56, 0x31, 0x00,
	0x9e, 0x37, 0x79, 0xb9, 0x7f, 0x4a, 0x7c, 0x15,
}

// Params is one epoch's parameter set. All three digests are derived under
// distinct domain tags and distinct sub-tag bytes.
type Params struct {
	Epoch           epoch.Epoch
	DomainSeparator hashing.Digest
	Salt            hashing.Digest
	FRISeed         hashing.Digest
}

// Generate derives the parameter set for (seed, e). The derivation is a pure
// function of its inputs.
func Generate(seed []byte, e epoch.Epoch) (Params, error) {
	if len(seed) == 0 {
		return Params{}, ErrGenerationFailed
	}

	msg := make([]byte, 0, len(seed)+8+len(SystemSalt))
	msg = append(msg, seed...)
	msg = e.AppendLE(msg)
	msg = append(msg, SystemSalt[:]...)
	base := hashing.Hash(msg, hashing.DomainMTDParameters)

	p := Params{
		Epoch:           e,
		DomainSeparator: hashing.Hash(append(base.Bytes(), "DOMAIN"...), hashing.DomainMTDDomainSep),
		Salt:            hashing.Hash(append(base.Bytes(), "SALT"...), hashing.DomainMTDSalt),
		FRISeed:         hashing.Hash(append(base.Bytes(), "FRI"...), hashing.DomainMTDFRISeed),
	}
	if p.DomainSeparator.IsZero() || p.Salt.IsZero() || p.FRISeed.IsZero() {
		return Params{}, &Error{Reason: "derived zero digest"}
	}
	return p, nil
}

// Equal compares two parameter sets digest-by-digest in constant time.
func (p Params) Equal(o Params) bool {
	ok := p.Epoch == o.Epoch
	ok = hashing.CtEq32(p.DomainSeparator, o.DomainSeparator) && ok
	ok = hashing.CtEq32(p.Salt, o.Salt) && ok
	ok = hashing.CtEq32(p.FRISeed, o.FRISeed) && ok
	return ok
}
