// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

//go:build !production

package entropy

import (
	"github.com/zeebo/blake3"
)

// DeterministicSource replays a fixed keystream for reproducible tests. It
// is excluded from production builds by tag.
type DeterministicSource struct {
	xof *blake3.Digest
}

// NewDeterministicSource seeds a deterministic source. Not a CSPRNG.
func NewDeterministicSource(seed []byte) *DeterministicSource {
	h := blake3.New()
	_, _ = h.Write(seed)
	return &DeterministicSource{xof: h.Digest()}
}

func (s *DeterministicSource) FillBytes(buf []byte) error {
	if _, err := s.xof.Read(buf); err != nil {
		return &Error{Reason: "deterministic stream read failed"}
	}
	return nil
}

// EntropyBits reports enough to pass the gate; the production build tag is
// what keeps this source out of real deployments.
func (s *DeterministicSource) EntropyBits() int {
	return MinEntropyBits
}
