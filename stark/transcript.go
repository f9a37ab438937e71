// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/luxfi/zkmtd/hashing"
)

// transcript manages the Fiat-Shamir challenge stream. State transitions
// run over Blake3; prover and verifier replay the identical absorb order,
// so the challenges they draw agree.
type transcript struct {
	state   [32]byte
	counter uint64
}

func newTranscript() *transcript {
	t := &transcript{}
	sum := blake3.Sum256([]byte(hashing.DomainStarkTranscript))
	copy(t.state[:], sum[:])
	return t
}

func (t *transcript) absorb(data []byte) {
	h := blake3.New()
	_, _ = h.Write(t.state[:])
	_, _ = h.Write(data)
	copy(t.state[:], h.Sum(nil))
}

// challenge draws one u64 and advances the state.
func (t *transcript) challenge() uint64 {
	t.counter++
	h := blake3.New()
	_, _ = h.Write(t.state[:])
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], t.counter)
	_, _ = h.Write(buf[:])
	sum := h.Sum(nil)
	copy(t.state[:], sum)
	return binary.LittleEndian.Uint64(sum[:8])
}

// queryIndices derives the spot-check row indices. The query seed gets its
// own hash domain so index derivation cannot collide with other challenges.
func (t *transcript) queryIndices(count, numRows int) []int {
	seed := hashing.Hash(t.state[:], hashing.DomainStarkQuery)
	t.absorb(seed.Bytes())
	indices := make([]int, count)
	for i := range indices {
		// Exclude the last row so every query has a transition row.
		indices[i] = int(t.challenge() % uint64(numRows-1))
	}
	return indices
}
