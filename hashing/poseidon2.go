// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

import (
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/chacha20"

	"github.com/luxfi/zkmtd/field"
)

// Permutation geometry. The sponge operates over Goldilocks with a 16-wide
// state split into an 8-element rate and an 8-element capacity. The S-box is
// x^7 (7 is coprime to p-1 over Goldilocks).
const (
	Width    = 16
	Rate     = 8
	Capacity = 8

	roundsFull    = 8  // full rounds, split 4 before / 4 after the partial block
	roundsPartial = 22 // partial rounds, S-box on slot 0 only
)

// permSeed fixes the PRNG that derives the round constants and the mix
// matrix. Every build must expand the identical permutation from it.
const permSeed uint64 = 0x5A4B4D54445F5032

type permutation struct {
	fullRC    [roundsFull][Width]field.Element
	partialRC [roundsPartial]field.Element
	mix       [Width][Width]field.Element
}

var (
	permOnce sync.Once
	perm     *permutation
)

// constantStream yields Goldilocks elements from a ChaCha20 keystream keyed
// by the little-endian expansion of permSeed. ChaCha20 is used purely as a
// deterministic expander here; the constants are public.
type constantStream struct {
	cipher *chacha20.Cipher
}

func newConstantStream() *constantStream {
	var key [chacha20.KeySize]byte
	for i := 0; i < len(key); i += 8 {
		binary.LittleEndian.PutUint64(key[i:], permSeed)
	}
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Key and nonce sizes are compile-time correct.
		panic(err)
	}
	return &constantStream{cipher: c}
}

func (s *constantStream) next() field.Element {
	var buf [8]byte
	s.cipher.XORKeyStream(buf[:], buf[:])
	return field.FromUint64(binary.LittleEndian.Uint64(buf[:]))
}

func initPermutation() {
	p := &permutation{}
	stream := newConstantStream()
	for r := 0; r < roundsFull; r++ {
		for i := 0; i < Width; i++ {
			p.fullRC[r][i] = stream.next()
		}
	}
	for r := 0; r < roundsPartial; r++ {
		p.partialRC[r] = stream.next()
	}
	for i := 0; i < Width; i++ {
		for j := 0; j < Width; j++ {
			p.mix[i][j] = stream.next()
		}
	}
	perm = p
}

func getPermutation() *permutation {
	permOnce.Do(initPermutation)
	return perm
}

// sbox computes x^7.
func sbox(x *field.Element) {
	var x2, x4 field.Element
	x2.Square(x)
	x4.Square(&x2)
	x4.Mul(&x4, &x2) // x^6
	x.Mul(&x4, x)
}

func (p *permutation) mixState(state *[Width]field.Element) {
	var out [Width]field.Element
	for i := 0; i < Width; i++ {
		var acc, t field.Element
		for j := 0; j < Width; j++ {
			t.Mul(&p.mix[i][j], &state[j])
			acc.Add(&acc, &t)
		}
		out[i] = acc
	}
	*state = out
}

// permute applies the Poseidon2-style permutation: four full rounds, the
// partial block, four full rounds.
func (p *permutation) permute(state *[Width]field.Element) {
	half := roundsFull / 2
	for r := 0; r < half; r++ {
		for i := 0; i < Width; i++ {
			state[i].Add(&state[i], &p.fullRC[r][i])
			sbox(&state[i])
		}
		p.mixState(state)
	}
	for r := 0; r < roundsPartial; r++ {
		state[0].Add(&state[0], &p.partialRC[r])
		sbox(&state[0])
		p.mixState(state)
	}
	for r := half; r < roundsFull; r++ {
		for i := 0; i < Width; i++ {
			state[i].Add(&state[i], &p.fullRC[r][i])
			sbox(&state[i])
		}
		p.mixState(state)
	}
}
