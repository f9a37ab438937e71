// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package hashing implements the domain-separated Poseidon2 sponge over the
// Goldilocks field that every digest in this library comes from, the
// constant-time comparison primitives those digests must be compared with,
// and the registry of domain-separation tags.
package hashing

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/luxfi/zkmtd/field"
)

// DigestSize is the byte length of every digest.
const DigestSize = 32

// Digest is the 32-byte output of the domain-separated sponge. Digests are
// only ever compared through CtEq32.
type Digest [DigestSize]byte

// Bytes returns the digest as a slice.
func (d Digest) Bytes() []byte {
	return d[:]
}

// IsZero reports whether every byte of d is zero. Not constant time; used
// only for sanity checks on freshly derived parameters.
func (d Digest) IsZero() bool {
	var acc byte
	for _, b := range d {
		acc |= b
	}
	return acc == 0
}

// Hex returns the lowercase hex encoding of d.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

// Hash absorbs domain and then data into the sponge and squeezes a digest.
//
// The domain phase absorbs the tag in 8-byte little-endian chunks, one field
// element per chunk, permuting after each full rate-wide block and once more
// to close the phase. The data phase absorbs 64-byte blocks of 8 elements,
// adding into the rate slots and permuting per block; a trailing partial
// block is zero padded. The digest is the first four state elements as
// canonical u64s, little endian.
func Hash(data []byte, domain string) Digest {
	p := getPermutation()
	var state [Width]field.Element

	absorb := func(chunk []byte, slot int) {
		e := field.FromLEBytes(chunk)
		state[slot].Add(&state[slot], &e)
	}

	// Domain phase.
	dom := []byte(domain)
	slot := 0
	for len(dom) > 0 {
		n := len(dom)
		if n > field.ElementSize {
			n = field.ElementSize
		}
		absorb(dom[:n], slot)
		dom = dom[n:]
		slot++
		if slot == Rate {
			p.permute(&state)
			slot = 0
		}
	}
	// Closing permute separates domain from data even when the tag ended on
	// a block boundary or was empty.
	p.permute(&state)

	// Data phase.
	for off := 0; off < len(data); off += Rate * field.ElementSize {
		end := off + Rate*field.ElementSize
		if end > len(data) {
			end = len(data)
		}
		block := data[off:end]
		for i := 0; i < Rate && i*field.ElementSize < len(block); i++ {
			lo := i * field.ElementSize
			hi := lo + field.ElementSize
			if hi > len(block) {
				hi = len(block)
			}
			absorb(block[lo:hi], i)
		}
		p.permute(&state)
	}

	var d Digest
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(d[i*8:], field.Canonical(&state[i]))
	}
	return d
}

// Combine hashes a ‖ b under the given domain.
func Combine(a, b Digest, domain string) Digest {
	var buf [2 * DigestSize]byte
	copy(buf[:DigestSize], a[:])
	copy(buf[DigestSize:], b[:])
	return Hash(buf[:], domain)
}
