// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package field provides the Goldilocks field element used throughout the
// library, together with the canonical little-endian byte encoding shared by
// the hashing, commitment and proof layers.
//
// The field is GF(p) with p = 2^64 - 2^32 + 1. Arithmetic is delegated to
// gnark-crypto's goldilocks implementation; this package only owns the
// serialization rules: every element is encoded as the 8 little-endian bytes
// of its canonical representative in [0, p).
package field

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Element is a Goldilocks field element, canonicalized in [0, p).
type Element = goldilocks.Element

// ElementSize is the serialized size of one element in bytes.
const ElementSize = 8

var ErrInvalidEncoding = errors.New("field: encoding length not a multiple of 8")

// Modulus returns p = 2^64 - 2^32 + 1.
func Modulus() *big.Int {
	return goldilocks.Modulus()
}

// FromUint64 returns the element for v reduced mod p.
func FromUint64(v uint64) Element {
	var e Element
	e.SetUint64(v)
	return e
}

// Canonical returns the canonical u64 representative of e.
func Canonical(e *Element) uint64 {
	return e.Bits()[0]
}

// AppendLE appends the 8-byte little-endian canonical encoding of e to dst.
func AppendLE(dst []byte, e *Element) []byte {
	return binary.LittleEndian.AppendUint64(dst, Canonical(e))
}

// FromLEBytes decodes 8 little-endian bytes into an element, reducing mod p.
// Shorter input is zero-extended.
func FromLEBytes(b []byte) Element {
	var buf [ElementSize]byte
	copy(buf[:], b)
	return FromUint64(binary.LittleEndian.Uint64(buf[:]))
}

// SerializeVec concatenates the canonical encodings of vs.
func SerializeVec(vs []Element) []byte {
	out := make([]byte, 0, len(vs)*ElementSize)
	for i := range vs {
		out = AppendLE(out, &vs[i])
	}
	return out
}

// DeserializeVec parses a concatenation of 8-byte canonical encodings.
func DeserializeVec(b []byte) ([]Element, error) {
	if len(b)%ElementSize != 0 {
		return nil, ErrInvalidEncoding
	}
	out := make([]Element, len(b)/ElementSize)
	for i := range out {
		out[i] = FromLEBytes(b[i*ElementSize : (i+1)*ElementSize])
	}
	return out, nil
}

// Add returns a + b.
func Add(a, b Element) Element {
	var r Element
	r.Add(&a, &b)
	return r
}

// Sub returns a - b.
func Sub(a, b Element) Element {
	var r Element
	r.Sub(&a, &b)
	return r
}

// Mul returns a * b.
func Mul(a, b Element) Element {
	var r Element
	r.Mul(&a, &b)
	return r
}
