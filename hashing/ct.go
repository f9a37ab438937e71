// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package hashing

// Constant-time comparison. Every digest, commitment, binding hash, Merkle
// root and salt-derived value in this library is compared through these
// functions, never with == or bytes.Equal.

// CtEq32 compares two 32-byte values without early exit.
func CtEq32(a, b [32]byte) bool {
	var acc byte
	for i := 0; i < 32; i++ {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// CtEq compares two byte slices of possibly different lengths. It iterates
// max(len(a), len(b)) times, treating out-of-range bytes as zero, and folds
// the length inequality into the accumulator so that neither content nor
// length mismatches shorten the loop.
func CtEq(a, b []byte) bool {
	return ctEq(a, b, nil)
}

// ctEq is the instrumentable core of CtEq. When reads is non-nil it counts
// every byte access, which the tests use to assert the absence of early
// exits.
func ctEq(a, b []byte, reads *int) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	var acc byte
	for i := 0; i < n; i++ {
		var ai, bi byte
		if i < len(a) {
			ai = a[i]
		}
		if i < len(b) {
			bi = b[i]
		}
		if reads != nil {
			*reads += 2
		}
		acc |= ai ^ bi
	}
	if len(a) != len(b) {
		acc |= 1
	}
	return acc == 0
}
