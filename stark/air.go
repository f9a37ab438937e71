// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package stark provides the STARK proving backend the integration layer
// dispatches to. The backend is consumed through the Backend interface and
// treats proofs as opaque byte strings; the reference implementation here
// commits to a Goldilocks execution trace with Poseidon2 row hashes in a
// Merkle tree and answers Blake3 Fiat-Shamir query challenges with opened
// rows, constraint spot checks and a FRI-style fold of the composition
// values.
package stark

import (
	"errors"
	"fmt"

	"github.com/luxfi/zkmtd/field"
)

// AirType tags the constraint system a proof was generated under.
type AirType uint8

const (
	AirFibonacci AirType = iota
	AirSum
	AirMultiplication
	AirRange
)

// Valid reports whether t is a known AIR tag.
func (t AirType) Valid() bool {
	return t <= AirRange
}

func (t AirType) String() string {
	switch t {
	case AirFibonacci:
		return "fibonacci"
	case AirSum:
		return "sum"
	case AirMultiplication:
		return "multiplication"
	case AirRange:
		return "range"
	default:
		return fmt.Sprintf("air(%d)", uint8(t))
	}
}

// Trace widths per AIR.
const (
	fibWidth   = 2 // a, b
	arithWidth = 4 // a, b, c, running sum
	rangeWidth = 4 // value, threshold, bit, accumulator
	rangeRows  = 32
)

func (t AirType) width() int {
	if t == AirFibonacci {
		return fibWidth
	}
	return arithWidth
}

var (
	ErrUnknownAir = errors.New("stark: unknown air type")
)

// InvalidWitnessError reports a witness the prover refuses to prove.
type InvalidWitnessError struct {
	Reason string
}

func (e *InvalidWitnessError) Error() string {
	return "stark: invalid witness: " + e.Reason
}

// InvalidPublicInputsError reports a public-value vector inconsistent with
// the witness or the AIR layout.
type InvalidPublicInputsError struct {
	Reason string
}

func (e *InvalidPublicInputsError) Error() string {
	return "stark: invalid public inputs: " + e.Reason
}

// Backend is the opaque proving service the integration layer consumes.
type Backend interface {
	// Prove generates a proof that the witness satisfies the AIR with the
	// given public values. The returned bytes are opaque to callers.
	Prove(air AirType, w *Witness, publicValues []field.Element) ([]byte, error)

	// Verify checks a proof against the AIR and public values. Negative
	// results return (false, nil); malformed input returns an error.
	Verify(air AirType, proofBytes []byte, publicValues []field.Element) (bool, error)
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FibonacciPublicValues returns the AIR's public-value layout for a trace of
// numRows rows: [F(0), F(1), F(numRows-2), F(numRows-1)].
func FibonacciPublicValues(numRows int) ([]field.Element, error) {
	if !isPowerOfTwo(numRows) || numRows < MinWitnessSize {
		return nil, &InvalidPublicInputsError{Reason: "rows must be a power of two >= 4"}
	}
	a := field.FromUint64(0)
	b := field.FromUint64(1)
	for i := 0; i < numRows-2; i++ {
		a, b = b, field.Add(a, b)
	}
	return []field.Element{field.FromUint64(0), field.FromUint64(1), a, b}, nil
}
