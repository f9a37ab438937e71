// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"runtime"

	"github.com/luxfi/zkmtd/field"
)

// MinWitnessSize is the smallest witness any AIR accepts.
const MinWitnessSize = 4

// Witness is the private input to the prover: a finite sequence of field
// elements, consumed by Prove and zeroized by Close. It never renders its
// contents.
type Witness struct {
	elems  []field.Element
	closed bool
}

// NewWitness wraps elems. The slice is owned by the witness afterwards.
func NewWitness(elems []field.Element) (*Witness, error) {
	if len(elems) < MinWitnessSize {
		return nil, &InvalidWitnessError{Reason: "below minimum witness size"}
	}
	return &Witness{elems: elems}, nil
}

// Len returns the number of witness elements.
func (w *Witness) Len() int {
	return len(w.elems)
}

// Close zeroizes the witness elements. A second Close is a no-op.
func (w *Witness) Close() {
	if w.closed {
		return
	}
	for i := range w.elems {
		w.elems[i].SetZero()
	}
	runtime.KeepAlive(w.elems)
	w.closed = true
}

func (w *Witness) String() string {
	return "stark.Witness{<redacted>}"
}

// GoString redacts under %#v as well.
func (w *Witness) GoString() string {
	return w.String()
}

// FibonacciWitness builds the witness for a Fibonacci trace of numRows rows:
// the sequence F(0)..F(numRows-1).
func FibonacciWitness(numRows int) (*Witness, error) {
	if !isPowerOfTwo(numRows) || numRows < MinWitnessSize {
		return nil, &InvalidWitnessError{Reason: "rows must be a power of two >= 4"}
	}
	elems := make([]field.Element, numRows)
	elems[0] = field.FromUint64(0)
	elems[1] = field.FromUint64(1)
	for i := 2; i < numRows; i++ {
		elems[i] = field.Add(elems[i-1], elems[i-2])
	}
	return NewWitness(elems)
}

// ArithmeticWitness builds the witness for the element-wise sum and
// multiplication AIRs: a ‖ b with equal power-of-two lengths.
func ArithmeticWitness(a, b []field.Element) (*Witness, error) {
	if len(a) != len(b) {
		return nil, &InvalidWitnessError{Reason: "operand length mismatch"}
	}
	if !isPowerOfTwo(len(a)) || len(a) < MinWitnessSize {
		return nil, &InvalidWitnessError{Reason: "operand length must be a power of two >= 4"}
	}
	elems := make([]field.Element, 0, 2*len(a))
	elems = append(elems, a...)
	elems = append(elems, b...)
	return NewWitness(elems)
}

// RangeWitness builds the witness proving value >= threshold with the
// difference in 32 bits: [value, threshold, diff, bit_31 .. bit_0].
func RangeWitness(value, threshold uint64) (*Witness, error) {
	if value < threshold {
		return nil, &InvalidWitnessError{Reason: "value below threshold"}
	}
	diff := value - threshold
	if diff > 0xFFFFFFFF {
		return nil, &InvalidWitnessError{Reason: "difference exceeds 32 bits"}
	}
	elems := make([]field.Element, 0, 3+rangeRows)
	elems = append(elems, field.FromUint64(value), field.FromUint64(threshold), field.FromUint64(diff))
	for i := rangeRows - 1; i >= 0; i-- {
		elems = append(elems, field.FromUint64((diff>>uint(i))&1))
	}
	return NewWitness(elems)
}
