// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"github.com/luxfi/zkmtd/field"
)

// MaxTraceRows caps the execution trace height.
const MaxTraceRows = 1 << 16

// trace is an execution trace: numRows rows of a fixed-width column layout.
type trace struct {
	air  AirType
	rows [][]field.Element
}

// buildTrace materializes the trace for the AIR from the witness and checks
// it against the public values.
func buildTrace(air AirType, w *Witness, pv []field.Element) (*trace, error) {
	if w == nil || w.closed {
		return nil, &InvalidWitnessError{Reason: "witness unavailable"}
	}
	switch air {
	case AirFibonacci:
		return buildFibonacciTrace(w, pv)
	case AirSum, AirMultiplication:
		return buildArithmeticTrace(air, w, pv)
	case AirRange:
		return buildRangeTrace(w, pv)
	default:
		return nil, ErrUnknownAir
	}
}

// Row i carries (F(i), F(i+1)), so the closing boundary row is numRows-2:
// it holds exactly (F(numRows-2), F(numRows-1)), the last two public values.
func buildFibonacciTrace(w *Witness, pv []field.Element) (*trace, error) {
	n := w.Len()
	if !isPowerOfTwo(n) || n < MinWitnessSize || n > MaxTraceRows {
		return nil, &InvalidWitnessError{Reason: "rows must be a power of two in range"}
	}
	if len(pv) != 4 {
		return nil, &InvalidPublicInputsError{Reason: "fibonacci expects 4 public values"}
	}
	rows := make([][]field.Element, n)
	for i := 0; i < n; i++ {
		rows[i] = []field.Element{w.elems[i], nextOrDerived(w, i)}
	}
	tr := &trace{air: AirFibonacci, rows: rows}
	if !tr.boundaryOK(pv) {
		return nil, &InvalidPublicInputsError{Reason: "boundary mismatch"}
	}
	return tr, nil
}

func nextOrDerived(w *Witness, i int) field.Element {
	if i+1 < len(w.elems) {
		return w.elems[i+1]
	}
	return field.Add(w.elems[i-1], w.elems[i])
}

func buildArithmeticTrace(air AirType, w *Witness, pv []field.Element) (*trace, error) {
	if w.Len()%2 != 0 {
		return nil, &InvalidWitnessError{Reason: "operands must split evenly"}
	}
	n := w.Len() / 2
	if !isPowerOfTwo(n) || n < MinWitnessSize || n > MaxTraceRows {
		return nil, &InvalidWitnessError{Reason: "rows must be a power of two in range"}
	}
	if len(pv) != 1 {
		return nil, &InvalidPublicInputsError{Reason: "arithmetic airs expect 1 public value"}
	}
	a := w.elems[:n]
	b := w.elems[n:]
	rows := make([][]field.Element, n)
	var running field.Element
	for i := 0; i < n; i++ {
		var c field.Element
		if air == AirSum {
			c = field.Add(a[i], b[i])
		} else {
			c = field.Mul(a[i], b[i])
		}
		running = field.Add(running, c)
		rows[i] = []field.Element{a[i], b[i], c, running}
	}
	tr := &trace{air: air, rows: rows}
	if !tr.boundaryOK(pv) {
		return nil, &InvalidPublicInputsError{Reason: "boundary mismatch"}
	}
	return tr, nil
}

func buildRangeTrace(w *Witness, pv []field.Element) (*trace, error) {
	if w.Len() != 3+rangeRows {
		return nil, &InvalidWitnessError{Reason: "range witness layout mismatch"}
	}
	if len(pv) != 1 {
		return nil, &InvalidPublicInputsError{Reason: "range air expects 1 public value"}
	}
	value := w.elems[0]
	threshold := w.elems[1]
	diff := w.elems[2]
	bits := w.elems[3:]

	if field.Add(threshold, diff) != value {
		return nil, &InvalidWitnessError{Reason: "difference inconsistent"}
	}
	rows := make([][]field.Element, rangeRows)
	var acc field.Element
	two := field.FromUint64(2)
	for i := 0; i < rangeRows; i++ {
		bit := bits[i]
		if u := field.Canonical(&bit); u > 1 {
			return nil, &InvalidWitnessError{Reason: "non-boolean bit"}
		}
		acc = field.Add(field.Mul(two, acc), bit)
		rows[i] = []field.Element{value, threshold, bit, acc}
	}
	if acc != diff {
		return nil, &InvalidWitnessError{Reason: "bit decomposition mismatch"}
	}
	tr := &trace{air: AirRange, rows: rows}
	if !tr.boundaryOK(pv) {
		return nil, &InvalidPublicInputsError{Reason: "boundary mismatch"}
	}
	return tr, nil
}

// boundaryRows returns the row indices the boundary constraints pin.
func (t *trace) boundaryRows() []int {
	n := len(t.rows)
	if t.air == AirFibonacci {
		return []int{0, n - 2}
	}
	return []int{0, n - 1}
}

// boundaryOK checks the boundary constraints against the public values.
func (t *trace) boundaryOK(pv []field.Element) bool {
	return checkBoundary(t.air, t.rows, len(t.rows), pv)
}

// checkBoundary validates the pinned rows. rows may be sparse (the verifier
// leaves unopened rows nil); the helper only touches the boundary indices.
func checkBoundary(air AirType, rows [][]field.Element, numRows int, pv []field.Element) bool {
	switch air {
	case AirFibonacci:
		first := rows[0]
		closing := rows[numRows-2]
		if first == nil || closing == nil {
			return false
		}
		return first[0] == pv[0] && first[1] == pv[1] &&
			closing[0] == pv[2] && closing[1] == pv[3]
	case AirSum, AirMultiplication:
		first := rows[0]
		last := rows[numRows-1]
		if first == nil || last == nil {
			return false
		}
		return first[3] == first[2] && last[3] == pv[0]
	case AirRange:
		first := rows[0]
		last := rows[numRows-1]
		if first == nil || last == nil {
			return false
		}
		if first[3] != first[2] {
			return false
		}
		return last[1] == pv[0] && field.Add(last[1], last[3]) == last[0]
	default:
		return false
	}
}

// checkRow validates the single-row constraints.
func checkRow(air AirType, row []field.Element) bool {
	switch air {
	case AirFibonacci:
		return len(row) == fibWidth
	case AirSum:
		return len(row) == arithWidth && field.Add(row[0], row[1]) == row[2]
	case AirMultiplication:
		return len(row) == arithWidth && field.Mul(row[0], row[1]) == row[2]
	case AirRange:
		if len(row) != rangeWidth {
			return false
		}
		u := field.Canonical(&row[2])
		return u <= 1
	default:
		return false
	}
}

// checkTransition validates the two-row transition constraints.
func checkTransition(air AirType, cur, next []field.Element) bool {
	switch air {
	case AirFibonacci:
		return next[0] == cur[1] && next[1] == field.Add(cur[0], cur[1])
	case AirSum, AirMultiplication:
		return next[3] == field.Add(cur[3], next[2])
	case AirRange:
		two := field.FromUint64(2)
		return next[0] == cur[0] && next[1] == cur[1] &&
			next[3] == field.Add(field.Mul(two, cur[3]), next[2])
	default:
		return false
	}
}
