// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/zkmtd/field"
)

func elems(vs ...uint64) []field.Element {
	out := make([]field.Element, len(vs))
	for i, v := range vs {
		out[i] = field.FromUint64(v)
	}
	return out
}

func TestFibonacciPublicValues(t *testing.T) {
	pv, err := FibonacciPublicValues(8)
	require.NoError(t, err)
	require.Equal(t, elems(0, 1, 8, 13), pv)

	_, err = FibonacciPublicValues(6)
	require.Error(t, err, "non power of two rejected")
	_, err = FibonacciPublicValues(2)
	require.Error(t, err, "below minimum rejected")
}

func TestFibonacciRoundTrip(t *testing.T) {
	b := NewReferenceBackend()
	for _, rows := range []int{4, 8, 16, 64} {
		pv, err := FibonacciPublicValues(rows)
		require.NoError(t, err)
		w, err := FibonacciWitness(rows)
		require.NoError(t, err)
		bytes, err := b.Prove(AirFibonacci, w, pv)
		require.NoError(t, err)

		ok, err := b.Verify(AirFibonacci, bytes, pv)
		require.NoError(t, err)
		require.True(t, ok, "rows=%d", rows)
	}
}

func TestArithmeticRoundTrip(t *testing.T) {
	b := NewReferenceBackend()
	a := elems(1, 2, 3, 4)
	bb := elems(10, 20, 30, 40)

	w, err := ArithmeticWitness(a, bb)
	require.NoError(t, err)
	sumPV := elems(110) // Σ(a+b)
	bytes, err := b.Prove(AirSum, w, sumPV)
	require.NoError(t, err)
	ok, err := b.Verify(AirSum, bytes, sumPV)
	require.NoError(t, err)
	require.True(t, ok)

	w2, err := ArithmeticWitness(a, bb)
	require.NoError(t, err)
	mulPV := elems(10 + 40 + 90 + 160) // Σ(a·b)
	bytes2, err := b.Prove(AirMultiplication, w2, mulPV)
	require.NoError(t, err)
	ok, err = b.Verify(AirMultiplication, bytes2, mulPV)
	require.NoError(t, err)
	require.True(t, ok)

	// Cross-air confusion is rejected.
	ok, err = b.Verify(AirMultiplication, bytes, mulPV)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestArithmeticWrongPublicValue(t *testing.T) {
	b := NewReferenceBackend()
	w, err := ArithmeticWitness(elems(1, 2, 3, 4), elems(5, 6, 7, 8))
	require.NoError(t, err)
	_, err = b.Prove(AirSum, w, elems(999))
	require.Error(t, err, "prover refuses a public value the trace cannot meet")
}

func TestRangeRoundTrip(t *testing.T) {
	b := NewReferenceBackend()
	w, err := RangeWitness(1000, 500)
	require.NoError(t, err)
	pv := elems(500)
	bytes, err := b.Prove(AirRange, w, pv)
	require.NoError(t, err)
	ok, err := b.Verify(AirRange, bytes, pv)
	require.NoError(t, err)
	require.True(t, ok)

	// A different asserted threshold fails.
	ok, err = b.Verify(AirRange, bytes, elems(501))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRangeWitnessRefusals(t *testing.T) {
	_, err := RangeWitness(400, 500)
	var invalid *InvalidWitnessError
	require.ErrorAs(t, err, &invalid)

	_, err = RangeWitness(1<<33, 0)
	require.ErrorAs(t, err, &invalid, "difference wider than 32 bits refused")

	// Equality is inside the range.
	_, err = RangeWitness(500, 500)
	require.NoError(t, err)
}

func TestVerifyTamperedProof(t *testing.T) {
	b := NewReferenceBackend()
	pv, err := FibonacciPublicValues(8)
	require.NoError(t, err)
	w, err := FibonacciWitness(8)
	require.NoError(t, err)
	bytes, err := b.Prove(AirFibonacci, w, pv)
	require.NoError(t, err)

	// Flip the root: every opening's path check fails.
	tampered := append([]byte(nil), bytes...)
	tampered[7] ^= 1
	ok, err := b.Verify(AirFibonacci, tampered, pv)
	require.NoError(t, err)
	require.False(t, ok)

	// Truncation is malformed input.
	_, err = b.Verify(AirFibonacci, bytes[:10], pv)
	require.Error(t, err)

	// Wrong public values fail cleanly.
	wrong := elems(0, 1, 8, 14)
	ok, err = b.Verify(AirFibonacci, bytes, wrong)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWitnessLifecycle(t *testing.T) {
	w, err := NewWitness(elems(1, 2, 3, 4))
	require.NoError(t, err)
	require.Equal(t, 4, w.Len())
	require.Equal(t, "stark.Witness{<redacted>}", w.String())

	w.Close()
	for i := range w.elems {
		require.True(t, w.elems[i].IsZero(), "element %d not zeroized", i)
	}
	w.Close() // second close is a no-op

	// A closed witness is refused by the prover.
	b := NewReferenceBackend()
	_, err = b.Prove(AirSum, w, elems(0))
	require.Error(t, err)
}

func TestWitnessMinimumSize(t *testing.T) {
	_, err := NewWitness(elems(1, 2, 3))
	require.Error(t, err)
}
