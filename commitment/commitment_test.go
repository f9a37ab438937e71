// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package commitment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
)

func testValues(n int) []field.Element {
	vs := make([]field.Element, n)
	for i := range vs {
		vs[i] = field.FromUint64(uint64(i*7 + 1))
	}
	return vs
}

func TestCommitRoundTrip(t *testing.T) {
	values := testValues(4)
	salt := [SaltSize]byte{0xAB}
	committed := Commit(values, salt)
	require.Equal(t, uint32(4), committed.ValueCount)
	require.False(t, committed.Commitment.IsZero())
	require.True(t, VerifyOpening(values, salt, committed))
}

func TestCommitBinding(t *testing.T) {
	values := testValues(4)
	salt := [SaltSize]byte{0x01, 0x02}
	committed := Commit(values, salt)

	// Mutated values fail.
	mutated := testValues(4)
	mutated[2] = field.FromUint64(999)
	require.False(t, VerifyOpening(mutated, salt, committed))

	// Mutated salt fails.
	badSalt := salt
	badSalt[31] ^= 1
	require.False(t, VerifyOpening(values, badSalt, committed))

	// Mutated commitment fails.
	badCommitted := committed
	badCommitted.Commitment[0] ^= 1
	require.False(t, VerifyOpening(values, salt, badCommitted))

	// Truncated and extended vectors fail even before the count check: the
	// serialization changes the preimage.
	require.False(t, VerifyOpening(values[:3], salt, committed))
	require.False(t, VerifyOpening(append(testValues(4), field.FromUint64(5)), salt, committed))
}

func TestCommitCountMismatch(t *testing.T) {
	values := testValues(4)
	salt := [SaltSize]byte{}
	committed := Commit(values, salt)
	committed.ValueCount = 5
	require.False(t, VerifyOpening(values, salt, committed))
}

func TestDerivePVSalt(t *testing.T) {
	seed := []byte("test-seed-0")
	a := DerivePVSalt(seed, epoch.Epoch(100), []byte("n1"))
	b := DerivePVSalt(seed, epoch.Epoch(100), []byte("n1"))
	require.Equal(t, a, b)

	// Distinct nonce, epoch or seed all change the salt.
	require.NotEqual(t, a, DerivePVSalt(seed, epoch.Epoch(100), []byte("n2")))
	require.NotEqual(t, a, DerivePVSalt(seed, epoch.Epoch(101), []byte("n1")))
	require.NotEqual(t, a, DerivePVSalt([]byte("other"), epoch.Epoch(100), []byte("n1")))
}
