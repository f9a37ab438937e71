// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	prover, verifier := newPair(t, epoch.Epoch(20))
	salt := commitment.DerivePVSalt(testSeed, epoch.Epoch(20), []byte("ser"))
	p, err := prover.ProveFibonacci(8, salt)
	require.NoError(t, err)

	enc, err := EncodeProof(p)
	require.NoError(t, err)
	back, err := DecodeProof(enc)
	require.NoError(t, err)

	require.Equal(t, p.AirType, back.AirType)
	require.Equal(t, p.Epoch, back.Epoch)
	require.Equal(t, p.PublicValues, back.PublicValues)
	require.Equal(t, p.StarkProof, back.StarkProof)
	require.Equal(t, p.BindingHash, back.BindingHash)
	require.Equal(t, p.Committed, back.Committed)
	require.True(t, p.Params.Equal(back.Params))
	require.True(t, back.HasSalt())

	// The decoded proof verifies like the original.
	ok, err := verifier.Verify(back)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEncodeAfterErasureOmitsSalt(t *testing.T) {
	prover, _ := newPair(t, epoch.Epoch(20))
	salt := commitment.DerivePVSalt(testSeed, epoch.Epoch(20), []byte("g"))
	p, err := prover.ProveFibonacci(8, salt)
	require.NoError(t, err)
	p.EraseSalt()

	enc, err := EncodeProof(p)
	require.NoError(t, err)
	back, err := DecodeProof(enc)
	require.NoError(t, err)
	require.False(t, back.HasSalt())
}

func TestDecodeRejectsTampering(t *testing.T) {
	prover, _ := newPair(t, epoch.Epoch(20))
	salt := commitment.DerivePVSalt(testSeed, epoch.Epoch(20), []byte("x"))
	p, err := prover.ProveFibonacci(8, salt)
	require.NoError(t, err)
	enc, err := EncodeProof(p)
	require.NoError(t, err)

	// Any byte flip breaks the integrity digest.
	for _, i := range []int{0, 1, 9, len(enc) / 2, len(enc) - 1} {
		bad := append([]byte(nil), enc...)
		bad[i] ^= 1
		_, err := DecodeProof(bad)
		require.ErrorIs(t, err, ErrSerialization, "offset %d", i)
	}

	_, err = DecodeProof(enc[:16])
	require.ErrorIs(t, err, ErrSerialization)
	_, err = DecodeProof(nil)
	require.ErrorIs(t, err, ErrSerialization)
}
