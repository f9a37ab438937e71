// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package entropy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type weakSource struct{}

func (weakSource) FillBytes(buf []byte) error { return nil }
func (weakSource) EntropyBits() int           { return 64 }

type failingSource struct{}

func (failingSource) FillBytes(buf []byte) error { return &Error{Reason: "exhausted"} }
func (failingSource) EntropyBits() int           { return 256 }

func TestNewSeedFromOS(t *testing.T) {
	seed, err := NewSeed(OSSource{})
	require.NoError(t, err)
	require.Len(t, seed, SeedSize)
}

func TestNewSeedRejectsWeakSource(t *testing.T) {
	_, err := NewSeed(weakSource{})
	require.Error(t, err)
}

func TestNewSeedPropagatesFillFailure(t *testing.T) {
	_, err := NewSeed(failingSource{})
	require.Error(t, err)
}

func TestDeterministicSourceReplays(t *testing.T) {
	a := NewDeterministicSource([]byte("fixture"))
	b := NewDeterministicSource([]byte("fixture"))
	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	require.NoError(t, a.FillBytes(bufA))
	require.NoError(t, b.FillBytes(bufB))
	require.Equal(t, bufA, bufB)

	c := NewDeterministicSource([]byte("other"))
	bufC := make([]byte, 64)
	require.NoError(t, c.FillBytes(bufC))
	require.NotEqual(t, bufA, bufC)
}

func TestSeedFingerprint(t *testing.T) {
	a := SeedFingerprint([]byte("test-seed-0"))
	b := SeedFingerprint([]byte("test-seed-0"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, SeedFingerprint([]byte("test-seed-1")))
}

func TestExpandSeed(t *testing.T) {
	seed := []byte("test-seed-0")
	a := ExpandSeed(seed, "pv-salt")
	b := ExpandSeed(seed, "fri")
	require.NotEqual(t, a, b)
	require.Equal(t, a, ExpandSeed(seed, "pv-salt"))

	// Expansion must not collide with the fingerprint of the same seed.
	require.NotEqual(t, a, SeedFingerprint(seed))
}

func TestMixChainEntropy(t *testing.T) {
	slot := [32]byte{0x11, 0x22}
	a, err := MixChainEntropy(NewDeterministicSource([]byte("x")), slot)
	require.NoError(t, err)
	b, err := MixChainEntropy(NewDeterministicSource([]byte("x")), slot)
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = MixChainEntropy(weakSource{}, slot)
	require.Error(t, err)
}
