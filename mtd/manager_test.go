// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mtd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/zkmtd/epoch"
)

func newTestManager(t *testing.T, e epoch.Epoch) *Manager {
	t.Helper()
	m, err := NewManager(testSeed, e)
	require.NoError(t, err)
	return m
}

func TestNewManager(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(100))
	require.Equal(t, epoch.Epoch(100), m.CurrentEpoch())
	require.Equal(t, epoch.Epoch(100), m.CurrentParams().Epoch)
	require.False(t, m.CurrentParams().DomainSeparator.IsZero())
}

func TestParamsCurrentAndCached(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(10))

	current, err := m.Params(epoch.Epoch(10))
	require.NoError(t, err)
	require.True(t, current.Equal(m.CurrentParams()))

	// A foreign epoch is derived, cached and stable across lookups.
	p1, err := m.Params(epoch.Epoch(12))
	require.NoError(t, err)
	p2, err := m.Params(epoch.Epoch(12))
	require.NoError(t, err)
	require.True(t, p1.Equal(p2))

	expected, err := Generate(testSeed, epoch.Epoch(12))
	require.NoError(t, err)
	require.True(t, p1.Equal(expected))
}

func TestParamsCacheEviction(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(0))
	// Fill well past capacity; lookups must still come back correct.
	for i := 1; i <= ParamCacheSize*2; i++ {
		_, err := m.Params(epoch.Epoch(i))
		require.NoError(t, err)
	}
	require.LessOrEqual(t, m.cache.Len(), ParamCacheSize)

	// An evicted epoch re-derives to the identical params.
	p, err := m.Params(epoch.Epoch(1))
	require.NoError(t, err)
	expected, err := Generate(testSeed, epoch.Epoch(1))
	require.NoError(t, err)
	require.True(t, p.Equal(expected))
}

func TestAdvance(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(5))
	before := m.CurrentParams()

	require.NoError(t, m.Advance())
	require.Equal(t, epoch.Epoch(6), m.CurrentEpoch())
	require.False(t, m.CurrentParams().Equal(before))

	// The previous epoch's params stay reachable from the cache.
	cached, err := m.Params(epoch.Epoch(5))
	require.NoError(t, err)
	require.True(t, cached.Equal(before))
}

func TestSyncForward(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(10))
	require.NoError(t, m.Sync(epoch.Epoch(13).StartTimestamp()+5))
	require.Equal(t, epoch.Epoch(13), m.CurrentEpoch())

	// Sync to the current epoch is a no-op.
	require.NoError(t, m.Sync(epoch.Epoch(13).StartTimestamp()+10))
	require.Equal(t, epoch.Epoch(13), m.CurrentEpoch())
}

func TestSyncClockRegression(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(10))
	err := m.Sync(epoch.Epoch(9).StartTimestamp())
	var invalid *InvalidEpochError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, epoch.Epoch(10), invalid.Current)
	require.Equal(t, "clock regression", invalid.Reason)
	require.Equal(t, epoch.Epoch(10), m.CurrentEpoch())
}

func TestSyncJumpClearsCache(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(0))
	m.SetMaxSyncJump(4)
	_, err := m.Params(epoch.Epoch(2))
	require.NoError(t, err)
	require.NotZero(t, m.cache.Len())

	require.NoError(t, m.Sync(epoch.Epoch(100).StartTimestamp()))
	require.Equal(t, epoch.Epoch(100), m.CurrentEpoch())
	require.Zero(t, m.cache.Len())

	expected, err := Generate(testSeed, epoch.Epoch(100))
	require.NoError(t, err)
	require.True(t, m.CurrentParams().Equal(expected))
}

func TestSyncAutoAdvanceDisabled(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(3))
	m.SetAutoAdvance(false)
	err := m.Sync(epoch.Epoch(4).StartTimestamp())
	require.Error(t, err)
	require.Equal(t, epoch.Epoch(3), m.CurrentEpoch())
}

func TestValidateTimestamp(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(100))
	start := epoch.Epoch(100).StartTimestamp()

	require.True(t, m.ValidateTimestamp(start))
	require.True(t, m.ValidateTimestamp(start+epoch.DurationSecs))
	require.True(t, m.ValidateTimestamp(start+epoch.DurationSecs+TimestampToleranceSecs))
	require.False(t, m.ValidateTimestamp(start+epoch.DurationSecs+TimestampToleranceSecs+1))
	require.True(t, m.ValidateTimestamp(start-TimestampToleranceSecs))
	require.False(t, m.ValidateTimestamp(start-epoch.DurationSecs-TimestampToleranceSecs-1))
}

func TestSibling(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(7))
	s, err := m.Sibling()
	require.NoError(t, err)
	require.Equal(t, m.CurrentEpoch(), s.CurrentEpoch())
	require.True(t, m.CurrentParams().Equal(s.CurrentParams()))

	// Siblings rotate independently.
	require.NoError(t, s.Advance())
	require.Equal(t, epoch.Epoch(7), m.CurrentEpoch())
	require.Equal(t, epoch.Epoch(8), s.CurrentEpoch())
}

func TestCloseZeroizesSeed(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(1))
	m.Close()
	for i, b := range m.seed {
		require.Zero(t, b, "seed byte %d not zeroized", i)
	}
	// Closed managers refuse rotation and parameter lookups; a second close
	// is a no-op.
	require.ErrorIs(t, m.Advance(), ErrManagerClosed)
	_, err := m.Params(epoch.Epoch(2))
	require.ErrorIs(t, err, ErrManagerClosed)
	m.Close()
}

func TestFingerprintStable(t *testing.T) {
	a := newTestManager(t, epoch.Epoch(1))
	b := newTestManager(t, epoch.Epoch(900))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	other, err := NewManager([]byte("another-seed"), epoch.Epoch(1))
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint(), other.Fingerprint())
}

func TestManagerStringRedacts(t *testing.T) {
	m := newTestManager(t, epoch.Epoch(1))
	require.NotContains(t, m.String(), "test-seed-0")
	require.Contains(t, m.String(), "<redacted>")
}
