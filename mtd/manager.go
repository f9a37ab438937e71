// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mtd

import (
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/luxfi/log"

	"github.com/luxfi/zkmtd/entropy"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/hashing"
)

const (
	// ParamCacheSize bounds the recent/future parameter sets kept per manager.
	ParamCacheSize = 16

	// TimestampToleranceSecs is the clock skew allowed by ValidateTimestamp.
	TimestampToleranceSecs uint64 = 300

	// DefaultMaxSyncJump bounds the advance loop in Sync before the cache is
	// cleared and the target epoch is derived directly.
	DefaultMaxSyncJump uint64 = 1024
)

// Manager owns the secret seed and tracks the current epoch's parameters.
// Managers are not safe for concurrent use; run one per goroutine.
type Manager struct {
	seed        []byte
	current     epoch.Epoch
	params      Params
	cache       *lru.Cache[epoch.Epoch, Params]
	maxSyncJump uint64
	autoAdvance bool
	closed      bool

	log log.Logger
}

// NewManager constructs a manager at the given epoch. The seed is copied;
// the caller's buffer can be discarded (and should be zeroized) afterwards.
func NewManager(seed []byte, e epoch.Epoch) (*Manager, error) {
	params, err := Generate(seed, e)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[epoch.Epoch, Params](ParamCacheSize)
	if err != nil {
		return nil, &Error{Reason: err.Error()}
	}
	owned := make([]byte, len(seed))
	copy(owned, seed)
	return &Manager{
		seed:        owned,
		current:     e,
		params:      params,
		cache:       cache,
		maxSyncJump: DefaultMaxSyncJump,
		autoAdvance: true,
		log:         log.NewTestLogger(log.InfoLevel),
	}, nil
}

// SetLogger replaces the manager's logger.
func (m *Manager) SetLogger(l log.Logger) {
	m.log = l
}

// SetMaxSyncJump overrides the bound on Sync's advance loop.
func (m *Manager) SetMaxSyncJump(n uint64) {
	m.maxSyncJump = n
}

// SetAutoAdvance controls whether Sync may move the manager forward. With
// auto-advance off, Sync to a later epoch fails instead of rotating.
func (m *Manager) SetAutoAdvance(enabled bool) {
	m.autoAdvance = enabled
}

// CurrentEpoch returns the epoch the manager is pinned to.
func (m *Manager) CurrentEpoch() epoch.Epoch {
	return m.current
}

// CurrentParams returns the current epoch's parameter set.
func (m *Manager) CurrentParams() Params {
	return m.params
}

// Params returns the parameter set for e, consulting the current set first,
// then the cache, deriving and caching on a miss.
func (m *Manager) Params(e epoch.Epoch) (Params, error) {
	if m.closed {
		return Params{}, ErrManagerClosed
	}
	if e == m.current {
		return m.params, nil
	}
	if p, ok := m.cache.Get(e); ok {
		return p, nil
	}
	p, err := Generate(m.seed, e)
	if err != nil {
		return Params{}, err
	}
	if evicted := m.cache.Add(e, p); evicted {
		m.log.Debug("param cache eviction", "epoch", e.Uint64())
	}
	return p, nil
}

// Advance rotates the manager to the next epoch. The previous parameter set
// is retained in the cache. On overflow nothing is mutated.
func (m *Manager) Advance() error {
	if m.closed {
		return ErrManagerClosed
	}
	next, err := m.current.Next()
	if err != nil {
		return &InvalidEpochError{Current: m.current, Reason: "epoch overflow"}
	}
	params, err := Generate(m.seed, next)
	if err != nil {
		return err
	}
	m.cache.Add(m.current, m.params)
	m.current = next
	m.params = params
	m.log.Debug("advanced epoch", "epoch", next.Uint64())
	return nil
}

// Sync moves the manager to the epoch containing now. A target earlier than
// the current epoch is a clock regression and fails; a gap wider than the
// sync jump bound clears the cache and derives the target directly.
func (m *Manager) Sync(now uint64) error {
	if m.closed {
		return ErrManagerClosed
	}
	target := epoch.FromTimestamp(now)
	if target < m.current {
		return &InvalidEpochError{Current: m.current, Reason: "clock regression"}
	}
	if target == m.current {
		return nil
	}
	if !m.autoAdvance {
		return &Error{Reason: "auto-advance disabled"}
	}
	if m.current.Distance(target) > m.maxSyncJump {
		params, err := Generate(m.seed, target)
		if err != nil {
			return err
		}
		m.cache.Purge()
		m.current = target
		m.params = params
		m.log.Warn("sync jump exceeded bound, cache cleared", "epoch", target.Uint64())
		return nil
	}
	for m.current < target {
		if err := m.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTimestamp accepts ts iff it is within one epoch duration plus the
// configured tolerance of the current epoch's start.
func (m *Manager) ValidateTimestamp(ts uint64) bool {
	start := m.current.StartTimestamp()
	var diff uint64
	if ts >= start {
		diff = ts - start
	} else {
		diff = start - ts
	}
	return diff <= epoch.DurationSecs+TimestampToleranceSecs
}

// Fingerprint returns a digest of the seed that is safe to log and compare.
func (m *Manager) Fingerprint() hashing.Digest {
	return entropy.SeedFingerprint(m.seed)
}

// Sibling creates an independent manager over the same seed at the same
// epoch, without exposing the seed to the caller.
func (m *Manager) Sibling() (*Manager, error) {
	if m.closed {
		return nil, ErrManagerClosed
	}
	return NewManager(m.seed, m.current)
}

// Close zeroizes the seed. Afterwards Params, Advance, Sync and Sibling fail
// with ErrManagerClosed; a second Close is a no-op.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	for i := range m.seed {
		m.seed[i] = 0
	}
	runtime.KeepAlive(m.seed)
	m.closed = true
}

// String redacts the seed unconditionally.
func (m *Manager) String() string {
	return "mtd.Manager{seed: <redacted>, epoch: " + m.current.String() + "}"
}

// GoString redacts under %#v as well.
func (m *Manager) GoString() string {
	return m.String()
}
