// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package entropy defines the entropy collaborator the core draws key
// material from, and the seed lifecycle helpers built on it. The core
// refuses any source reporting fewer than MinEntropyBits bits.
package entropy

import (
	"crypto/rand"

	"github.com/luxfi/zkmtd/hashing"
)

// MinEntropyBits is the minimum entropy a source must report.
const MinEntropyBits = 128

// SeedSize is the byte length of seeds produced by NewSeed.
const SeedSize = 32

// Source supplies cryptographic randomness.
type Source interface {
	// FillBytes fills buf entirely or returns an error.
	FillBytes(buf []byte) error

	// EntropyBits reports the source's entropy estimate.
	EntropyBits() int
}

// Error reports an entropy failure. The message never carries drawn bytes.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "entropy: " + e.Reason
}

// OSSource adapts the operating system CSPRNG.
type OSSource struct{}

func (OSSource) FillBytes(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return &Error{Reason: "os csprng read failed"}
	}
	return nil
}

func (OSSource) EntropyBits() int {
	return 256
}

// NewSeed draws a fresh seed from src, rejecting weak or failing sources.
func NewSeed(src Source) ([]byte, error) {
	if src.EntropyBits() < MinEntropyBits {
		return nil, &Error{Reason: "source below minimum entropy"}
	}
	seed := make([]byte, SeedSize)
	if err := src.FillBytes(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// SeedFingerprint digests a seed into a value safe to log and compare.
func SeedFingerprint(seed []byte) hashing.Digest {
	return hashing.Hash(seed, hashing.DomainSeedFingerprint)
}

// ExpandSeed derives a per-purpose subseed from a master seed and a label.
func ExpandSeed(seed []byte, label string) hashing.Digest {
	msg := make([]byte, 0, len(seed)+len(label))
	msg = append(msg, seed...)
	msg = append(msg, label...)
	return hashing.Hash(msg, hashing.DomainSeedExpand)
}

// MixChainEntropy folds a recent chain slot hash together with fresh local
// randomness, for nonce material on deployments that anchor proofs on-chain.
func MixChainEntropy(src Source, slotHash [32]byte) (hashing.Digest, error) {
	if src.EntropyBits() < MinEntropyBits {
		return hashing.Digest{}, &Error{Reason: "source below minimum entropy"}
	}
	buf := make([]byte, 32, 64)
	if err := src.FillBytes(buf); err != nil {
		return hashing.Digest{}, err
	}
	buf = append(buf, slotHash[:]...)
	return hashing.Hash(buf, hashing.DomainSolanaEntropy), nil
}
