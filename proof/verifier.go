// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	log "github.com/luxfi/log"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/mtd"
	"github.com/luxfi/zkmtd/stark"
)

// IntegratedVerifier checks integrated proofs against the current epoch's
// parameters and dispatches the STARK verification per AIR variant. Not
// safe for concurrent use.
type IntegratedVerifier struct {
	manager *mtd.Manager
	backend stark.Backend
	log     log.Logger
}

// NewIntegratedVerifier constructs a verifier pinned to (seed, epoch) with
// the reference backend.
func NewIntegratedVerifier(seed []byte, e epoch.Epoch) (*IntegratedVerifier, error) {
	manager, err := mtd.NewManager(seed, e)
	if err != nil {
		return nil, err
	}
	return &IntegratedVerifier{
		manager: manager,
		backend: stark.NewReferenceBackend(),
		log:     log.NewTestLogger(log.InfoLevel),
	}, nil
}

// SetBackend swaps the STARK backend. It must match the prover's.
func (v *IntegratedVerifier) SetBackend(b stark.Backend) {
	v.backend = b
}

// SetLogger replaces the verifier's logger.
func (v *IntegratedVerifier) SetLogger(l log.Logger) {
	v.log = l
}

// CurrentEpoch returns the epoch the verifier accepts proofs for.
func (v *IntegratedVerifier) CurrentEpoch() epoch.Epoch {
	return v.manager.CurrentEpoch()
}

// Manager exposes the verifier's parameter manager.
func (v *IntegratedVerifier) Manager() *mtd.Manager {
	return v.manager
}

// AdvanceEpoch rotates the verifier to the next epoch, invalidating all
// proofs bound to earlier parameter sets.
func (v *IntegratedVerifier) AdvanceEpoch() error {
	return v.manager.Advance()
}

// Close zeroizes the verifier's seed.
func (v *IntegratedVerifier) Close() {
	v.manager.Close()
}

// Verify checks p in order: epoch match, parameter snapshot match, binding
// hash, then the STARK itself. Honest negatives return (false, nil); only
// structurally unusable input returns an error.
func (v *IntegratedVerifier) Verify(p *IntegratedProof) (bool, error) {
	if p == nil {
		return false, &InvalidProofError{Reason: "nil proof"}
	}
	if !p.AirType.Valid() {
		return false, &InvalidProofError{Reason: "unknown air type"}
	}
	if p.Epoch != v.manager.CurrentEpoch() {
		v.log.Debug("rejected proof from foreign epoch", "epoch", p.Epoch.Uint64())
		return false, nil
	}
	current := v.manager.CurrentParams()
	if !p.Params.Equal(current) {
		return false, nil
	}
	expected := BindingHash(p.PublicValues, p.Committed, p.Epoch, current)
	if !hashing.CtEq32(expected, p.BindingHash) {
		return false, nil
	}
	ok, err := v.backend.Verify(p.AirType, p.StarkProof, p.PublicValues)
	if err != nil {
		return false, &InvalidProofError{Reason: "stark verification errored"}
	}
	return ok, nil
}

// VerifyWithSalt additionally checks that (values, salt) opens the proof's
// commitment. The opening is checked against the caller-supplied salt, never
// the one stored on the proof, so after erasure it still succeeds for a
// caller holding the original salt and fails for any other salt.
func (v *IntegratedVerifier) VerifyWithSalt(
	p *IntegratedProof,
	values []field.Element,
	salt [commitment.SaltSize]byte,
) (bool, error) {
	ok, err := v.Verify(p)
	if err != nil || !ok {
		return false, err
	}
	if !commitment.VerifyOpening(values, salt, p.Committed) {
		return false, nil
	}
	return true, nil
}
