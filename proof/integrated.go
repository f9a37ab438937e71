// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proof implements the integration layer between the STARK backend
// and the parameter rotation: the IntegratedProof container with its binding
// hash, the prover/verifier pair dispatching across AIR variants, proof
// batching under a Merkle root, the fixed-width lightweight payload for
// on-chain verification, and the wire serialization.
package proof

import (
	"fmt"
	"runtime"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/mtd"
	"github.com/luxfi/zkmtd/stark"
)

// IntegratedProof carries a STARK proof together with everything the
// rotation layer binds it to: the epoch, the parameter snapshot taken at
// proving time, the salted commitment to the public values and the binding
// hash over all of it. The public-value salt travels by value inside the
// proof so it can be erased per proof without touching shared state.
type IntegratedProof struct {
	AirType      stark.AirType
	StarkProof   []byte
	PublicValues []field.Element
	Epoch        epoch.Epoch
	Params       mtd.Params
	BindingHash  hashing.Digest
	Committed    commitment.CommittedPublicInputs

	pvSalt    [commitment.SaltSize]byte
	pvSaltSet bool
}

// CommittedValuesHash returns the commitment digest.
func (p *IntegratedProof) CommittedValuesHash() hashing.Digest {
	return p.Committed.Commitment
}

// HasSalt reports whether the public-value salt is still present.
func (p *IntegratedProof) HasSalt() bool {
	return p.pvSaltSet
}

// Salt returns the stored salt and whether it is present.
func (p *IntegratedProof) Salt() ([commitment.SaltSize]byte, bool) {
	return p.pvSalt, p.pvSaltSet
}

// EraseSalt overwrites the salt bytes and drops them from the proof. The
// binding hash and the STARK proof are unaffected; only the ability to open
// the commitment is destroyed. A second call is a no-op.
func (p *IntegratedProof) EraseSalt() {
	if !p.pvSaltSet {
		return
	}
	for i := range p.pvSalt {
		p.pvSalt[i] = 0
	}
	runtime.KeepAlive(&p.pvSalt)
	p.pvSaltSet = false
}

// ProofID returns a stable identifier for receipts and batch bookkeeping.
func (p *IntegratedProof) ProofID() hashing.Digest {
	msg := make([]byte, 0, 32+32+8+1)
	msg = append(msg, p.BindingHash[:]...)
	msg = append(msg, p.Committed.Commitment[:]...)
	msg = p.Epoch.AppendLE(msg)
	msg = append(msg, byte(p.AirType))
	return hashing.Hash(msg, hashing.DomainProofID)
}

// String redacts the salt unconditionally.
func (p *IntegratedProof) String() string {
	return fmt.Sprintf("proof.IntegratedProof{air: %s, epoch: %d, binding: %s, salt: <redacted>}",
		p.AirType, p.Epoch.Uint64(), p.BindingHash.Hex())
}

// GoString redacts under %#v as well.
func (p *IntegratedProof) GoString() string {
	return p.String()
}

// AirType re-exports the backend's AIR tag for callers that only touch the
// integration surface.
type AirType = stark.AirType

const (
	AirFibonacci      = stark.AirFibonacci
	AirSum            = stark.AirSum
	AirMultiplication = stark.AirMultiplication
	AirRange          = stark.AirRange
)
