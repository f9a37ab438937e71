// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"encoding/binary"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/mtd"
	"github.com/luxfi/zkmtd/stark"
)

// LightweightSize is the fixed wire width of a lightweight proof:
// binding 32 + commitment 32 + value_count 4 + epoch 8 + air tag 1.
const LightweightSize = 77

// LightweightProof is the minimal on-chain payload: a strict projection of
// an IntegratedProof without the STARK bytes, the public values or the
// salt. An on-chain verifier recomputes only the binding hash against the
// current parameter set; full STARK verification stays off-chain.
type LightweightProof struct {
	BindingHash hashing.Digest
	Commitment  hashing.Digest
	ValueCount  uint32
	Epoch       epoch.Epoch
	AirType     stark.AirType
}

// Lightweight projects p into its on-chain payload.
func Lightweight(p *IntegratedProof) *LightweightProof {
	return &LightweightProof{
		BindingHash: p.BindingHash,
		Commitment:  p.Committed.Commitment,
		ValueCount:  p.Committed.ValueCount,
		Epoch:       p.Epoch,
		AirType:     p.AirType,
	}
}

// Encode serializes the fixed-width record.
func (l *LightweightProof) Encode() []byte {
	buf := make([]byte, 0, LightweightSize)
	buf = append(buf, l.BindingHash[:]...)
	buf = append(buf, l.Commitment[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, l.ValueCount)
	buf = l.Epoch.AppendLE(buf)
	buf = append(buf, byte(l.AirType))
	return buf
}

// DecodeLightweight parses a fixed-width record.
func DecodeLightweight(b []byte) (*LightweightProof, error) {
	if len(b) != LightweightSize {
		return nil, ErrSerialization
	}
	l := &LightweightProof{}
	copy(l.BindingHash[:], b[:32])
	copy(l.Commitment[:], b[32:64])
	l.ValueCount = binary.LittleEndian.Uint32(b[64:68])
	l.Epoch = epoch.Epoch(binary.LittleEndian.Uint64(b[68:76]))
	l.AirType = stark.AirType(b[76])
	if !l.AirType.Valid() {
		return nil, ErrSerialization
	}
	return l, nil
}

// VerifyBinding recomputes the binding hash from the asserted public values
// and the current parameter set, comparing in constant time. This is the
// whole on-chain check; nothing beyond hashing is performed.
func (l *LightweightProof) VerifyBinding(params mtd.Params, values []field.Element) bool {
	if uint32(len(values)) != l.ValueCount {
		return false
	}
	if params.Epoch != l.Epoch {
		return false
	}
	committed := commitment.CommittedPublicInputs{
		Commitment: l.Commitment,
		ValueCount: l.ValueCount,
	}
	expected := BindingHash(values, committed, l.Epoch, params)
	return hashing.CtEq32(expected, l.BindingHash)
}

// VerifyCommitment is the privacy path: the caller asserts only the
// commitment digest, which is compared in constant time.
func (l *LightweightProof) VerifyCommitment(expected hashing.Digest) bool {
	return hashing.CtEq32(expected, l.Commitment)
}
