// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/mtd"
)

// BindingHash couples a proof to an exact (public values, commitment,
// epoch, parameter set) tuple. This is the central anti-substitution
// construction: the value count inside the preimage blocks truncation and
// extension of the vector, and the three rotating digests invalidate the
// hash the moment the epoch's parameters change.
//
// This is the only implementation of the formula in the code base; prover,
// verifier and the lightweight on-chain path all call it.
func BindingHash(
	values []field.Element,
	committed commitment.CommittedPublicInputs,
	e epoch.Epoch,
	params mtd.Params,
) hashing.Digest {
	ser := field.SerializeVec(values)
	msg := make([]byte, 0, len(ser)+32+4+8+3*32)
	msg = append(msg, ser...)
	msg = append(msg, committed.Commitment[:]...)
	msg = committed.AppendCount(msg)
	msg = e.AppendLE(msg)
	msg = append(msg, params.DomainSeparator[:]...)
	msg = append(msg, params.FRISeed[:]...)
	msg = append(msg, params.Salt[:]...)
	return hashing.Hash(msg, hashing.DomainBinding)
}
