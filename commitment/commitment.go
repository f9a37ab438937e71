// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package commitment implements salted commitments to public-value vectors.
// The commitment lets a proof carry only a digest of its public values; the
// plaintext vector can be withheld or erased later without invalidating the
// proof's binding hash.
package commitment

import (
	"encoding/binary"

	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
)

// SaltSize is the byte length of a public-value salt.
const SaltSize = 32

// CommittedPublicInputs pairs a salted commitment with the committed vector
// length. The length is part of the commitment domain and of the binding
// hash, which blocks truncation and extension of the vector.
type CommittedPublicInputs struct {
	Commitment hashing.Digest
	ValueCount uint32
}

// DerivePVSalt derives a public-value salt from (seed, epoch, nonce).
// Callers wanting unlinkable proofs across re-uses supply a fresh nonce.
func DerivePVSalt(seed []byte, e epoch.Epoch, nonce []byte) [SaltSize]byte {
	msg := make([]byte, 0, len(seed)+8+len(nonce))
	msg = append(msg, seed...)
	msg = e.AppendLE(msg)
	msg = append(msg, nonce...)
	d := hashing.Hash(msg, hashing.DomainPVSalt)
	return [SaltSize]byte(d)
}

// Commit commits to values under salt.
func Commit(values []field.Element, salt [SaltSize]byte) CommittedPublicInputs {
	ser := field.SerializeVec(values)
	msg := make([]byte, 0, len(ser)+SaltSize)
	msg = append(msg, ser...)
	msg = append(msg, salt[:]...)
	return CommittedPublicInputs{
		Commitment: hashing.Hash(msg, hashing.DomainPVCommit),
		ValueCount: uint32(len(values)),
	}
}

// VerifyOpening checks that (values, salt) opens committed. The digest
// comparison is constant time; the count check is folded in afterwards.
func VerifyOpening(values []field.Element, salt [SaltSize]byte, committed CommittedPublicInputs) bool {
	recomputed := Commit(values, salt)
	ok := hashing.CtEq32(recomputed.Commitment, committed.Commitment)
	return ok && recomputed.ValueCount == committed.ValueCount
}

// AppendCount appends the 4-byte little-endian value count to dst.
func (c CommittedPublicInputs) AppendCount(dst []byte) []byte {
	return binary.LittleEndian.AppendUint32(dst, c.ValueCount)
}
