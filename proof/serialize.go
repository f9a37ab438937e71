// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"encoding/binary"

	"github.com/luxfi/zkmtd/commitment"
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/stark"
)

// Wire layout:
//
//	air | epoch LE64 | domain_separator 32 | salt 32 | fri_seed 32 |
//	binding 32 | commitment 32 | value_count LE32 |
//	pv_len LE32 | pv... | stark_len LE32 | stark... |
//	salt_flag | [pv_salt 32] | integrity 32
//
// The trailing integrity digest covers everything before it and is checked
// in constant time on decode.

// integrityDigest is the single hashing site for the integrity domain; both
// encode and decode go through it.
func integrityDigest(payload []byte) hashing.Digest {
	return hashing.Hash(payload, hashing.DomainProofIntegrity)
}

// EncodeProof serializes p for transport or storage. The public-value salt
// is included only while still present on the proof.
func EncodeProof(p *IntegratedProof) ([]byte, error) {
	if p == nil || !p.AirType.Valid() {
		return nil, ErrSerialization
	}
	pvSer := field.SerializeVec(p.PublicValues)
	buf := make([]byte, 0, 1+8+5*32+4+4+len(pvSer)+4+len(p.StarkProof)+1+32+32)
	buf = append(buf, byte(p.AirType))
	buf = p.Epoch.AppendLE(buf)
	buf = append(buf, p.Params.DomainSeparator[:]...)
	buf = append(buf, p.Params.Salt[:]...)
	buf = append(buf, p.Params.FRISeed[:]...)
	buf = append(buf, p.BindingHash[:]...)
	buf = append(buf, p.Committed.Commitment[:]...)
	buf = p.Committed.AppendCount(buf)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.PublicValues)))
	buf = append(buf, pvSer...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(p.StarkProof)))
	buf = append(buf, p.StarkProof...)
	if p.pvSaltSet {
		buf = append(buf, 1)
		buf = append(buf, p.pvSalt[:]...)
	} else {
		buf = append(buf, 0)
	}
	integrity := integrityDigest(buf)
	buf = append(buf, integrity[:]...)
	return buf, nil
}

// DecodeProof parses and integrity-checks an encoded proof.
func DecodeProof(b []byte) (*IntegratedProof, error) {
	if len(b) < 32 {
		return nil, ErrSerialization
	}
	payload := b[:len(b)-32]
	var stored hashing.Digest
	copy(stored[:], b[len(b)-32:])
	if !hashing.CtEq32(integrityDigest(payload), stored) {
		return nil, ErrSerialization
	}

	const fixed = 1 + 8 + 5*32 + 4 + 4
	if len(payload) < fixed {
		return nil, ErrSerialization
	}
	p := &IntegratedProof{AirType: stark.AirType(payload[0])}
	if !p.AirType.Valid() {
		return nil, ErrSerialization
	}
	off := 1
	p.Epoch = epoch.Epoch(binary.LittleEndian.Uint64(payload[off : off+8]))
	off += 8
	p.Params.Epoch = p.Epoch
	copy(p.Params.DomainSeparator[:], payload[off:off+32])
	off += 32
	copy(p.Params.Salt[:], payload[off:off+32])
	off += 32
	copy(p.Params.FRISeed[:], payload[off:off+32])
	off += 32
	copy(p.BindingHash[:], payload[off:off+32])
	off += 32
	copy(p.Committed.Commitment[:], payload[off:off+32])
	off += 32
	p.Committed.ValueCount = binary.LittleEndian.Uint32(payload[off : off+4])
	off += 4
	pvLen := int(binary.LittleEndian.Uint32(payload[off : off+4]))
	off += 4
	if pvLen > stark.MaxTraceRows || off+pvLen*field.ElementSize+4 > len(payload) {
		return nil, ErrSerialization
	}
	pv, err := field.DeserializeVec(payload[off : off+pvLen*field.ElementSize])
	if err != nil {
		return nil, ErrSerialization
	}
	p.PublicValues = pv
	off += pvLen * field.ElementSize
	starkLen := int(binary.LittleEndian.Uint32(payload[off : off+4]))
	off += 4
	if off+starkLen+1 > len(payload) {
		return nil, ErrSerialization
	}
	p.StarkProof = append([]byte(nil), payload[off:off+starkLen]...)
	off += starkLen
	flag := payload[off]
	off++
	switch flag {
	case 0:
	case 1:
		if off+commitment.SaltSize != len(payload) {
			return nil, ErrSerialization
		}
		copy(p.pvSalt[:], payload[off:off+commitment.SaltSize])
		off += commitment.SaltSize
		p.pvSaltSet = true
	default:
		return nil, ErrSerialization
	}
	if off != len(payload) {
		return nil, ErrSerialization
	}
	return p, nil
}
