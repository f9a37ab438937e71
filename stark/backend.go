// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stark

import (
	"encoding/binary"
	"errors"
	"sort"

	"github.com/luxfi/zkmtd/field"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/merkle"
)

// DefaultNumQueries is the spot-check count of the reference backend.
const DefaultNumQueries = 16

const proofVersion byte = 1

var ErrMalformedProof = errors.New("stark: malformed proof bytes")

// ReferenceBackend is the deterministic hash-based backend shipped with the
// library. It commits to the trace with Poseidon2 row hashes in a Merkle
// tree and answers Fiat-Shamir challenges with opened rows.
type ReferenceBackend struct {
	NumQueries int
}

// NewReferenceBackend returns a backend with the default query count.
func NewReferenceBackend() *ReferenceBackend {
	return &ReferenceBackend{NumQueries: DefaultNumQueries}
}

var _ Backend = (*ReferenceBackend)(nil)

// opening is one revealed trace row with its inclusion path.
type opening struct {
	index int
	row   []field.Element
	path  merkle.Path
}

// constraintID commits the AIR shape the transcript is bound to, the way a
// program hash pins a verifier to one constraint system.
func constraintID(air AirType, width, numRows int) hashing.Digest {
	buf := make([]byte, 0, 6)
	buf = append(buf, byte(air), byte(width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(numRows))
	return hashing.Hash(buf, hashing.DomainStarkConstraint)
}

// oodDigest is the out-of-domain consistency value bound to the sampling
// challenge z.
func oodDigest(root hashing.Digest, pvSer []byte, z uint64) hashing.Digest {
	msg := make([]byte, 0, len(root)+len(pvSer)+8)
	msg = append(msg, root[:]...)
	msg = append(msg, pvSer...)
	msg = binary.LittleEndian.AppendUint64(msg, z)
	return hashing.Hash(msg, hashing.DomainStarkOOD)
}

// composite folds a row into one element with powers of alpha.
func composite(row []field.Element, alpha field.Element) field.Element {
	var acc field.Element
	pow := field.FromUint64(1)
	for j := range row {
		acc = field.Add(acc, field.Mul(pow, row[j]))
		pow = field.Mul(pow, alpha)
	}
	return acc
}

// foldDigest hashes the FRI-style folded composition values of the queried
// row pairs.
func foldDigest(folds []field.Element) hashing.Digest {
	return hashing.Hash(field.SerializeVec(folds), hashing.DomainStarkFRI)
}

// Prove generates a proof for (air, witness, publicValues).
func (b *ReferenceBackend) Prove(air AirType, w *Witness, publicValues []field.Element) ([]byte, error) {
	if !air.Valid() {
		return nil, ErrUnknownAir
	}
	tr, err := buildTrace(air, w, publicValues)
	if err != nil {
		return nil, err
	}
	numRows := len(tr.rows)
	width := air.width()

	rowBytes := make([][]byte, numRows)
	for i, row := range tr.rows {
		rowBytes[i] = field.SerializeVec(row)
	}
	tree, err := merkle.BuildTree(rowBytes, hashing.DomainStarkTrace)
	if err != nil {
		return nil, err
	}
	root := tree.Root()
	pvSer := field.SerializeVec(publicValues)

	t := newTranscript()
	cid := constraintID(air, width, numRows)
	t.absorb(cid.Bytes())
	t.absorb(pvSer)
	t.absorb(root.Bytes())

	z := t.challenge()
	ood := oodDigest(root, pvSer, z)

	alpha := field.FromUint64(t.challenge())
	beta := field.FromUint64(t.challenge())
	indices := t.queryIndices(b.NumQueries, numRows)

	// Reveal the boundary rows plus each query row and its successor.
	need := make(map[int]struct{})
	for _, i := range tr.boundaryRows() {
		need[i] = struct{}{}
	}
	for _, i := range indices {
		need[i] = struct{}{}
		need[i+1] = struct{}{}
	}
	open := make([]opening, 0, len(need))
	for i := range need {
		path, err := tree.ProvePath(i)
		if err != nil {
			return nil, err
		}
		open = append(open, opening{index: i, row: tr.rows[i], path: path})
	}
	sort.Slice(open, func(i, j int) bool { return open[i].index < open[j].index })

	folds := make([]field.Element, len(indices))
	for k, i := range indices {
		folds[k] = field.Add(composite(tr.rows[i], alpha), field.Mul(beta, composite(tr.rows[i+1], alpha)))
	}
	fri := foldDigest(folds)

	return encodeBackendProof(air, numRows, width, root, ood, fri, open), nil
}

// Verify checks a proof. Structural garbage returns an error; an honest
// mismatch returns (false, nil).
func (b *ReferenceBackend) Verify(air AirType, proofBytes []byte, publicValues []field.Element) (bool, error) {
	if !air.Valid() {
		return false, ErrUnknownAir
	}
	decoded, err := decodeBackendProof(proofBytes)
	if err != nil {
		return false, err
	}
	if decoded.air != air || decoded.width != air.width() {
		return false, nil
	}
	numRows := decoded.numRows
	if !isPowerOfTwo(numRows) || numRows < MinWitnessSize || numRows > MaxTraceRows {
		return false, nil
	}
	if air == AirRange && numRows != rangeRows {
		return false, nil
	}
	wantPV := 1
	if air == AirFibonacci {
		wantPV = 4
	}
	if len(publicValues) != wantPV {
		return false, nil
	}

	// Authenticate every opened row against the trace commitment.
	rows := make([][]field.Element, numRows)
	for _, o := range decoded.openings {
		if o.index < 0 || o.index >= numRows || len(o.row) != decoded.width {
			return false, nil
		}
		leaf := merkle.HashLeaf(field.SerializeVec(o.row), hashing.DomainStarkTrace)
		if !o.path.Verify(leaf, decoded.root, hashing.DomainStarkTrace) {
			return false, nil
		}
		rows[o.index] = o.row
	}

	pvSer := field.SerializeVec(publicValues)
	t := newTranscript()
	cid := constraintID(air, decoded.width, numRows)
	t.absorb(cid.Bytes())
	t.absorb(pvSer)
	t.absorb(decoded.root.Bytes())

	z := t.challenge()
	if !hashing.CtEq32(oodDigest(decoded.root, pvSer, z), decoded.ood) {
		return false, nil
	}
	alpha := field.FromUint64(t.challenge())
	beta := field.FromUint64(t.challenge())
	indices := t.queryIndices(b.NumQueries, numRows)

	if !checkBoundary(air, rows, numRows, publicValues) {
		return false, nil
	}
	folds := make([]field.Element, len(indices))
	for k, i := range indices {
		cur, next := rows[i], rows[i+1]
		if cur == nil || next == nil {
			return false, nil
		}
		if !checkRow(air, cur) || !checkRow(air, next) {
			return false, nil
		}
		if !checkTransition(air, cur, next) {
			return false, nil
		}
		folds[k] = field.Add(composite(cur, alpha), field.Mul(beta, composite(next, alpha)))
	}
	if !hashing.CtEq32(foldDigest(folds), decoded.fri) {
		return false, nil
	}
	return true, nil
}
