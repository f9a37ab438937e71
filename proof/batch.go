// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"github.com/luxfi/zkmtd/epoch"
	"github.com/luxfi/zkmtd/hashing"
	"github.com/luxfi/zkmtd/merkle"
)

// MaxBatchSize bounds the proofs aggregated under one Merkle root.
const MaxBatchSize = 1000

// Batch aggregates same-epoch proofs under a Merkle root over their
// serialized byte-images.
type Batch struct {
	Proofs     []*IntegratedProof
	MerkleRoot hashing.Digest
	Epoch      epoch.Epoch

	tree *merkle.Tree
}

// NewBatch builds a batch over proofs. All proofs must share one epoch and
// the batch must hold between 1 and MaxBatchSize-1 proofs.
func NewBatch(proofs []*IntegratedProof) (*Batch, error) {
	if len(proofs) == 0 {
		return nil, &BatchError{Reason: "empty batch"}
	}
	if len(proofs) >= MaxBatchSize {
		return nil, &BatchError{Reason: "batch exceeds maximum size"}
	}
	e := proofs[0].Epoch
	leaves := make([][]byte, len(proofs))
	for i, p := range proofs {
		if p.Epoch != e {
			return nil, &BatchError{Reason: "epoch mismatch across batch"}
		}
		enc, err := EncodeProof(p)
		if err != nil {
			return nil, &BatchError{Reason: "unencodable proof"}
		}
		leaves[i] = enc
	}
	tree, err := merkle.BuildTree(leaves, hashing.DomainMerkle)
	if err != nil {
		return nil, &BatchError{Reason: err.Error()}
	}
	return &Batch{
		Proofs:     proofs,
		MerkleRoot: tree.Root(),
		Epoch:      e,
		tree:       tree,
	}, nil
}

// Leaf returns the leaf digest for proof i.
func (b *Batch) Leaf(i int) (hashing.Digest, error) {
	d, err := b.tree.Leaf(i)
	if err != nil {
		return hashing.Digest{}, &BatchError{Reason: err.Error()}
	}
	return d, nil
}

// InclusionPath returns the Merkle path for proof i.
func (b *Batch) InclusionPath(i int) (merkle.Path, error) {
	path, err := b.tree.ProvePath(i)
	if err != nil {
		return nil, &BatchError{Reason: err.Error()}
	}
	return path, nil
}

// VerifyInclusion re-derives the root from a leaf along path and compares
// against root in constant time.
func VerifyInclusion(path merkle.Path, leaf, root hashing.Digest) bool {
	return path.Verify(leaf, root, hashing.DomainMerkle)
}
