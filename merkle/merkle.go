// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package merkle builds binary Merkle trees over byte-image leaves with
// inclusion paths. The domain tag is supplied by the caller so that each
// tree family (proof batches, trace commitments) hashes under its own tag.
package merkle

import (
	"fmt"

	"github.com/luxfi/zkmtd/hashing"
)

// Error reports a tree construction or path failure.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "merkle: " + e.Reason
}

// Side locates a path sibling relative to the running node.
type Side uint8

const (
	SideLeft  Side = 0 // sibling is the left input
	SideRight Side = 1 // sibling is the right input
)

// PathNode is one step of an inclusion path.
type PathNode struct {
	Sibling hashing.Digest
	Side    Side
}

// Path is an inclusion path from a leaf to the root.
type Path []PathNode

// Tree is a binary Merkle tree. Odd levels duplicate their last node.
type Tree struct {
	domain string
	levels [][]hashing.Digest
}

// HashLeaf digests a leaf byte-image under domain. Callers verifying an
// inclusion path recompute their leaf through this.
func HashLeaf(data []byte, domain string) hashing.Digest {
	return hashing.Hash(data, domain)
}

// BuildTree hashes each leaf byte-image under domain and folds the levels.
func BuildTree(leaves [][]byte, domain string) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, &Error{Reason: "empty leaf set"}
	}
	level := make([]hashing.Digest, len(leaves))
	for i, l := range leaves {
		level[i] = HashLeaf(l, domain)
	}
	t := &Tree{domain: domain, levels: [][]hashing.Digest{level}}
	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]hashing.Digest, len(level)/2)
		for i := range next {
			next[i] = hashing.Combine(level[2*i], level[2*i+1], domain)
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

// Root returns the tree root.
func (t *Tree) Root() hashing.Digest {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// LeafCount returns the number of original leaves.
func (t *Tree) LeafCount() int {
	return len(t.levels[0])
}

// Leaf returns the digest of leaf i.
func (t *Tree) Leaf(i int) (hashing.Digest, error) {
	if i < 0 || i >= t.LeafCount() {
		return hashing.Digest{}, &Error{Reason: fmt.Sprintf("leaf index %d out of range", i)}
	}
	return t.levels[0][i], nil
}

// ProvePath produces the inclusion path for leaf i.
func (t *Tree) ProvePath(i int) (Path, error) {
	if i < 0 || i >= t.LeafCount() {
		return nil, &Error{Reason: fmt.Sprintf("leaf index %d out of range", i)}
	}
	var path Path
	idx := i
	for _, level := range t.levels[:len(t.levels)-1] {
		sib := idx ^ 1
		node := PathNode{Side: SideRight}
		if idx%2 == 1 {
			node.Side = SideLeft
		}
		if sib < len(level) {
			node.Sibling = level[sib]
		} else {
			// Odd level: the last node was duplicated.
			node.Sibling = level[idx]
		}
		path = append(path, node)
		idx /= 2
	}
	return path, nil
}

// Verify re-derives the root from leaf along the path and compares it with
// root in constant time.
func (p Path) Verify(leaf hashing.Digest, root hashing.Digest, domain string) bool {
	current := leaf
	for _, node := range p {
		if node.Side == SideLeft {
			current = hashing.Combine(node.Sibling, current, domain)
		} else {
			current = hashing.Combine(current, node.Sibling, domain)
		}
	}
	return hashing.CtEq32(current, root)
}
