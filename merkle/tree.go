// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package merkle

import (
	"errors"
	"sort"

	"github.com/veillabs/reclaim/common"
)

// Tree is a complete binary Merkle tree over a power-of-two number of
// leaves, stored as a flat array of generalized indices: the root is at
// index 1 and the children of node i are at 2i and 2i+1. Missing leaves are
// zero-filled. Trees are built by provers (peers assembling an execution
// call, the CLI tool); the engine itself only ever verifies.
type Tree struct {
	nodes []common.Hash
	depth uint
}

// BuildTree constructs the tree for the given leaves. The leaf count is
// rounded up to the next power of two.
func BuildTree(leaves []common.Hash) *Tree {
	size := 1
	depth := uint(0)
	for size < len(leaves) {
		size *= 2
		depth++
	}

	nodes := make([]common.Hash, 2*size)
	copy(nodes[size:], leaves)
	for i := size - 1; i >= 1; i-- {
		nodes[i] = common.HashPair(nodes[2*i], nodes[2*i+1])
	}
	return &Tree{nodes: nodes, depth: depth}
}

// Root returns the root hash of the tree.
func (t *Tree) Root() common.Hash {
	return t.nodes[1]
}

// Depth returns the number of levels below the root.
func (t *Tree) Depth() uint {
	return t.depth
}

// NumLeaves returns the leaf capacity of the tree.
func (t *Tree) NumLeaves() int {
	return len(t.nodes) / 2
}

// nodeRef identifies one pool slot while the proof is being assembled. The
// absolute pool index of siblings and internal nodes depends on the total
// sibling count, which is only known once assembly finished.
type nodeRef struct {
	kind int // 0 = leaf, 1 = sibling, 2 = internal
	pos  int
}

// BuildMultiProof produces the sibling hashes and pairing sequence proving
// the leaves at the given tree positions, in the exact encoding
// VerifyMultiProof consumes. positions[i] is the tree position of the i-th
// proved leaf, so the proof matches the caller's leaf ordering whatever it
// is. Positions must be distinct and within the tree.
func (t *Tree) BuildMultiProof(positions []int) (siblings []common.Hash, indices []uint16, err error) {
	if len(positions) == 0 {
		return nil, nil, errors.New("no leaf positions given")
	}

	base := uint64(t.NumLeaves())
	known := map[uint64]nodeRef{}
	for i, pos := range positions {
		if pos < 0 || pos >= t.NumLeaves() {
			return nil, nil, errors.New("leaf position out of range")
		}
		gi := base + uint64(pos)
		if _, exists := known[gi]; exists {
			return nil, nil, errors.New("duplicate leaf position")
		}
		known[gi] = nodeRef{kind: 0, pos: i}
	}

	type step struct {
		left, right nodeRef
	}
	var steps []step
	numInternal := 0

	// Reduce one level at a time; within a level pair nodes in ascending
	// generalized-index order, pulling in an external sibling whenever the
	// counterpart is not derivable from the proved leaves.
	for level := t.depth; level > 0; level-- {
		var gis []uint64
		for gi := range known {
			if levelOf(gi) == level {
				gis = append(gis, gi)
			}
		}
		sort.Slice(gis, func(i, j int) bool { return gis[i] < gis[j] })

		for _, gi := range gis {
			if _, done := known[gi/2]; done {
				continue // parent already produced by the sibling's turn
			}
			sib := gi ^ 1
			sibRef, sibKnown := known[sib]
			if !sibKnown {
				sibRef = nodeRef{kind: 1, pos: len(siblings)}
				siblings = append(siblings, t.nodes[sib])
				known[sib] = sibRef
			}
			left, right := known[gi], sibRef
			if gi%2 == 1 {
				left, right = right, left
			}
			steps = append(steps, step{left: left, right: right})
			known[gi/2] = nodeRef{kind: 2, pos: numInternal}
			numInternal++
		}
	}

	// Resolve symbolic references now that the sibling count is fixed.
	numLeaves := len(positions)
	resolve := func(r nodeRef) uint16 {
		switch r.kind {
		case 0:
			return uint16(r.pos)
		case 1:
			return uint16(numLeaves + r.pos)
		default:
			return uint16(numLeaves + len(siblings) + r.pos)
		}
	}
	indices = make([]uint16, 0, 2*len(steps))
	for _, s := range steps {
		indices = append(indices, resolve(s.left), resolve(s.right))
	}
	return siblings, indices, nil
}

// levelOf returns the level of a generalized index, counting the root as
// level 0.
func levelOf(gi uint64) uint {
	level := uint(0)
	for gi > 1 {
		gi /= 2
		level++
	}
	return level
}
