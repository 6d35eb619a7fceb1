// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import (
	"math"

	"cogentcore.org/core/math32"
)

// positionKey identifies a position by the exact bits of its
// coordinates, with -0 folded into +0.
type positionKey [3]uint32

func keyOf(p math32.Vector3) positionKey {
	bits := func(f float32) uint32 {
		if f == 0 {
			return 0
		}
		return math.Float32bits(f)
	}
	return positionKey{bits(p.X), bits(p.Y), bits(p.Z)}
}

// MergePositions merges positions that are exactly equal, keeping the
// first occurrence (and its normal), re-indexing all cells and
// compacting the remaining positions in their original order. It
// returns the number of positions removed. Running it again on its
// result removes nothing.
//
// This is typically used after disjoint operations whose halves still
// touch. Cells whose corners merge together, such as the ring of a
// zero-distance, zero-inset extrusion, are kept in place as degenerate
// cells, so cell indexes stay valid; [Mesh.Validate] then reports them
// with [ErrDegenerate]. It is a hash lookup per position rather than a pairwise
// comparison, so it scales to subdivided meshes.
func (m *Mesh) MergePositions() int {
	seen := make(map[positionKey]int, len(m.Positions))
	remap := make([]int, len(m.Positions))
	positions := m.Positions[:0:0]
	normals := m.Normals[:0:0]
	for pi, p := range m.Positions {
		key := keyOf(p)
		if to, ok := seen[key]; ok && !math32.IsNaN(p.X+p.Y+p.Z) {
			remap[pi] = to
			continue
		}
		to := len(positions)
		seen[key] = to
		remap[pi] = to
		positions = append(positions, p)
		if pi < len(m.Normals) {
			normals = append(normals, m.Normals[pi])
		} else {
			normals = append(normals, math32.Vector3{})
		}
	}
	removed := len(m.Positions) - len(positions)
	for ci, c := range m.Cells {
		for k, pi := range c {
			if pi >= 0 && pi < len(remap) {
				c[k] = remap[pi]
			}
		}
		m.Cells[ci] = c
	}
	m.Positions = positions
	m.Normals = normals
	return removed
}
