// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bake

import (
	"cogentcore.org/core/math32"
	"github.com/quadsculpt/quadsculpt/quads"
)

// Stats summarizes a mesh.
type Stats struct {
	Positions int
	Cells     int
	Triangles int
	Edges     int

	// Boundary is the number of edges used by only one cell.
	Boundary int

	// Duplicates is the number of positions exactly equal to an
	// earlier one, which [quads.Mesh.MergePositions] would remove.
	Duplicates int

	Bounds math32.Box3
}

// Closed returns whether every edge is shared by at least two cells.
func (s Stats) Closed() bool {
	return s.Cells > 0 && s.Boundary == 0
}

// ComputeStats returns the stats for the mesh.
func ComputeStats(m *quads.Mesh) Stats {
	s := Stats{
		Positions: len(m.Positions),
		Cells:     len(m.Cells),
		Triangles: 2 * len(m.Cells),
		Bounds:    m.Bounds(),
	}
	uses := map[[2]int]int{}
	for _, c := range m.Cells {
		for k := range 4 {
			a, b := c[k], c[(k+1)%4]
			uses[[2]int{min(a, b), max(a, b)}]++
		}
	}
	s.Edges = len(uses)
	for _, n := range uses {
		if n == 1 {
			s.Boundary++
		}
	}
	s.Duplicates = m.Clone().MergePositions()
	return s
}
