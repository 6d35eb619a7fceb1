// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// ccEdge is an edge gathered during Catmull-Clark subdivision.
type ccEdge struct {
	a, b   int
	faces  [2]int
	nfaces int
	point  int
}

// Subdivide applies the given number of Catmull-Clark subdivision
// steps to the mesh and then recomputes all normals. Each step turns
// every cell into four, adding one face point per cell and one edge
// point per edge, and relaxes the original positions toward a smooth
// surface. Boundary edges use their midpoint and boundary positions
// follow the cubic B-spline boundary rule, so open meshes keep their
// outline instead of shrinking away from it.
func (m *Mesh) Subdivide(divisions int) error {
	if divisions < 0 {
		return fmt.Errorf("%w: %d divisions", ErrParam, divisions)
	}
	for _, c := range m.Cells {
		for _, pi := range c {
			if pi < 0 || pi >= len(m.Positions) {
				return fmt.Errorf("%w: %d", ErrIndexRange, pi)
			}
		}
	}
	for range divisions {
		m.subdivideOnce()
	}
	m.ComputeNormals()
	return nil
}

func (m *Mesh) subdivideOnce() {
	np, nc := len(m.Positions), len(m.Cells)

	facePoints := m.Centers()

	edges := make(map[int]*ccEdge, 2*nc)
	var order []*ccEdge
	for ci, c := range m.Cells {
		for k := range 4 {
			a, b := c[k], c[(k+1)%4]
			key := edgeKey(a, b, np)
			e := edges[key]
			if e == nil {
				e = &ccEdge{a: a, b: b}
				edges[key] = e
				order = append(order, e)
			}
			if e.nfaces < 2 {
				e.faces[e.nfaces] = ci
			}
			e.nfaces++
		}
	}

	out := make([]math32.Vector3, np+nc+len(order))

	// face points
	copy(out[np:], facePoints)

	// edge points, accumulating the per-position sums for the vertex rule
	faceSum := make([]math32.Vector3, np)
	faceCount := make([]int, np)
	midSum := make([]math32.Vector3, np)
	midCount := make([]int, np)
	boundarySum := make([]math32.Vector3, np)
	boundaryCount := make([]int, np)
	for ei, e := range order {
		e.point = np + nc + ei
		pa, pb := m.Positions[e.a], m.Positions[e.b]
		mid := pa.Add(pb).MulScalar(0.5)
		if e.nfaces >= 2 {
			out[e.point] = pa.Add(pb).Add(facePoints[e.faces[0]]).Add(facePoints[e.faces[1]]).MulScalar(0.25)
		} else {
			out[e.point] = mid
			for _, v := range [2]int{e.a, e.b} {
				boundarySum[v] = boundarySum[v].Add(mid)
				boundaryCount[v]++
			}
		}
		for _, v := range [2]int{e.a, e.b} {
			midSum[v] = midSum[v].Add(mid)
			midCount[v]++
		}
	}
	for ci, c := range m.Cells {
		for _, v := range c {
			faceSum[v] = faceSum[v].Add(facePoints[ci])
			faceCount[v]++
		}
	}

	// original positions
	for v, p := range m.Positions {
		switch {
		case boundaryCount[v] == 2:
			out[v] = boundarySum[v].MulScalar(0.25).Add(p.MulScalar(0.5))
		case boundaryCount[v] > 0 || faceCount[v] == 0:
			out[v] = p
		default:
			n := float32(faceCount[v])
			f := faceSum[v].DivScalar(n)
			r := midSum[v].DivScalar(float32(midCount[v]))
			out[v] = f.Add(r.MulScalar(2)).Add(p.MulScalar(n - 3)).DivScalar(n)
		}
	}

	cells := make([]Cell, 0, 4*nc)
	for ci, c := range m.Cells {
		f := np + ci
		var ep [4]int
		for k := range 4 {
			ep[k] = edges[edgeKey(c[k], c[(k+1)%4], np)].point
		}
		cells = append(cells,
			Cell{c[0], ep[0], f, ep[3]},
			Cell{ep[0], c[1], ep[1], f},
			Cell{f, ep[1], c[2], ep[2]},
			Cell{ep[3], f, ep[2], c[3]},
		)
	}

	m.Positions = out
	m.Normals = make([]math32.Vector3, len(out))
	m.Cells = cells
}
