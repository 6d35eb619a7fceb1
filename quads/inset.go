// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import "cogentcore.org/core/math32"

// InsetResult describes the cells and positions produced by an inset
// or extrusion.
type InsetResult struct {

	// Cell is the inner cell, which reuses the index of the inset cell.
	Cell int

	// Ring are the four cells connecting the original corners to the
	// inner ones, in the order of the original edges 0→1, 1→2, 2→3, 3→0.
	Ring [4]int

	// Inner has every position index located at an inner corner,
	// including the separate copies made by disjoint insets.
	Inner []int
}

// Cells returns the inner cell followed by the ring cells.
func (r InsetResult) Cells() []int {
	return []int{r.Cell, r.Ring[0], r.Ring[1], r.Ring[2], r.Ring[3]}
}

func (m *Mesh) inset(ci int, t float32, disjoint bool) (InsetResult, error) {
	if err := m.checkCell(ci); err != nil {
		return InsetResult{}, err
	}
	if err := checkParam(t); err != nil {
		return InsetResult{}, err
	}
	c := m.Cells[ci]
	center := m.CellCenter(ci)
	faceNormal := m.CellNormal(ci)

	var in Cell
	for k, pi := range c {
		n := m.Normals[pi]
		if disjoint {
			n = faceNormal
		}
		in[k] = m.addPosition(m.Positions[pi].Lerp(center, t), n)
	}
	m.Cells[ci] = in

	res := InsetResult{Cell: ci, Inner: []int{in[0], in[1], in[2], in[3]}}
	for k := 0; k < 4; k++ {
		k1 := (k + 1) % 4
		ring := Cell{c[k], c[k1], in[k1], in[k]}
		if disjoint {
			for j, pi := range ring {
				ring[j] = m.addPosition(m.Positions[pi], faceNormal)
			}
			res.Inner = append(res.Inner, ring[2], ring[3])
		}
		res.Ring[k] = m.addCell(ring)
	}
	return res, nil
}

// Inset shrinks cell ci toward its centroid by t (0 leaves it in
// place, 1 collapses it to the centroid) and surrounds it with four
// ring cells connecting the original corners to the new inner ones.
func (m *Mesh) Inset(ci int, t float32) (InsetResult, error) {
	return m.inset(ci, t, false)
}

// InsetDisjoint is [Mesh.Inset], except that each ring cell gets its
// own copies of its four corners, so that the ring is not welded to
// the inner cell or to the surrounding mesh.
func (m *Mesh) InsetDisjoint(ci int, t float32) (InsetResult, error) {
	return m.inset(ci, t, true)
}

func (m *Mesh) extrude(ci int, insetT, distance float32, disjoint bool) (InsetResult, error) {
	if err := m.checkCell(ci); err != nil {
		return InsetResult{}, err
	}
	offset := m.CellNormal(ci).MulScalar(distance)
	res, err := m.inset(ci, insetT, disjoint)
	if err != nil {
		return res, err
	}
	for _, pi := range res.Inner {
		m.Positions[pi] = m.Positions[pi].Add(offset)
	}
	if disjoint {
		m.flatNormals(res.Cells())
	} else {
		m.smoothNormals(res.Cells())
	}
	return res, nil
}

// Extrude insets cell ci by insetT and then moves the inner cell along
// the original face normal by distance, growing the mesh out of that
// face. The normals of the affected positions are recomputed.
func (m *Mesh) Extrude(ci int, insetT, distance float32) (InsetResult, error) {
	return m.extrude(ci, insetT, distance, false)
}

// ExtrudeDisjoint is [Mesh.Extrude] on top of [Mesh.InsetDisjoint],
// which gives the extruded sides hard, flat-shaded edges.
func (m *Mesh) ExtrudeDisjoint(ci int, insetT, distance float32) (InsetResult, error) {
	return m.extrude(ci, insetT, distance, true)
}

// flatNormals sets the normals of every corner of the given cells
// to the normal of that cell.
func (m *Mesh) flatNormals(cells []int) {
	for _, ci := range cells {
		n := m.CellNormal(ci)
		for _, pi := range m.Cells[ci] {
			m.Normals[pi] = n
		}
	}
}

// smoothNormals recomputes the normals of every corner of the given
// cells from all of the cells that reference them.
func (m *Mesh) smoothNormals(cells []int) {
	touched := map[int]bool{}
	for _, ci := range cells {
		for _, pi := range m.Cells[ci] {
			touched[pi] = true
		}
	}
	sums := make(map[int]math32.Vector3, len(touched))
	for ci, c := range m.Cells {
		var n math32.Vector3
		computed := false
		for _, pi := range c {
			if !touched[pi] {
				continue
			}
			if !computed {
				n = m.CellNormal(ci)
				computed = true
			}
			sums[pi] = sums[pi].Add(n)
		}
	}
	for pi, sum := range sums {
		m.Normals[pi] = normalize(sum)
	}
}
