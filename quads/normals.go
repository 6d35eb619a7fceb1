// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import "cogentcore.org/core/math32"

// ComputeNormals sets every normal to the normalized sum of the face
// normals of the cells that reference its position. Positions that no
// cell references get a zero normal.
func (m *Mesh) ComputeNormals() {
	faces := make([]math32.Vector3, len(m.Cells))
	for ci := range m.Cells {
		faces[ci] = m.CellNormal(ci)
	}
	adj := m.positionCells()
	normals := make([]math32.Vector3, len(m.Positions))
	for pi, cells := range adj {
		var sum math32.Vector3
		for _, ci := range cells {
			sum = sum.Add(faces[ci])
		}
		normals[pi] = normalize(sum)
	}
	m.Normals = normals
}

// FlatNormals gives every cell its own copy of its corners and sets
// their normals to the face normal, for a faceted look. The number of
// positions becomes four times the number of cells.
func (m *Mesh) FlatNormals() {
	positions := make([]math32.Vector3, 0, 4*len(m.Cells))
	normals := make([]math32.Vector3, 0, 4*len(m.Cells))
	for ci, c := range m.Cells {
		n := m.CellNormal(ci)
		var nc Cell
		for k, pi := range c {
			nc[k] = len(positions)
			positions = append(positions, m.Positions[pi])
			normals = append(normals, n)
		}
		m.Cells[ci] = nc
	}
	m.Positions = positions
	m.Normals = normals
}
