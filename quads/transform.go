// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import (
	"fmt"
	"slices"

	"cogentcore.org/core/math32"
)

// Field is a scalar field over space, such as a noise generator.
type Field interface {
	Sample(p math32.Vector3) float32
}

// cellPositions returns the sorted unique position indexes of the cells.
func (m *Mesh) cellPositions(cells []int) ([]int, error) {
	seen := map[int]bool{}
	var pis []int
	for _, ci := range cells {
		if err := m.checkCell(ci); err != nil {
			return nil, err
		}
		for _, pi := range m.Cells[ci] {
			if !seen[pi] {
				seen[pi] = true
				pis = append(pis, pi)
			}
		}
	}
	slices.Sort(pis)
	return pis, nil
}

// pivot returns the average of the given positions.
func (m *Mesh) pivot(pis []int) math32.Vector3 {
	var sum math32.Vector3
	if len(pis) == 0 {
		return sum
	}
	for _, pi := range pis {
		sum = sum.Add(m.Positions[pi])
	}
	return sum.DivScalar(float32(len(pis)))
}

// TranslateCells moves every position of the given cells by offset.
// Positions shared by several of the cells are moved once.
func (m *Mesh) TranslateCells(cells []int, offset math32.Vector3) error {
	pis, err := m.cellPositions(cells)
	if err != nil {
		return err
	}
	for _, pi := range pis {
		m.Positions[pi] = m.Positions[pi].Add(offset)
	}
	return nil
}

// ScaleCells scales the positions of the given cells about their
// common centroid.
func (m *Mesh) ScaleCells(cells []int, scale math32.Vector3) error {
	pis, err := m.cellPositions(cells)
	if err != nil {
		return err
	}
	center := m.pivot(pis)
	for _, pi := range pis {
		m.Positions[pi] = m.Positions[pi].Sub(center).Mul(scale).Add(center)
	}
	return nil
}

// RotateCells rotates the positions of the given cells, and their
// normals, by angle radians about axis through their common centroid.
func (m *Mesh) RotateCells(cells []int, axis math32.Vector3, angle float32) error {
	if err := m.checkNormals(); err != nil {
		return err
	}
	pis, err := m.cellPositions(cells)
	if err != nil {
		return err
	}
	center := m.pivot(pis)
	q := math32.NewQuatAxisAngle(normalize(axis), angle)
	for _, pi := range pis {
		m.Positions[pi] = m.Positions[pi].Sub(center).MulQuat(q).Add(center)
		m.Normals[pi] = m.Normals[pi].MulQuat(q)
	}
	return nil
}

// Mirror appends a copy of the whole mesh reflected across the plane
// through the origin perpendicular to the given axis. The copy's cells
// are rewound so they still face outward. Positions lying on the mirror
// plane are duplicated; call [Mesh.MergePositions] to weld them.
func (m *Mesh) Mirror(axis math32.Dims) error {
	if axis < math32.X || axis > math32.Z {
		return fmt.Errorf("%w: mirror axis %d", ErrParam, axis)
	}
	if err := m.checkNormals(); err != nil {
		return err
	}
	reflect := func(v math32.Vector3) math32.Vector3 {
		switch axis {
		case math32.X:
			v.X = -v.X
		case math32.Y:
			v.Y = -v.Y
		default:
			v.Z = -v.Z
		}
		return v
	}
	np, nc := len(m.Positions), len(m.Cells)
	for pi := range np {
		m.addPosition(reflect(m.Positions[pi]), reflect(m.Normals[pi]))
	}
	for ci := range nc {
		c := m.Cells[ci]
		m.addCell(Cell{c[0] + np, c[3] + np, c[2] + np, c[1] + np})
	}
	return nil
}

// Deform displaces every position along its normal by the field value
// at that position times amount. Normals should be up to date; they
// are recomputed afterward.
func (m *Mesh) Deform(field Field, amount float32) error {
	if err := m.checkNormals(); err != nil {
		return err
	}
	for pi, p := range m.Positions {
		m.Positions[pi] = p.Add(m.Normals[pi].MulScalar(field.Sample(p) * amount))
	}
	m.ComputeNormals()
	return nil
}
