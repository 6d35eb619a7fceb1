// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package quads provides a quadrilateral mesh together with the
// editing operations used to sculpt organic shapes out of a box:
// splits, insets, extrusions, edge loops, position merging and
// Catmull-Clark subdivision.
//
// A [Mesh] is a flat set of arrays. Cells are addressed by their index
// into [Mesh.Cells], and operations that create cells append them, so
// existing cell indexes stay valid across edits.
package quads

import (
	"fmt"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

// Cell is a planar quadrilateral face, given as four indexes into
// [Mesh.Positions], wound counter-clockwise when seen from the front.
type Cell [4]int

// Slot returns the corner slot (0-3) of the given position index,
// or -1 if the cell does not reference it.
func (c Cell) Slot(pi int) int {
	for k, v := range c {
		if v == pi {
			return k
		}
	}
	return -1
}

// Has returns whether the cell references the given position index.
func (c Cell) Has(pi int) bool {
	return c.Slot(pi) >= 0
}

// Mesh is a quad mesh: positions with a parallel array of normals,
// and cells of four position indexes each.
type Mesh struct {

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Normals has one normal per position.
	Normals []math32.Vector3

	// Cells are the quadrilateral faces.
	Cells []Cell
}

var (
	// ErrCellRange is returned when a cell index is not in the mesh.
	ErrCellRange = errors.New("quads: cell index out of range")

	// ErrIndexRange is returned when a cell refers to a missing position.
	ErrIndexRange = errors.New("quads: position index out of range")

	// ErrNormals is returned when the normals do not parallel the positions.
	ErrNormals = errors.New("quads: normal count does not match position count")

	// ErrDegenerate is returned for cells that repeat a position index.
	ErrDegenerate = errors.New("quads: cell repeats a position index")

	// ErrParam is returned for interpolation parameters outside of [0, 1].
	ErrParam = errors.New("quads: parameter out of range")
)

// NewMesh returns a new empty mesh.
func NewMesh() *Mesh {
	return &Mesh{}
}

// NumPositions returns the number of positions.
func (m *Mesh) NumPositions() int {
	return len(m.Positions)
}

// NumCells returns the number of cells.
func (m *Mesh) NumCells() int {
	return len(m.Cells)
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: slices.Clone(m.Positions),
		Normals:   slices.Clone(m.Normals),
		Cells:     slices.Clone(m.Cells),
	}
}

// Validate checks the structural invariants of the mesh: one normal
// per position, all cell indexes in range, and four distinct corners
// per cell. All problems found are joined into the returned error.
func (m *Mesh) Validate() error {
	var errs []error
	if err := m.checkNormals(); err != nil {
		errs = append(errs, err)
	}
	for ci, c := range m.Cells {
		for _, pi := range c {
			if pi < 0 || pi >= len(m.Positions) {
				errs = append(errs, fmt.Errorf("%w: cell %d refers to %d", ErrIndexRange, ci, pi))
			}
		}
		if c.degenerate() {
			errs = append(errs, fmt.Errorf("%w: cell %d %v", ErrDegenerate, ci, c))
		}
	}
	return errors.Join(errs...)
}

// degenerate returns whether the cell repeats a position index.
func (c Cell) degenerate() bool {
	for a := 0; a < 4; a++ {
		for b := a + 1; b < 4; b++ {
			if c[a] == c[b] {
				return true
			}
		}
	}
	return false
}

// checkNormals returns an error unless there is one normal per position.
func (m *Mesh) checkNormals() error {
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrNormals, len(m.Normals), len(m.Positions))
	}
	return nil
}

// checkCell returns an error if ci is not a valid cell whose corners
// are all in range.
func (m *Mesh) checkCell(ci int) error {
	if ci < 0 || ci >= len(m.Cells) {
		return fmt.Errorf("%w: %d (have %d cells)", ErrCellRange, ci, len(m.Cells))
	}
	for _, pi := range m.Cells[ci] {
		if pi < 0 || pi >= len(m.Positions) {
			return fmt.Errorf("%w: cell %d refers to %d", ErrIndexRange, ci, pi)
		}
	}
	return nil
}

func checkParam(t float32) error {
	if t < 0 || t > 1 || math32.IsNaN(t) {
		return fmt.Errorf("%w: %g", ErrParam, t)
	}
	return nil
}

// addPosition appends a position and its normal, returning the new index.
func (m *Mesh) addPosition(p, n math32.Vector3) int {
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	return len(m.Positions) - 1
}

// duplicate appends a copy of position pi, returning the new index.
func (m *Mesh) duplicate(pi int) int {
	return m.addPosition(m.Positions[pi], m.Normals[pi])
}

// lerpPosition appends the position at t along the segment from
// position a to position b, with a correspondingly blended normal.
func (m *Mesh) lerpPosition(a, b int, t float32) int {
	p := m.Positions[a].Lerp(m.Positions[b], t)
	n := normalize(m.Normals[a].Lerp(m.Normals[b], t))
	return m.addPosition(p, n)
}

// addCell appends a cell, returning its index.
func (m *Mesh) addCell(c Cell) int {
	m.Cells = append(m.Cells, c)
	return len(m.Cells) - 1
}

// CellPositions returns the four corner positions of cell ci.
func (m *Mesh) CellPositions(ci int) [4]math32.Vector3 {
	c := m.Cells[ci]
	return [4]math32.Vector3{m.Positions[c[0]], m.Positions[c[1]], m.Positions[c[2]], m.Positions[c[3]]}
}

// CellCenter returns the centroid (corner average) of cell ci.
func (m *Mesh) CellCenter(ci int) math32.Vector3 {
	ps := m.CellPositions(ci)
	return ps[0].Add(ps[1]).Add(ps[2]).Add(ps[3]).MulScalar(0.25)
}

// CellNormal returns the front-facing unit normal of cell ci,
// computed from its first three corners. Degenerate cells
// return the zero vector.
func (m *Mesh) CellNormal(ci int) math32.Vector3 {
	c := m.Cells[ci]
	return math32.Normal(m.Positions[c[0]], m.Positions[c[1]], m.Positions[c[2]])
}

// Centers returns the centroid of every cell.
func (m *Mesh) Centers() []math32.Vector3 {
	cs := make([]math32.Vector3, len(m.Cells))
	for ci := range m.Cells {
		cs[ci] = m.CellCenter(ci)
	}
	return cs
}

// Centroid returns the average of all positions.
func (m *Mesh) Centroid() math32.Vector3 {
	var sum math32.Vector3
	if len(m.Positions) == 0 {
		return sum
	}
	for _, p := range m.Positions {
		sum = sum.Add(p)
	}
	return sum.DivScalar(float32(len(m.Positions)))
}

// Bounds returns the bounding box of all positions.
func (m *Mesh) Bounds() math32.Box3 {
	bb := math32.B3Empty()
	bb.ExpandByPoints(m.Positions)
	return bb
}

// CellsForPosition returns the indexes of all cells that reference
// position pi, in cell order. This is a linear scan.
func (m *Mesh) CellsForPosition(pi int) []int {
	var cs []int
	for ci, c := range m.Cells {
		if c.Has(pi) {
			cs = append(cs, ci)
		}
	}
	return cs
}

// positionCells returns, for every position, the cells that reference it.
func (m *Mesh) positionCells() [][]int {
	adj := make([][]int, len(m.Positions))
	for ci, c := range m.Cells {
		for _, pi := range c {
			adj[pi] = append(adj[pi], ci)
		}
	}
	return adj
}

// NeighborAcrossEdge returns the first cell other than exclude that
// contains both positions a and b as adjacent corners.
// This is a linear scan over all cells.
func (m *Mesh) NeighborAcrossEdge(a, b, exclude int) (int, bool) {
	for ci, c := range m.Cells {
		if ci == exclude {
			continue
		}
		if c.hasEdge(a, b) {
			return ci, true
		}
	}
	return -1, false
}

// hasEdge returns whether a and b are adjacent corners of the cell,
// in either direction.
func (c Cell) hasEdge(a, b int) bool {
	k := c.Slot(a)
	if k < 0 {
		return false
	}
	return c[(k+1)%4] == b || c[(k+3)%4] == b
}

// Flip reverses the winding of cell ci, turning it to face the other way.
func (m *Mesh) Flip(ci int) error {
	if err := m.checkCell(ci); err != nil {
		return err
	}
	c := m.Cells[ci]
	m.Cells[ci] = Cell{c[0], c[3], c[2], c[1]}
	return nil
}

// normalize returns v scaled to unit length, or the zero vector.
func normalize(v math32.Vector3) math32.Vector3 {
	l := v.LengthSquared()
	if l == 0 {
		return math32.Vector3{}
	}
	return v.MulScalar(1 / math32.Sqrt(l))
}
