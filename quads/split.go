// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

// Direction selects which pair of opposite edges of a cell is cut
// by a split, and therefore the direction a loop walks in.
type Direction int32

const (
	// Vertical cuts the edges 0→1 and 3→2, producing a left
	// and a right half.
	Vertical Direction = iota

	// Horizontal cuts the edges 0→3 and 1→2, producing a bottom
	// and a top half.
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Edge is a directed cut edge. L is on the side that keeps the
// original cell when split, and the split point is placed at
// parameter t from L toward R.
type Edge struct {
	L, R int
}

// cutEdges returns the two edges of c that are cut in the given direction.
func cutEdges(c Cell, dir Direction) (e1, e2 Edge) {
	if dir == Horizontal {
		return Edge{c[0], c[3]}, Edge{c[1], c[2]}
	}
	return Edge{c[0], c[1]}, Edge{c[3], c[2]}
}

// splitByEdges returns the two halves of c when the edges e1 and e2 are
// cut at the positions p1 and p2 (with q1 and q2 used for the far half).
// Both halves keep the corner order, and thus the winding, of c.
func splitByEdges(c Cell, e1, e2 Edge, p1, p2, q1, q2 int) (near, far Cell) {
	near, far = c, c
	for k, pi := range c {
		switch pi {
		case e1.R:
			near[k] = p1
		case e2.R:
			near[k] = p2
		case e1.L:
			far[k] = q1
		case e2.L:
			far[k] = q2
		}
	}
	return
}

func (m *Mesh) split(ci int, t float32, dir Direction, disjoint bool) (int, error) {
	if err := m.checkCell(ci); err != nil {
		return -1, err
	}
	if err := checkParam(t); err != nil {
		return -1, err
	}
	c := m.Cells[ci]
	e1, e2 := cutEdges(c, dir)
	p1 := m.lerpPosition(e1.L, e1.R, t)
	p2 := m.lerpPosition(e2.L, e2.R, t)
	q1, q2 := p1, p2
	if disjoint {
		q1 = m.duplicate(p1)
		q2 = m.duplicate(p2)
	}
	near, far := splitByEdges(c, e1, e2, p1, p2, q1, q2)
	m.Cells[ci] = near
	return m.addCell(far), nil
}

// SplitVertical cuts cell ci into a left and right half at parameter t
// along its bottom (0→1) and top (3→2) edges. Cell ci keeps the left
// half and the index of the new right cell is returned. The two
// halves share the new positions.
func (m *Mesh) SplitVertical(ci int, t float32) (int, error) {
	return m.split(ci, t, Vertical, false)
}

// SplitHorizontal cuts cell ci into a bottom and top half at parameter t
// along its left (0→3) and right (1→2) edges. Cell ci keeps the bottom
// half and the index of the new top cell is returned.
func (m *Mesh) SplitHorizontal(ci int, t float32) (int, error) {
	return m.split(ci, t, Horizontal, false)
}

// SplitVerticalDisjoint is [Mesh.SplitVertical], except that the new
// cell gets its own copies of the new positions, so that moving one
// half later does not drag the other along.
func (m *Mesh) SplitVerticalDisjoint(ci int, t float32) (int, error) {
	return m.split(ci, t, Vertical, true)
}

// SplitHorizontalDisjoint is [Mesh.SplitHorizontal] with separate
// positions for the new cell.
func (m *Mesh) SplitHorizontalDisjoint(ci int, t float32) (int, error) {
	return m.split(ci, t, Horizontal, true)
}

// Split cuts cell ci in the given direction. See [Mesh.SplitVertical]
// and [Mesh.SplitHorizontal].
func (m *Mesh) Split(ci int, t float32, dir Direction, disjoint bool) (int, error) {
	return m.split(ci, t, dir, disjoint)
}
