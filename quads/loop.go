// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import (
	"fmt"
	"slices"
)

// LoopStep is one cell of a [Ring], with the two cut edges through it.
// In faces the start of the ring and Out faces its end.
type LoopStep struct {
	Cell    int
	In, Out Edge
}

// Ring is a strip of cells connected across opposite edges.
type Ring struct {

	// Steps are the cells of the ring, in strip order.
	Steps []LoopStep

	// Start is the index into Steps of the cell the walk started from.
	Start int

	// Closed is whether the strip wraps around onto itself.
	Closed bool
}

// Cells returns the cell indexes of the ring in strip order.
func (r Ring) Cells() []int {
	cs := make([]int, len(r.Steps))
	for i, s := range r.Steps {
		cs[i] = s.Cell
	}
	return cs
}

// edgeKey returns the undirected key of the edge between positions
// a and b, given n positions.
func edgeKey(a, b, n int) int {
	if a > b {
		a, b = b, a
	}
	return a + b*n
}

// edgeIndex maps undirected edge keys to the cells that contain them.
type edgeIndex struct {
	n     int
	cells map[int][]int
}

func (m *Mesh) edgeIndex() *edgeIndex {
	ei := &edgeIndex{n: len(m.Positions), cells: make(map[int][]int, 2*len(m.Cells))}
	for ci, c := range m.Cells {
		for k := range 4 {
			key := edgeKey(c[k], c[(k+1)%4], ei.n)
			ei.cells[key] = append(ei.cells[key], ci)
		}
	}
	return ei
}

// across returns the first cell other than from that shares edge e.
func (ei *edgeIndex) across(e Edge, from int) (int, bool) {
	for _, ci := range ei.cells[edgeKey(e.L, e.R, ei.n)] {
		if ci != from {
			return ci, true
		}
	}
	return -1, false
}

// opposite returns the edge of c opposite to e, keeping the L and R
// sides: the new L is the corner next to e.L that is not e.R.
func opposite(c Cell, e Edge) Edge {
	other := func(a, b int) int {
		k := c.Slot(a)
		if next := c[(k+1)%4]; next != b {
			return next
		}
		return c[(k+3)%4]
	}
	return Edge{L: other(e.L, e.R), R: other(e.R, e.L)}
}

// Loop walks the ring of cells through cell ci in the given direction:
// from ci across its cut edges into the neighboring cells, continuing
// across their opposite edges until the walk reaches a boundary or
// comes back to ci. The mesh is not modified.
func (m *Mesh) Loop(ci int, dir Direction) (Ring, error) {
	if err := m.checkCell(ci); err != nil {
		return Ring{}, err
	}
	ei := m.edgeIndex()
	in, out := cutEdges(m.Cells[ci], dir)
	visited := map[int]bool{ci: true}

	var forward []LoopStep
	closed := false
	cur, edge := ci, out
	for {
		next, ok := ei.across(edge, cur)
		if !ok {
			break
		}
		if next == ci {
			closed = true
			break
		}
		if visited[next] {
			break
		}
		visited[next] = true
		step := LoopStep{Cell: next, In: edge, Out: opposite(m.Cells[next], edge)}
		forward = append(forward, step)
		cur, edge = next, step.Out
	}

	var backward []LoopStep
	if !closed {
		cur, edge = ci, in
		for {
			next, ok := ei.across(edge, cur)
			if !ok || visited[next] {
				break
			}
			visited[next] = true
			step := LoopStep{Cell: next, Out: edge, In: opposite(m.Cells[next], edge)}
			backward = append(backward, step)
			cur, edge = next, step.In
		}
		slices.Reverse(backward)
	}

	ring := Ring{Start: len(backward), Closed: closed}
	ring.Steps = append(ring.Steps, backward...)
	ring.Steps = append(ring.Steps, LoopStep{Cell: ci, In: in, Out: out})
	ring.Steps = append(ring.Steps, forward...)
	return ring, nil
}

// LoopSplit describes the result of [Mesh.SplitLoop].
type LoopSplit struct {
	Ring

	// Near are the halves on the L side of the cut, which reuse the
	// ring's cell indexes, in strip order.
	Near []int

	// Far are the newly appended halves on the R side, in strip order.
	Far []int

	// Points are the new positions, one per crossed edge, in strip order.
	Points []int

	// Welded is whether the two ends of an open strip met at the same
	// position and were merged into one.
	Welded bool
}

// SplitLoop splits every cell of the ring through ci (see [Mesh.Loop])
// at parameter t, inserting one shared position per crossed edge.
// On a closed ring the seam edge gets a single position, so no
// duplicate positions are left behind. When an open strip ends on two
// positions that are exactly equal (a ring that closes geometrically
// but not topologically), they are welded and all cells re-indexed.
func (m *Mesh) SplitLoop(ci int, t float32, dir Direction) (LoopSplit, error) {
	if err := checkParam(t); err != nil {
		return LoopSplit{}, err
	}
	ring, err := m.Loop(ci, dir)
	if err != nil {
		return LoopSplit{}, err
	}
	res := LoopSplit{Ring: ring}
	n := len(m.Positions)
	points := map[int]int{}
	point := func(e Edge) int {
		key := edgeKey(e.L, e.R, n)
		if pi, ok := points[key]; ok {
			return pi
		}
		pi := m.lerpPosition(e.L, e.R, t)
		points[key] = pi
		res.Points = append(res.Points, pi)
		return pi
	}
	// all cut points are created before any cell changes, so the
	// walk's snapshot of the ring stays consistent
	for _, s := range ring.Steps {
		point(s.In)
		point(s.Out)
	}
	for _, s := range ring.Steps {
		p1, p2 := point(s.In), point(s.Out)
		near, far := splitByEdges(m.Cells[s.Cell], s.In, s.Out, p1, p2, p1, p2)
		m.Cells[s.Cell] = near
		res.Near = append(res.Near, s.Cell)
		res.Far = append(res.Far, m.addCell(far))
	}
	if !ring.Closed && len(res.Points) > 2 {
		first, last := res.Points[0], res.Points[len(res.Points)-1]
		if m.Positions[first] == m.Positions[last] {
			m.weld(first, last)
			res.Points = res.Points[:len(res.Points)-1]
			res.Welded = true
		}
	}
	return res, nil
}

// InsetLoop inserts two parallel loops through the ring of ci so that
// a band of relative width 1-t is left centered in every ring cell,
// with bands of width t/2 on either side. It returns the band cells in
// strip order, ready to be extruded or scaled as a group.
func (m *Mesh) InsetLoop(ci int, t float32, dir Direction) ([]int, error) {
	if err := checkParam(t); err != nil {
		return nil, err
	}
	s1 := 1 - t/2
	if _, err := m.SplitLoop(ci, s1, dir); err != nil {
		return nil, err
	}
	// ci now holds the near part of width s1; cut it again so that the
	// first band is t/2 of the original width.
	s2 := float32(0)
	if s1 > 0 {
		s2 = (t / 2) / s1
	}
	second, err := m.SplitLoop(ci, s2, dir)
	if err != nil {
		return nil, fmt.Errorf("inset loop second cut: %w", err)
	}
	return second.Far, nil
}

// weld replaces every reference to position drop with keep and removes
// drop, shifting all higher position indexes down by one.
func (m *Mesh) weld(keep, drop int) {
	if keep > drop {
		keep--
	}
	m.Positions = slices.Delete(m.Positions, drop, drop+1)
	m.Normals = slices.Delete(m.Normals, drop, drop+1)
	for ci, c := range m.Cells {
		for k, pi := range c {
			switch {
			case pi == drop:
				c[k] = keep
			case pi > drop:
				c[k] = pi - 1
			}
		}
		m.Cells[ci] = c
	}
}
