// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import (
	"strings"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitVertical(t *testing.T) {
	m := NewQuad(1, 1)
	nc, err := m.SplitVertical(0, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 1, nc)
	assert.Equal(t, 6, m.NumPositions())
	assert.Equal(t, Cell{0, 4, 5, 3}, m.Cells[0])
	assert.Equal(t, Cell{4, 1, 2, 5}, m.Cells[1])
	assertVector(t, math32.Vec3(-0.25, -0.5, 0), m.Positions[4])
	assertVector(t, math32.Vec3(-0.25, 0.5, 0), m.Positions[5])
	assertVector(t, math32.Vec3(0, 0, 1), m.CellNormal(0))
	assertVector(t, math32.Vec3(0, 0, 1), m.CellNormal(1))
	assertVector(t, math32.Vec3(0, 0, 1), m.Normals[4])
	assert.NoError(t, m.Validate())
}

func TestSplitHorizontal(t *testing.T) {
	m := NewQuad(1, 1)
	nc, err := m.SplitHorizontal(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Cell{0, 1, 5, 4}, m.Cells[0])
	assert.Equal(t, Cell{4, 5, 2, 3}, m.Cells[nc])
	assertVector(t, math32.Vec3(-0.5, 0, 0), m.Positions[4])
	assertVector(t, math32.Vec3(0.5, 0, 0), m.Positions[5])
	assertVector(t, math32.Vec3(0, 0, 1), m.CellNormal(nc))
}

func TestSplitDisjoint(t *testing.T) {
	m := NewQuad(1, 1)
	nc, err := m.SplitVerticalDisjoint(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 8, m.NumPositions())
	for _, pi := range m.Cells[0] {
		assert.False(t, m.Cells[nc].Has(pi), "halves share %d", pi)
	}
	assert.Equal(t, m.Positions[4], m.Positions[6])
	assert.Equal(t, m.Positions[5], m.Positions[7])

	assert.Equal(t, 2, m.MergePositions())
	assert.Equal(t, 6, m.NumPositions())
	assert.True(t, m.Cells[nc].Has(4))

	m = NewQuad(1, 1)
	nc, err = m.SplitHorizontalDisjoint(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, Cell{6, 7, 2, 3}, m.Cells[nc])
}

func TestSplitErrors(t *testing.T) {
	m := NewQuad(1, 1)
	_, err := m.SplitVertical(3, 0.5)
	assert.ErrorIs(t, err, ErrCellRange)
	_, err = m.SplitHorizontal(0, 1.5)
	assert.ErrorIs(t, err, ErrParam)
	assert.Equal(t, 4, m.NumPositions())
}

func TestInset(t *testing.T) {
	m := NewQuad(1, 1)
	res, err := m.Inset(0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Cell)
	assert.Equal(t, [4]int{1, 2, 3, 4}, res.Ring)
	assert.Equal(t, []int{4, 5, 6, 7}, res.Inner)
	assert.Equal(t, 8, m.NumPositions())
	assert.Equal(t, 5, m.NumCells())
	assertVector(t, math32.Vec3(-0.25, -0.25, 0), m.Positions[4])
	assertVector(t, math32.Vec3(0.25, 0.25, 0), m.Positions[6])
	for _, ci := range res.Cells() {
		assertVector(t, math32.Vec3(0, 0, 1), m.CellNormal(ci), "cell %d", ci)
	}
	assert.NoError(t, m.Validate())
}

func TestInsetDisjoint(t *testing.T) {
	m := NewBox(1, 1, 1)
	res, err := m.InsetDisjoint(int(BoxTop), 0.2)
	require.NoError(t, err)
	assert.Equal(t, 8+4+16, m.NumPositions())
	assert.Len(t, res.Inner, 4+8)
	for _, rc := range res.Ring {
		for _, pi := range m.Cells[rc] {
			assert.GreaterOrEqual(t, pi, 12, "ring cells only use their own copies")
		}
	}
	assert.NoError(t, m.Validate())
}

func TestExtrudeZero(t *testing.T) {
	m := NewBox(1, 1, 1)
	before := m.Clone()
	_, err := m.Extrude(int(BoxFront), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, before.Positions, m.Positions[:before.NumPositions()])
	for _, p := range m.Positions[before.NumPositions():] {
		assert.Contains(t, before.Positions, p)
	}
	assert.Equal(t, 4, m.MergePositions())
	assert.Equal(t, before.Positions, m.Positions)

	// the ring cells collapse onto the box edges but keep their indexes
	assert.Equal(t, 10, m.NumCells())
	assert.Equal(t, before.Cells[BoxFront], m.Cells[BoxFront])
	err = m.Validate()
	require.ErrorIs(t, err, ErrDegenerate)
	assert.Equal(t, 4, strings.Count(err.Error(), ErrDegenerate.Error()))
}

func TestExtrudeBox(t *testing.T) {
	m := NewBox(1, 1, 1)
	face := int(BoxFront)
	normal := m.CellNormal(face)
	center := m.CellCenter(face)

	res, err := m.Extrude(face, 0.5, 0.2)
	require.NoError(t, err)
	m.ComputeNormals()
	require.NoError(t, m.Validate())

	moved := m.CellCenter(res.Cell).Sub(center)
	assertVector(t, normal.MulScalar(0.2), moved)
	assertVector(t, normal, m.CellNormal(res.Cell))

	mc := m.Centroid()
	for _, rc := range res.Ring {
		radial := m.CellCenter(rc).Sub(mc)
		assert.Greater(t, m.CellNormal(rc).Dot(radial), float32(0), "ring cell %d faces inward", rc)
		for _, pi := range m.Cells[rc] {
			assert.Greater(t, m.Normals[pi].Dot(m.Positions[pi].Sub(mc)), float32(0), "normal of %d faces inward", pi)
		}
	}
	assert.Equal(t, 12, m.NumPositions())
	assert.Equal(t, 10, m.NumCells())
}

func TestExtrudeDisjoint(t *testing.T) {
	m := NewBox(1, 1, 1)
	res, err := m.ExtrudeDisjoint(int(BoxTop), 0.25, 1)
	require.NoError(t, err)
	top := m.CellCenter(res.Cell)
	assertVector(t, math32.Vec3(0, 1.5, 0), top)
	for _, rc := range res.Ring {
		n := m.CellNormal(rc)
		for _, pi := range m.Cells[rc] {
			assertVector(t, n, m.Normals[pi])
		}
		// ring copies of the inner corners followed the extrusion
		assert.InDelta(t, 1.5, m.Positions[m.Cells[rc][2]].Y, standardTol)
		assert.InDelta(t, 1.5, m.Positions[m.Cells[rc][3]].Y, standardTol)
	}
}

func TestTransforms(t *testing.T) {
	m := NewBox(1, 1, 1)
	top := int(BoxTop)
	require.NoError(t, m.TranslateCells([]int{top}, math32.Vec3(0, 1, 0)))
	assertVector(t, math32.Vec3(0, 1.5, 0), m.CellCenter(top))

	require.NoError(t, m.ScaleCells([]int{top}, math32.Vec3(2, 1, 2)))
	ps := m.CellPositions(top)
	assertVector(t, math32.Vec3(-1, 1.5, 1), ps[0])

	require.NoError(t, m.RotateCells([]int{top}, math32.Vec3(0, 1, 0), math32.Pi/2))
	assertVector(t, math32.Vec3(0, 1.5, 0), m.CellCenter(top))
	assertVector(t, math32.Vec3(1, 1.5, 1), m.CellPositions(top)[0])

	assert.ErrorIs(t, m.TranslateCells([]int{99}, math32.Vector3{}), ErrCellRange)
}

func TestMirror(t *testing.T) {
	m := NewQuad(1, 1)
	require.NoError(t, m.TranslateCells([]int{0}, math32.Vec3(0.5, 0, 0)))
	require.NoError(t, m.Mirror(math32.X))
	assert.Equal(t, 8, m.NumPositions())
	assert.Equal(t, 2, m.NumCells())
	assertVector(t, math32.Vec3(0, 0, 1), m.CellNormal(1))
	assertVector(t, math32.Vec3(-0.5, 0, 0), m.CellCenter(1))
	assert.Equal(t, 2, m.MergePositions())
	assert.NoError(t, m.Validate())

	assert.ErrorIs(t, m.Mirror(math32.Dims(7)), ErrParam)

	short := NewQuad(1, 1)
	short.Normals = short.Normals[:2]
	assert.ErrorIs(t, short.Mirror(math32.X), ErrNormals)
	assert.Equal(t, 4, short.NumPositions())
	assert.Equal(t, 1, short.NumCells())
}

type constField float32

func (c constField) Sample(p math32.Vector3) float32 { return float32(c) }

func TestDeform(t *testing.T) {
	m := NewQuad(1, 1)
	require.NoError(t, m.Deform(constField(0.5), 2))
	for _, p := range m.Positions {
		assert.InDelta(t, 1, p.Z, standardTol)
	}

	m.Normals = m.Normals[:3]
	before := m.Clone()
	assert.ErrorIs(t, m.Deform(constField(0.5), 2), ErrNormals)
	assert.Equal(t, before.Positions, m.Positions)
	assert.ErrorIs(t, m.RotateCells([]int{0}, math32.Vec3(0, 0, 1), 1), ErrNormals)
}
