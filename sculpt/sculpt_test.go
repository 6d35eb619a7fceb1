// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quadsculpt/quadsculpt/quads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlRecipe = `
name = "stalk"
version = "1.2.0"
seed = 7

[box]
height = 0.5

[[ops]]
kind = "extrude"
cell = "top"
distance = 0.5
repeat = 3

[[ops]]
kind = "scale"
scale = [0.5, 1, 0.5]

[[ops]]
kind = "subdivide"
`

const yamlRecipe = `
name: ring
box: {width: 2}
ops:
  - kind: inset-loop
    cell: front
    direction: horizontal
    t: 0.5
  - kind: extrude
    distance: 0.1
  - kind: merge
`

func TestParseTOML(t *testing.T) {
	r, err := Parse([]byte(tomlRecipe), "toml")
	require.NoError(t, err)
	assert.Equal(t, "stalk", r.Name)
	assert.Equal(t, int64(7), r.Seed)
	assert.Equal(t, BoxSize{Width: 1, Height: 0.5, Depth: 1}, r.Box)
	assert.Equal(t, float32(1), r.Noise.Frequency)
	require.Len(t, r.Ops, 3)
	assert.Equal(t, 3, r.Ops[0].Repeat)
	assert.Equal(t, [3]float32{0.5, 1, 0.5}, r.Ops[1].Scale)
}

func TestParseYAML(t *testing.T) {
	r, err := Parse([]byte(yamlRecipe), "yml")
	require.NoError(t, err)
	assert.Equal(t, float32(2), r.Box.Width)
	assert.Equal(t, "horizontal", r.Ops[0].Direction)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`version = "2.0.0"`), "toml")
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Parse([]byte(`version = "one"`), "toml")
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Parse([]byte("[[ops]]\nkind = \"extrood\"\n"), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "extrude"`)

	_, err = Parse([]byte(`colour = "red"`), "toml")
	assert.Error(t, err)

	_, err = Parse([]byte(`base = "mushrom"`), "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mushroom"`)

	_, err = Parse(nil, "json")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	r, err := Parse([]byte(tomlRecipe), "toml")
	require.NoError(t, err)
	m, err := Build(r)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	// 6 box faces + 4 sides for each of 3 extrusions, subdivided once
	assert.Equal(t, 4*(6+3*4), m.NumCells())
	b := m.Bounds()
	assert.InDelta(t, 2, b.Max.Y-b.Min.Y, 0.2)

	// builds are deterministic
	m2, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, m.Positions, m2.Positions)
}

func TestBuildYAML(t *testing.T) {
	r, err := Parse([]byte(yamlRecipe), "yaml")
	require.NoError(t, err)
	m, err := Build(r)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Greater(t, m.NumCells(), 6)
}

func TestBuildErrors(t *testing.T) {
	r := &Recipe{Name: "bad", Box: BoxSize{1, 1, 1}, Ops: []Op{{Kind: "extrude"}}}
	_, err := Build(r)
	assert.ErrorContains(t, err, "no cells")

	r.Ops = []Op{{Kind: "inset", Cell: "99", Inset: 0.5}}
	_, err = Build(r)
	assert.ErrorIs(t, err, quads.ErrCellRange)

	r.Ops = []Op{{Kind: "split-loop", Cell: "front", T: 2}}
	_, err = Build(r)
	assert.ErrorIs(t, err, quads.ErrParam)

	r.Box = BoxSize{}
	r.Ops = nil
	_, err = Build(r)
	assert.Error(t, err)
}

func TestSelectors(t *testing.T) {
	b := &builder{mesh: quads.NewBox(1, 1, 1)}
	cs, err := b.selectCells("top")
	require.NoError(t, err)
	assert.Equal(t, []int{int(quads.BoxTop)}, cs)
	cs, err = b.selectCells("3")
	require.NoError(t, err)
	assert.Equal(t, []int{3}, cs)
	cs, err = b.selectCells("all")
	require.NoError(t, err)
	assert.Len(t, cs, 6)
	_, err = b.selectCells("last")
	assert.Error(t, err)
	_, err = b.selectCells("middle")
	assert.Error(t, err)
}

func TestSubdivideKeepsSelection(t *testing.T) {
	r := &Recipe{Name: "sub", Box: BoxSize{1, 1, 1}, Ops: []Op{
		{Kind: "inset", Cell: "front", Inset: 0.5},
		{Kind: "subdivide", Divisions: 2},
		{Kind: "translate", Offset: [3]float32{0, 0, 1}},
	}}
	m, err := Build(r)
	require.NoError(t, err)
	// the inner cell of the inset became 16 cells, all moved forward
	assert.Greater(t, m.Bounds().Max.Z, float32(1))
}

func TestClone(t *testing.T) {
	r, err := Parse([]byte(tomlRecipe), "toml")
	require.NoError(t, err)
	cp := r.Clone()
	cp.Ops[0].Distance = 9
	cp.Seed = 1
	assert.Equal(t, float32(0.5), r.Ops[0].Distance)
	assert.Equal(t, int64(7), r.Seed)
}

func TestSaveOpen(t *testing.T) {
	r, err := Parse([]byte(tomlRecipe), "toml")
	require.NoError(t, err)
	dir := t.TempDir()
	for _, ext := range []string{".toml", ".yaml"} {
		fn := filepath.Join(dir, "copy"+ext)
		require.NoError(t, r.Save(fn))
		r2, err := Open(fn)
		require.NoError(t, err)
		assert.Equal(t, r.Ops, r2.Ops, ext)
		assert.Equal(t, r.Box, r2.Box, ext)
	}

	fn := filepath.Join(dir, "unnamed.toml")
	require.NoError(t, os.WriteFile(fn, []byte("[[ops]]\nkind = \"merge\"\n"), 0666))
	r3, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, "unnamed", r3.Name)

	assert.Error(t, r.Save(filepath.Join(dir, "copy.ini")))
}

func TestShapes(t *testing.T) {
	assert.Equal(t, []string{"antler", "branch", "mask", "mushroom", "tentacle"}, ShapeNames())
	for _, name := range ShapeNames() {
		t.Run(name, func(t *testing.T) {
			m, err := Shapes[name](3)
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.Greater(t, m.NumCells(), 6)
			m2, err := Shapes[name](3)
			require.NoError(t, err)
			assert.Equal(t, m.Positions, m2.Positions)
		})
	}
}

func TestShapeBase(t *testing.T) {
	r := &Recipe{Name: "mirrored", Base: "tentacle", Seed: 2, Ops: []Op{
		{Kind: "mirror", Axis: "x"},
		{Kind: "flat-normals"},
	}}
	base, err := Shapes["tentacle"](2)
	require.NoError(t, err)
	m, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, 2*base.NumCells(), m.NumCells())
}

func TestShapeConfigErrors(t *testing.T) {
	cfg := &TentacleConfig{}
	cfg.Defaults()
	assert.Equal(t, 10, cfg.Segments)
	cfg.Segments = 0
	_, err := Tentacle(cfg, nil, nil)
	assert.Error(t, err)
}

func TestParseOp(t *testing.T) {
	op, err := ParseOp(`extrude cell=top inset=0.2 distance=0.5 repeat=3`)
	require.NoError(t, err)
	assert.Equal(t, Op{Kind: "extrude", Cell: "top", Inset: 0.2, Distance: 0.5, Repeat: 3}, op)

	op, err = ParseOp(`split-loop cell='12' t=0.25 direction=horizontal disjoint=true`)
	require.NoError(t, err)
	assert.Equal(t, "12", op.Cell)
	assert.Equal(t, float32(0.25), op.T)
	assert.True(t, op.Disjoint)

	op, err = ParseOp(`scale scale="0.5, 1, 0.5" offset=0,1,0`)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0.5, 1, 0.5}, op.Scale)
	assert.Equal(t, [3]float32{0, 1, 0}, op.Offset)

	for _, bad := range []string{"", "extrude top", "extrude distance=far", "scale scale=1,2", "inset insett=0.2", "bulge", `extrude cell="top`} {
		_, err := ParseOp(bad)
		assert.Error(t, err, bad)
	}
	_, err = ParseOp("inset insett=0.2")
	assert.ErrorContains(t, err, `did you mean "inset"`)
}
