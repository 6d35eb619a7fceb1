// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bake freezes a quad mesh into the flat vertex and index
// arrays that a renderer uploads to the GPU, and writes meshes to
// files.
package bake

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/quadsculpt/quadsculpt/quads"
)

// Mode is how the cells of a mesh are turned into primitives.
type Mode int32

const (
	// Triangles emits two triangles per cell.
	Triangles Mode = iota

	// Lines emits every unique cell edge once, for wireframes.
	Lines
)

func (m Mode) String() string {
	if m == Lines {
		return "lines"
	}
	return "triangles"
}

// ParseMode returns the mode with the given name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "triangles":
		return Triangles, nil
	case "lines":
		return Lines, nil
	}
	return Triangles, fmt.Errorf("bake: unknown mode %q (want triangles or lines)", s)
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	md, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = md
	return nil
}

// Buffers is a baked mesh: indexed triangles or lines over flat arrays
// of positions and normals, three floats per vertex.
type Buffers struct {
	Name string `json:"name"`

	// Mode is the primitive type of Index.
	Mode Mode `json:"mode"`

	// Vertex has the X, Y, Z of every position.
	Vertex math32.ArrayF32 `json:"vertex"`

	// Normal has the X, Y, Z of every normal.
	Normal math32.ArrayF32 `json:"normal"`

	// Index has three entries per triangle or two per line.
	Index math32.ArrayU32 `json:"index"`

	// BBox is the bounding box of all positions.
	BBox math32.Box3 `json:"bbox"`

	// NumCells is the number of quads the buffers were baked from.
	NumCells int `json:"numCells"`
}

// Bake validates the mesh and flattens it into buffers.
func Bake(m *quads.Mesh, mode Mode) (*Buffers, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}
	b := &Buffers{
		Mode:     mode,
		Vertex:   make(math32.ArrayF32, 0, 3*len(m.Positions)),
		Normal:   make(math32.ArrayF32, 0, 3*len(m.Normals)),
		BBox:     m.Bounds(),
		NumCells: len(m.Cells),
	}
	for i, p := range m.Positions {
		n := m.Normals[i]
		b.Vertex = append(b.Vertex, p.X, p.Y, p.Z)
		b.Normal = append(b.Normal, n.X, n.Y, n.Z)
	}
	if mode == Lines {
		b.Index = lineIndex(m)
	} else {
		b.Index = triangleIndex(m)
	}
	return b, nil
}

func triangleIndex(m *quads.Mesh) math32.ArrayU32 {
	idx := make(math32.ArrayU32, 0, 6*len(m.Cells))
	for _, c := range m.Cells {
		a, b, cc, d := uint32(c[0]), uint32(c[1]), uint32(c[2]), uint32(c[3])
		idx = append(idx, a, b, cc, a, cc, d)
	}
	return idx
}

func lineIndex(m *quads.Mesh) math32.ArrayU32 {
	seen := make(map[[2]int]bool, 2*len(m.Cells))
	idx := make(math32.ArrayU32, 0, 4*len(m.Cells))
	for _, c := range m.Cells {
		for k := range 4 {
			a, b := c[k], c[(k+1)%4]
			key := [2]int{min(a, b), max(a, b)}
			if seen[key] {
				continue
			}
			seen[key] = true
			idx = append(idx, uint32(a), uint32(b))
		}
	}
	return idx
}

// NumVertex returns the number of vertices.
func (b *Buffers) NumVertex() int {
	return len(b.Vertex) / 3
}

// NumPrimitives returns the number of triangles or lines.
func (b *Buffers) NumPrimitives() int {
	if b.Mode == Lines {
		return len(b.Index) / 2
	}
	return len(b.Index) / 3
}

// MeshSize returns the vertex and index counts, in the form a renderer
// uses to allocate its arrays before calling [Buffers.Set].
// Baked meshes have no per-vertex color.
func (b *Buffers) MeshSize() (numVertex, numIndex int, hasColor bool) {
	return b.NumVertex(), len(b.Index), false
}

// Set copies the buffers into arrays allocated by a renderer according
// to [Buffers.MeshSize]. Texture coordinates and colors are not used.
func (b *Buffers) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	copy(vertex, b.Vertex)
	copy(normal, b.Normal)
	copy(index, b.Index)
}
