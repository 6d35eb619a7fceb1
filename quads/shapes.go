// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package quads

import "cogentcore.org/core/math32"

// BoxFace names the cells of a mesh made by [NewBox], by cell index.
type BoxFace int

const (
	// BoxFront is the +Z face.
	BoxFront BoxFace = iota
	// BoxBack is the -Z face.
	BoxBack
	// BoxRight is the +X face.
	BoxRight
	// BoxLeft is the -X face.
	BoxLeft
	// BoxTop is the +Y face.
	BoxTop
	// BoxBottom is the -Y face.
	BoxBottom
)

var boxFaceNames = [...]string{"front", "back", "right", "left", "top", "bottom"}

func (f BoxFace) String() string {
	if f < 0 || int(f) >= len(boxFaceNames) {
		return "unknown"
	}
	return boxFaceNames[f]
}

// BoxFaceByName returns the face with the given name ("front", "top", ...).
func BoxFaceByName(name string) (BoxFace, bool) {
	for i, n := range boxFaceNames {
		if n == name {
			return BoxFace(i), true
		}
	}
	return -1, false
}

// NewQuad returns a mesh with a single width x height quad in the XY
// plane, centered on the origin and facing +Z.
func NewQuad(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	m := NewMesh()
	m.Positions = []math32.Vector3{
		math32.Vec3(-hw, -hh, 0),
		math32.Vec3(hw, -hh, 0),
		math32.Vec3(hw, hh, 0),
		math32.Vec3(-hw, hh, 0),
	}
	m.Normals = make([]math32.Vector3, 4)
	m.Cells = []Cell{{0, 1, 2, 3}}
	m.ComputeNormals()
	return m
}

// NewBox returns a closed box of the given size centered on the origin.
// The eight corners are shared by the six cells so that edge loops can
// walk around it; cells are indexed by [BoxFace] and face outward.
func NewBox(width, height, depth float32) *Mesh {
	hx, hy, hz := width/2, height/2, depth/2
	m := NewMesh()
	m.Positions = []math32.Vector3{
		math32.Vec3(-hx, -hy, hz),
		math32.Vec3(hx, -hy, hz),
		math32.Vec3(hx, hy, hz),
		math32.Vec3(-hx, hy, hz),
		math32.Vec3(-hx, -hy, -hz),
		math32.Vec3(hx, -hy, -hz),
		math32.Vec3(hx, hy, -hz),
		math32.Vec3(-hx, hy, -hz),
	}
	m.Normals = make([]math32.Vector3, len(m.Positions))
	m.Cells = []Cell{
		BoxFront:  {0, 1, 2, 3},
		BoxBack:   {5, 4, 7, 6},
		BoxRight:  {1, 5, 6, 2},
		BoxLeft:   {4, 0, 3, 7},
		BoxTop:    {3, 2, 6, 7},
		BoxBottom: {4, 5, 1, 0},
	}
	m.ComputeNormals()
	return m
}
