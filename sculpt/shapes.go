// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"fmt"
	"maps"
	"slices"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
	"github.com/quadsculpt/quadsculpt/noise"
	"github.com/quadsculpt/quadsculpt/quads"
)

// ShapeFunc builds a built-in shape with its default configuration,
// using the seed for all randomness.
type ShapeFunc func(seed int64) (*quads.Mesh, error)

// Shapes are the built-in shapes by name. They can be built directly
// or used as the base of a [Recipe].
var Shapes = map[string]ShapeFunc{
	"mushroom": func(seed int64) (*quads.Mesh, error) {
		cfg := &MushroomConfig{}
		cfg.Defaults()
		return Mushroom(cfg, randx.NewSysRand(seed), noise.NewSeed(seed))
	},
	"antler": func(seed int64) (*quads.Mesh, error) {
		cfg := &AntlerConfig{}
		cfg.Defaults()
		return Antler(cfg, randx.NewSysRand(seed), noise.NewSeed(seed))
	},
	"branch": func(seed int64) (*quads.Mesh, error) {
		cfg := &BranchConfig{}
		cfg.Defaults()
		return Branch(cfg, randx.NewSysRand(seed), noise.NewSeed(seed))
	},
	"tentacle": func(seed int64) (*quads.Mesh, error) {
		cfg := &TentacleConfig{}
		cfg.Defaults()
		return Tentacle(cfg, randx.NewSysRand(seed), noise.NewSeed(seed))
	},
	"mask": func(seed int64) (*quads.Mesh, error) {
		cfg := &MaskConfig{}
		cfg.Defaults()
		return Mask(cfg, randx.NewSysRand(seed), noise.NewSeed(seed))
	},
}

// ShapeNames returns the sorted names of the built-in shapes.
func ShapeNames() []string {
	return slices.Sorted(maps.Keys(Shapes))
}

// spread returns a random value in [-1, 1) scaled by s.
func spread(rnd randx.Rand, s float32) float32 {
	return s * (2*rnd.Float32() - 1)
}

// randomTilt returns a random horizontal rotation axis.
func randomTilt(rnd randx.Rand) math32.Vector3 {
	a := rnd.Float32() * 2 * math32.Pi
	return math32.Vec3(math32.Cos(a), 0, math32.Sin(a))
}

// finish subdivides the mesh and roughens it with the field.
func finish(m *quads.Mesh, subdivisions int, field quads.Field, roughness float32) (*quads.Mesh, error) {
	if subdivisions > 0 {
		if err := m.Subdivide(subdivisions); err != nil {
			return nil, err
		}
	}
	if field != nil && roughness != 0 {
		if err := m.Deform(field, roughness); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// grow extrudes a chain of segments from cell tip, tapering and bending
// each new tip, and returns the final tip and the side cells of every
// segment.
func grow(m *quads.Mesh, tip, segments int, length, taper, bend float32, rnd randx.Rand) (int, [][4]int, error) {
	sides := make([][4]int, 0, segments)
	for range segments {
		res, err := m.Extrude(tip, 0, length*(1+spread(rnd, 0.15)))
		if err != nil {
			return tip, sides, err
		}
		tip = res.Cell
		sides = append(sides, res.Ring)
		if err := m.ScaleCells([]int{tip}, math32.Vec3(taper, taper, taper)); err != nil {
			return tip, sides, err
		}
		if bend != 0 {
			angle := math32.DegToRad(bend * (0.5 + rnd.Float32()))
			if err := m.RotateCells([]int{tip}, randomTilt(rnd), angle); err != nil {
				return tip, sides, err
			}
		}
	}
	return tip, sides, nil
}

// MushroomConfig configures [Mushroom].
type MushroomConfig struct {
	StemWidth    float32 `default:"0.3"`
	StemHeight   float32 `default:"1.2"`
	StemSegments int     `default:"3"`

	// Lean is the maximum bend of each stem segment, in degrees.
	Lean float32 `default:"8"`

	CapWidth     float32 `default:"1.4"`
	CapHeight    float32 `default:"0.5"`
	Subdivisions int     `default:"2"`
	Roughness    float32 `default:"0.03"`
}

// Defaults sets the default values from the `default:` tags.
func (c *MushroomConfig) Defaults() { errors.Log(reflectx.SetFromDefaultTags(c)) }

// Mushroom grows a leaning stem from a small foot and flares a domed
// cap at its top.
func Mushroom(cfg *MushroomConfig, rnd randx.Rand, field quads.Field) (*quads.Mesh, error) {
	if cfg.StemSegments < 1 || cfg.StemWidth <= 0 {
		return nil, fmt.Errorf("sculpt: mushroom: invalid stem %d x %g", cfg.StemSegments, cfg.StemWidth)
	}
	m := quads.NewBox(cfg.StemWidth*1.3, cfg.StemWidth*0.5, cfg.StemWidth*1.3)
	seg := cfg.StemHeight / float32(cfg.StemSegments)
	tip, _, err := grow(m, int(quads.BoxTop), cfg.StemSegments, seg, 0.95, cfg.Lean, rnd)
	if err != nil {
		return nil, err
	}
	flare := cfg.CapWidth / cfg.StemWidth
	steps := []struct {
		height, scale float32
	}{
		{0.15, flare},
		{0.45, 1.05},
		{0.25, 0.7},
		{0.15, 0.4},
	}
	for _, st := range steps {
		res, err := m.Extrude(tip, 0, cfg.CapHeight*st.height)
		if err != nil {
			return nil, err
		}
		tip = res.Cell
		if err := m.ScaleCells([]int{tip}, math32.Vec3(st.scale, 1, st.scale)); err != nil {
			return nil, err
		}
	}
	return finish(m, cfg.Subdivisions, field, cfg.Roughness)
}

// AntlerConfig configures [Antler].
type AntlerConfig struct {
	Segments      int     `default:"6"`
	Width         float32 `default:"0.25"`
	SegmentLength float32 `default:"0.5"`
	Taper         float32 `default:"0.88"`

	// Bend is the mean bend of each segment, in degrees.
	Bend float32 `default:"12"`

	// BranchChance is the probability of a tine on each segment
	// after the first.
	BranchChance   float32 `default:"0.5"`
	BranchSegments int     `default:"3"`

	Subdivisions int     `default:"2"`
	Roughness    float32 `default:"0.02"`
}

// Defaults sets the default values from the `default:` tags.
func (c *AntlerConfig) Defaults() { errors.Log(reflectx.SetFromDefaultTags(c)) }

// Antler grows a tapering beam from the top of a box, sprouting tines
// from random sides of its segments.
func Antler(cfg *AntlerConfig, rnd randx.Rand, field quads.Field) (*quads.Mesh, error) {
	if cfg.Segments < 1 || cfg.Width <= 0 {
		return nil, fmt.Errorf("sculpt: antler: invalid beam %d x %g", cfg.Segments, cfg.Width)
	}
	m := quads.NewBox(cfg.Width, cfg.Width, cfg.Width)
	tip := int(quads.BoxTop)
	for i := range cfg.Segments {
		var sides [][4]int
		var err error
		tip, sides, err = grow(m, tip, 1, cfg.SegmentLength, cfg.Taper, cfg.Bend, rnd)
		if err != nil {
			return nil, err
		}
		if i == 0 || rnd.Float32() >= cfg.BranchChance {
			continue
		}
		side := sides[0][rnd.Intn(4)]
		// tines start thin and grow shorter than the beam
		res, err := m.Extrude(side, 0.3, cfg.SegmentLength*0.3)
		if err != nil {
			return nil, err
		}
		if _, _, err := grow(m, res.Cell, cfg.BranchSegments, cfg.SegmentLength*0.6, cfg.Taper*0.95, cfg.Bend*1.5, rnd); err != nil {
			return nil, err
		}
	}
	return finish(m, cfg.Subdivisions, field, cfg.Roughness)
}

// BranchConfig configures [Branch].
type BranchConfig struct {

	// Depth is the number of times the branch forks.
	Depth int `default:"3"`

	Segments      int     `default:"2"`
	Width         float32 `default:"0.3"`
	SegmentLength float32 `default:"0.45"`
	Taper         float32 `default:"0.85"`

	// Spread is the angle between the two arms of a fork, in degrees.
	Spread float32 `default:"50"`

	Subdivisions int     `default:"1"`
	Roughness    float32 `default:"0.02"`
}

// Defaults sets the default values from the `default:` tags.
func (c *BranchConfig) Defaults() { errors.Log(reflectx.SetFromDefaultTags(c)) }

// Branch grows a limb that forks in two at the end of every run of
// segments, down to the configured depth.
func Branch(cfg *BranchConfig, rnd randx.Rand, field quads.Field) (*quads.Mesh, error) {
	if cfg.Segments < 1 || cfg.Depth < 0 || cfg.Width <= 0 {
		return nil, fmt.Errorf("sculpt: branch: invalid config %+v", *cfg)
	}
	m := quads.NewBox(cfg.Width, cfg.Width, cfg.Width)
	var fork func(tip, depth int, length float32) error
	fork = func(tip, depth int, length float32) error {
		tip, _, err := grow(m, tip, cfg.Segments, length, cfg.Taper, cfg.Spread/5, rnd)
		if err != nil || depth == 0 {
			return err
		}
		arm, err := m.SplitVertical(tip, 0.5+spread(rnd, 0.1))
		if err != nil {
			return err
		}
		// the halves share the cut edge, so each is extruded onto its own
		// positions before the two lean apart around the cut axis
		axis := m.CellCenter(arm).Sub(m.CellCenter(tip)).Cross(m.CellNormal(tip))
		half := math32.DegToRad(cfg.Spread / 2)
		for i, ci := range []int{tip, arm} {
			res, err := m.Extrude(ci, 0.1, length*0.3)
			if err != nil {
				return err
			}
			angle := half
			if i == 1 {
				angle = -half
			}
			if err := m.RotateCells([]int{res.Cell}, axis, angle); err != nil {
				return err
			}
			if err := fork(res.Cell, depth-1, length*0.8); err != nil {
				return err
			}
		}
		return nil
	}
	if err := fork(int(quads.BoxTop), cfg.Depth, cfg.SegmentLength); err != nil {
		return nil, err
	}
	return finish(m, cfg.Subdivisions, field, cfg.Roughness)
}

// TentacleConfig configures [Tentacle].
type TentacleConfig struct {
	Segments      int     `default:"10"`
	Width         float32 `default:"0.35"`
	SegmentLength float32 `default:"0.35"`
	Taper         float32 `default:"0.88"`

	// Curl is the rotation of each segment about the X axis, in degrees.
	Curl float32 `default:"15"`

	Subdivisions int     `default:"2"`
	Roughness    float32 `default:"0.015"`
}

// Defaults sets the default values from the `default:` tags.
func (c *TentacleConfig) Defaults() { errors.Log(reflectx.SetFromDefaultTags(c)) }

// Tentacle grows a tapering chain that curls steadily to one side.
func Tentacle(cfg *TentacleConfig, rnd randx.Rand, field quads.Field) (*quads.Mesh, error) {
	if cfg.Segments < 1 || cfg.Width <= 0 {
		return nil, fmt.Errorf("sculpt: tentacle: invalid config %d x %g", cfg.Segments, cfg.Width)
	}
	m := quads.NewBox(cfg.Width, cfg.Width, cfg.Width)
	tip := int(quads.BoxTop)
	curl := math32.Vec3(1, 0, 0)
	for range cfg.Segments {
		var err error
		if tip, _, err = grow(m, tip, 1, cfg.SegmentLength, cfg.Taper, 0, rnd); err != nil {
			return nil, err
		}
		angle := math32.DegToRad(cfg.Curl * (1 + spread(rnd, 0.3)))
		if err := m.RotateCells([]int{tip}, curl, angle); err != nil {
			return nil, err
		}
	}
	return finish(m, cfg.Subdivisions, field, cfg.Roughness)
}

// MaskConfig configures [Mask].
type MaskConfig struct {
	Width      float32 `default:"1"`
	Height     float32 `default:"1.3"`
	Depth      float32 `default:"0.25"`
	EyeDepth   float32 `default:"0.15"`
	NoseLength float32 `default:"0.2"`

	Subdivisions int     `default:"2"`
	Roughness    float32 `default:"0.01"`
}

// Defaults sets the default values from the `default:` tags.
func (c *MaskConfig) Defaults() { errors.Log(reflectx.SetFromDefaultTags(c)) }

// farOf returns the far half that was split off cell ci by the loop.
func farOf(ls quads.LoopSplit, ci int) (int, error) {
	for i, c := range ls.Near {
		if c == ci {
			return ls.Far[i], nil
		}
	}
	return -1, fmt.Errorf("cell %d not in loop", ci)
}

// Mask divides the front of a flat box into a three by two grid with
// edge loops, then sinks two eye sockets and pulls out a nose.
func Mask(cfg *MaskConfig, rnd randx.Rand, field quads.Field) (*quads.Mesh, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Depth <= 0 {
		return nil, fmt.Errorf("sculpt: mask: invalid size %g x %g x %g", cfg.Width, cfg.Height, cfg.Depth)
	}
	m := quads.NewBox(cfg.Width, cfg.Height, cfg.Depth)
	left := int(quads.BoxFront)
	cols, err := m.SplitLoop(left, 1.0/3, quads.Vertical)
	if err != nil {
		return nil, err
	}
	mid, err := farOf(cols, left)
	if err != nil {
		return nil, err
	}
	cols, err = m.SplitLoop(mid, 0.5, quads.Vertical)
	if err != nil {
		return nil, err
	}
	right, err := farOf(cols, mid)
	if err != nil {
		return nil, err
	}
	rows, err := m.SplitLoop(left, 0.55, quads.Horizontal)
	if err != nil {
		return nil, err
	}
	var eyes [2]int
	for i, ci := range []int{left, right} {
		if eyes[i], err = farOf(rows, ci); err != nil {
			return nil, err
		}
	}
	for _, eye := range eyes {
		depth := cfg.EyeDepth * (1 + spread(rnd, 0.2))
		if _, err := m.Extrude(eye, 0.3, -depth); err != nil {
			return nil, err
		}
	}
	if _, err := m.Extrude(mid, 0.35, cfg.NoseLength); err != nil {
		return nil, err
	}
	return finish(m, cfg.Subdivisions, field, cfg.Roughness)
}
