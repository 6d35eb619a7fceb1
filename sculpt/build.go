// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"
	"github.com/quadsculpt/quadsculpt/noise"
	"github.com/quadsculpt/quadsculpt/quads"
)

// builder is the state of one recipe build.
type builder struct {
	mesh  *quads.Mesh
	rand  randx.Rand
	field *noise.Field

	// last are the cells produced by the previous op.
	last []int

	// flat is set once flat normals are requested, so the final
	// smooth normal pass is skipped.
	flat bool
}

// vary returns v randomly varied by up to the jitter fraction.
func (b *builder) vary(v, jitter float32) float32 {
	if jitter == 0 {
		return v
	}
	return v * (1 + jitter*(2*b.rand.Float32()-1))
}

// varyInset returns the varied inset of op, kept within [0, 1].
func (b *builder) varyInset(op *Op) float32 {
	return math32.Clamp(b.vary(op.Inset, op.Jitter), 0, 1)
}

// Build runs the recipe and returns the resulting mesh, with smooth
// normals unless the recipe asked for flat ones.
func Build(r *Recipe) (*quads.Mesh, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	m, err := r.base()
	if err != nil {
		return nil, err
	}
	ncfg := r.Noise
	if ncfg.Seed == 0 {
		ncfg.Seed = r.Seed
	}
	b := &builder{
		mesh:  m,
		rand:  randx.NewSysRand(r.Seed),
		field: noise.New(ncfg),
	}
	for i := range r.Ops {
		op := &r.Ops[i]
		if err := b.apply(op); err != nil {
			return nil, fmt.Errorf("sculpt: %s: op %d (%s): %w", r.Name, i, op.Kind, err)
		}
	}
	if !b.flat {
		m.ComputeNormals()
	}
	slog.Debug("built recipe", "name", r.Name, "ops", len(r.Ops), "positions", m.NumPositions(), "cells", m.NumCells())
	return m, nil
}

// base returns the starting mesh of the recipe.
func (r *Recipe) base() (*quads.Mesh, error) {
	if r.Base != "" {
		return Shapes[r.Base](r.Seed)
	}
	bx := r.Box
	if bx.Width == 0 || bx.Height == 0 || bx.Depth == 0 {
		return nil, fmt.Errorf("sculpt: %s: box size %v must be non-zero", r.Name, bx)
	}
	return quads.NewBox(bx.Width, bx.Height, bx.Depth), nil
}

// apply runs the op Repeat times, chaining each application onto the
// cells produced by the previous one.
func (b *builder) apply(op *Op) error {
	var targets []int
	if global(op.Kind) && op.Cell == "" {
		targets = b.last
	} else {
		var err error
		if targets, err = b.selectCells(op.Cell); err != nil {
			return err
		}
	}
	fn := ops[op.Kind]
	for range max(op.Repeat, 1) {
		out, err := fn(b, op, targets)
		if err != nil {
			return err
		}
		targets = out
	}
	b.last = targets
	return nil
}
