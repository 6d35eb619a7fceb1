// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sculpt

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/mattn/go-shellwords"
	"github.com/quadsculpt/quadsculpt/quads"
)

// Op is one step of a [Recipe]. Which fields are used depends on Kind;
// see [Kinds].
type Op struct {

	// Kind is the operation, one of [Kinds].
	Kind string `toml:"kind" yaml:"kind"`

	// Cell selects the cells the op applies to: a cell index, a box
	// face name ("front", "top", ...), "all", or "last" for the cells
	// produced by the previous op. Empty means "last".
	Cell string `toml:"cell,omitempty" yaml:"cell,omitempty"`

	// T is the split or loop parameter. Zero means 0.5.
	T float32 `toml:"t,omitempty" yaml:"t,omitempty"`

	// Inset is the inset fraction for inset and extrude ops.
	Inset float32 `toml:"inset,omitempty" yaml:"inset,omitempty"`

	// Distance is the extrusion distance along the cell normal.
	Distance float32 `toml:"distance,omitempty" yaml:"distance,omitempty"`

	// Direction is "vertical" or "horizontal" for split and loop ops.
	Direction string `toml:"direction,omitempty" yaml:"direction,omitempty"`

	// Disjoint makes split ops duplicate the shared points.
	Disjoint bool `toml:"disjoint,omitempty" yaml:"disjoint,omitempty"`

	// Divisions is the number of subdivision steps.
	Divisions int `toml:"divisions,omitempty" yaml:"divisions,omitempty"`

	// Scale is the per-axis scale factor; zero components mean 1.
	Scale [3]float32 `toml:"scale,omitempty" yaml:"scale,omitempty,flow"`

	// Offset is the translation.
	Offset [3]float32 `toml:"offset,omitempty" yaml:"offset,omitempty,flow"`

	// Axis is "x", "y" or "z", for mirror and rotate.
	Axis string `toml:"axis,omitempty" yaml:"axis,omitempty"`

	// Angle is the rotation angle in degrees.
	Angle float32 `toml:"angle,omitempty" yaml:"angle,omitempty"`

	// Amount is the deform displacement scale.
	Amount float32 `toml:"amount,omitempty" yaml:"amount,omitempty"`

	// Jitter randomly varies Distance, Inset, Angle and Scale by up
	// to this fraction, each time the op is applied.
	Jitter float32 `toml:"jitter,omitempty" yaml:"jitter,omitempty"`

	// Repeat applies the op this many times, each time to the cells
	// produced by the previous application. Zero means once.
	Repeat int `toml:"repeat,omitempty" yaml:"repeat,omitempty"`
}

// opFunc applies one op to the given target cells and returns the
// cells it produced.
type opFunc func(b *builder, op *Op, targets []int) ([]int, error)

// ops are the operations by kind.
var ops = map[string]opFunc{
	"extrude":          extrudeOp(false),
	"extrude-disjoint": extrudeOp(true),
	"inset":            insetOp(false),
	"inset-disjoint":   insetOp(true),
	"split-vertical":   splitOp(quads.Vertical),
	"split-horizontal": splitOp(quads.Horizontal),
	"split-loop":       splitLoopOp,
	"inset-loop":       insetLoopOp,
	"subdivide":        subdivideOp,
	"merge":            mergeOp,
	"flip":             flipOp,
	"scale":            scaleOp,
	"translate":        translateOp,
	"rotate":           rotateOp,
	"mirror":           mirrorOp,
	"deform":           deformOp,
	"normals":          normalsOp(false),
	"flat-normals":     normalsOp(true),
}

// Kinds returns the sorted names of all op kinds.
func Kinds() []string {
	ks := make([]string, 0, len(ops))
	for k := range ops {
		ks = append(ks, k)
	}
	slices.Sort(ks)
	return ks
}

// suggest returns a " (did you mean ...?)" hint naming the candidate
// most similar to s, or "" if none is close.
func suggest(s string, candidates []string) string {
	metric := metrics.NewLevenshtein()
	best, bestSim := "", 0.5
	for _, c := range candidates {
		if sim := strutil.Similarity(s, c, metric); sim > bestSim {
			best, bestSim = c, sim
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}

func (op *Op) validate() error {
	if _, ok := ops[op.Kind]; !ok {
		return fmt.Errorf("unknown op kind %q%s", op.Kind, suggest(op.Kind, Kinds()))
	}
	if op.Repeat < 0 {
		return fmt.Errorf("%s: negative repeat %d", op.Kind, op.Repeat)
	}
	if op.Direction != "" {
		if _, err := parseDirection(op.Direction); err != nil {
			return fmt.Errorf("%s: %w", op.Kind, err)
		}
	}
	if op.Axis != "" {
		if _, err := parseAxis(op.Axis); err != nil {
			return fmt.Errorf("%s: %w", op.Kind, err)
		}
	}
	return nil
}

func parseDirection(s string) (quads.Direction, error) {
	switch strings.ToLower(s) {
	case "", "vertical", "v":
		return quads.Vertical, nil
	case "horizontal", "h":
		return quads.Horizontal, nil
	}
	return quads.Vertical, fmt.Errorf("unknown direction %q (want vertical or horizontal)", s)
}

func parseAxis(s string) (math32.Dims, error) {
	switch strings.ToLower(s) {
	case "", "x":
		return math32.X, nil
	case "y":
		return math32.Y, nil
	case "z":
		return math32.Z, nil
	}
	return math32.X, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

// param returns the split parameter of the op.
func (op *Op) param() float32 {
	if op.T == 0 {
		return 0.5
	}
	return op.T
}

// scale returns the scale vector of the op, with zeros read as 1.
func (op *Op) scale() math32.Vector3 {
	var s math32.Vector3
	for i, v := range op.Scale {
		if v == 0 {
			v = 1
		}
		s.SetDim(math32.Dims(i), v)
	}
	return s
}

// selectCells resolves a cell selector to cell indexes.
func (b *builder) selectCells(sel string) ([]int, error) {
	switch strings.ToLower(sel) {
	case "", "last":
		if len(b.last) == 0 {
			return nil, fmt.Errorf("no cells from a previous op to select")
		}
		return b.last, nil
	case "all":
		all := make([]int, b.mesh.NumCells())
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if f, ok := quads.BoxFaceByName(sel); ok {
		return []int{int(f)}, nil
	}
	if ci, err := strconv.Atoi(sel); err == nil {
		return []int{ci}, nil
	}
	return nil, fmt.Errorf("unknown cell selector %q", sel)
}

func extrudeOp(disjoint bool) opFunc {
	return func(b *builder, op *Op, targets []int) ([]int, error) {
		var out []int
		for _, ci := range targets {
			inset, dist := b.varyInset(op), b.vary(op.Distance, op.Jitter)
			var res quads.InsetResult
			var err error
			if disjoint {
				res, err = b.mesh.ExtrudeDisjoint(ci, inset, dist)
			} else {
				res, err = b.mesh.Extrude(ci, inset, dist)
			}
			if err != nil {
				return nil, err
			}
			out = append(out, res.Cell)
		}
		return out, nil
	}
}

func insetOp(disjoint bool) opFunc {
	return func(b *builder, op *Op, targets []int) ([]int, error) {
		var out []int
		for _, ci := range targets {
			var res quads.InsetResult
			var err error
			if disjoint {
				res, err = b.mesh.InsetDisjoint(ci, b.varyInset(op))
			} else {
				res, err = b.mesh.Inset(ci, b.varyInset(op))
			}
			if err != nil {
				return nil, err
			}
			out = append(out, res.Cell)
		}
		return out, nil
	}
}

func splitOp(dir quads.Direction) opFunc {
	return func(b *builder, op *Op, targets []int) ([]int, error) {
		var out []int
		for _, ci := range targets {
			nc, err := b.mesh.Split(ci, op.param(), dir, op.Disjoint)
			if err != nil {
				return nil, err
			}
			out = append(out, nc)
		}
		return out, nil
	}
}

func splitLoopOp(b *builder, op *Op, targets []int) ([]int, error) {
	dir, _ := parseDirection(op.Direction)
	var out []int
	for _, ci := range targets {
		ls, err := b.mesh.SplitLoop(ci, op.param(), dir)
		if err != nil {
			return nil, err
		}
		out = append(out, ls.Far...)
	}
	return out, nil
}

func insetLoopOp(b *builder, op *Op, targets []int) ([]int, error) {
	dir, _ := parseDirection(op.Direction)
	var out []int
	for _, ci := range targets {
		band, err := b.mesh.InsetLoop(ci, op.param(), dir)
		if err != nil {
			return nil, err
		}
		out = append(out, band...)
	}
	return out, nil
}

// subdivideOp maps every selected cell to its sub-cells, so that later
// ops can keep addressing the same region.
func subdivideOp(b *builder, op *Op, targets []int) ([]int, error) {
	divs := op.Divisions
	if divs == 0 {
		divs = 1
	}
	if err := b.mesh.Subdivide(divs); err != nil {
		return nil, err
	}
	out := targets
	for range divs {
		next := make([]int, 0, 4*len(out))
		for _, ci := range out {
			next = append(next, 4*ci, 4*ci+1, 4*ci+2, 4*ci+3)
		}
		out = next
	}
	return out, nil
}

func mergeOp(b *builder, op *Op, targets []int) ([]int, error) {
	b.mesh.MergePositions()
	return targets, nil
}

func flipOp(b *builder, op *Op, targets []int) ([]int, error) {
	for _, ci := range targets {
		if err := b.mesh.Flip(ci); err != nil {
			return nil, err
		}
	}
	return targets, nil
}

func scaleOp(b *builder, op *Op, targets []int) ([]int, error) {
	s := op.scale()
	k := b.vary(1, op.Jitter)
	return targets, b.mesh.ScaleCells(targets, s.MulScalar(k))
}

func translateOp(b *builder, op *Op, targets []int) ([]int, error) {
	return targets, b.mesh.TranslateCells(targets, math32.Vec3(op.Offset[0], op.Offset[1], op.Offset[2]))
}

func rotateOp(b *builder, op *Op, targets []int) ([]int, error) {
	ax, _ := parseAxis(op.Axis)
	var axis math32.Vector3
	axis.SetDim(ax, 1)
	return targets, b.mesh.RotateCells(targets, axis, math32.DegToRad(b.vary(op.Angle, op.Jitter)))
}

func mirrorOp(b *builder, op *Op, targets []int) ([]int, error) {
	ax, _ := parseAxis(op.Axis)
	return targets, b.mesh.Mirror(ax)
}

func deformOp(b *builder, op *Op, targets []int) ([]int, error) {
	return targets, b.mesh.Deform(b.field, op.Amount)
}

func normalsOp(flat bool) opFunc {
	return func(b *builder, op *Op, targets []int) ([]int, error) {
		b.flat = flat
		if flat {
			b.mesh.FlatNormals()
		} else {
			b.mesh.ComputeNormals()
		}
		return targets, nil
	}
}

// global reports whether the op kind works on the whole mesh and so
// does not need a cell selection.
func global(kind string) bool {
	switch kind {
	case "merge", "mirror", "deform", "normals", "flat-normals", "subdivide":
		return true
	}
	return false
}

// opKeys are the keys accepted by [ParseOp].
var opKeys = []string{"amount", "angle", "axis", "cell", "direction", "disjoint", "distance", "divisions", "inset", "jitter", "offset", "repeat", "scale", "t"}

// ParseOp parses an op written on one line as its kind followed by
// key=value pairs, such as:
//
//	extrude cell=top inset=0.2 distance=0.5 repeat=3
//	scale scale=0.5,1,0.5
//
// Values may be quoted as in a shell.
func ParseOp(line string) (Op, error) {
	words, err := shellwords.Parse(line)
	if err != nil {
		return Op{}, fmt.Errorf("sculpt: op %q: %w", line, err)
	}
	if len(words) == 0 {
		return Op{}, fmt.Errorf("sculpt: empty op")
	}
	op := Op{Kind: words[0]}
	for _, w := range words[1:] {
		key, val, ok := strings.Cut(w, "=")
		if !ok {
			return Op{}, fmt.Errorf("sculpt: op %q: %q is not key=value", line, w)
		}
		if err := op.set(strings.ToLower(key), val); err != nil {
			return Op{}, fmt.Errorf("sculpt: op %q: %w", line, err)
		}
	}
	if err := op.validate(); err != nil {
		return Op{}, fmt.Errorf("sculpt: %w", err)
	}
	return op, nil
}

func (op *Op) set(key, val string) error {
	floats := map[string]*float32{
		"t": &op.T, "inset": &op.Inset, "distance": &op.Distance,
		"angle": &op.Angle, "amount": &op.Amount, "jitter": &op.Jitter,
	}
	if f, ok := floats[key]; ok {
		v, err := strconv.ParseFloat(val, 32)
		*f = float32(v)
		return err
	}
	switch key {
	case "cell":
		op.Cell = val
	case "direction":
		op.Direction = val
	case "axis":
		op.Axis = val
	case "disjoint":
		v, err := strconv.ParseBool(val)
		op.Disjoint = v
		return err
	case "divisions", "repeat":
		v, err := strconv.Atoi(val)
		if key == "repeat" {
			op.Repeat = v
		} else {
			op.Divisions = v
		}
		return err
	case "scale", "offset":
		parts := strings.Split(val, ",")
		if len(parts) != 3 {
			return fmt.Errorf("%s wants three comma separated values, got %q", key, val)
		}
		dst := &op.Scale
		if key == "offset" {
			dst = &op.Offset
		}
		for i, s := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
			if err != nil {
				return err
			}
			dst[i] = float32(v)
		}
	default:
		return fmt.Errorf("unknown key %q%s", key, suggest(key, opKeys))
	}
	return nil
}
