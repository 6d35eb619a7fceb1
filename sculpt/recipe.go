// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sculpt builds meshes from recipes: a base primitive followed
// by an ordered list of kernel operations, loaded from TOML or YAML
// files, plus a set of built-in organic shapes written directly
// against the [quads] kernel.
package sculpt

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"github.com/Masterminds/semver/v3"
	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"github.com/quadsculpt/quadsculpt/noise"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the recipe format version written by this package.
const FormatVersion = "1.0.0"

// supported is the range of recipe format versions that can be built.
var supported = errors.Must1(semver.NewConstraint("^1"))

// ErrVersion is returned for recipes of an unsupported format version.
var ErrVersion = errors.New("sculpt: unsupported recipe version")

// BoxSize is the size of the base box of a recipe.
type BoxSize struct {
	Width  float32 `default:"1" toml:"width" yaml:"width"`
	Height float32 `default:"1" toml:"height" yaml:"height"`
	Depth  float32 `default:"1" toml:"depth" yaml:"depth"`
}

// Recipe describes how to sculpt one mesh.
type Recipe struct {

	// Name of the mesh, used for output file names and object names.
	Name string `toml:"name" yaml:"name"`

	// Version is the recipe format version, checked against ^1.
	// An empty version means the current [FormatVersion].
	Version string `toml:"version" yaml:"version"`

	// Base is the name of a built-in shape (see [Shapes]) to start
	// from. If empty, the recipe starts from a box of size Box.
	Base string `toml:"base" yaml:"base"`

	// Seed seeds all randomness in the recipe: op jitter, the noise
	// field (unless it has its own seed) and the base shape.
	Seed int64 `toml:"seed" yaml:"seed"`

	// Box is the base box size.
	Box BoxSize `toml:"box" yaml:"box"`

	// Noise configures the field used by deform ops.
	Noise noise.Config `toml:"noise" yaml:"noise"`

	// Ops are applied in order.
	Ops []Op `toml:"ops" yaml:"ops"`
}

// Defaults sets the default values from the `default:` tags.
func (r *Recipe) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(r))
}

// Clone returns a deep copy of the recipe, so that overrides applied
// to the copy do not leak back into the loaded recipe.
func (r *Recipe) Clone() *Recipe {
	cp := &Recipe{}
	errors.Log(copier.CopyWithOption(cp, r, copier.Option{DeepCopy: true}))
	return cp
}

// Validate checks the recipe version, base shape and op kinds.
func (r *Recipe) Validate() error {
	if r.Version != "" {
		v, err := semver.NewVersion(r.Version)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrVersion, r.Version, err)
		}
		if !supported.Check(v) {
			return fmt.Errorf("%w: %s (want %s)", ErrVersion, v, supported)
		}
	}
	if r.Base != "" {
		if _, ok := Shapes[r.Base]; !ok {
			return fmt.Errorf("sculpt: unknown base shape %q%s", r.Base, suggest(r.Base, ShapeNames()))
		}
	}
	var errs []error
	for i, op := range r.Ops {
		if err := op.validate(); err != nil {
			errs = append(errs, fmt.Errorf("op %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Parse decodes a recipe in the given format ("toml", "yaml" or "yml"),
// applying defaults first so that omitted fields keep their defaults.
func Parse(data []byte, format string) (*Recipe, error) {
	r := &Recipe{}
	r.Defaults()
	var err error
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(r)
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(r)
	default:
		return nil, fmt.Errorf("sculpt: unknown recipe format %q (want toml or yaml)", format)
	}
	if err != nil {
		return nil, fmt.Errorf("sculpt: decoding %s recipe: %w", format, err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Open reads and parses the recipe file, choosing the format from its
// extension. A recipe without a name is named after the file.
func Open(filename string) (*Recipe, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	ext := filepath.Ext(filename)
	r, err := Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(filename), ext)
	}
	return r, nil
}

// Save writes the recipe as TOML or YAML, according to the extension.
func (r *Recipe) Save(filename string) error {
	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		data, err = toml.Marshal(r)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("sculpt: unknown recipe format for %q", filename)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0666)
}
