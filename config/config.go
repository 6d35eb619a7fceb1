// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for the
// quadsculpt tool.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/fsx"
	"cogentcore.org/core/base/reflectx"
	"github.com/mitchellh/go-homedir"
	"github.com/quadsculpt/quadsculpt/bake"
	"github.com/quadsculpt/quadsculpt/quads"
	"github.com/quadsculpt/quadsculpt/sculpt"
)

// Config is the main config struct that contains all of the
// configuration options for the quadsculpt tool.
type Config struct {

	// Inputs are the recipe files (.toml, .yaml or .yml) or built-in
	// shape names to build.
	Inputs []string `posarg:"all" required:"-"`

	// Output is the directory that meshes are written to.
	// A leading ~ is expanded to the home directory.
	Output string `flag:"o,output" default:"."`

	// Format is the mesh file format, obj or json.
	Format string `flag:"f,format" default:"obj"`

	// Mode is the primitive type for json output, triangles or lines.
	Mode string `flag:"m,mode" default:"triangles"`

	// Ops are extra ops appended to every recipe, each written on one
	// line as a kind followed by key=value pairs, such as
	// "extrude cell=top distance=0.5".
	Ops []string `flag:"op"`

	// Subdivide adds this many subdivision steps to the end of
	// every recipe, after any extra ops.
	Subdivide int `flag:"s,subdivide"`

	// Seed overrides the seed of every recipe when non-zero.
	Seed int64

	// Jobs is the maximum number of recipes built at once.
	Jobs int `flag:"j,jobs" default:"4" min:"1"`

	// Preview has the options for the serve command.
	Preview Preview `cmd:"serve"`
}

// Preview has the options for the live preview server.
type Preview struct {

	// Host is the host name or IP address to serve on.
	Host string `default:"localhost"`

	// Port is the TCP port to serve on.
	Port int `default:"8765"`

	// FPS is the animation frame rate.
	FPS float32 `default:"30"`

	// Animate is the amplitude of the time-varying noise applied to
	// served meshes every frame. Zero serves them static.
	Animate float32
}

// Addr returns the host:port network address to serve on.
func (p *Preview) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// Defaults sets the default values from the `default:` tags.
func (c *Config) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(c))
}

// Validate checks the option values.
func (c *Config) Validate() error {
	var errs []error
	if _, err := bake.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, err := bake.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Subdivide < 0 {
		errs = append(errs, fmt.Errorf("config: negative subdivide %d", c.Subdivide))
	}
	if c.Preview.FPS <= 0 {
		errs = append(errs, fmt.Errorf("config: frame rate %g must be positive", c.Preview.FPS))
	}
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		errs = append(errs, fmt.Errorf("config: port %d out of range", c.Preview.Port))
	}
	return errors.Join(errs...)
}

// FileFormat returns the parsed output format.
func (c *Config) FileFormat() bake.Format {
	return errors.Log1(bake.ParseFormat(c.Format))
}

// BakeMode returns the parsed bake mode.
func (c *Config) BakeMode() bake.Mode {
	return errors.Log1(bake.ParseMode(c.Mode))
}

// FrameInterval returns the time between animation frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Preview.FPS <= 0 {
		return time.Second / 30
	}
	return time.Duration(float64(time.Second) / float64(c.Preview.FPS))
}

// OutputPath returns the file that the mesh with the given name is
// written to.
func (c *Config) OutputPath(name string) (string, error) {
	dir, err := homedir.Expand(c.Output)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+"."+c.FileFormat().String()), nil
}

// IsRecipeFile returns whether the input names a recipe file rather
// than a built-in shape.
func IsRecipeFile(input string) bool {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".toml", ".yaml", ".yml":
		return true
	}
	return false
}

// Recipe returns the recipe for the input, which is a recipe file or
// the name of a built-in shape, with the overrides of the config
// applied to a copy of it.
func (c *Config) Recipe(input string) (*sculpt.Recipe, error) {
	var r *sculpt.Recipe
	switch {
	case IsRecipeFile(input):
		if !errors.Log1(fsx.FileExists(input)) {
			return nil, fmt.Errorf("config: recipe %q: %w", input, os.ErrNotExist)
		}
		var err error
		if r, err = sculpt.Open(input); err != nil {
			return nil, err
		}
	default:
		if _, ok := sculpt.Shapes[input]; !ok {
			return nil, fmt.Errorf("config: %q is neither a recipe file nor a shape (have %s)", input, strings.Join(sculpt.ShapeNames(), ", "))
		}
		r = &sculpt.Recipe{Name: input, Version: sculpt.FormatVersion, Base: input}
		r.Defaults()
	}
	r = r.Clone()
	if c.Seed != 0 {
		r.Seed = c.Seed
	}
	for _, line := range c.Ops {
		op, err := sculpt.ParseOp(line)
		if err != nil {
			return nil, err
		}
		r.Ops = append(r.Ops, op)
	}
	if c.Subdivide > 0 {
		r.Ops = append(r.Ops, sculpt.Op{Kind: "subdivide", Cell: "all", Divisions: c.Subdivide})
	}
	return r, nil
}

// Build builds the mesh for the input.
func (c *Config) Build(input string) (*sculpt.Recipe, *quads.Mesh, error) {
	r, err := c.Recipe(input)
	if err != nil {
		return nil, nil, err
	}
	m, err := sculpt.Build(r)
	if err != nil {
		return nil, nil, err
	}
	return r, m, nil
}
