// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"github.com/muesli/termenv"
	"github.com/quadsculpt/quadsculpt/bake"
	"github.com/quadsculpt/quadsculpt/config"
	"github.com/quadsculpt/quadsculpt/preview"
	"github.com/quadsculpt/quadsculpt/sculpt"
	"golang.org/x/sync/errgroup"
)

// errNoInputs is returned by commands that were given nothing to build.
var errNoInputs = errors.New("no inputs: give recipe files or shape names (see quadsculpt shapes)")

func checkInputs(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Inputs) == 0 {
		return errNoInputs
	}
	return nil
}

// Build builds every input and writes the meshes to the output directory.
func Build(c *config.Config) error {
	if err := checkInputs(c); err != nil {
		return err
	}
	var g errgroup.Group
	g.SetLimit(max(c.Jobs, 1))
	for _, in := range c.Inputs {
		g.Go(func() error {
			return buildFile(c, in)
		})
	}
	return g.Wait()
}

// buildFile builds one input and saves the mesh.
func buildFile(c *config.Config, input string) error {
	r, m, err := c.Build(input)
	if err != nil {
		return err
	}
	fn, err := c.OutputPath(r.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	if err := bake.Save(fn, m, r.Name, c.BakeMode()); err != nil {
		return err
	}
	logx.PrintlnInfo("wrote", fn, "with", m.NumCells(), "cells")
	return nil
}

// Shapes lists the built-in shapes and recipe op kinds.
func Shapes(c *config.Config) error {
	out := termenv.NewOutput(os.Stdout)
	fmt.Fprintln(out, out.String("shapes").Bold())
	for _, name := range sculpt.ShapeNames() {
		fmt.Fprintln(out, "  "+name)
	}
	fmt.Fprintln(out, out.String("op kinds").Bold())
	fmt.Fprintln(out, "  "+strings.Join(sculpt.Kinds(), ", "))
	return nil
}

// Stats builds every input and prints a summary of each mesh.
func Stats(c *config.Config) error {
	if err := checkInputs(c); err != nil {
		return err
	}
	out := termenv.NewOutput(os.Stdout)
	for _, in := range c.Inputs {
		r, m, err := c.Build(in)
		if err != nil {
			return err
		}
		s := bake.ComputeStats(m)
		closed := out.String("open").Foreground(out.Color("3"))
		if s.Closed() {
			closed = out.String("closed").Foreground(out.Color("2"))
		}
		size := s.Bounds.Size()
		fmt.Fprintf(out, "%s  %s\n", out.String(r.Name).Bold(), closed)
		fmt.Fprintf(out, "  positions %d  cells %d  triangles %d\n", s.Positions, s.Cells, s.Triangles)
		fmt.Fprintf(out, "  edges %d  boundary %d  duplicates %d\n", s.Edges, s.Boundary, s.Duplicates)
		fmt.Fprintf(out, "  size %.3g x %.3g x %.3g\n", size.X, size.Y, size.Z)
	}
	return nil
}

// recipeFiles returns the inputs that are recipe files.
func recipeFiles(inputs []string) []string {
	var files []string
	for _, in := range inputs {
		if config.IsRecipeFile(in) {
			files = append(files, in)
		}
	}
	return files
}

// interruptContext returns a context that is canceled on interrupt.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// ignoreCanceled returns nil for context cancellation errors, which
// are the normal way long running commands end.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Watch builds the recipe files and rebuilds them whenever they change.
func Watch(c *config.Config) error {
	files := recipeFiles(c.Inputs)
	if len(files) == 0 {
		return errNoInputs
	}
	c.Inputs = files
	if err := Build(c); err != nil {
		return err
	}
	ctx, stop := interruptContext()
	defer stop()
	logx.PrintlnWarn("Watching", strings.Join(files, ", "))
	return ignoreCanceled(preview.Watch(ctx, files, func(path string) error {
		return buildFile(c, path)
	}))
}
