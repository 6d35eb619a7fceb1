// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bake

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/base/iox/jsonx"
	"github.com/quadsculpt/quadsculpt/quads"
)

// Format is a mesh file format.
type Format int32

const (
	// OBJ is the Wavefront OBJ text format, with quads kept as
	// four-sided faces.
	OBJ Format = iota

	// JSON is the JSON encoding of [Buffers].
	JSON
)

func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "obj"
}

// ParseFormat returns the format with the given name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "obj":
		return OBJ, nil
	case "json":
		return JSON, nil
	}
	return OBJ, fmt.Errorf("bake: unknown format %q (want obj or json)", s)
}

// FormatForFile returns the format implied by the extension of filename.
func FormatForFile(filename string) (Format, error) {
	return ParseFormat(filepath.Ext(filename))
}

// WriteOBJ writes the mesh as a Wavefront OBJ object with positions,
// normals and one quad face per cell.
func WriteOBJ(w io.Writer, m *quads.Mesh, name string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("bake: %w", err)
	}
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
	}
	for _, c := range m.Cells {
		a, b, cc, d := c[0]+1, c[1]+1, c[2]+1, c[3]+1
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d %d//%d\n", a, a, b, b, cc, cc, d, d)
	}
	return bw.Flush()
}

// WriteJSON writes the buffers as JSON.
func WriteJSON(w io.Writer, b *Buffers) error {
	return jsonx.Write(b, w)
}

// ReadJSON reads buffers written by [WriteJSON].
func ReadJSON(r io.Reader) (*Buffers, error) {
	b := &Buffers{}
	if err := jsonx.Read(b, r); err != nil {
		return nil, fmt.Errorf("bake: %w", err)
	}
	return b, nil
}

// Write writes the mesh in the given format, baking it first for
// formats that store buffers.
func Write(w io.Writer, m *quads.Mesh, name string, format Format, mode Mode) error {
	if format == OBJ {
		return WriteOBJ(w, m, name)
	}
	b, err := Bake(m, mode)
	if err != nil {
		return err
	}
	b.Name = name
	return WriteJSON(w, b)
}

// Save writes the mesh to filename, in the format given by its extension.
func Save(filename string, m *quads.Mesh, name string, mode Mode) error {
	format, err := FormatForFile(filename)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(f, m, name, format, mode); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
