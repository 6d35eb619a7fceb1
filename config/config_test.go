// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/quadsculpt/quadsculpt/bake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

func TestDefaults(t *testing.T) {
	c := newConfig()
	assert.Equal(t, ".", c.Output)
	assert.Equal(t, 4, c.Jobs)
	assert.Equal(t, "localhost", c.Preview.Host)
	assert.Equal(t, 8765, c.Preview.Port)
	assert.Equal(t, "localhost:8765", c.Preview.Addr())
	assert.NoError(t, c.Validate())
	assert.Equal(t, bake.OBJ, c.FileFormat())
	assert.Equal(t, bake.Triangles, c.BakeMode())
	assert.Equal(t, time.Second/30, c.FrameInterval())
}

func TestValidate(t *testing.T) {
	c := newConfig()
	c.Format = "stl"
	c.Mode = "points"
	c.Preview.FPS = 0
	c.Preview.Port = 70000
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stl")
	assert.Contains(t, err.Error(), "points")
	assert.Contains(t, err.Error(), "port 70000")
}

func TestFrameInterval(t *testing.T) {
	c := newConfig()
	c.Preview.FPS = 60
	assert.Equal(t, 16666666*time.Nanosecond, c.FrameInterval())
	c.Preview.FPS = 0
	assert.Equal(t, time.Second/30, c.FrameInterval())
}

func TestListenDefaultAddr(t *testing.T) {
	c := newConfig()
	ln, err := net.Listen("tcp", c.Preview.Addr())
	if errors.Is(err, syscall.EADDRINUSE) {
		t.Skipf("default preview address %s is in use", c.Preview.Addr())
	}
	require.NoError(t, err)
	defer ln.Close()
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	assert.Equal(t, "8765", port)

	c.Preview.Port = 0
	ln0, err := net.Listen("tcp", c.Preview.Addr())
	require.NoError(t, err)
	ln0.Close()
}

func TestOutputPath(t *testing.T) {
	c := newConfig()
	c.Format = "json"
	c.Output = "~/meshes"
	p, err := c.OutputPath("antler")
	require.NoError(t, err)
	home, err := homedir.Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "meshes", "antler.json"), p)
}

func TestRecipe(t *testing.T) {
	c := newConfig()
	c.Seed = 42
	c.Subdivide = 1
	r, err := c.Recipe("tentacle")
	require.NoError(t, err)
	assert.Equal(t, "tentacle", r.Base)
	assert.Equal(t, int64(42), r.Seed)
	require.Len(t, r.Ops, 1)
	assert.Equal(t, "subdivide", r.Ops[0].Kind)

	_, err = c.Recipe("teapot")
	assert.ErrorContains(t, err, "neither")
	_, err = c.Recipe("missing.toml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecipeFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pillar.toml")
	src := "seed = 3\n[[ops]]\nkind = \"extrude\"\ncell = \"top\"\ndistance = 1\n"
	require.NoError(t, os.WriteFile(fn, []byte(src), 0666))
	c := newConfig()
	c.Subdivide = 1
	c.Ops = []string{`inset cell=front inset=0.5`}
	r, m, err := c.Build(fn)
	require.NoError(t, err)
	assert.Equal(t, "pillar", r.Name)
	assert.Equal(t, int64(3), r.Seed)
	assert.Equal(t, 4*14, m.NumCells())

	c.Ops = []string{`extrude cel=top`}
	_, _, err = c.Build(fn)
	assert.ErrorContains(t, err, `did you mean "cell"`)
}
