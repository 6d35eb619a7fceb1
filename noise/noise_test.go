// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package noise

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func samplePoints() []math32.Vector3 {
	var ps []math32.Vector3
	for i := range 50 {
		f := float32(i)
		ps = append(ps, math32.Vec3(f*0.37, f*0.11-3, 2-f*0.23))
	}
	return ps
}

func TestDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()
	assert.Equal(t, float32(1), cfg.Frequency)
	assert.Equal(t, float32(1), cfg.Amplitude)
	assert.Equal(t, 1, cfg.Octaves)
	assert.Equal(t, float32(2), cfg.Lacunarity)
	assert.Equal(t, float32(0.5), cfg.Gain)
}

func TestDeterministic(t *testing.T) {
	a, b, c := NewSeed(7), NewSeed(7), NewSeed(8)
	same, differ := 0, 0
	for _, p := range samplePoints() {
		if a.Sample(p) == b.Sample(p) {
			same++
		}
		if a.Sample(p) != c.Sample(p) {
			differ++
		}
	}
	assert.Equal(t, len(samplePoints()), same)
	assert.Greater(t, differ, 0)
}

func TestAmplitude(t *testing.T) {
	cfg := Config{Seed: 3, Amplitude: 0.25, Octaves: 4}
	f := New(cfg)
	assert.Equal(t, float32(2), f.Lacunarity)
	nonzero := false
	for _, p := range samplePoints() {
		v := f.Sample(p)
		assert.LessOrEqual(t, math32.Abs(v), float32(0.25))
		if v != 0 {
			nonzero = true
		}
		assert.LessOrEqual(t, math32.Abs(f.SampleTime(p, 1.5)), float32(0.25))
	}
	assert.True(t, nonzero)
}

func TestOffset(t *testing.T) {
	base := NewSeed(1)
	cfg := base.Config
	cfg.Offset = math32.Vec3(10, 0, 0)
	moved := New(cfg)
	p := math32.Vec3(0.3, 0.6, 0.9)
	assert.Equal(t, base.Sample(p.Add(math32.Vec3(10, 0, 0))), moved.Sample(p))
}

func TestAt(t *testing.T) {
	f := NewSeed(5)
	s0, s1 := f.At(0), f.At(1.5)
	differ := false
	for _, p := range samplePoints() {
		assert.Equal(t, f.SampleTime(p, 1.5), s1.Sample(p))
		if s0.Sample(p) != s1.Sample(p) {
			differ = true
		}
	}
	assert.True(t, differ)
}
