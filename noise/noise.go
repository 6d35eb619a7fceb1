// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package noise provides seeded fractal noise fields over 3D space,
// used to add organic variation to sculpted meshes. Each [Field] owns
// its generator, so the same seed always produces the same mesh.
package noise

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/reflectx"
	"cogentcore.org/core/math32"
	"github.com/ojrac/opensimplex-go"
)

// Config parametrizes a fractal noise [Field].
type Config struct {

	// Seed selects the noise pattern.
	Seed int64 `toml:"seed" yaml:"seed"`

	// Frequency is the number of noise features per unit of space.
	Frequency float32 `default:"1" toml:"frequency" yaml:"frequency"`

	// Amplitude scales the output of the field.
	Amplitude float32 `default:"1" toml:"amplitude" yaml:"amplitude"`

	// Octaves is the number of layers summed, each finer than the last.
	Octaves int `default:"1" min:"1" toml:"octaves" yaml:"octaves"`

	// Lacunarity is the frequency multiplier between octaves.
	Lacunarity float32 `default:"2" toml:"lacunarity" yaml:"lacunarity"`

	// Gain is the amplitude multiplier between octaves.
	Gain float32 `default:"0.5" toml:"gain" yaml:"gain"`

	// Offset is added to sample positions before scaling, to move
	// the pattern without changing the seed.
	Offset math32.Vector3 `toml:"offset" yaml:"offset"`
}

// Defaults sets the default values from the `default:` tags.
func (c *Config) Defaults() {
	errors.Log(reflectx.SetFromDefaultTags(c))
}

// Field is a seeded fractal (multi-octave) simplex noise field.
// Sampling does not modify the field.
type Field struct {
	Config
	gen opensimplex.Noise32
}

// New returns a new field for the given config. Zero values for
// Octaves, Frequency, Lacunarity and Gain fall back to their defaults.
func New(cfg Config) *Field {
	var def Config
	def.Defaults()
	if cfg.Octaves < 1 {
		cfg.Octaves = def.Octaves
	}
	if cfg.Frequency == 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Lacunarity == 0 {
		cfg.Lacunarity = def.Lacunarity
	}
	if cfg.Gain == 0 {
		cfg.Gain = def.Gain
	}
	return &Field{Config: cfg, gen: opensimplex.New32(cfg.Seed)}
}

// NewSeed returns a field with default settings and the given seed.
func NewSeed(seed int64) *Field {
	var cfg Config
	cfg.Defaults()
	cfg.Seed = seed
	return New(cfg)
}

// Sample returns the field value at p, within [-Amplitude, Amplitude].
func (f *Field) Sample(p math32.Vector3) float32 {
	return f.sum(func(freq float32) float32 {
		q := p.Add(f.Offset).MulScalar(freq)
		return f.gen.Eval3(q.X, q.Y, q.Z)
	})
}

// SampleTime returns the field value at p at time tm, for fields that
// evolve smoothly over time.
func (f *Field) SampleTime(p math32.Vector3, tm float32) float32 {
	return f.sum(func(freq float32) float32 {
		q := p.Add(f.Offset).MulScalar(freq)
		return f.gen.Eval4(q.X, q.Y, q.Z, tm*freq)
	})
}

// Slice is a [Field] frozen at one point in time.
type Slice struct {
	Field *Field
	Time  float32
}

// At returns the field frozen at time tm, which can be sampled like a
// static field.
func (f *Field) At(tm float32) Slice {
	return Slice{Field: f, Time: tm}
}

// Sample returns the field value at p at the time of the slice.
func (s Slice) Sample(p math32.Vector3) float32 {
	return s.Field.SampleTime(p, s.Time)
}

// sum adds up the octaves of eval, normalized so that the result
// stays within the amplitude.
func (f *Field) sum(eval func(freq float32) float32) float32 {
	var total, norm float32
	freq, amp := f.Frequency, float32(1)
	for range f.Octaves {
		total += eval(freq) * amp
		norm += amp
		freq *= f.Lacunarity
		amp *= f.Gain
	}
	if norm == 0 {
		return 0
	}
	return f.Amplitude * total / norm
}
