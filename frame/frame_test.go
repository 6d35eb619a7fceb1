// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoopStops(t *testing.T) {
	var ticks []Tick
	err := Loop(context.Background(), time.Millisecond, func(tk Tick) error {
		ticks = append(ticks, tk)
		if tk.Count == 4 {
			return ErrStopped
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Len(t, ticks, 5)
	assert.Zero(t, ticks[0].Delta)
	for i := 1; i < len(ticks); i++ {
		assert.Equal(t, i, ticks[i].Count)
		assert.Greater(t, ticks[i].Delta, time.Duration(0))
		assert.GreaterOrEqual(t, ticks[i].Time, ticks[i-1].Time)
	}
}

func TestLoopError(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	err := Loop(context.Background(), time.Millisecond, func(tk Tick) error {
		n++
		if tk.Count == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, n)
}

func TestLoopPanic(t *testing.T) {
	n := 0
	err := Loop(context.Background(), time.Millisecond, func(tk Tick) error {
		n++
		var m map[string]int
		m["x"] = 1
		return nil
	})
	assert.ErrorContains(t, err, "panic")
	assert.Equal(t, 1, n)
}

func TestLoopCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	err := Loop(ctx, time.Millisecond, func(tk Tick) error {
		if tk.Count == 1 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoopInterval(t *testing.T) {
	assert.Error(t, Loop(context.Background(), 0, func(Tick) error { return nil }))
}
