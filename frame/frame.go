// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame drives a per-frame callback from a ticker, for
// animating meshes over time.
package frame

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"cogentcore.org/core/base/errors"
)

// ErrStopped is returned by a frame function to end the loop without
// reporting a failure.
var ErrStopped = errors.New("frame: stopped")

// Tick is the time context passed to a frame function.
type Tick struct {

	// Count is the number of the frame, starting at 0.
	Count int

	// Time is the time since the loop started.
	Time time.Duration

	// Delta is the time since the previous frame, or 0 on the first.
	Delta time.Duration
}

// Seconds returns Time in seconds, the usual input to time-varying
// noise fields.
func (t Tick) Seconds() float32 {
	return float32(t.Time.Seconds())
}

// Func is a frame function.
type Func func(t Tick) error

// Loop calls fn once per interval until the context is done, fn
// returns an error, or fn panics. A panic is recovered and returned
// as an error, and no further frames are run after a failure.
// Loop returns nil when fn returns [ErrStopped], and the context
// error when the context ends the loop.
func Loop(ctx context.Context, interval time.Duration, fn Func) error {
	if interval <= 0 {
		return fmt.Errorf("frame: interval %v must be positive", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	start := time.Now()
	last := start
	for count := 0; ; count++ {
		now := time.Now()
		tk := Tick{Count: count, Time: now.Sub(start)}
		if count > 0 {
			tk.Delta = now.Sub(last)
		}
		last = now
		if err := run(fn, tk); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			slog.Error("frame loop stopped", "frame", count, "err", err)
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// run calls fn, turning a panic into an error.
func run(fn Func, tk Tick) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("frame panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("frame %d: panic: %v", tk.Count, r)
		}
	}()
	return fn(tk)
}
