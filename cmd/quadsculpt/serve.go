// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/logx"
	"github.com/quadsculpt/quadsculpt/bake"
	"github.com/quadsculpt/quadsculpt/config"
	"github.com/quadsculpt/quadsculpt/frame"
	"github.com/quadsculpt/quadsculpt/noise"
	"github.com/quadsculpt/quadsculpt/preview"
	"github.com/quadsculpt/quadsculpt/quads"
	"golang.org/x/sync/errgroup"
)

// server holds the meshes being previewed.
type server struct {
	c     *config.Config
	hub   *preview.Hub
	field *noise.Field

	mu     sync.Mutex
	names  []string
	meshes map[string]*quads.Mesh
}

// rebuild builds the input, stores it and publishes it.
func (sv *server) rebuild(input string) error {
	r, m, err := sv.c.Build(input)
	if err != nil {
		return err
	}
	sv.mu.Lock()
	if _, ok := sv.meshes[r.Name]; !ok {
		sv.names = append(sv.names, r.Name)
	}
	sv.meshes[r.Name] = m
	sv.mu.Unlock()
	return sv.publish(r.Name, m)
}

func (sv *server) publish(name string, m *quads.Mesh) error {
	b, err := bake.Bake(m, sv.c.BakeMode())
	if err != nil {
		return err
	}
	b.Name = name
	return sv.hub.Publish(b)
}

// frame publishes every mesh deformed by the noise field at the time
// of the tick.
func (sv *server) frame(tk frame.Tick) error {
	sv.mu.Lock()
	names := slices.Clone(sv.names)
	meshes := make([]*quads.Mesh, len(names))
	for i, name := range names {
		meshes[i] = sv.meshes[name].Clone()
	}
	sv.mu.Unlock()
	at := sv.field.At(tk.Seconds())
	for i, m := range meshes {
		if err := m.Deform(at, sv.c.Preview.Animate); err != nil {
			return err
		}
		if err := sv.publish(names[i], m); err != nil {
			return err
		}
	}
	return nil
}

// Serve streams the inputs to WebSocket viewers, rebuilding recipe files
// when they change and animating the meshes if requested.
func Serve(c *config.Config) error {
	if err := checkInputs(c); err != nil {
		return err
	}
	hub := preview.NewHub()
	defer hub.Close()
	sv := &server{c: c, hub: hub, field: noise.NewSeed(c.Seed), meshes: map[string]*quads.Mesh{}}
	for _, in := range c.Inputs {
		if err := sv.rebuild(in); err != nil {
			return err
		}
	}

	ctx, stop := interruptContext()
	defer stop()
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: c.Preview.Addr(), Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return srv.Shutdown(context.Background())
	})
	if files := recipeFiles(c.Inputs); len(files) > 0 {
		g.Go(func() error {
			return ignoreCanceled(preview.Watch(ctx, files, sv.rebuild))
		})
	}
	if c.Preview.Animate != 0 {
		g.Go(func() error {
			return ignoreCanceled(frame.Loop(ctx, c.FrameInterval(), sv.frame))
		})
	}
	logx.PrintlnWarn("Serving previews at ws://" + c.Preview.Addr() + "/ws")
	return g.Wait()
}
