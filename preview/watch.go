// Copyright (c) 2026, The Quadsculpt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package preview

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long Watch waits after the last change to a file
// before rebuilding it, so that editors saving in several steps cause
// only one rebuild.
var Debounce = 100 * time.Millisecond

// Watch calls rebuild with the name of every watched file that is
// written or created, until the context is done. The directories of
// the paths are watched, so editors that save by renaming still
// trigger a rebuild. Rebuild errors are logged and do not stop the
// watch.
func Watch(ctx context.Context, paths []string, rebuild func(path string) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	wanted := map[string]bool{}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	pending := map[string]bool{}
	timer := time.NewTimer(Debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !wanted[name] {
				continue
			}
			pending[name] = true
			timer.Reset(Debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "err", err)
		case <-timer.C:
			for name := range pending {
				slog.Info("rebuilding", "file", name)
				if err := rebuild(name); err != nil {
					slog.Error("rebuild failed", "file", name, "err", err)
				}
			}
			clear(pending)
		}
	}
}
