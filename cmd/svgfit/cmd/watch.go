// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/base/fsx"
	"cogentcore.org/svgfit/base/ordmap"
	"cogentcore.org/svgfit/config"
	"github.com/fsnotify/fsnotify"
)

// debounce is how long changes to a file are collected before it is refitted.
var debounce = 100 * time.Millisecond

// Watch fits the files like [Fit], then refits each file whenever it
// changes and writes its report again if the viewport changed, until
// ctx is done.
func Watch(ctx context.Context, c *config.Config, paths []string, format Format, w io.Writer) error {
	files, err := fsx.FilesWithExt(paths, ".svg")
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// directories are watched, as editors often replace files
	watched := map[string]string{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = f
		if dir := filepath.Dir(abs); !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return err
			}
			dirs[dir] = true
		}
	}

	reports := ordmap.New[string, *Report]()
	refit := func(f string) {
		rep, err := FitFile(ctx, c, f)
		if errors.Log(err) != nil {
			return
		}
		if prev, ok := reports.ValueByKeyTry(f); ok && prev.Result.Viewport == rep.Result.Viewport {
			slog.Info("viewport unchanged", "file", f)
			reports.Set(f, rep)
			return
		}
		reports.Set(f, rep)
		errors.Log(WriteReports(w, format, []*Report{rep}))
	}
	for _, f := range files {
		refit(f)
	}
	slog.Info("watching", "files", reports.Len(), "dirs", len(dirs))

	pending := map[string]bool{}
	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			f, ok := watched[filepath.Clean(event.Name)]
			if !ok || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			pending[f] = true
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher", "err", err)
		case <-timer.C:
			for _, f := range files {
				if pending[f] {
					refit(f)
				}
			}
			clear(pending)
		}
	}
}
