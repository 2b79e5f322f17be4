// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the svgfit tool.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/base/fsx"
	"cogentcore.org/svgfit/config"
	"cogentcore.org/svgfit/envelope"
	"cogentcore.org/svgfit/svg"
	"cogentcore.org/svgfit/svgwalk"
)

// Report is the outcome of fitting one document.
type Report struct {

	// File is the document file, if any.
	File string `yaml:"file,omitempty" json:"file,omitempty"`

	// Original is the viewBox of the document before fitting: its
	// viewBox attribute, else its width and height at the origin.
	Original envelope.Rect `yaml:"original" json:"original"`

	// Savings is how much smaller the fitted viewport is, in percent.
	Savings float32 `yaml:"savings" json:"savings"`

	Result *envelope.Result `yaml:"result" json:"result"`
}

// FitDocument returns the fitted viewport of a parsed document.
func FitDocument(ctx context.Context, c *config.Config, sv *svg.SVG) (*Report, error) {
	opts := c.Options()
	recs, err := svgwalk.Walk(ctx, sv, opts)
	if err != nil {
		return nil, err
	}
	res, err := envelope.Compute(ctx, recs, opts)
	if err != nil {
		return nil, err
	}
	rep := &Report{File: sv.Filename, Result: res}
	if vb, ok := svgwalk.RootViewBox(sv); ok {
		rep.Original = envelope.Rect{X: vb.Min.X, Y: vb.Min.Y, Width: vb.Size.X, Height: vb.Size.Y}
	} else {
		sz := svgwalk.RootViewport(sv)
		rep.Original = envelope.Rect{Width: sz.X, Height: sz.Y}
	}
	rep.Savings = envelope.Savings(rep.Original, res.Viewport)
	return rep, nil
}

// FitFile returns the fitted viewport of an SVG file.
func FitFile(ctx context.Context, c *config.Config, fname string) (*Report, error) {
	fsys, name, err := fsx.DirFS(fname)
	if err != nil {
		return nil, err
	}
	sv, err := svg.OpenFS(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	rep, err := FitDocument(ctx, c, sv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	rep.File = fname
	return rep, nil
}

// Fit fits the given SVG files, and the SVG files in the given
// directories, and writes the reports to w in the given format.
// Files that fail are logged and reported in the returned error;
// the others are still written.
func Fit(ctx context.Context, c *config.Config, paths []string, format Format, w io.Writer) error {
	files, err := fsx.FilesWithExt(paths, ".svg")
	if err != nil {
		return err
	}
	var reps []*Report
	var errs []error
	for _, f := range files {
		rep, err := FitFile(ctx, c, f)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, errors.Log(err))
			continue
		}
		slog.Info("fitted", "file", f, "viewBox", rep.Result.Viewport.ViewBoxString(), "savings", rep.Savings)
		reps = append(reps, rep)
	}
	if err := WriteReports(w, format, reps); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed: %w", len(errs), len(files), errors.Join(errs...))
	}
	return nil
}

// Elements computes the envelope of a YAML element list file and
// writes the result to w in the given format.
func Elements(ctx context.Context, c *config.Config, fname string, format Format, w io.Writer) error {
	recs, err := envelope.OpenElements(fname, c.FlattenSegments)
	if err != nil {
		return err
	}
	res, err := envelope.Compute(ctx, recs, c.Options())
	if err != nil {
		return fmt.Errorf("%s: %w", fname, err)
	}
	return WriteResult(w, format, res)
}
