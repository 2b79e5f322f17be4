// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppath

import (
	"log/slog"

	"cogentcore.org/svgfit/math32"
)

// FlattenData parses and flattens path data with the given number of
// segments per curve. Malformed data is logged and yields an empty
// result, so it contributes no bounds.
func FlattenData(d string, segments int) *Flat {
	p, err := Parse(d)
	if err != nil {
		slog.Warn("ignoring path data", "err", err)
		return &Flat{}
	}
	return p.Flatten(segments)
}

// BoundsOf returns the bounding box of the path data,
// empty for malformed or empty data.
func BoundsOf(d string) math32.Box2 {
	return FlattenData(d, DefaultSegments).Bounds()
}

// SampleAt returns the point at arc-length fraction t along the path data.
// It returns false for malformed or empty data.
func SampleAt(d string, t float32) (math32.Vector2, bool) {
	pt, _, ok := FlattenData(d, DefaultSegments).At(t)
	return pt, ok
}

// PointsAlong returns count points evenly spaced along the path data,
// or nil for malformed or empty data.
func PointsAlong(d string, count int) []math32.Vector2 {
	return FlattenData(d, DefaultSegments).PointsAlong(count)
}
