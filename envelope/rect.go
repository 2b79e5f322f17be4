// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"fmt"

	"cogentcore.org/svgfit/math32"
)

// Rect is a rectangle as written in a viewBox: position and size.
type Rect struct {
	X      float32 `yaml:"x" json:"x"`
	Y      float32 `yaml:"y" json:"y"`
	Width  float32 `yaml:"width" json:"width"`
	Height float32 `yaml:"height" json:"height"`
}

// RectFromBox returns the rectangle of a box, or the zero
// rectangle for an empty box.
func RectFromBox(bb math32.Box2) Rect {
	if bb.IsEmpty() {
		return Rect{}
	}
	return Rect{bb.Min.X, bb.Min.Y, bb.Max.X - bb.Min.X, bb.Max.Y - bb.Min.Y}
}

// Box returns the rectangle as a box.
func (r Rect) Box() math32.Box2 {
	return math32.B2XYWH(r.X, r.Y, r.Width, r.Height)
}

// Area returns the area of the rectangle.
func (r Rect) Area() float32 {
	return r.Width * r.Height
}

// Buffer returns the rectangle grown by b on every side.
// Negative values are treated as 0.
func (r Rect) Buffer(b float32) Rect {
	b = math32.Max(b, 0)
	return Rect{r.X - b, r.Y - b, r.Width + 2*b, r.Height + 2*b}
}

// ViewBoxString returns the rectangle as a viewBox attribute value,
// with two decimals.
func (r Rect) ViewBoxString() string {
	return fmt.Sprintf("%.2f %.2f %.2f %.2f", r.X, r.Y, r.Width, r.Height)
}

func (r Rect) String() string {
	return r.ViewBoxString()
}

// Savings returns the percentage of the original area saved by the
// fitted rectangle. It is negative if the fitted one is larger, and 0
// if the original has no area.
func Savings(original, fitted Rect) float32 {
	a := original.Area()
	if a <= 0 {
		return 0
	}
	return 100 * (a - fitted.Area()) / a
}
