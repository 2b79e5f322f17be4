// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shapes computes the local bounding box of basic SVG shapes
// from their geometric attributes, so that attribute animations can
// recompute bounds with one attribute substituted.
package shapes

import (
	"maps"

	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
)

// Kinds of shapes, named as the SVG elements.
const (
	Rect     = "rect"
	Circle   = "circle"
	Ellipse  = "ellipse"
	Line     = "line"
	Polyline = "polyline"
	Polygon  = "polygon"
	Path     = "path"
	Image    = "image"
	Text     = "text"
	Use      = "use"
	SVG      = "svg"
)

// DefaultFontSize is used for text without a font-size.
const DefaultFontSize = 16

// Shape is the geometry of one leaf element.
// It is a value type: With methods return modified copies.
type Shape struct {
	// Kind is the element name, e.g. [Rect].
	Kind string

	// Attrs are the numeric geometric attributes (x, y, width, r, stroke-width, ...).
	Attrs map[string]float32

	// Path is the parsed path data for a [Path] shape.
	Path ppath.Path

	// Points are the vertices of a [Polyline] or [Polygon].
	Points []math32.Vector2

	// Text is the character content of a [Text] shape.
	Text string

	// Anchor is the text-anchor of a [Text] shape: start, middle or end.
	Anchor string

	// Join is the stroke-linejoin: miter (the default), round, bevel,
	// miter-clip or arcs.
	Join string

	// Content is the bounds of the content of a [Use] or [SVG] frame,
	// in the coordinates inside the frame.
	Content math32.Box2

	// Frame, if set, maps the content of a [Use] or [SVG] shape into
	// local coordinates for a frame at x, y with the given size.
	Frame func(x, y, width, height float32) math32.Matrix2
}

var geometric = map[string]bool{
	"x": true, "y": true, "width": true, "height": true,
	"cx": true, "cy": true, "r": true, "rx": true, "ry": true,
	"x1": true, "y1": true, "x2": true, "y2": true,
	"stroke-width": true, "stroke-miterlimit": true,
	"d": true, "points": true, "font-size": true,
}

// IsGeometric returns whether animating the given attribute can
// change the bounds of a shape.
func IsGeometric(attr string) bool {
	return geometric[attr]
}

// Attr returns the named attribute, or 0 if unset.
func (s Shape) Attr(name string) float32 {
	return s.Attrs[name]
}

// With returns a copy of the shape with the attribute set to v.
func (s Shape) With(attr string, v float32) Shape {
	ns := s
	ns.Attrs = maps.Clone(s.Attrs)
	if ns.Attrs == nil {
		ns.Attrs = map[string]float32{}
	}
	ns.Attrs[attr] = v
	return ns
}

// WithPath returns a copy of the shape with its path data replaced.
func (s Shape) WithPath(p ppath.Path) Shape {
	ns := s
	ns.Path = p
	return ns
}

// WithPoints returns a copy of the shape with its vertices replaced.
func (s Shape) WithPoints(pts []math32.Vector2) Shape {
	ns := s
	ns.Points = pts
	return ns
}

// Bounds returns the local bounding box of the shape, including half
// of its stroke width, with curves flattened into the given number of
// segments. Unknown kinds return an empty box.
func (s Shape) Bounds(segments int) math32.Box2 {
	a := s.Attr
	var bb math32.Box2
	caps, joins := false, false
	switch s.Kind {
	case Use, SVG:
		if s.Frame != nil {
			if s.Content.IsEmpty() {
				return math32.B2Empty()
			}
			return s.Content.MulMatrix2(s.Frame(a("x"), a("y"), a("width"), a("height")))
		}
		bb = math32.B2XYWH(a("x"), a("y"), a("width"), a("height"))
	case Rect, Image, "foreignObject":
		bb = math32.B2XYWH(a("x"), a("y"), a("width"), a("height"))
	case Circle:
		r := math32.Max(a("r"), 0)
		bb = math32.B2(a("cx")-r, a("cy")-r, a("cx")+r, a("cy")+r)
	case Ellipse:
		rx, ry := math32.Max(a("rx"), 0), math32.Max(a("ry"), 0)
		bb = math32.B2(a("cx")-rx, a("cy")-ry, a("cx")+rx, a("cy")+ry)
	case Line:
		bb.SetFromPoints([]math32.Vector2{math32.Vec2(a("x1"), a("y1")), math32.Vec2(a("x2"), a("y2"))})
		caps = true
	case Polyline, Polygon:
		bb.SetFromPoints(s.Points)
		joins = true
	case Path:
		bb = s.Path.Bounds(segments)
		joins = true
	case Text:
		bb = s.textBounds()
	default:
		return math32.B2Empty()
	}
	if bb.IsEmpty() {
		return bb
	}
	sw := a("stroke-width")
	if sw <= 0 {
		return bb
	}
	half := sw / 2
	switch {
	case joins:
		half *= s.joinReach()
	case caps:
		// square caps reach past the half width at their corners
		half *= math32.Sqrt2
	}
	bb.ExpandByScalar(half)
	return bb
}

// DefaultMiterLimit is the stroke-miterlimit when none is given.
const DefaultMiterLimit = 4

// joinReach returns how far stroke joins and caps can reach past a
// vertex, in units of half the stroke width. Miter joins reach up to
// the miter limit; longer miters are beveled.
func (s Shape) joinReach() float32 {
	switch s.Join {
	case "round", "bevel":
		return math32.Sqrt2
	}
	ml := s.Attr("stroke-miterlimit")
	if ml < 1 {
		ml = DefaultMiterLimit
	}
	return math32.Max(ml, math32.Sqrt2)
}

// textBounds is a conservative box for text without font metrics:
// one em per character, with room for ascent and descent.
func (s Shape) textBounds() math32.Box2 {
	fs := s.Attr("font-size")
	if fs <= 0 {
		fs = DefaultFontSize
	}
	w := float32(len([]rune(s.Text))) * fs
	x, y := s.Attr("x"), s.Attr("y")
	switch s.Anchor {
	case "middle":
		x -= w / 2
	case "end":
		x -= w
	}
	return math32.B2(x, y-fs, x+w, y+fs*3/10)
}
