// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Box2 represents a 2D bounding box defined by two points:
// the point with minimum coordinates and the point with maximum coordinates.
type Box2 struct {
	Min Vector2
	Max Vector2
}

// B2 returns a new [Box2] from the given minimum and maximum x and y coordinates.
func B2(x0, y0, x1, y1 float32) Box2 {
	return Box2{Vec2(x0, y0), Vec2(x1, y1)}
}

// B2XYWH returns a new [Box2] from the given position and size,
// in the x, y, width, height order used by SVG rectangles.
// Negative sizes are clamped to zero.
func B2XYWH(x, y, w, h float32) Box2 {
	return Box2{Vec2(x, y), Vec2(x+Max(w, 0), y+Max(h, 0))}
}

// B2Empty returns a new [Box2] with empty minimum and maximum values
func B2Empty() Box2 {
	bx := Box2{}
	bx.SetEmpty()
	return bx
}

func (b Box2) String() string {
	return fmt.Sprintf("[%g %g, %g %g]", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// SetEmpty set this bounding box to empty (min / max +/- Infinity)
func (b *Box2) SetEmpty() {
	b.Min.SetScalar(Infinity)
	b.Max.SetScalar(-Infinity)
}

// IsEmpty returns if this bounding box is empty (max < min on any coord).
func (b Box2) IsEmpty() bool {
	return (b.Max.X < b.Min.X) || (b.Max.Y < b.Min.Y)
}

// IsDegenerate returns true if the box is empty or has zero area.
// Degenerate boxes are valid but do not contribute to an envelope
// on their own.
func (b Box2) IsDegenerate() bool {
	return b.IsEmpty() || b.Max.X == b.Min.X || b.Max.Y == b.Min.Y
}

// SetFromPoints set this bounding box from the specified array of points.
func (b *Box2) SetFromPoints(points []Vector2) {
	b.SetEmpty()
	for i := 0; i < len(points); i++ {
		b.ExpandByPoint(points[i])
	}
}

// Canon returns the canonical version of the box.
// The returned rectangle has minimum and maximum coordinates swapped
// if necessary so that it is well-formed.
func (b Box2) Canon() Box2 {
	if b.Max.X < b.Min.X {
		b.Min.X, b.Max.X = b.Max.X, b.Min.X
	}
	if b.Max.Y < b.Min.Y {
		b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
	}
	return b
}

// ExpandByPoint may expand this bounding box to include the specified point.
func (b *Box2) ExpandByPoint(point Vector2) {
	b.Min.SetMin(point)
	b.Max.SetMax(point)
}

// ExpandByScalar expands this bounding box by the specified scalar.
func (b *Box2) ExpandByScalar(scalar float32) {
	b.Min = b.Min.Sub(Vector2Scalar(scalar))
	b.Max = b.Max.Add(Vector2Scalar(scalar))
}

// ExpandByBox may expand this bounding box to include the specified box
func (b *Box2) ExpandByBox(box Box2) {
	if box.IsEmpty() {
		return
	}
	b.ExpandByPoint(box.Min)
	b.ExpandByPoint(box.Max)
}

// Pad returns the box grown by the given per-side margins.
// Negative margins are ignored, so Pad never shrinks the box.
// An empty box stays empty.
func (b Box2) Pad(left, top, right, bottom float32) Box2 {
	if b.IsEmpty() {
		return b
	}
	b.Min.X -= Max(left, 0)
	b.Min.Y -= Max(top, 0)
	b.Max.X += Max(right, 0)
	b.Max.Y += Max(bottom, 0)
	return b
}

// MulMatrix2 multiplies the specified matrix to the vertices of this bounding box
// and computes the resulting spanning Box2 of the transformed points.
// For rotations this is a superset of the rotated rectangle.
func (b Box2) MulMatrix2(m Matrix2) Box2 {
	if b.IsEmpty() {
		return b
	}
	var cs [4]Vector2
	cs[0] = m.MulVector2AsPoint(Vec2(b.Min.X, b.Min.Y))
	cs[1] = m.MulVector2AsPoint(Vec2(b.Min.X, b.Max.Y))
	cs[2] = m.MulVector2AsPoint(Vec2(b.Max.X, b.Min.Y))
	cs[3] = m.MulVector2AsPoint(Vec2(b.Max.X, b.Max.Y))

	nb := B2Empty()
	for i := 0; i < 4; i++ {
		nb.ExpandByPoint(cs[i])
	}
	return nb
}

// Center calculates the center point of this bounding box.
func (b Box2) Center() Vector2 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Size calculates the size of this bounding box: the vector from
// its minimum point to its maximum point.
func (b Box2) Size() Vector2 {
	return b.Max.Sub(b.Min)
}

// Area returns the area of the box, 0 for an empty box.
func (b Box2) Area() float32 {
	if b.IsEmpty() {
		return 0
	}
	sz := b.Size()
	return sz.X * sz.Y
}

// ContainsPoint returns if this bounding box contains the specified point.
func (b Box2) ContainsPoint(point Vector2) bool {
	if point.X < b.Min.X || point.X > b.Max.X ||
		point.Y < b.Min.Y || point.Y > b.Max.Y {
		return false
	}
	return true
}

// ContainsBox returns if this bounding box contains other box.
func (b Box2) ContainsBox(box Box2) bool {
	return (b.Min.X <= box.Min.X) && (box.Max.X <= b.Max.X) && (b.Min.Y <= box.Min.Y) && (box.Max.Y <= b.Max.Y)
}

// Union returns the union with other box.
// An empty box is the identity for Union.
func (b Box2) Union(other Box2) Box2 {
	other.Min.SetMin(b.Min)
	other.Max.SetMax(b.Max)
	return other
}

// Translate returns translated position of this box by offset.
func (b Box2) Translate(offset Vector2) Box2 {
	nb := Box2{}
	nb.Min = b.Min.Add(offset)
	nb.Max = b.Max.Add(offset)
	return nb
}
