// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim models declarative SVG animations and turns them into
// bounding envelopes: each animation is sampled into a finite set of
// poses, and concurrent animations on one element are composed on a
// shared timeline before their boxes are unioned.
package anim

import (
	"fmt"

	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
)

// Animation is one declarative animation on an element: one of
// [*AttributeAnimation], [*TransformAnimation] or [*MotionAnimation].
type Animation interface {
	isAnimation()

	// Settings returns the settings shared by all animation kinds.
	Settings() *Common
}

// Common holds the settings shared by all animation kinds.
type Common struct {

	// Begin is when the animation starts.
	Begin Timing

	// KeyTimes are the timeline fractions of each keyframe, in [0, 1].
	// If nil, keyframes are evenly spaced.
	KeyTimes []float32

	// Additive is whether the animation adds to the underlying value
	// (additive="sum") instead of replacing it.
	Additive bool

	// Discrete is whether values jump between keyframes
	// (calcMode="discrete") instead of being interpolated.
	Discrete bool
}

func (c *Common) Settings() *Common { return c }

// AttributeAnimation animates one attribute (animate or set).
type AttributeAnimation struct {
	Common

	// Attr is the animated attribute name.
	Attr string

	// Values are the numeric keyframe values. They are empty for
	// path data and for non-numeric attributes.
	Values []float32

	// Paths are the keyframe paths when Attr is "d".
	Paths []ppath.Path

	// Raw are the keyframe values as written.
	Raw []string

	// FromBase is whether the first keyframe is the underlying value
	// of the attribute, for animations that only specify to.
	FromBase bool
}

// TransformKind is the kind of transform an animateTransform animates.
type TransformKind int32

const (
	Translate TransformKind = iota
	Scale
	Rotate
	SkewX
	SkewY
	Matrix
)

var transformKinds = [...]string{"translate", "scale", "rotate", "skewX", "skewY", "matrix"}

func (k TransformKind) String() string {
	if k >= 0 && int(k) < len(transformKinds) {
		return transformKinds[k]
	}
	return fmt.Sprintf("TransformKind(%d)", k)
}

// arity is the number of parameters of a normalized keyframe.
func (k TransformKind) arity() int {
	switch k {
	case Translate, Scale:
		return 2
	case Rotate:
		return 3
	case Matrix:
		return 6
	}
	return 1
}

// identity returns the parameters of the identity transform.
func (k TransformKind) identity() []float32 {
	switch k {
	case Scale:
		return []float32{1, 1}
	case Matrix:
		return []float32{1, 0, 0, 1, 0, 0}
	}
	return make([]float32, k.arity())
}

// normalize fills in omitted parameters per the SVG defaults:
// ty = 0, sy = sx, cx = cy = 0.
func (k TransformKind) normalize(v []float32) ([]float32, bool) {
	n := k.arity()
	switch {
	case len(v) == n:
		return v, true
	case k == Translate && len(v) == 1:
		return []float32{v[0], 0}, true
	case k == Scale && len(v) == 1:
		return []float32{v[0], v[0]}, true
	case k == Rotate && len(v) == 1:
		return []float32{v[0], 0, 0}, true
	}
	return nil, false
}

// matrix returns the transform for normalized parameters.
func (k TransformKind) matrix(v []float32) math32.Matrix2 {
	switch k {
	case Translate:
		return math32.Translate2D(v[0], v[1])
	case Scale:
		return math32.Scale2D(v[0], v[1])
	case Rotate:
		return math32.Rotate2DAround(math32.DegToRad(v[0]), math32.Vec2(v[1], v[2]))
	case SkewX:
		return math32.SkewX2D(math32.DegToRad(v[0]))
	case SkewY:
		return math32.SkewY2D(math32.DegToRad(v[0]))
	case Matrix:
		return math32.Matrix2{XX: v[0], YX: v[1], XY: v[2], YY: v[3], X0: v[4], Y0: v[5]}
	}
	return math32.Identity2()
}

// TransformAnimation animates the transform (animateTransform).
type TransformAnimation struct {
	Common

	Kind TransformKind

	// Values are the normalized keyframe parameters.
	Values [][]float32
}

// RotateMode is how a motion animation orients the element.
type RotateMode int32

const (
	// RotateFixed rotates by a fixed angle.
	RotateFixed RotateMode = iota

	// RotateAuto aligns the element with the path direction.
	RotateAuto

	// RotateAutoReverse aligns the element against the path direction.
	RotateAutoReverse
)

// MotionAnimation moves the element along a path (animateMotion).
type MotionAnimation struct {
	Common

	// Path is the flattened motion path.
	Path *ppath.Flat

	Rotate RotateMode

	// Angle is the fixed rotation in degrees for [RotateFixed].
	Angle float32
}

func (*AttributeAnimation) isAnimation() {}
func (*TransformAnimation) isAnimation() {}
func (*MotionAnimation) isAnimation()    {}
