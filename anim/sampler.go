// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"slices"

	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
	"cogentcore.org/svgfit/shapes"
)

// DefaultSamples is the default number of interpolated samples
// per keyframe segment.
const DefaultSamples = 32

// maxStepDegrees is the largest rotation or skew angle between
// consecutive samples of one segment.
const maxStepDegrees = 2

// Sampler generates the representative poses of animations.
type Sampler struct {

	// Samples is the number of interpolated samples per keyframe segment.
	Samples int

	// Segments is the number of line segments per curve used when
	// computing the bounds of path data.
	Segments int
}

// NewSampler returns a sampler with the given settings, using the
// defaults for values below 1.
func NewSampler(samples, segments int) *Sampler {
	if samples < 1 {
		samples = DefaultSamples
	}
	if segments < 1 {
		segments = ppath.DefaultSegments
	}
	return &Sampler{Samples: samples, Segments: segments}
}

// Element is what the sampler and combiner need to know about one element.
type Element struct {

	// Shape is the element geometry, used to recompute the bounds for
	// attribute animations. If nil, Base is used as is.
	Shape *shapes.Shape

	// Base is the static local bounding box.
	Base math32.Box2

	// Transform is the element's own transform.
	Transform math32.Matrix2

	// Animations are the animations targeting the element.
	Animations []Animation
}

// Poses are the representative samples of one animation.
type Poses struct {

	// Fractions are the timeline fractions that were sampled.
	Fractions []float32

	// Transforms are the sampled transforms, for transform and motion
	// animations, including the element's own transform.
	Transforms []math32.Matrix2

	// Boxes are the sampled bounding boxes in the element's parent
	// coordinates, one per fraction.
	Boxes []math32.Box2
}

// keyTimes returns the timeline fraction of each of n keyframes.
func keyTimes(c *Common, n int) []float32 {
	if n <= 1 {
		return []float32{0}
	}
	if len(c.KeyTimes) == n && slices.IsSorted(c.KeyTimes) && c.KeyTimes[0] >= 0 && c.KeyTimes[n-1] <= 1 {
		return c.KeyTimes
	}
	kt := make([]float32, n)
	for i := range kt {
		kt[i] = float32(i) / float32(n-1)
	}
	return kt
}

// locate returns the keyframe segment index i and the fraction t
// within it, so that the value at f is between keyframes i and i+1.
// With a single keyframe it returns 0, 0.
func locate(times []float32, f float32) (int, float32) {
	n := len(times)
	if n < 2 || f <= times[0] {
		return 0, 0
	}
	if f >= times[n-1] {
		return n - 2, 1
	}
	i := 0
	for i+2 < n && times[i+1] <= f {
		i++
	}
	span := times[i+1] - times[i]
	if span <= 0 {
		return i, 1
	}
	return i, (f - times[i]) / span
}

// segmentFractions returns the keyframe times plus n evenly spaced
// samples inside each segment, where n is given per segment.
func segmentFractions(times []float32, n func(seg int) int) []float32 {
	fs := []float32{times[0]}
	for i := 0; i+1 < len(times); i++ {
		ns := max(n(i), 1)
		for j := 1; j <= ns; j++ {
			fs = append(fs, math32.Lerp(times[i], times[i+1], float32(j)/float32(ns)))
		}
	}
	return fs
}

// Fractions returns the timeline fractions at which the animation
// is sampled: its keyframes, plus interpolated samples in each segment
// unless it is discrete. Rotation and skew segments get enough samples
// to keep the angle step at most 2 degrees, in multiples of Samples.
// Motion paths also get every vertex of the flattened path.
func (s *Sampler) Fractions(a Animation) []float32 {
	c := a.Settings()
	switch a := a.(type) {
	case *AttributeAnimation:
		times := keyTimes(c, a.keyframes())
		if c.Discrete {
			return times
		}
		return segmentFractions(times, func(int) int { return s.Samples })
	case *TransformAnimation:
		times := keyTimes(c, len(a.Values))
		if c.Discrete {
			return times
		}
		return segmentFractions(times, func(i int) int {
			if a.Kind != Rotate && a.Kind != SkewX && a.Kind != SkewY {
				return s.Samples
			}
			sweep := math32.Abs(a.Values[i+1][0] - a.Values[i][0])
			return s.Samples * max(1, int(math32.Ceil(sweep/float32(s.Samples*maxStepDegrees))))
		})
	case *MotionAnimation:
		fs := segmentFractions([]float32{0, 1}, func(int) int { return s.Samples })
		if a.Path != nil && a.Path.Length() > 0 {
			fs = append(fs, a.Path.VertexFractions()...)
		}
		return Dedupe(fs)
	}
	return []float32{0}
}

// Dedupe sorts fractions and removes near duplicates.
func Dedupe(fs []float32) []float32 {
	fs = slices.Clone(fs)
	slices.Sort(fs)
	const eps = 1e-6
	out := fs[:0]
	for _, f := range fs {
		if len(out) > 0 && f-out[len(out)-1] < eps {
			continue
		}
		out = append(out, f)
	}
	return out
}

// keyframes returns the number of keyframes of the animation.
func (a *AttributeAnimation) keyframes() int {
	return max(len(a.Values), len(a.Paths), len(a.Raw), 1)
}

// ValueAt returns the numeric attribute value at timeline fraction f,
// given the underlying (static) value of the attribute.
func (a *AttributeAnimation) ValueAt(f, base float32) float32 {
	if len(a.Values) == 0 {
		return base
	}
	vals := a.Values
	if a.FromBase {
		vals = slices.Clone(vals)
		vals[0] = base
	}
	i, t := locate(keyTimes(&a.Common, len(vals)), f)
	var v float32
	switch {
	case len(vals) == 1:
		v = vals[0]
	case a.Discrete:
		v = vals[i]
		if t >= 1 {
			v = vals[i+1]
		}
	default:
		v = math32.Lerp(vals[i], vals[i+1], t)
	}
	if a.Additive {
		v += base
	}
	return v
}

// PathAt returns the path data at timeline fraction f. Structurally
// compatible keyframes are interpolated; otherwise the nearest keyframe
// is used. It returns nil if there are no paths.
func (a *AttributeAnimation) PathAt(f float32) ppath.Path {
	switch len(a.Paths) {
	case 0:
		return nil
	case 1:
		return a.Paths[0]
	}
	i, t := locate(keyTimes(&a.Common, len(a.Paths)), f)
	p, q := a.Paths[i], a.Paths[i+1]
	if a.Discrete {
		if t >= 1 {
			return q
		}
		return p
	}
	if !p.Compatible(q) {
		if t < 0.5 {
			return p
		}
		return q
	}
	return p.Lerp(q, t)
}

// MatrixAt returns the animated transform at timeline fraction f.
func (a *TransformAnimation) MatrixAt(f float32) math32.Matrix2 {
	switch len(a.Values) {
	case 0:
		return math32.Identity2()
	case 1:
		return a.Kind.matrix(a.Values[0])
	}
	i, t := locate(keyTimes(&a.Common, len(a.Values)), f)
	v0, v1 := a.Values[i], a.Values[i+1]
	if a.Discrete {
		if t >= 1 {
			return a.Kind.matrix(v1)
		}
		return a.Kind.matrix(v0)
	}
	v := make([]float32, len(v0))
	for k := range v {
		v[k] = math32.Lerp(v0[k], v1[k], t)
	}
	return a.Kind.matrix(v)
}

// MatrixAt returns the motion transform at timeline fraction f:
// a translation to the point at that fraction of the path length,
// with the rotation given by the rotate mode.
func (a *MotionAnimation) MatrixAt(f float32) math32.Matrix2 {
	if a.Path == nil {
		return math32.Identity2()
	}
	pt, ang, ok := a.Path.At(f)
	if !ok {
		return math32.Identity2()
	}
	switch a.Rotate {
	case RotateAuto:
	case RotateAutoReverse:
		ang += math32.Pi
	default:
		ang = math32.DegToRad(a.Angle)
	}
	m := math32.Translate2D(pt.X, pt.Y)
	if ang != 0 {
		m = m.Mul(math32.Rotate2D(ang))
	}
	return m
}

// Poses returns the representative poses of one animation applied
// alone to the element: for transform and motion animations the
// sampled transforms and the base box under each, and for attribute
// animations the recomputed box at each sample.
func (s *Sampler) Poses(a Animation, el *Element) Poses {
	ps := Poses{Fractions: s.Fractions(a)}
	own := el.ownTransform()
	switch a := a.(type) {
	case *TransformAnimation:
		for _, f := range ps.Fractions {
			m := a.MatrixAt(f)
			if a.Additive {
				m = own.Mul(m)
			}
			ps.Transforms = append(ps.Transforms, m)
			ps.Boxes = append(ps.Boxes, el.Base.MulMatrix2(m))
		}
	case *MotionAnimation:
		for _, f := range ps.Fractions {
			m := a.MatrixAt(f).Mul(own)
			ps.Transforms = append(ps.Transforms, m)
			ps.Boxes = append(ps.Boxes, el.Base.MulMatrix2(m))
		}
	case *AttributeAnimation:
		for _, f := range ps.Fractions {
			ps.Boxes = append(ps.Boxes, s.shapeBounds(el, []*AttributeAnimation{a}, f).MulMatrix2(own))
		}
	}
	return ps
}

// ownTransform returns the element transform, treating the zero
// matrix as the identity.
func (el *Element) ownTransform() math32.Matrix2 {
	if el.Transform.IsZero() {
		return math32.Identity2()
	}
	return el.Transform
}

// shapeBounds returns the local bounds of the element with the given
// attribute animations applied at f, in order. Non-geometric attributes
// are ignored.
func (s *Sampler) shapeBounds(el *Element, anims []*AttributeAnimation, f float32) math32.Box2 {
	if el.Shape == nil {
		return el.Base
	}
	sh := *el.Shape
	changed := false
	for _, a := range anims {
		switch {
		case !shapes.IsGeometric(a.Attr):
			continue
		case a.Attr == "d":
			if p := a.PathAt(f); p != nil {
				sh = sh.WithPath(p)
				changed = true
			}
		case a.Attr == "points":
			if p := a.PathAt(f); p != nil {
				sh = sh.WithPoints(pathVertices(p))
				changed = true
			}
		default:
			sh = sh.With(a.Attr, a.ValueAt(f, sh.Attr(a.Attr)))
			changed = true
		}
	}
	if !changed {
		return el.Base
	}
	return sh.Bounds(s.Segments)
}

// pathVertices returns the end points of the segments of a
// polyline path, as written for a points attribute.
func pathVertices(p ppath.Path) []math32.Vector2 {
	pts := make([]math32.Vector2, 0, len(p))
	for _, sg := range p {
		if len(sg.Args) >= 2 {
			pts = append(pts, math32.Vec2(sg.Args[len(sg.Args)-2], sg.Args[len(sg.Args)-1]))
		}
	}
	return pts
}
