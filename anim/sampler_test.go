// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"testing"

	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
	"cogentcore.org/svgfit/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	times := []float32{0, 0.25, 1}
	i, f := locate(times, 0)
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), f)
	i, f = locate(times, 0.125)
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0.5), f)
	i, f = locate(times, 0.625)
	assert.Equal(t, 1, i)
	assert.Equal(t, float32(0.5), f)
	i, f = locate(times, 1)
	assert.Equal(t, 1, i)
	assert.Equal(t, float32(1), f)
	i, f = locate([]float32{0}, 0.5)
	assert.Equal(t, 0, i)
	assert.Equal(t, float32(0), f)
}

func TestFractions(t *testing.T) {
	s := NewSampler(4, 0)
	assert.Equal(t, ppath.DefaultSegments, s.Segments)

	a := &AttributeAnimation{Attr: "x", Values: []float32{0, 10, 20}}
	assert.Equal(t, []float32{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875, 1}, s.Fractions(a))

	a.Discrete = true
	assert.Equal(t, []float32{0, 0.5, 1}, s.Fractions(a))

	// 4 samples of at most 2 degrees cover 8 degrees: 90 needs 12 * 4
	r := &TransformAnimation{Kind: Rotate, Values: [][]float32{{0, 0, 0}, {90, 0, 0}}}
	fs := s.Fractions(r)
	assert.Len(t, fs, 48+1)
	assert.Contains(t, fs, float32(0.5))

	set := &AttributeAnimation{Attr: "r", Values: []float32{5}}
	assert.Equal(t, []float32{0}, s.Fractions(set))

	fl := ppath.FlattenData("M0 0 L30 0 L30 10", 16)
	m := &MotionAnimation{Path: fl}
	fs = s.Fractions(m)
	assert.Contains(t, fs, float32(0.75))
	assert.Equal(t, Dedupe(fs), fs)

	assert.Equal(t, []float32{0, 0.5, 1}, Dedupe([]float32{1, 0.5, 0, 0.5000001, 1}))
}

func TestKeyTimes(t *testing.T) {
	a := &AttributeAnimation{Attr: "x", Values: []float32{0, 10, 20}}
	a.KeyTimes = []float32{0, 0.8, 1}
	assert.InDelta(t, 5, a.ValueAt(0.4, 0), 1e-5)
	assert.InDelta(t, 15, a.ValueAt(0.9, 0), 1e-5)

	// mismatched key times are ignored
	a.KeyTimes = []float32{0, 1}
	assert.InDelta(t, 10, a.ValueAt(0.5, 0), 1e-5)
}

func TestValueAt(t *testing.T) {
	a := &AttributeAnimation{Attr: "r", Values: []float32{0, 10}}
	assert.Equal(t, float32(5), a.ValueAt(0.5, 100))

	a.Additive = true
	assert.Equal(t, float32(105), a.ValueAt(0.5, 100))

	a = &AttributeAnimation{Attr: "r", Values: []float32{0, 10}, FromBase: true}
	assert.Equal(t, float32(6), a.ValueAt(0.5, 2))
	assert.Equal(t, float32(0), a.Values[0], "values unchanged")

	a = &AttributeAnimation{Attr: "r", Values: []float32{1, 2, 3}, Common: Common{Discrete: true}}
	assert.Equal(t, float32(1), a.ValueAt(0.4, 0))
	assert.Equal(t, float32(2), a.ValueAt(0.6, 0))
	assert.Equal(t, float32(3), a.ValueAt(1, 0))

	fill := &AttributeAnimation{Attr: "fill", Raw: []string{"red", "blue"}}
	assert.Equal(t, float32(7), fill.ValueAt(0.5, 7))
}

func TestPathAt(t *testing.T) {
	p0, err := ppath.Parse("M0 0 L10 0")
	require.NoError(t, err)
	p1, err := ppath.Parse("M0 0 L10 20")
	require.NoError(t, err)
	p2, err := ppath.Parse("M0 0 H5 V5")
	require.NoError(t, err)

	a := &AttributeAnimation{Attr: "d", Paths: []ppath.Path{p0, p1}}
	assert.Equal(t, []float32{10, 10}, a.PathAt(0.5)[1].Args)

	// incompatible keyframes jump at the midpoint
	a = &AttributeAnimation{Attr: "d", Paths: []ppath.Path{p0, p2}}
	assert.Equal(t, p0, a.PathAt(0.4))
	assert.Equal(t, p2, a.PathAt(0.6))

	assert.Nil(t, (&AttributeAnimation{Attr: "d"}).PathAt(0.5))
}

func TestMotionMatrixAt(t *testing.T) {
	fl := ppath.FlattenData("M0 0 L0 100", 16)
	m := &MotionAnimation{Path: fl}
	assert.Equal(t, math32.Translate2D(0, 50), m.MatrixAt(0.5))

	m.Rotate = RotateAuto
	p := m.MatrixAt(0.5).MulVector2AsPoint(math32.Vec2(10, 0))
	assert.InDelta(t, 0, p.X, 1e-4)
	assert.InDelta(t, 60, p.Y, 1e-4)

	m.Rotate = RotateAutoReverse
	p = m.MatrixAt(0.5).MulVector2AsPoint(math32.Vec2(10, 0))
	assert.InDelta(t, 40, p.Y, 1e-4)

	m.Rotate = RotateFixed
	m.Angle = 180
	p = m.MatrixAt(1).MulVector2AsPoint(math32.Vec2(10, 0))
	assert.InDelta(t, -10, p.X, 1e-4)
	assert.InDelta(t, 100, p.Y, 1e-4)

	assert.Equal(t, math32.Identity2(), (&MotionAnimation{}).MatrixAt(0.5))
}

func TestPoses(t *testing.T) {
	s := NewSampler(8, 16)
	el := &Element{Base: math32.B2(0, 0, 10, 10)}
	tr := &TransformAnimation{Kind: Translate, Values: [][]float32{{0, 0}, {40, 0}}}
	ps := s.Poses(tr, el)
	require.Len(t, ps.Transforms, 9)
	require.Len(t, ps.Boxes, 9)
	assert.Equal(t, math32.B2(0, 0, 10, 10), ps.Boxes[0])
	assert.Equal(t, math32.B2(40, 0, 50, 10), ps.Boxes[8])

	sh := shapes.Shape{Kind: shapes.Circle, Attrs: map[string]float32{"cx": 10, "cy": 10, "r": 5}}
	el = &Element{Shape: &sh, Base: sh.Bounds(16)}
	ra := &AttributeAnimation{Attr: "r", Values: []float32{5, 10}}
	ps = s.Poses(ra, el)
	assert.Empty(t, ps.Transforms)
	assert.Equal(t, math32.B2(0, 0, 20, 20), ps.Boxes[len(ps.Boxes)-1])

	op := &AttributeAnimation{Attr: "opacity", Values: []float32{1, 0}}
	ps = s.Poses(op, el)
	for _, bb := range ps.Boxes {
		assert.Equal(t, el.Base, bb)
	}
}
