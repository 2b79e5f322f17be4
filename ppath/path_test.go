// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ppath

import (
	"testing"

	"cogentcore.org/svgfit/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		d    string
		want Path
	}{
		{"M10 20 L30 40", Path{{MoveTo, []float32{10, 20}}, {LineTo, []float32{30, 40}}}},
		{"m10,20 l5-5 h10 v10 z", Path{
			{MoveTo, []float32{10, 20}},
			{LineTo, []float32{15, 15}},
			{HLineTo, []float32{25}},
			{VLineTo, []float32{25}},
			{Close, nil},
		}},
		{"M0 0 10 0 10 10", Path{
			{MoveTo, []float32{0, 0}},
			{LineTo, []float32{10, 0}},
			{LineTo, []float32{10, 10}},
		}},
		{"M0 0C0 10 10 10 10 0S20-10 20 0", Path{
			{MoveTo, []float32{0, 0}},
			{CubeTo, []float32{0, 10, 10, 10, 10, 0}},
			{CubeTo, []float32{10, -10, 20, -10, 20, 0}},
		}},
		{"M0 0Q5 10 10 0T20 0", Path{
			{MoveTo, []float32{0, 0}},
			{QuadTo, []float32{5, 10, 10, 0}},
			{QuadTo, []float32{15, -10, 20, 0}},
		}},
		{"M0 0a5 5 0 1020 0", Path{
			{MoveTo, []float32{0, 0}},
			{ArcTo, []float32{5, 5, 0, 1, 0, 20, 0}},
		}},
		{"M.5.5", Path{{MoveTo, []float32{0.5, 0.5}}}},
		{"", nil},
	}
	for _, tt := range tests {
		p, err := Parse(tt.d)
		assert.NoError(t, err, tt.d)
		assert.Equal(t, tt.want, p, tt.d)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, d := range []string{"L10 10", "M10", "M0 0 L10 x", "M0 0 Z 5 5", "M0 0 A5 5 0 2 0 10 10", "10 10"} {
		p, err := Parse(d)
		assert.ErrorIs(t, err, ErrMalformedPath, d)
		assert.Nil(t, p, d)
	}
	assert.True(t, BoundsOf("M0 0 L10 x").IsEmpty())
	_, ok := SampleAt("garbage", 0.5)
	assert.False(t, ok)
	assert.Nil(t, PointsAlong("garbage", 4))
}

func TestBoundsOf(t *testing.T) {
	assert.Equal(t, math32.B2(0, 0, 10, 10), BoundsOf("M0 0 H10 V10 H0 Z"))

	// quadratic peak is at half the control point height
	bb := BoundsOf("M0 0 Q5 10 10 0")
	assert.InDelta(t, 5, bb.Max.Y, 1e-4)
	assert.InDelta(t, 0, bb.Min.Y, 1e-4)

	// semicircle of radius 10 below the x axis, with sweep
	bb = BoundsOf("M0 0 A10 10 0 0 1 20 0")
	assert.InDelta(t, 0, bb.Min.X, 1e-4)
	assert.InDelta(t, 20, bb.Max.X, 1e-4)
	assert.InDelta(t, -10, bb.Min.Y, 0.05)

	// radii too small are scaled up to reach the end point
	bb = BoundsOf("M0 0 A1 1 0 0 0 20 0")
	assert.InDelta(t, 10, bb.Max.Y, 0.05)
}

func TestSampling(t *testing.T) {
	fl := FlattenData("M0 0 L10 0 L10 10", DefaultSegments)
	assert.Equal(t, float32(20), fl.Length())

	pt, ang, ok := fl.At(0.25)
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(5, 0), pt)
	assert.Equal(t, float32(0), ang)

	pt, ang, ok = fl.At(0.75)
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(10, 5), pt)
	assert.InDelta(t, math32.Pi/2, ang, 1e-6)

	pt, _, _ = fl.At(2)
	assert.Equal(t, math32.Vec2(10, 10), pt)

	pts := PointsAlong("M0 0 L10 0", 3)
	assert.Equal(t, []math32.Vector2{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}, pts)

	// moveto jumps do not count toward length
	fl = FlattenData("M0 0 H10 M100 100 H110", DefaultSegments)
	assert.Equal(t, float32(20), fl.Length())
	pt, ok = SampleAt("M0 0 H10 M100 100 H110", 0.75)
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(105, 100), pt)

	pt, ok = SampleAt("M3 4", 0.5)
	assert.True(t, ok)
	assert.Equal(t, math32.Vec2(3, 4), pt)
}

func TestLerp(t *testing.T) {
	a, err := Parse("M0 0 L10 0 A5 5 0 0 1 20 0")
	require.NoError(t, err)
	b, err := Parse("M0 10 L20 10 A5 5 0 1 1 40 10")
	require.NoError(t, err)
	require.True(t, a.Compatible(b))

	m := a.Lerp(b, 0.5)
	assert.Equal(t, []float32{0, 5}, m[0].Args)
	assert.Equal(t, []float32{15, 5}, m[1].Args)
	assert.Equal(t, []float32{5, 5, 0, 1, 1, 30, 5}, m[2].Args)

	c, err := Parse("M0 0 L10 0")
	require.NoError(t, err)
	assert.False(t, a.Compatible(c))
}
