// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"bytes"
	"log/slog"
	"strconv"
	"testing"

	"cogentcore.org/svgfit/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, element string, attrs ...string) Animation {
	t.Helper()
	require.Zero(t, len(attrs)%2)
	src := Source{Element: element, Attrs: map[string]string{}}
	for i := 0; i < len(attrs); i += 2 {
		src.Attrs[attrs[i]] = attrs[i+1]
	}
	a, err := Parse(src, 16)
	require.NoError(t, err)
	return a
}

func TestParseAnimateTransform(t *testing.T) {
	a := parseSource(t, "animateTransform", "type", "rotate", "values", "0 5 5; 90 5 5;180")
	ta, ok := a.(*TransformAnimation)
	require.True(t, ok)
	assert.Equal(t, Rotate, ta.Kind)
	assert.Equal(t, [][]float32{{0, 5, 5}, {90, 5, 5}, {180, 0, 0}}, ta.Values)
	assert.False(t, ta.Additive)
	assert.Equal(t, Definite{}, ta.Begin)

	a = parseSource(t, "animateTransform", "type", "scale", "from", "1", "to", "2 3", "additive", "sum", "begin", "2s")
	ta = a.(*TransformAnimation)
	assert.Equal(t, [][]float32{{1, 1}, {2, 3}}, ta.Values)
	assert.True(t, ta.Additive)
	assert.Equal(t, Definite{Offset: 2}, ta.Begin)

	a = parseSource(t, "animateTransform", "type", "translate", "to", "30,10")
	ta = a.(*TransformAnimation)
	assert.Equal(t, [][]float32{{0, 0}, {30, 10}}, ta.Values)

	a = parseSource(t, "animateTransform", "type", "translate", "by", "20")
	ta = a.(*TransformAnimation)
	assert.Equal(t, [][]float32{{0, 0}, {20, 0}}, ta.Values)
	assert.True(t, ta.Additive)

	a = parseSource(t, "animateTransform", "type", "translate", "from", "5 5", "by", "10 0")
	ta = a.(*TransformAnimation)
	assert.Equal(t, [][]float32{{5, 5}, {15, 5}}, ta.Values)
	assert.False(t, ta.Additive)

	a = parseSource(t, "animateTransform", "type", "skewX", "values", "0;30", "calcMode", "discrete", "keyTimes", "0; 0.4")
	ta = a.(*TransformAnimation)
	assert.Equal(t, SkewX, ta.Kind)
	assert.True(t, ta.Discrete)
	assert.Equal(t, []float32{0, 0.4}, ta.KeyTimes)
}

func TestParseAccumulate(t *testing.T) {
	a := parseSource(t, "animateTransform", "type", "translate", "from", "0 0", "to", "10 0",
		"accumulate", "sum", "repeatCount", "3")
	ta := a.(*TransformAnimation)
	assert.Equal(t, [][]float32{{0, 0}, {10, 0}, {10, 0}, {20, 0}, {20, 0}, {30, 0}}, ta.Values)

	a = parseSource(t, "animate", "attributeName", "x", "values", "0;5",
		"accumulate", "sum", "repeatCount", "indefinite")
	aa := a.(*AttributeAnimation)
	assert.Len(t, aa.Values, 2*MaxRepeats)
	assert.Equal(t, float32(5*MaxRepeats), aa.Values[len(aa.Values)-1])

	// without accumulate the repeats all look the same
	a = parseSource(t, "animate", "attributeName", "x", "values", "0;5", "repeatCount", "3")
	assert.Equal(t, []float32{0, 5}, a.(*AttributeAnimation).Values)

	repeats := func(count, repeatDur, dur string) int {
		n, _ := repeatCount(count, repeatDur, dur)
		return n
	}
	assert.Equal(t, 1, repeats("", "", ""))
	assert.Equal(t, 1, repeats("0.5", "", ""))
	assert.Equal(t, 3, repeats("2.5", "", ""))
	assert.Equal(t, 3, repeats("", "5s", "2s"))
	assert.Equal(t, 2, repeats("2", "10s", "1s"), "repeatCount wins")
	assert.Equal(t, 1, repeats("", "5s", ""))

	n, capped := repeatCount("100", "", "")
	assert.Equal(t, MaxRepeats, n)
	assert.True(t, capped)
	n, capped = repeatCount("", "indefinite", "1s")
	assert.Equal(t, MaxRepeats, n)
	assert.True(t, capped)
	_, capped = repeatCount(strconv.Itoa(MaxRepeats), "", "")
	assert.False(t, capped)
}

func TestParseAccumulateWarns(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	parseSource(t, "animateTransform", "type", "rotate", "from", "0", "to", "90",
		"accumulate", "sum", "repeatCount", "indefinite")
	assert.Contains(t, buf.String(), "accumulating animation repeats")
	assert.Contains(t, buf.String(), "element=animateTransform")

	buf.Reset()
	parseSource(t, "animate", "attributeName", "x", "values", "0;5",
		"accumulate", "sum", "repeatCount", "3")
	parseSource(t, "animate", "attributeName", "x", "values", "0;5", "repeatCount", "indefinite")
	assert.Empty(t, buf.String())
}

func TestParseAnimate(t *testing.T) {
	a := parseSource(t, "animate", "attributeName", "r", "values", "10;40px;5")
	aa := a.(*AttributeAnimation)
	assert.Equal(t, "r", aa.Attr)
	assert.Equal(t, []float32{10, 40, 5}, aa.Values)
	assert.Equal(t, []string{"10", "40px", "5"}, aa.Raw)

	a = parseSource(t, "animate", "attributeName", "width", "to", "200")
	aa = a.(*AttributeAnimation)
	assert.True(t, aa.FromBase)
	assert.Equal(t, []float32{0, 200}, aa.Values)
	assert.Equal(t, float32(150), aa.ValueAt(0.5, 100))

	a = parseSource(t, "animate", "attributeName", "fill", "values", "red;blue")
	aa = a.(*AttributeAnimation)
	assert.Nil(t, aa.Values)
	assert.Equal(t, []string{"red", "blue"}, aa.Raw)

	a = parseSource(t, "animate", "attributeName", "d", "values", "M0 0 L10 0;M0 0 L10 10;bogus")
	aa = a.(*AttributeAnimation)
	assert.Len(t, aa.Paths, 2)

	a = parseSource(t, "animate", "attributeName", "points", "values", "0,0 10,0 10,10; 0,0 20,0 20,20")
	aa = a.(*AttributeAnimation)
	require.Len(t, aa.Paths, 2)
	assert.Equal(t, []float32{20, 20}, aa.Paths[1][2].Args)
}

func TestParseSet(t *testing.T) {
	a := parseSource(t, "set", "attributeName", "x", "to", "50", "additive", "sum", "begin", "btn.click")
	aa := a.(*AttributeAnimation)
	assert.Equal(t, []float32{50}, aa.Values)
	assert.False(t, aa.Additive)
	assert.False(t, aa.FromBase)
	assert.Equal(t, EventBased{Target: "btn", Event: "click"}, aa.Begin)
}

func TestParseMotion(t *testing.T) {
	a := parseSource(t, "animateMotion", "path", "M0 0 L100 0", "rotate", "auto")
	ma := a.(*MotionAnimation)
	assert.Equal(t, RotateAuto, ma.Rotate)
	assert.Equal(t, float32(100), ma.Path.Length())

	a = parseSource(t, "animateMotion", "path", "M0 0 L100 0", "rotate", "45")
	ma = a.(*MotionAnimation)
	assert.Equal(t, RotateFixed, ma.Rotate)
	assert.Equal(t, float32(45), ma.Angle)

	src := Source{Element: "animateMotion", Attrs: map[string]string{"path": "M0 0 L1 0"}, MotionPath: "M0 0 L0 30"}
	a, err := Parse(src, 16)
	require.NoError(t, err)
	assert.Equal(t, math32.B2(0, 0, 0, 30), a.(*MotionAnimation).Path.Bounds())

	a = parseSource(t, "animateMotion", "values", "0,0; 40,0; 40,40")
	assert.Equal(t, math32.B2(0, 0, 40, 40), a.(*MotionAnimation).Path.Bounds())

	a = parseSource(t, "animateMotion", "to", "30 40")
	assert.Equal(t, float32(50), a.(*MotionAnimation).Path.Length())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		element string
		attrs   map[string]string
		err     error
	}{
		{"animate", map[string]string{"values": "1;2"}, ErrMalformedAnimation},
		{"animateTransform", map[string]string{"type": "spin", "values": "1;2"}, ErrMalformedAnimation},
		{"animateTransform", map[string]string{"type": "rotate"}, ErrMalformedAnimation},
		{"animateTransform", map[string]string{"type": "matrix", "values": "1 0 0"}, ErrMalformedAnimation},
		{"animateMotion", map[string]string{}, ErrMalformedAnimation},
		{"animateColor", map[string]string{"attributeName": "fill"}, ErrMalformedAnimation},
		{"animate", map[string]string{"attributeName": "x", "values": "1;2", "begin": "wallclock(2026-01-01T00:00:00Z)"}, ErrUnsupportedTiming},
	}
	for _, test := range tests {
		_, err := Parse(Source{Element: test.element, Attrs: test.attrs}, 16)
		assert.ErrorIs(t, err, test.err, "%s %v", test.element, test.attrs)
	}

	a, err := Parse(Source{Element: "animate", Attrs: map[string]string{"attributeName": "x", "values": "1;2", "begin": "accessKey(s)"}}, 16)
	assert.ErrorIs(t, err, ErrUnsupportedTiming)
	require.NotNil(t, a)
	assert.Equal(t, Unsupported{Source: "accessKey(s)"}, a.Settings().Begin)
}
