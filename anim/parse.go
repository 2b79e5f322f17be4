// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
)

// ErrMalformedAnimation is returned (wrapped) for animation elements
// whose values cannot be used.
var ErrMalformedAnimation = errors.New("malformed animation")

// MaxRepeats bounds how many repeats of an accumulating animation
// are expanded, including for an indefinite repeat count.
const MaxRepeats = 8

// Source is the markup of one animation element.
type Source struct {

	// Element is the element name: animate, set, animateTransform or animateMotion.
	Element string

	// Attrs are the attributes of the element.
	Attrs map[string]string

	// MotionPath is the path data of an mpath child, if any.
	MotionPath string
}

// Parse returns the animation described by the source. Motion paths
// are flattened with the given number of segments per curve. One with
// unusable values returns a nil animation and an error wrapping
// [ErrMalformedAnimation]. One with unsupported timing is returned
// with [Unsupported] timing, so that the [Combiner] skips it, along
// with an error wrapping [ErrUnsupportedTiming].
func Parse(src Source, segments int) (Animation, error) {
	at := func(name string) string { return strings.TrimSpace(src.Attrs[name]) }
	begin, timingErr := ParseTiming(at("begin"))
	a, err := parse(src, begin, segments)
	if err != nil {
		return nil, err
	}
	return a, timingErr
}

func parse(src Source, begin Timing, segments int) (Animation, error) {
	at := func(name string) string { return strings.TrimSpace(src.Attrs[name]) }
	c := Common{
		Begin:    begin,
		KeyTimes: parseList(at("keyTimes")),
		Additive: at("additive") == "sum",
		Discrete: at("calcMode") == "discrete",
	}
	raw, fromBase, byOnly := valueStrings(src.Attrs)
	if src.Element == "set" {
		raw = nil
		if to := at("to"); to != "" {
			raw = []string{to}
		}
		fromBase, byOnly = false, false
		c.Additive = false
	}
	if byOnly {
		c.Additive = true
	}
	repeats := 1
	if at("accumulate") == "sum" {
		var capped bool
		repeats, capped = repeatCount(at("repeatCount"), at("repeatDur"), at("dur"))
		if capped {
			slog.Warn("accumulating animation repeats past the expanded repeats; later repeats are not bounded",
				"element", src.Element, "attribute", at("attributeName"), "repeats", MaxRepeats)
		}
	}

	switch src.Element {
	case "animate", "set":
		a := &AttributeAnimation{Common: c, Attr: at("attributeName"), Raw: raw, FromBase: fromBase}
		if a.Attr == "" {
			return nil, fmt.Errorf("%w: %s without attributeName", ErrMalformedAnimation, src.Element)
		}
		switch a.Attr {
		case "d":
			a.Paths = parsePaths(raw, false)
		case "points":
			a.Paths = parsePaths(raw, true)
		default:
			a.Values = firstNumbers(raw)
			if len(a.Values) > 0 {
				a.Values = accumulate1(a.Values, repeats)
			}
		}
		return a, nil
	case "animateTransform":
		kind, ok := parseKind(at("type"))
		if !ok {
			return nil, fmt.Errorf("%w: unknown transform type %q", ErrMalformedAnimation, at("type"))
		}
		a := &TransformAnimation{Common: c, Kind: kind}
		for i, r := range raw {
			v, ok := kind.normalize(math32.ReadPoints(r))
			if !ok {
				return nil, fmt.Errorf("%w: bad %s value %q", ErrMalformedAnimation, kind, r)
			}
			if i == 0 && fromBase {
				v = kind.identity()
			}
			a.Values = append(a.Values, v)
		}
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("%w: animateTransform without values", ErrMalformedAnimation)
		}
		a.Values = accumulateN(a.Values, repeats)
		return a, nil
	case "animateMotion":
		a := &MotionAnimation{Common: c}
		d := motionPath(src, raw)
		if d == "" {
			return nil, fmt.Errorf("%w: animateMotion without a path", ErrMalformedAnimation)
		}
		a.Path = ppath.FlattenData(d, segments)
		switch rot := at("rotate"); rot {
		case "auto":
			a.Rotate = RotateAuto
		case "auto-reverse":
			a.Rotate = RotateAutoReverse
		default:
			a.Rotate = RotateFixed
			if rot != "" {
				if v := math32.ReadPoints(rot); len(v) > 0 {
					a.Angle = v[0]
				}
			}
		}
		return a, nil
	}
	return nil, fmt.Errorf("%w: unknown animation element %q", ErrMalformedAnimation, src.Element)
}

// valueStrings returns the keyframe values of an animation element:
// the values list if present, else derived from from / to / by.
// fromBase is set for a to-only animation, whose first keyframe is
// the underlying value, written here as zeros. byOnly is set for a
// by-only animation, which is additive from zero.
func valueStrings(attrs map[string]string) (raw []string, fromBase, byOnly bool) {
	if vs := strings.TrimSpace(attrs["values"]); vs != "" {
		for _, v := range strings.Split(vs, ";") {
			if v = strings.TrimSpace(v); v != "" {
				raw = append(raw, v)
			}
		}
		return raw, false, false
	}
	from := strings.TrimSpace(attrs["from"])
	to := strings.TrimSpace(attrs["to"])
	by := strings.TrimSpace(attrs["by"])
	switch {
	case from != "" && to != "":
		return []string{from, to}, false, false
	case from != "" && by != "":
		return []string{from, addValues(from, by)}, false, false
	case to != "":
		return []string{zeroValues(to), to}, true, false
	case by != "":
		return []string{zeroValues(by), by}, false, true
	}
	return nil, false, false
}

// addValues adds two number lists component-wise, as text.
func addValues(a, b string) string {
	av, bv := math32.ReadPoints(a), math32.ReadPoints(b)
	if len(av) != len(bv) {
		return b
	}
	parts := make([]string, len(av))
	for i := range av {
		parts[i] = fmt.Sprintf("%g", av[i]+bv[i])
	}
	return strings.Join(parts, " ")
}

// zeroValues returns a list of zeros as long as the numbers in s.
func zeroValues(s string) string {
	n := max(len(math32.ReadPoints(s)), 1)
	return strings.TrimSpace(strings.Repeat("0 ", n))
}

// parseList parses a ';' separated list of numbers,
// returning nil if any entry is not a number.
func parseList(s string) []float32 {
	if s == "" {
		return nil
	}
	var vals []float32
	for _, p := range strings.Split(s, ";") {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		v := math32.ReadPoints(p)
		if len(v) != 1 {
			return nil
		}
		vals = append(vals, v[0])
	}
	return vals
}

func parseKind(s string) (TransformKind, bool) {
	if s == "" {
		return Translate, true
	}
	for i, nm := range transformKinds {
		if strings.EqualFold(nm, s) {
			return TransformKind(i), true
		}
	}
	return 0, false
}

// firstNumbers returns the first number of each value, or nil if any
// value has none, as for non-numeric attributes such as fill.
func firstNumbers(raw []string) []float32 {
	vals := make([]float32, 0, len(raw))
	for _, r := range raw {
		v := math32.ReadPoints(r)
		if len(v) == 0 {
			return nil
		}
		vals = append(vals, v[0])
	}
	return vals
}

// parsePaths parses each keyframe as path data, or as a points list.
// Malformed keyframes are logged and dropped.
func parsePaths(raw []string, points bool) []ppath.Path {
	var paths []ppath.Path
	for _, r := range raw {
		if points {
			r = pointsToPath(r)
		}
		p, err := ppath.Parse(r)
		if err != nil {
			slog.Warn("dropping path keyframe", "err", err)
			continue
		}
		paths = append(paths, p)
	}
	return paths
}

// pointsToPath converts a points attribute value into path data.
func pointsToPath(s string) string {
	pts := math32.ReadPoints(s)
	var sb strings.Builder
	for i := 0; i+1 < len(pts); i += 2 {
		if i == 0 {
			sb.WriteString("M")
		} else {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%g %g", pts[i], pts[i+1])
	}
	return sb.String()
}

// motionPath returns the motion path data, from the mpath child,
// the path attribute, or the keyframe points, in that order of priority.
func motionPath(src Source, raw []string) string {
	if src.MotionPath != "" {
		return src.MotionPath
	}
	if p := strings.TrimSpace(src.Attrs["path"]); p != "" {
		return p
	}
	return pointsToPath(strings.Join(raw, " "))
}

// repeatCount returns the number of repeats to expand for an
// accumulating animation, from its repeatCount or else its repeatDur
// and dur, and whether that number was capped at [MaxRepeats].
func repeatCount(count, repeatDur, dur string) (int, bool) {
	if count == "indefinite" || (count == "" && repeatDur == "indefinite") {
		return MaxRepeats, true
	}
	var n float32
	if v := math32.ReadPoints(count); len(v) > 0 {
		n = v[0]
	} else if rd, ok := ParseClock(repeatDur); ok {
		if d, ok := ParseClock(dur); ok && d > 0 {
			n = rd / d
		}
	}
	if n <= 1 {
		return 1, false
	}
	r := int(math32.Ceil(n))
	if r > MaxRepeats {
		return MaxRepeats, true
	}
	return r, false
}

// accumulate1 extends single-valued keyframes for cumulative repeats:
// repeat r adds r times the final value.
func accumulate1(vals []float32, repeats int) []float32 {
	if repeats <= 1 {
		return vals
	}
	last := vals[len(vals)-1]
	out := slices.Clone(vals)
	for r := 1; r < repeats; r++ {
		for _, v := range vals {
			out = append(out, v+float32(r)*last)
		}
	}
	return out
}

// accumulateN is [accumulate1] for keyframes with several parameters.
func accumulateN(vals [][]float32, repeats int) [][]float32 {
	if repeats <= 1 {
		return vals
	}
	last := vals[len(vals)-1]
	out := slices.Clone(vals)
	for r := 1; r < repeats; r++ {
		for _, v := range vals {
			nv := make([]float32, len(v))
			for k := range v {
				nv[k] = v[k] + float32(r)*last[k]
			}
			out = append(out, nv)
		}
	}
	return out
}
