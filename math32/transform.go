// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"strings"

	"cogentcore.org/svgfit/base/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrMalformedTransform is returned (wrapped) for transform functions
// with an unknown name or unusable arguments. The offending function
// is treated as the identity, so the rest of the list still applies.
var ErrMalformedTransform = errors.New("malformed transform")

// SetString sets the matrix from an SVG / CSS transform list such as
// "translate(10 20) rotate(45, 5, 5) scale(2)", composing the functions
// left to right so that the rightmost one is applied to points first.
// Supported functions are matrix, translate, translateX, translateY,
// scale, scaleX, scaleY, rotate, skew, skewX and skewY; angles accept
// deg (default), rad, grad and turn units. Unknown or malformed functions
// are skipped as identity and reported in the returned error, which wraps
// [ErrMalformedTransform]. The matrix is always valid on return.
func (a *Matrix2) SetString(str string) error {
	*a = Identity2()
	str = strings.TrimSpace(str)
	if str == "" || str == "none" {
		return nil
	}
	var errs []error
	for len(str) > 0 {
		pidx := strings.IndexByte(str, '(')
		if pidx < 0 {
			errs = append(errs, fmt.Errorf("%w: %q: no parameters", ErrMalformedTransform, str))
			break
		}
		cmd := strings.TrimSpace(str[:pidx])
		rest := str[pidx+1:]
		eidx := strings.IndexByte(rest, ')')
		if eidx < 0 {
			errs = append(errs, fmt.Errorf("%w: %q: unterminated parameters", ErrMalformedTransform, str))
			break
		}
		args := rest[:eidx]
		str = strings.TrimLeft(rest[eidx+1:], " ,;\t\r\n")
		op, err := transformFunc(cmd, args)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		a.SetMul(op)
	}
	return errors.Join(errs...)
}

// ParseTransform returns the matrix for the given transform list.
// See [Matrix2.SetString] for the syntax and error semantics.
func ParseTransform(str string) (Matrix2, error) {
	var m Matrix2
	err := m.SetString(str)
	return m, err
}

// transformFunc returns the matrix for one transform function.
func transformFunc(name, args string) (Matrix2, error) {
	vals, units := readArgs(args)
	bad := func() (Matrix2, error) {
		return Identity2(), fmt.Errorf("%w: %s(%s): wrong number of arguments", ErrMalformedTransform, name, args)
	}
	switch strings.ToLower(name) {
	case "matrix":
		if len(vals) != 6 {
			return bad()
		}
		return Matrix2{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]}, nil
	case "translate":
		switch len(vals) {
		case 1:
			return Translate2D(vals[0], 0), nil
		case 2:
			return Translate2D(vals[0], vals[1]), nil
		}
		return bad()
	case "translatex":
		if len(vals) != 1 {
			return bad()
		}
		return Translate2D(vals[0], 0), nil
	case "translatey":
		if len(vals) != 1 {
			return bad()
		}
		return Translate2D(0, vals[0]), nil
	case "scale":
		switch len(vals) {
		case 1:
			return Scale2D(vals[0], vals[0]), nil
		case 2:
			return Scale2D(vals[0], vals[1]), nil
		}
		return bad()
	case "scalex":
		if len(vals) != 1 {
			return bad()
		}
		return Scale2D(vals[0], 1), nil
	case "scaley":
		if len(vals) != 1 {
			return bad()
		}
		return Scale2D(1, vals[0]), nil
	case "rotate":
		switch len(vals) {
		case 1:
			return Rotate2D(toRadians(vals[0], units[0])), nil
		case 3:
			return Rotate2DAround(toRadians(vals[0], units[0]), Vec2(vals[1], vals[2])), nil
		}
		return bad()
	case "skew":
		switch len(vals) {
		case 1:
			return SkewX2D(toRadians(vals[0], units[0])), nil
		case 2:
			return Matrix2{1, Tan(toRadians(vals[1], units[1])), Tan(toRadians(vals[0], units[0])), 1, 0, 0}, nil
		}
		return bad()
	case "skewx":
		if len(vals) != 1 {
			return bad()
		}
		return SkewX2D(toRadians(vals[0], units[0])), nil
	case "skewy":
		if len(vals) != 1 {
			return bad()
		}
		return SkewY2D(toRadians(vals[0], units[0])), nil
	}
	return Identity2(), fmt.Errorf("%w: unknown function %q", ErrMalformedTransform, name)
}

// toRadians converts an angle with the given unit suffix to radians.
// No unit means degrees, as in SVG.
func toRadians(v float32, unit string) float32 {
	switch unit {
	case "rad":
		return v
	case "grad":
		return v * Pi / 200
	case "turn":
		return v * 2 * Pi
	}
	return DegToRad(v)
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r'
}

func isUnitChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '%'
}

// readArgs reads the numbers in a comma / whitespace separated list,
// returning each value with its lower-cased unit suffix, if any.
// Scanning stops at the first token that is not a number.
func readArgs(str string) ([]float32, []string) {
	b := []byte(str)
	var vals []float32
	var units []string
	i := 0
	for i < len(b) {
		for i < len(b) && isSeparator(b[i]) {
			i++
		}
		if i >= len(b) {
			break
		}
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			break
		}
		i += n
		us := i
		for i < len(b) && isUnitChar(b[i]) {
			i++
		}
		vals = append(vals, float32(f))
		units = append(units, strings.ToLower(string(b[us:i])))
	}
	return vals, units
}

// ReadPoints reads a set of floating point values from a SVG format number
// string -- returns a slice or nil if there was an error.
// Units are ignored.
func ReadPoints(pstr string) []float32 {
	vals, _ := readArgs(pstr)
	return vals
}
