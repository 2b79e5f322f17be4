// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ppath parses SVG path data into absolute segments and
// flattens them into polylines for bounding and sampling.
package ppath

import (
	"fmt"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/math32"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrMalformedPath is returned (wrapped) for path data that cannot be parsed.
var ErrMalformedPath = errors.New("malformed path data")

// Cmd is a path segment command.
type Cmd uint8

// Commands
const (
	MoveTo Cmd = iota
	LineTo
	HLineTo
	VLineTo
	CubeTo
	QuadTo
	ArcTo
	Close
)

var cmdNames = [...]string{"M", "L", "H", "V", "C", "Q", "A", "Z"}

func (c Cmd) String() string {
	if int(c) < len(cmdNames) {
		return cmdNames[c]
	}
	return fmt.Sprintf("Cmd(%d)", c)
}

// Segment is one path segment with absolute coordinates.
// The Args layout depends on Cmd:
//
//	MoveTo, LineTo: x y
//	HLineTo: x
//	VLineTo: y
//	CubeTo: x1 y1 x2 y2 x y
//	QuadTo: x1 y1 x y
//	ArcTo: rx ry rotation(deg) large(0|1) sweep(0|1) x y
//	Close: (none)
//
// Smooth curves (S, T) are stored as CubeTo and QuadTo with their
// reflected control point made explicit.
type Segment struct {
	Cmd  Cmd
	Args []float32
}

// Path is a parsed sequence of absolute segments.
type Path []Segment

// argCounts is the number of arguments per SVG command letter.
var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4,
	'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isCommand(c byte) bool {
	_, ok := argCounts[toUpper(c)]
	return ok
}

func skipSpace(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r' || b[i] == '\f') {
		i++
	}
	return i
}

func skipSep(b []byte, i int) int {
	i = skipSpace(b, i)
	if i < len(b) && b[i] == ',' {
		i = skipSpace(b, i+1)
	}
	return i
}

// Parse parses SVG path data. Relative commands are made absolute,
// implicit repeated commands are expanded, and smooth curves get an
// explicit first control point. Segments are never merged or dropped,
// so two paths written with the same command structure parse to
// segment lists of the same shape.
// Any syntax error returns a nil path and an error wrapping [ErrMalformedPath].
func Parse(d string) (Path, error) {
	b := []byte(d)
	var p Path
	var cur, start, lastCubic, lastQuad math32.Vector2
	var cmd, prev byte
	i := skipSpace(b, 0)
	for i < len(b) {
		if isCommand(b[i]) {
			cmd = b[i]
			i = skipSpace(b, i+1)
		} else if cmd == 0 || toUpper(cmd) == 'Z' {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedPath, b[i], i)
		}
		if len(p) == 0 && toUpper(cmd) != 'M' {
			return nil, fmt.Errorf("%w: path must start with a moveto", ErrMalformedPath)
		}
		ucmd := toUpper(cmd)
		rel := cmd != ucmd
		args := make([]float32, argCounts[ucmd])
		for k := range args {
			i = skipSep(b, i)
			if i >= len(b) {
				return nil, fmt.Errorf("%w: %c needs %d arguments", ErrMalformedPath, cmd, len(args))
			}
			if ucmd == 'A' && (k == 3 || k == 4) {
				if b[i] != '0' && b[i] != '1' {
					return nil, fmt.Errorf("%w: bad arc flag %q at offset %d", ErrMalformedPath, b[i], i)
				}
				args[k] = float32(b[i] - '0')
				i++
				continue
			}
			f, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return nil, fmt.Errorf("%w: bad number at offset %d", ErrMalformedPath, i)
			}
			args[k] = float32(f)
			i += n
		}
		i = skipSep(b, i)

		// offset relative coordinate pairs
		if rel {
			switch ucmd {
			case 'H':
				args[0] += cur.X
			case 'V':
				args[0] += cur.Y
			case 'A':
				args[5] += cur.X
				args[6] += cur.Y
			default:
				for k := 0; k+1 < len(args); k += 2 {
					args[k] += cur.X
					args[k+1] += cur.Y
				}
			}
		}

		switch ucmd {
		case 'M':
			cur = math32.Vec2(args[0], args[1])
			start = cur
			p = append(p, Segment{MoveTo, args})
			// subsequent pairs are implicit linetos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			cur = math32.Vec2(args[0], args[1])
			p = append(p, Segment{LineTo, args})
		case 'H':
			cur.X = args[0]
			p = append(p, Segment{HLineTo, args})
		case 'V':
			cur.Y = args[0]
			p = append(p, Segment{VLineTo, args})
		case 'C':
			lastCubic = math32.Vec2(args[2], args[3])
			cur = math32.Vec2(args[4], args[5])
			p = append(p, Segment{CubeTo, args})
		case 'S':
			c1 := cur
			if prev == 'C' || prev == 'S' {
				c1 = cur.MulScalar(2).Sub(lastCubic)
			}
			lastCubic = math32.Vec2(args[0], args[1])
			cur = math32.Vec2(args[2], args[3])
			p = append(p, Segment{CubeTo, []float32{c1.X, c1.Y, args[0], args[1], args[2], args[3]}})
		case 'Q':
			lastQuad = math32.Vec2(args[0], args[1])
			cur = math32.Vec2(args[2], args[3])
			p = append(p, Segment{QuadTo, args})
		case 'T':
			c := cur
			if prev == 'Q' || prev == 'T' {
				c = cur.MulScalar(2).Sub(lastQuad)
			}
			lastQuad = c
			cur = math32.Vec2(args[0], args[1])
			p = append(p, Segment{QuadTo, []float32{c.X, c.Y, args[0], args[1]}})
		case 'A':
			args[0] = math32.Abs(args[0])
			args[1] = math32.Abs(args[1])
			cur = math32.Vec2(args[5], args[6])
			p = append(p, Segment{ArcTo, args})
		case 'Z':
			cur = start
			p = append(p, Segment{Close, nil})
		}
		prev = ucmd
	}
	return p, nil
}

// Compatible returns whether p and q have the same command structure,
// so that they can be interpolated segment by segment.
func (p Path) Compatible(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i].Cmd != q[i].Cmd || len(p[i].Args) != len(q[i].Args) {
			return false
		}
	}
	return true
}

// Lerp returns the path interpolated between p (f = 0) and q (f = 1).
// The paths must be [Path.Compatible]. Arc flags are not interpolated:
// they are taken from whichever path f is closer to.
func (p Path) Lerp(q Path, f float32) Path {
	np := make(Path, len(p))
	for i, s := range p {
		args := make([]float32, len(s.Args))
		for k, a := range s.Args {
			if s.Cmd == ArcTo && (k == 3 || k == 4) {
				args[k] = a
				if f >= 0.5 {
					args[k] = q[i].Args[k]
				}
				continue
			}
			args[k] = math32.Lerp(a, q[i].Args[k], f)
		}
		np[i] = Segment{s.Cmd, args}
	}
	return np
}
