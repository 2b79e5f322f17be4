// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effects

import (
	"log/slog"
	"strings"

	"cogentcore.org/svgfit/math32"
)

// ParseFunctions parses a CSS filter property value, such as
// "blur(2px) drop-shadow(3px 3px 2px black)", into a filter whose
// primitives apply one after another. References such as url(#f)
// are returned separately, in order, for the caller to resolve.
// Lengths are taken as pixels. It returns a nil filter if there are
// no filter functions.
func ParseFunctions(value string) (*Filter, []string) {
	var prims []Primitive
	var urls []string
	s := strings.TrimSpace(value)
	for s != "" {
		open := strings.IndexByte(s, '(')
		if open < 0 {
			if s != "none" {
				slog.Warn("ignoring filter value", "value", s)
			}
			break
		}
		name := strings.ToLower(strings.TrimSpace(s[:open]))
		end := matchParen(s, open)
		if end < 0 {
			slog.Warn("ignoring unterminated filter function", "value", s)
			break
		}
		args := strings.TrimSpace(s[open+1 : end])
		s = strings.TrimSpace(s[end+1:])
		switch name {
		case "url":
			urls = append(urls, "url("+args+")")
		case "blur":
			v := leadingNumbers(args)
			sd := float32(0)
			if len(v) > 0 {
				sd = v[0]
			}
			prims = append(prims, &GaussianBlur{StdDevX: sd, StdDevY: sd})
		case "drop-shadow":
			v := leadingNumbers(args)
			if len(v) < 2 {
				slog.Warn("ignoring drop-shadow without offsets", "args", args)
				continue
			}
			ds := &DropShadow{Dx: v[0], Dy: v[1]}
			if len(v) > 2 {
				// the blur radius is twice the standard deviation
				ds.StdDevX, ds.StdDevY = v[2]/2, v[2]/2
			}
			prims = append(prims, ds)
		default:
			prims = append(prims, &Passthrough{Name: name})
		}
	}
	if len(prims) == 0 {
		return nil, urls
	}
	return &Filter{Primitives: prims}, urls
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// leadingNumbers returns the numbers in args, skipping a color
// written before them.
func leadingNumbers(args string) []float32 {
	args = strings.TrimSpace(args)
	if args != "" && !isNumberStart(args[0]) {
		i := strings.IndexByte(args, ' ')
		if p := strings.IndexByte(args, '('); p >= 0 && (i < 0 || p < i) {
			i = matchParen(args, p) + 1
		}
		if i <= 0 {
			return nil
		}
		args = args[i:]
	}
	return math32.ReadPoints(args)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || ('0' <= c && c <= '9')
}
