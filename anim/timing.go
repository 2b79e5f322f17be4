// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"fmt"
	"strings"

	"cogentcore.org/svgfit/base/errors"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrUnsupportedTiming is returned (wrapped) for begin values that
// cannot be classified. Animations with such timing are skipped.
var ErrUnsupportedTiming = errors.New("unsupported timing syntax")

// Timing is when an animation begins: one of [Definite], [EventBased],
// [Syncbase] or [Unsupported].
type Timing interface {
	isTiming()
}

// Definite timing begins at a fixed offset from document start.
type Definite struct {
	Offset float32
}

// EventBased timing begins when an event fires, such as a click,
// optionally on another element. "indefinite" is event based with
// Event "indefinite": it only begins when started by script.
type EventBased struct {
	Target string
	Event  string
	Offset float32
}

// Syncbase timing begins relative to the begin or end of another animation.
type Syncbase struct {
	Ref    string
	Edge   string
	Offset float32
}

// Unsupported is timing that could not be classified, such as
// accessKey(...) or wallclock(...).
type Unsupported struct {
	Source string
}

func (Definite) isTiming()    {}
func (EventBased) isTiming()  {}
func (Syncbase) isTiming()    {}
func (Unsupported) isTiming() {}

// IsConditional returns whether the timing depends on something that
// cannot be known statically, so the animation may or may not run.
func IsConditional(t Timing) bool {
	switch t.(type) {
	case EventBased, Syncbase:
		return true
	}
	return false
}

// ParseTiming parses a begin attribute value, which may be a ';'
// separated list. Any definite entry makes the timing [Definite], at the
// earliest such offset, since the animation then runs regardless of
// events. Otherwise the first event or syncbase entry is used. An empty
// value means begin at 0. If no entry can be classified the result is
// [Unsupported] with an error wrapping [ErrUnsupportedTiming].
func ParseTiming(begin string) (Timing, error) {
	if strings.TrimSpace(begin) == "" {
		return Definite{}, nil
	}
	var def *Definite
	var cond Timing
	for _, item := range strings.Split(begin, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		switch t := parseTimingItem(item).(type) {
		case Definite:
			if def == nil || t.Offset < def.Offset {
				def = &t
			}
		case EventBased, Syncbase:
			if cond == nil {
				cond = t
			}
		}
	}
	if def != nil {
		return *def, nil
	}
	if cond != nil {
		return cond, nil
	}
	return Unsupported{begin}, fmt.Errorf("%w: %q", ErrUnsupportedTiming, begin)
}

func parseTimingItem(item string) Timing {
	if v, ok := ParseClock(item); ok {
		return Definite{v}
	}
	if item == "indefinite" {
		return EventBased{Event: item}
	}
	if strings.ContainsAny(item, "()") {
		return Unsupported{item}
	}
	base, offset := splitOffset(item)
	if !isName(base, true) {
		return Unsupported{item}
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return EventBased{Event: base, Offset: offset}
	}
	ref, edge := base[:i], base[i+1:]
	if ref == "" || edge == "" {
		return Unsupported{item}
	}
	if edge == "begin" || edge == "end" {
		return Syncbase{Ref: ref, Edge: edge, Offset: offset}
	}
	return EventBased{Target: ref, Event: edge, Offset: offset}
}

// splitOffset splits "base+clock" or "base-clock" at the first sign
// after which a valid clock value follows.
func splitOffset(item string) (string, float32) {
	for i := 1; i < len(item); i++ {
		c := item[i]
		if c != '+' && c != '-' {
			continue
		}
		v, ok := ParseClock(strings.TrimSpace(item[i+1:]))
		if !ok {
			continue
		}
		if c == '-' {
			v = -v
		}
		return strings.TrimSpace(item[:i]), v
	}
	return item, 0
}

// isName returns whether s is an XML-ish name, optionally with dots.
func isName(s string, dots bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_', c >= 0x80:
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		case dots && i > 0 && c == '.':
		default:
			return false
		}
	}
	return true
}

// ParseClock parses a SMIL clock value in seconds: "2s", "500ms",
// "1.5min", "1h", "5" (seconds), "02:30" or "01:02:03.5".
func ParseClock(s string) (float32, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	sign := float64(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, false
		}
		total := float64(0)
		for _, p := range parts {
			v, n := strconv.ParseFloat([]byte(p))
			if n == 0 || n != len(p) || v < 0 {
				return 0, false
			}
			total = total*60 + v
		}
		return float32(sign * total), true
	}
	b := []byte(s)
	v, n := strconv.ParseFloat(b)
	if n == 0 {
		return 0, false
	}
	mult := float64(1)
	switch string(b[n:]) {
	case "", "s":
	case "ms":
		mult = 0.001
	case "min":
		mult = 60
	case "h":
		mult = 3600
	default:
		return 0, false
	}
	return float32(sign * v * mult), true
}
