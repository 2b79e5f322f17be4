// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effects

import (
	"fmt"
	"log/slog"

	"cogentcore.org/svgfit/math32"
)

// Margins are how far content extends past a box on each side.
// Inside the effects computation they may be negative, when content
// is shifted inward; only positive margins ever grow a box.
type Margins struct {

	// top side margin
	Top float32 `yaml:"top" json:"top"`

	// right side margin
	Right float32 `yaml:"right" json:"right"`

	// bottom side margin
	Bottom float32 `yaml:"bottom" json:"bottom"`

	// left side margin
	Left float32 `yaml:"left" json:"left"`
}

// NewMargins returns margins from 0 to 4 values, in the CSS order:
// one value sets all sides, two set top and bottom then right and
// left, three set top, right and left, then bottom, and four set
// top, right, bottom and left.
func NewMargins(vals ...float32) Margins {
	switch len(vals) {
	case 0:
		return Margins{}
	case 1:
		return Margins{vals[0], vals[0], vals[0], vals[0]}
	case 2:
		return Margins{vals[0], vals[1], vals[0], vals[1]}
	case 3:
		return Margins{vals[0], vals[1], vals[2], vals[1]}
	}
	if len(vals) > 4 {
		slog.Error("programmer error: effects.NewMargins: got more than 4 values", "values", vals)
	}
	return Margins{vals[0], vals[1], vals[2], vals[3]}
}

// Uniform returns margins of v on every side.
func Uniform(v float32) Margins {
	return Margins{v, v, v, v}
}

func (m Margins) String() string {
	return fmt.Sprintf("(%g %g %g %g)", m.Top, m.Right, m.Bottom, m.Left)
}

// IsZero returns whether no side extends past the box.
func (m Margins) IsZero() bool {
	return m.Top <= 0 && m.Right <= 0 && m.Bottom <= 0 && m.Left <= 0
}

// Add returns the side-wise sum, for effects that apply one after another.
func (m Margins) Add(o Margins) Margins {
	return Margins{m.Top + o.Top, m.Right + o.Right, m.Bottom + o.Bottom, m.Left + o.Left}
}

// Max returns the side-wise maximum, for effects whose results are overlaid.
func (m Margins) Max(o Margins) Margins {
	return Margins{
		math32.Max(m.Top, o.Top), math32.Max(m.Right, o.Right),
		math32.Max(m.Bottom, o.Bottom), math32.Max(m.Left, o.Left),
	}
}

// Min returns the side-wise minimum.
func (m Margins) Min(o Margins) Margins {
	return Margins{
		math32.Min(m.Top, o.Top), math32.Min(m.Right, o.Right),
		math32.Min(m.Bottom, o.Bottom), math32.Min(m.Left, o.Left),
	}
}

// Shift returns the margins of content moved by (dx, dy).
func (m Margins) Shift(dx, dy float32) Margins {
	return Margins{m.Top - dy, m.Right + dx, m.Bottom + dy, m.Left - dx}
}

// Clamp returns the margins with negative sides set to zero.
func (m Margins) Clamp() Margins {
	return m.Max(Margins{})
}

// Pad returns the box grown by the positive margins.
func (m Margins) Pad(bb math32.Box2) math32.Box2 {
	return bb.Pad(m.Left, m.Top, m.Right, m.Bottom)
}

// Overflow returns the margins by which content extends past box.
func Overflow(box, content math32.Box2) Margins {
	if box.IsEmpty() || content.IsEmpty() {
		return Margins{}
	}
	return Margins{
		Top:    box.Min.Y - content.Min.Y,
		Right:  content.Max.X - box.Max.X,
		Bottom: content.Max.Y - box.Max.Y,
		Left:   box.Min.X - content.Min.X,
	}.Clamp()
}
