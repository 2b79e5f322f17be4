// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package effects computes how far filters and patterns make rendered
// content extend past the geometric bounds of an element. Masks and
// clip paths are modeled too, but never reduce bounds.
package effects

import (
	"cogentcore.org/svgfit/math32"
)

// DefaultBlurFactor is the default number of standard deviations
// a blur extends on each side.
const DefaultBlurFactor = 3

// Effect is one effect on an element: one of [*Filter],
// [PatternOverflow], [Mask] or [ClipPath].
type Effect interface {
	isEffect()

	// Margins returns how far the effect makes content extend past
	// the local bounding box bb, with blurs extending blurFactor
	// standard deviations.
	Margins(bb math32.Box2, blurFactor float32) Margins
}

// PatternOverflow is a pattern fill whose content extends past its tile.
type PatternOverflow struct {

	// ID is the id of the pattern.
	ID string

	// Extra is the overflow of the content past the tile.
	Extra Margins
}

// NewPatternOverflow returns the overflow of pattern content with the
// given bounds past the tile, both in tile coordinates.
func NewPatternOverflow(id string, tile, content math32.Box2) PatternOverflow {
	return PatternOverflow{ID: id, Extra: Overflow(tile, content)}
}

func (p PatternOverflow) Margins(math32.Box2, float32) Margins {
	return p.Extra.Clamp()
}

// Mask is a mask reference. It only hides content, so it has no margins.
type Mask struct {
	ID string
}

func (Mask) Margins(math32.Box2, float32) Margins { return Margins{} }

// ClipPath is a clip path reference. It only hides content, so it has no margins.
type ClipPath struct {
	ID string
}

func (ClipPath) Margins(math32.Box2, float32) Margins { return Margins{} }

func (*Filter) isEffect()         {}
func (PatternOverflow) isEffect() {}
func (Mask) isEffect()            {}
func (ClipPath) isEffect()        {}

// Pad returns bb grown by the effects, applied in order, each on the
// box grown by the previous ones. A blurFactor of 0 or less uses
// [DefaultBlurFactor].
func Pad(effs []Effect, bb math32.Box2, blurFactor float32) math32.Box2 {
	if bb.IsEmpty() {
		return bb
	}
	if blurFactor <= 0 {
		blurFactor = DefaultBlurFactor
	}
	for _, e := range effs {
		bb = e.Margins(bb, blurFactor).Pad(bb)
	}
	return bb
}

// Total returns the margins of the effects on bb, as applied by [Pad].
func Total(effs []Effect, bb math32.Box2, blurFactor float32) Margins {
	return Overflow(bb, Pad(effs, bb, blurFactor))
}
