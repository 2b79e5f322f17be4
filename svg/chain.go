// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/math32"
)

// ErrIndirectionCycle is returned when a use reference chain
// refers back to one of its own ancestors.
var ErrIndirectionCycle = errors.New("svg: indirection cycle")

// Link is one step of an element's ancestor chain, from the root toward
// the element: one of [Transform], [Viewport] or [Use].
type Link interface {
	isLink()

	// Matrix returns the transform this step contributes.
	Matrix() math32.Matrix2
}

// Transform is a declared transform attribute on an ancestor
// (or the element itself).
type Transform struct {
	M math32.Matrix2
}

// Viewport is a coordinate system boundary: a nested svg element,
// or the viewport a symbol gets from the use that references it.
type Viewport struct {

	// Pos is the position of the viewport within its parent.
	Pos math32.Vector2

	// Size is the size of the viewport.
	Size math32.Vector2

	// ViewBox is the optional source rectangle, nil if none.
	ViewBox *ViewBox
}

// Use is an indirection through a use element. Ref is the id of the
// referenced element; the referenced content is inlined at the use,
// offset by Pos. When the reference is a symbol, Symbol describes it,
// and the size of the use, if set, overrides the symbol's own size.
type Use struct {
	Ref    string
	Pos    math32.Vector2
	Size   math32.Vector2
	Symbol *Viewport
}

func (Transform) isLink() {}
func (Viewport) isLink()  {}
func (Use) isLink()       {}

func (t Transform) Matrix() math32.Matrix2 {
	return t.M
}

func (vp Viewport) Matrix() math32.Matrix2 {
	m := math32.Translate2D(vp.Pos.X, vp.Pos.Y)
	if vp.ViewBox == nil {
		return m
	}
	return m.Mul(vp.ViewBox.Transform(vp.Size))
}

func (u Use) Matrix() math32.Matrix2 {
	m := math32.Translate2D(u.Pos.X, u.Pos.Y)
	if u.Symbol == nil {
		return m
	}
	vp := *u.Symbol
	if u.Size.X > 0 {
		vp.Size.X = u.Size.X
	}
	if u.Size.Y > 0 {
		vp.Size.Y = u.Size.Y
	}
	return m.Mul(vp.Matrix())
}

// Chain is an ancestor chain, ordered from the root to the element.
type Chain []Link

// Accumulate returns the cumulative transform of the chain, composing
// each step inside the previous ones. A use that refers to a reference
// already being expanded higher in the chain returns an error wrapping
// [ErrIndirectionCycle].
func (c Chain) Accumulate() (math32.Matrix2, error) {
	m := math32.Identity2()
	var active map[string]bool
	for _, l := range c {
		if u, ok := l.(Use); ok && u.Ref != "" {
			if active[u.Ref] {
				return math32.Identity2(), fmt.Errorf("%w: #%s", ErrIndirectionCycle, u.Ref)
			}
			if active == nil {
				active = map[string]bool{}
			}
			active[u.Ref] = true
		}
		m.SetMul(l.Matrix())
	}
	return m, nil
}

// Uses returns the references of the use steps in the chain, in order.
func (c Chain) Uses() []string {
	var refs []string
	for _, l := range c {
		if u, ok := l.(Use); ok {
			refs = append(refs, u.Ref)
		}
	}
	return refs
}
