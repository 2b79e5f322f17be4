// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"log/slog"

	"cogentcore.org/svgfit/math32"
)

// MaxConditional is the largest number of event-based or syncbase
// animations on one element whose on / off combinations are all
// enumerated. Beyond it, only all-on, all-off and the combinations
// with a single animation flipped are used.
const MaxConditional = 8

// maxAttrCombos bounds the number of combinations of alternative
// attribute animations evaluated at each sample.
const maxAttrCombos = 64

// Combiner merges all the animations of an element into one envelope.
type Combiner struct {
	*Sampler

	// Outer is the cumulative transform of the element's ancestors.
	Outer math32.Matrix2

	// Pad, if set, grows each local box before it is transformed,
	// for effects such as filters.
	Pad func(math32.Box2) math32.Box2
}

// Stats describes the work done for one element.
type Stats struct {

	// Fractions is the number of shared timeline samples.
	Fractions int `yaml:"fractions" json:"fractions"`

	// Subsets is the number of on / off combinations of conditional animations.
	Subsets int `yaml:"subsets" json:"subsets"`

	// Poses is the number of candidate boxes unioned.
	Poses int `yaml:"poses" json:"poses"`

	// Skipped is the number of animations ignored for unsupported timing.
	Skipped int `yaml:"skipped" json:"skipped"`
}

// Envelope returns the union of every pose the element can take,
// in the coordinates of the outer transform. The static pose is always
// included. Animations with definite timing always run; each
// event-based or syncbase animation may or may not have run, so every
// on / off combination of them is composed.
func (c *Combiner) Envelope(el *Element) (math32.Box2, Stats) {
	var st Stats
	var always, cond []Animation
	for _, a := range el.Animations {
		switch t := a.Settings().Begin.(type) {
		case nil, Definite:
			always = append(always, a)
		case EventBased, Syncbase:
			cond = append(cond, a)
		case Unsupported:
			st.Skipped++
			slog.Debug("skipping animation", "timing", t.Source)
		}
	}

	env := c.place(c.pad(el.Base), el.ownTransform())
	st.Poses++
	for _, on := range subsets(len(cond)) {
		active := append([]Animation(nil), always...)
		for i, a := range cond {
			if on[i] {
				active = append(active, a)
			}
		}
		bb, n, nf := c.compose(el, active)
		env.ExpandByBox(bb)
		st.Poses += n
		st.Fractions = max(st.Fractions, nf)
		st.Subsets++
	}
	return env, st
}

func (c *Combiner) pad(bb math32.Box2) math32.Box2 {
	if c.Pad == nil || bb.IsEmpty() {
		return bb
	}
	return c.Pad(bb)
}

// place transforms a local box by m and then the outer transform.
func (c *Combiner) place(bb math32.Box2, m math32.Matrix2) math32.Box2 {
	return bb.MulMatrix2(c.outer().Mul(m))
}

func (c *Combiner) outer() math32.Matrix2 {
	if c.Outer.IsZero() {
		return math32.Identity2()
	}
	return c.Outer
}

// subsets returns every on / off assignment for n conditional
// animations, or a reduced set when n exceeds [MaxConditional].
func subsets(n int) [][]bool {
	if n == 0 {
		return [][]bool{nil}
	}
	if n <= MaxConditional {
		all := make([][]bool, 0, 1<<n)
		for mask := 0; mask < 1<<n; mask++ {
			on := make([]bool, n)
			for i := range on {
				on[i] = mask&(1<<i) != 0
			}
			all = append(all, on)
		}
		return all
	}
	slog.Debug("too many conditional animations, reducing combinations", "count", n)
	all := [][]bool{make([]bool, n), make([]bool, n)}
	for i := range all[1] {
		all[1][i] = true
	}
	for i := 0; i < n; i++ {
		one := make([]bool, n)
		one[i] = true
		rest := make([]bool, n)
		for j := range rest {
			rest[j] = j != i
		}
		all = append(all, one, rest)
	}
	return all
}

// compose returns the union over the shared timeline of the element
// with the given animations all running, the number of poses, and the
// number of timeline samples. The transform at each sample is
//
//	outer * motion * base * additive[0] * additive[1] * ...
//
// where motion is none or one of the motion animations, base is the
// element's own transform or one of the replacing transform animations,
// and the additive transform animations compose in declaration order.
// Alternatives of the same kind are unioned, not composed. The underlying
// value is always one of the alternatives, since it shows whenever a
// replacing animation is not active.
func (c *Combiner) compose(el *Element, anims []Animation) (math32.Box2, int, int) {
	env := math32.B2Empty()
	if len(anims) == 0 {
		return env, 0, 0
	}
	var motions []*MotionAnimation
	var replaces, adds []*TransformAnimation
	var attrs []*AttributeAnimation
	var grid []float32
	for _, a := range anims {
		grid = append(grid, c.Fractions(a)...)
		switch a := a.(type) {
		case *MotionAnimation:
			motions = append(motions, a)
		case *TransformAnimation:
			if a.Additive {
				adds = append(adds, a)
			} else {
				replaces = append(replaces, a)
			}
		case *AttributeAnimation:
			attrs = append(attrs, a)
		}
	}
	grid = Dedupe(grid)
	combos := attrCombos(attrs)
	own := el.ownTransform()
	outer := c.outer()
	n := 0
	for _, f := range grid {
		added := math32.Identity2()
		for _, a := range adds {
			added.SetMul(a.MatrixAt(f))
		}
		bases := []math32.Matrix2{own}
		for _, a := range replaces {
			bases = append(bases, a.MatrixAt(f))
		}
		moves := []math32.Matrix2{math32.Identity2()}
		for _, a := range motions {
			moves = append(moves, a.MatrixAt(f))
		}
		var boxes []math32.Box2
		for _, combo := range combos {
			bb := c.shapeBounds(el, combo, f)
			if !bb.IsEmpty() {
				boxes = append(boxes, c.pad(bb))
			}
		}
		for _, mv := range moves {
			for _, bs := range bases {
				m := outer.Mul(mv).Mul(bs).Mul(added)
				for _, bb := range boxes {
					env.ExpandByBox(bb.MulMatrix2(m))
					n++
				}
			}
		}
	}
	return env, n, len(grid)
}

// attrCombos returns the lists of attribute animations to apply
// together. Replacing animations of the same attribute are alternatives,
// so each combination picks at most one of them per attribute (or none,
// for the underlying value), while additive ones are always applied
// after the chosen one. If there are
// too many combinations, each alternative is applied on its own.
func attrCombos(attrs []*AttributeAnimation) [][]*AttributeAnimation {
	var names []string
	alts := map[string][]*AttributeAnimation{}
	adds := map[string][]*AttributeAnimation{}
	for _, a := range attrs {
		if _, seen := alts[a.Attr]; !seen {
			if _, seen := adds[a.Attr]; !seen {
				names = append(names, a.Attr)
			}
		}
		if a.Additive && a.Attr != "d" && a.Attr != "points" {
			adds[a.Attr] = append(adds[a.Attr], a)
		} else {
			alts[a.Attr] = append(alts[a.Attr], a)
		}
	}
	total := 1
	for _, nm := range names {
		total *= 1 + len(alts[nm])
	}
	combos := [][]*AttributeAnimation{nil}
	if total > maxAttrCombos {
		slog.Debug("too many alternative attribute animations, applying separately", "combinations", total)
		for _, nm := range names {
			for _, a := range alts[nm] {
				combos = append(combos, []*AttributeAnimation{a})
			}
		}
		for _, nm := range names {
			for i := range combos {
				combos[i] = append(combos[i], adds[nm]...)
			}
		}
		return combos
	}
	for _, nm := range names {
		var next [][]*AttributeAnimation
		for _, cb := range combos {
			next = append(next, append(cb[:len(cb):len(cb)], adds[nm]...))
			for _, a := range alts[nm] {
				nc := append(cb[:len(cb):len(cb)], a)
				next = append(next, append(nc, adds[nm]...))
			}
		}
		combos = next
	}
	return combos
}
