// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envelope computes the content envelope of a set of SVG
// elements: the smallest axis-aligned box guaranteed to contain every
// state they can be rendered in, through their ancestor transforms,
// animations and effects.
package envelope

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"cogentcore.org/svgfit/anim"
	"cogentcore.org/svgfit/effects"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/shapes"
	"cogentcore.org/svgfit/svg"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Visibility is the static display state of an element.
type Visibility struct {

	// Hidden is display:none.
	Hidden bool `yaml:"hidden,omitempty" json:"hidden,omitempty"`

	// Invisible is visibility:hidden or collapse.
	Invisible bool `yaml:"invisible,omitempty" json:"invisible,omitempty"`

	// Transparent is opacity:0.
	Transparent bool `yaml:"transparent,omitempty" json:"transparent,omitempty"`
}

// ElementRecord is everything needed to bound one graphic element.
// Records are not modified by [Compute].
type ElementRecord struct {

	// ID identifies the element in results and errors.
	ID string

	// Base is the static bounding box in the element's local coordinates,
	// before its own transform.
	Base math32.Box2

	// Shape is the element geometry, used by attribute animations
	// to recompute Base. If nil, such animations keep Base.
	Shape *shapes.Shape

	// Chain is the ancestor chain from the root to the element,
	// not including the element's own transform.
	Chain svg.Chain

	// Transform is the element's own transform. The zero value is the identity.
	Transform math32.Matrix2

	// Animations are the animations targeting the element.
	Animations []anim.Animation

	// Effects are the filters, patterns, masks and clip paths on the element.
	Effects []effects.Effect

	// Visibility is the static display state.
	Visibility Visibility
}

// Options are the settings of [Compute].
type Options struct {

	// Buffer is added on every side of the content envelope.
	Buffer float32

	// Samples is the number of interpolated samples per animation
	// keyframe segment, 0 for [anim.DefaultSamples].
	Samples int

	// Segments is the number of line segments per curve, 0 for the default.
	Segments int

	// Workers is the number of elements computed in parallel,
	// 0 for GOMAXPROCS.
	Workers int

	// BlurFactor is the number of standard deviations a blur
	// extends, 0 for [effects.DefaultBlurFactor].
	BlurFactor float32
}

// ElementResult is the outcome for one element, for debugging.
type ElementResult struct {
	ID string `yaml:"id" json:"id"`

	// Box is the element envelope in root coordinates,
	// the zero rectangle if the element is excluded.
	Box Rect `yaml:"box" json:"box"`

	// Cumulative is the transform of the ancestor chain.
	Cumulative math32.Matrix2 `yaml:"cumulative" json:"cumulative"`

	// Excluded is why the element was excluded, if it was.
	Excluded string `yaml:"excluded,omitempty" json:"excluded,omitempty"`

	// Uses are the use references the element was reached through.
	Uses []string `yaml:"uses,omitempty" json:"uses,omitempty"`

	Stats anim.Stats `yaml:"stats" json:"stats"`
}

// Result is the outcome of [Compute].
type Result struct {

	// RunID identifies the run in logs.
	RunID uuid.UUID `yaml:"runId" json:"runId"`

	// Envelope is the content envelope, the zero rectangle if no
	// element contributes.
	Envelope Rect `yaml:"envelope" json:"envelope"`

	// Viewport is the envelope with the buffer added.
	Viewport Rect `yaml:"viewport" json:"viewport"`

	// Elements are the per-element results, in input order.
	Elements []ElementResult `yaml:"elements" json:"elements"`
}

// Compute returns the content envelope of the elements. Elements are
// computed in parallel and folded in input order. It returns an error
// wrapping [svg.ErrIndirectionCycle] if any element is reached through
// a use cycle, or the context error if it is canceled.
func Compute(ctx context.Context, elements []ElementRecord, opts Options) (*Result, error) {
	st := time.Now()
	res := &Result{RunID: uuid.New(), Elements: make([]ElementResult, len(elements))}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	sampler := anim.NewSampler(opts.Samples, opts.Segments)
	boxes := make([]math32.Box2, len(elements))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range elements {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			er, bb, err := computeElement(sampler, &elements[i], opts.BlurFactor)
			if err != nil {
				return err
			}
			res.Elements[i], boxes[i] = er, bb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	env := math32.B2Empty()
	for _, bb := range boxes {
		env = Fold(env, bb)
	}
	if !env.IsEmpty() {
		res.Envelope = RectFromBox(env)
		res.Viewport = res.Envelope.Buffer(opts.Buffer)
	}
	slog.Debug("computed envelope", "run", res.RunID, "elements", len(elements), "envelope", res.Envelope, "time", time.Since(st))
	return res, nil
}

// Fold adds one element envelope to the running envelope.
// Empty and zero-area boxes contribute nothing.
func Fold(env, bb math32.Box2) math32.Box2 {
	if bb.IsEmpty() || bb.Area() <= 0 {
		return env
	}
	return env.Union(bb)
}

// computeElement returns the result and envelope of one element.
// The envelope is empty if the element is excluded.
func computeElement(s *anim.Sampler, el *ElementRecord, blurFactor float32) (ElementResult, math32.Box2, error) {
	er := ElementResult{ID: el.ID, Uses: el.Chain.Uses()}
	outer, err := el.Chain.Accumulate()
	if err != nil {
		return er, math32.B2Empty(), fmt.Errorf("element %q: %w", el.ID, err)
	}
	er.Cumulative = outer
	if reason := el.exclusion(); reason != "" {
		er.Excluded = reason
		return er, math32.B2Empty(), nil
	}
	c := &anim.Combiner{Sampler: s, Outer: outer}
	if len(el.Effects) > 0 {
		c.Pad = func(bb math32.Box2) math32.Box2 {
			return effects.Pad(el.Effects, bb, blurFactor)
		}
	}
	bb, st := c.Envelope(&anim.Element{
		Shape:      el.Shape,
		Base:       el.Base,
		Transform:  el.Transform,
		Animations: el.Animations,
	})
	er.Box, er.Stats = RectFromBox(bb), st
	return er, bb, nil
}

// exclusion returns why the element cannot contribute visible content,
// or "" if it may.
func (el *ElementRecord) exclusion() string {
	if (el.Base.IsEmpty() || el.Base.Area() <= 0) && len(el.Animations) == 0 && len(el.Effects) == 0 {
		return "empty"
	}
	v := el.Visibility
	if v.Hidden && !el.animates("display", "visibility") {
		return "display:none"
	}
	if v.Invisible && !el.animates("visibility", "display") {
		return "visibility:hidden"
	}
	if v.Transparent && !el.animates("opacity") {
		return "opacity:0"
	}
	return ""
}

// animates returns whether any animation targets one of the attributes.
func (el *ElementRecord) animates(attrs ...string) bool {
	for _, a := range el.Animations {
		aa, ok := a.(*anim.AttributeAnimation)
		if !ok {
			continue
		}
		for _, at := range attrs {
			if aa.Attr == at {
				return true
			}
		}
	}
	return false
}
