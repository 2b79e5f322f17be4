// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package effects

import (
	"cogentcore.org/svgfit/math32"
)

// Standard filter inputs that refer to the element itself or to
// layers that cannot extend past it.
var sourceInputs = map[string]bool{
	"SourceGraphic":   true,
	"SourceAlpha":     true,
	"BackgroundImage": true,
	"BackgroundAlpha": true,
}

// Standard filter inputs that fill the whole filter region.
var paintInputs = map[string]bool{
	"FillPaint":   true,
	"StrokePaint": true,
}

// Region is a filter region. Fractions of the element bounding box
// are used unless UserSpace is set.
type Region struct {
	X, Y, Width, Height float32

	UserSpace bool
}

// DefaultRegion is the filter region used when none is given:
// 10% of the bounding box on each side.
var DefaultRegion = Region{X: -0.1, Y: -0.1, Width: 1.2, Height: 1.2}

// Box returns the region for bounding box bb.
func (r Region) Box(bb math32.Box2) math32.Box2 {
	if r.UserSpace {
		return math32.B2XYWH(r.X, r.Y, r.Width, r.Height)
	}
	sz := bb.Size()
	return math32.B2XYWH(bb.Min.X+r.X*sz.X, bb.Min.Y+r.Y*sz.Y, r.Width*sz.X, r.Height*sz.Y)
}

// Filter is a filter: a graph of primitives, each reading the
// results of earlier ones. Its margins follow the graph, so that
// primitives applied one after another add up while those whose
// results are merged take the maximum.
type Filter struct {

	// ID is the id of the filter element, if any.
	ID string

	// Primitives are the filter primitives in document order.
	Primitives []Primitive

	// Region is the declared filter region, which clips the result.
	// If nil the result is not clipped, and [DefaultRegion] is used
	// for primitives that fill the region.
	Region *Region
}

// env is what primitives need to know to compute their margins.
type env struct {
	blurFactor float32

	// region is the margins of the filter region.
	region Margins
}

func (f *Filter) Margins(bb math32.Box2, blurFactor float32) Margins {
	if bb.IsEmpty() {
		return Margins{}
	}
	reg := DefaultRegion
	if f.Region != nil {
		reg = *f.Region
	}
	e := &env{blurFactor: blurFactor, region: signedOverflow(bb, reg.Box(bb))}
	results := map[string]Margins{}
	var prev Margins
	for _, p := range f.Primitives {
		var in Margins
		ins := p.Inputs()
		if len(ins) == 0 {
			ins = []string{""}
		}
		for j, nm := range ins {
			var m Margins
			switch {
			case nm == "":
				m = prev
			case sourceInputs[nm]:
			case paintInputs[nm]:
				m = e.region
			default:
				r, ok := results[nm]
				if !ok {
					r = prev
				}
				m = r
			}
			if j == 0 {
				in = m
			} else {
				in = in.Max(m)
			}
		}
		prev = p.grow(in, e)
		if r := p.Output(); r != "" {
			results[r] = prev
		}
	}
	if f.Region != nil {
		prev = prev.Min(e.region)
	}
	return prev.Clamp()
}

// signedOverflow is [Overflow] without clamping.
func signedOverflow(box, content math32.Box2) Margins {
	return Margins{
		Top:    box.Min.Y - content.Min.Y,
		Right:  content.Max.X - box.Max.X,
		Bottom: content.Max.Y - box.Max.Y,
		Left:   box.Min.X - content.Min.X,
	}
}

// Primitive is one filter primitive. Its margins are derived from the
// margins of its inputs.
type Primitive interface {

	// Inputs are the names of the inputs: results of earlier
	// primitives or standard inputs such as SourceGraphic.
	// An empty list or name is the result of the previous primitive,
	// or the source for the first one.
	Inputs() []string

	// Output is the result name, if any.
	Output() string

	grow(in Margins, e *env) Margins
}

// Node holds the inputs and result name of a primitive.
type Node struct {
	In     []string
	Result string
}

func (n *Node) Inputs() []string { return n.In }
func (n *Node) Output() string   { return n.Result }

// GaussianBlur blurs its input (feGaussianBlur).
type GaussianBlur struct {
	Node
	StdDevX, StdDevY float32
}

func (p *GaussianBlur) grow(in Margins, e *env) Margins {
	x, y := e.blurFactor*math32.Abs(p.StdDevX), e.blurFactor*math32.Abs(p.StdDevY)
	return in.Add(Margins{y, x, y, x})
}

// Offset shifts its input (feOffset).
type Offset struct {
	Node
	Dx, Dy float32
}

func (p *Offset) grow(in Margins, e *env) Margins {
	return in.Shift(p.Dx, p.Dy)
}

// DropShadow overlays its input on a blurred, shifted copy of it (feDropShadow).
type DropShadow struct {
	Node
	Dx, Dy           float32
	StdDevX, StdDevY float32
}

func (p *DropShadow) grow(in Margins, e *env) Margins {
	blur := GaussianBlur{StdDevX: p.StdDevX, StdDevY: p.StdDevY}
	return in.Max(blur.grow(in, e).Shift(p.Dx, p.Dy))
}

// Morphology thickens (dilate) or thins (erode) its input (feMorphology).
type Morphology struct {
	Node
	RadiusX, RadiusY float32
	Dilate           bool
}

func (p *Morphology) grow(in Margins, e *env) Margins {
	if !p.Dilate {
		return in
	}
	x, y := math32.Abs(p.RadiusX), math32.Abs(p.RadiusY)
	return in.Add(Margins{y, x, y, x})
}

// DisplacementMap moves input pixels by up to half its scale (feDisplacementMap).
type DisplacementMap struct {
	Node
	Scale float32
}

func (p *DisplacementMap) grow(in Margins, e *env) Margins {
	return in.Add(Uniform(math32.Abs(p.Scale) / 2))
}

// Fill covers the whole filter region regardless of its inputs,
// such as feFlood, feTile, feTurbulence and feImage. Unknown
// primitives are also treated as filling the region.
type Fill struct {
	Node
	Name string
}

func (p *Fill) grow(in Margins, e *env) Margins {
	return e.region
}

// Combine overlays its inputs (feMerge, feComposite, feBlend).
type Combine struct {
	Node
	Name string
}

func (p *Combine) grow(in Margins, e *env) Margins {
	return in
}

// Passthrough changes colors only (feColorMatrix, feComponentTransfer).
type Passthrough struct {
	Node
	Name string
}

func (p *Passthrough) grow(in Margins, e *env) Margins {
	return in
}
