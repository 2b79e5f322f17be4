// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgwalk

import (
	"log/slog"
	"strings"

	"cogentcore.org/svgfit/effects"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/svg"
	"cogentcore.org/svgfit/units"
)

// effects returns the effects on an element with local bounds bb:
// pattern fills and strokes, then filters, masks and clip paths.
func (w *Walker) effects(nd *svg.Node, bb math32.Box2) []effects.Effect {
	var effs []effects.Effect
	for _, prop := range []string{"fill", "stroke"} {
		v, ok := nd.InheritedProperty(prop)
		if !ok {
			continue
		}
		if p := w.sv.FindURL(v); p != nil && p.Name == "pattern" {
			if po, ok := w.pattern(p, bb); ok {
				effs = append(effs, po)
			}
		}
	}
	if v, ok := nd.Property("filter"); ok {
		f, urls := effects.ParseFunctions(v)
		for _, u := range urls {
			fn := w.sv.FindURL(u)
			if fn == nil || fn.Name != "filter" {
				slog.Warn("ignoring missing filter", "filter", u)
				continue
			}
			effs = append(effs, w.filter(fn))
		}
		if f != nil {
			effs = append(effs, f)
		}
	}
	if v, ok := nd.Property("mask"); ok {
		if m := w.sv.FindURL(v); m != nil {
			effs = append(effs, effects.Mask{ID: m.ID})
		}
	}
	if v, ok := nd.Property("clip-path"); ok {
		if c := w.sv.FindURL(v); c != nil {
			effs = append(effs, effects.ClipPath{ID: c.ID})
		}
	}
	return effs
}

// fraction returns a length in bounding box units: a plain number
// or a percentage.
func fraction(s string, def float32) float32 {
	var v units.Value
	if s == "" || v.SetString(s) != nil {
		return def
	}
	if v.Un == units.UnitPct {
		return v.Val / 100
	}
	return v.Val
}

// filter returns the filter defined by a filter element.
func (w *Walker) filter(fn *svg.Node) *effects.Filter {
	f := &effects.Filter{ID: fn.ID}
	if fn.HasAttr("x") || fn.HasAttr("y") || fn.HasAttr("width") || fn.HasAttr("height") {
		d := effects.DefaultRegion
		r := &effects.Region{UserSpace: fn.Attr("filterUnits") == "userSpaceOnUse"}
		if r.UserSpace {
			r.X, r.Y = fn.Length("x", 0, 0), fn.Length("y", 0, 0)
			r.Width, r.Height = fn.Length("width", 0, 0), fn.Length("height", 0, 0)
		} else {
			r.X, r.Y = fraction(fn.Attr("x"), d.X), fraction(fn.Attr("y"), d.Y)
			r.Width, r.Height = fraction(fn.Attr("width"), d.Width), fraction(fn.Attr("height"), d.Height)
		}
		f.Region = r
	}
	for _, c := range fn.Children {
		if p := primitive(c); p != nil {
			f.Primitives = append(f.Primitives, p)
		}
	}
	return f
}

// primitive returns the filter primitive of an fe element, or nil.
func primitive(nd *svg.Node) effects.Primitive {
	node := effects.Node{Result: nd.Attr("result")}
	for _, a := range []string{"in", "in2"} {
		if v := strings.TrimSpace(nd.Attr(a)); v != "" {
			node.In = append(node.In, v)
		}
	}
	pair := func(name string, def float32) (float32, float32) {
		v := math32.ReadPoints(nd.Attr(name))
		switch len(v) {
		case 0:
			return def, def
		case 1:
			return v[0], v[0]
		}
		return v[0], v[1]
	}
	num := func(name string, def float32) float32 {
		if v := math32.ReadPoints(nd.Attr(name)); len(v) > 0 {
			return v[0]
		}
		return def
	}
	switch nd.Name {
	case "feGaussianBlur":
		sx, sy := pair("stdDeviation", 0)
		return &effects.GaussianBlur{Node: node, StdDevX: sx, StdDevY: sy}
	case "feDropShadow":
		sx, sy := pair("stdDeviation", 2)
		return &effects.DropShadow{Node: node, Dx: num("dx", 2), Dy: num("dy", 2), StdDevX: sx, StdDevY: sy}
	case "feOffset":
		return &effects.Offset{Node: node, Dx: num("dx", 0), Dy: num("dy", 0)}
	case "feMorphology":
		rx, ry := pair("radius", 0)
		return &effects.Morphology{Node: node, RadiusX: rx, RadiusY: ry, Dilate: nd.Attr("operator") == "dilate"}
	case "feDisplacementMap":
		return &effects.DisplacementMap{Node: node, Scale: num("scale", 0)}
	case "feMerge":
		for _, c := range nd.Children {
			if c.Name == "feMergeNode" {
				node.In = append(node.In, c.Attr("in"))
			}
		}
		return &effects.Combine{Node: node, Name: nd.Name}
	case "feComposite", "feBlend":
		return &effects.Combine{Node: node, Name: nd.Name}
	case "feColorMatrix", "feComponentTransfer":
		return &effects.Passthrough{Node: node, Name: nd.Name}
	case "feFlood", "feTile", "feTurbulence", "feImage", "feDiffuseLighting", "feSpecularLighting":
		return &effects.Fill{Node: node, Name: nd.Name}
	}
	if strings.HasPrefix(nd.Name, "fe") {
		slog.Warn("treating unknown filter primitive as filling the filter region", "primitive", nd.Name)
		return &effects.Fill{Node: node, Name: nd.Name}
	}
	return nil
}

// pattern returns the overflow of a pattern's content past its tile,
// for an element with local bounds bb.
func (w *Walker) pattern(p *svg.Node, bb math32.Box2) (effects.PatternOverflow, bool) {
	if bb.IsEmpty() {
		return effects.PatternOverflow{}, false
	}
	// attributes and content may come from referenced patterns
	attr := func(name string) string {
		seen := map[*svg.Node]bool{}
		for nd := p; nd != nil && !seen[nd]; nd = w.sv.FindURL(nd.Attr("href")) {
			seen[nd] = true
			if nd.HasAttr(name) {
				return nd.Attr(name)
			}
		}
		return ""
	}
	content := p
	seen := map[*svg.Node]bool{}
	for content != nil && len(content.Children) == 0 && !seen[content] {
		seen[content] = true
		content = w.sv.FindURL(content.Attr("href"))
	}
	if content == nil {
		return effects.PatternOverflow{}, false
	}

	sz := bb.Size()
	var tile math32.Vector2
	if attr("patternUnits") == "userSpaceOnUse" {
		tile = math32.Vec2(lengthOf(attr("width")), lengthOf(attr("height")))
	} else {
		tile = math32.Vec2(fraction(attr("width"), 0)*sz.X, fraction(attr("height"), 0)*sz.Y)
	}
	if tile.X <= 0 || tile.Y <= 0 {
		return effects.PatternOverflow{}, false
	}

	// content coordinates: the viewBox, else user space or bounding box units
	m := math32.Identity2()
	var vb svg.ViewBox
	if s := attr("viewBox"); s != "" && vb.SetString(s) == nil {
		vb.PreserveAspectRatio = svg.DefaultPreserveAspectRatio()
		if pa := attr("preserveAspectRatio"); pa != "" {
			vb.PreserveAspectRatio.SetString(pa)
		}
		m = vb.Transform(tile)
	} else if attr("patternContentUnits") == "objectBoundingBox" {
		m = math32.Scale2D(sz.X, sz.Y)
	}

	cb := math32.B2Empty()
	for _, c := range content.Children {
		c.Walk(func(nd *svg.Node) bool {
			if nonRendered[nd.Name] || isAnimation(nd.Name) {
				return false
			}
			st := &state{viewport: tile}
			if rec, ok := w.leaf(nd, st); ok {
				cb.ExpandByBox(rec.Base.MulMatrix2(m.Mul(w.ancestorTransforms(nd, content)).Mul(rec.Transform)))
			}
			return true
		})
	}
	if cb.IsEmpty() {
		return effects.PatternOverflow{}, false
	}
	po := effects.NewPatternOverflow(p.ID, math32.B2(0, 0, tile.X, tile.Y), cb)
	if s := attr("patternTransform"); s != "" {
		// the overflow scales with the pattern
		sx, sy := w.parseTransform(s, p.Name).ExtractScale()
		sx, sy = math32.Abs(sx), math32.Abs(sy)
		e := po.Extra
		po.Extra = effects.Margins{Top: e.Top * sy, Right: e.Right * sx, Bottom: e.Bottom * sy, Left: e.Left * sx}
	}
	return po, !po.Extra.IsZero()
}

// ancestorTransforms returns the product of the transforms of the
// ancestors of nd below top.
func (w *Walker) ancestorTransforms(nd, top *svg.Node) math32.Matrix2 {
	var path []*svg.Node
	for a := nd.Parent; a != nil && a != top; a = a.Parent {
		path = append(path, a)
	}
	m := math32.Identity2()
	for i := len(path) - 1; i >= 0; i-- {
		m.SetMul(w.transform(path[i]))
	}
	return m
}

// lengthOf returns a length in px, 0 if invalid.
func lengthOf(s string) float32 {
	var v units.Value
	if s == "" || v.SetString(s) != nil {
		return 0
	}
	var uc units.Context
	uc.Defaults()
	return v.ToPx(&uc)
}
