// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svgwalk turns a parsed SVG document into the element records
// that the envelope is computed from: it resolves the ancestor chain of
// every rendered element, expands use references, and collects the
// animations, effects and visibility of each.
package svgwalk

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/svgfit/anim"
	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/envelope"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
	"cogentcore.org/svgfit/shapes"
	"cogentcore.org/svgfit/svg"
)

// Walker walks one document. It is not safe for concurrent use.
type Walker struct {

	// Options are used for the envelopes of collapsed containers,
	// and Segments for flattening curves.
	Options envelope.Options

	// TextBounds, if set, returns the local bounds of a text element,
	// for callers with font metrics. If it returns false, a
	// conservative box based on the font size is used.
	TextBounds func(nd *svg.Node) (math32.Box2, bool)

	sv *svg.SVG

	// targets are the animations referring to elements by href, by element id.
	targets map[string][]*svg.Node

	// transforms memoizes parsed transform attributes.
	transforms map[string]math32.Matrix2

	// names are the generated names of elements without an id.
	names map[*svg.Node]string
}

// state is what is inherited down the tree.
type state struct {

	// chain is the ancestor chain from the root or the collapsed container.
	chain svg.Chain

	// viewport is the size of the nearest viewport, for percentages.
	viewport math32.Vector2

	// prefix is prepended to generated element ids inside use expansions.
	prefix string

	// refs are the use references being expanded.
	refs []string

	// showsVisibility is set inside a container whose visibility is animated.
	showsVisibility bool
}

// Walk returns the element records of the document, with curves
// flattened into the given number of segments.
func Walk(ctx context.Context, sv *svg.SVG, opts envelope.Options) ([]envelope.ElementRecord, error) {
	w := &Walker{Options: opts}
	return w.Walk(ctx, sv)
}

// Walk returns the element records of the document. It returns an
// error wrapping [svg.ErrIndirectionCycle] for use reference cycles.
func (w *Walker) Walk(ctx context.Context, sv *svg.SVG) ([]envelope.ElementRecord, error) {
	w.sv = sv
	w.transforms = map[string]math32.Matrix2{}
	w.targets = map[string][]*svg.Node{}
	w.names = map[*svg.Node]string{}
	sv.Root.Walk(func(nd *svg.Node) bool {
		if isAnimation(nd.Name) {
			if ref := strings.TrimPrefix(nd.Attr("href"), "#"); ref != "" {
				w.targets[ref] = append(w.targets[ref], nd)
			}
		}
		return true
	})
	st := &state{viewport: RootViewport(sv)}
	var recs []envelope.ElementRecord
	for _, c := range sv.Root.Children {
		r, err := w.walk(ctx, c, st)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r...)
	}
	return recs, nil
}

// RootViewport returns the size of the root coordinate system: the
// viewBox size, else the width and height, else 300 by 150.
func RootViewport(sv *svg.SVG) math32.Vector2 {
	if vb, ok := RootViewBox(sv); ok {
		return vb.Size
	}
	return math32.Vec2(sv.Root.Length("width", 0, 300), sv.Root.Length("height", 0, 150))
}

// RootViewBox returns the viewBox of the root svg element, if valid.
func RootViewBox(sv *svg.SVG) (svg.ViewBox, bool) {
	var vb svg.ViewBox
	s := sv.Root.Attr("viewBox")
	if s == "" || vb.SetString(s) != nil {
		return vb, false
	}
	return vb, vb.Size.X > 0 && vb.Size.Y > 0
}

// nonRendered are elements whose content is only rendered by reference.
var nonRendered = map[string]bool{
	"defs": true, "symbol": true, "clipPath": true, "mask": true, "pattern": true,
	"marker": true, "linearGradient": true, "radialGradient": true, "filter": true,
	"style": true, "script": true, "title": true, "desc": true, "metadata": true,
	"mpath": true, "tspan": true, "textPath": true, "stop": true,
}

func isAnimation(name string) bool {
	switch name {
	case "animate", "set", "animateTransform", "animateMotion":
		return true
	}
	return false
}

func isContainer(name string) bool {
	switch name {
	case "g", "a", "switch", "svg", "use":
		return true
	}
	return false
}

// walk returns the records for one element and its descendants.
func (w *Walker) walk(ctx context.Context, nd *svg.Node, st *state) ([]envelope.ElementRecord, error) {
	if nonRendered[nd.Name] || isAnimation(nd.Name) || strings.HasPrefix(nd.Name, "fe") {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	anims := w.animations(nd)
	vis := w.visibility(nd, st, anims)
	if isContainer(nd.Name) {
		// a hidden container hides its whole subtree
		if vis.Hidden && !animatesAny(anims, "display", "visibility") {
			return nil, nil
		}
		if vis.Transparent && !animatesAny(anims, "opacity") {
			return nil, nil
		}
		return w.container(ctx, nd, st, anims, vis)
	}
	rec, ok := w.leaf(nd, st)
	if !ok {
		return nil, nil
	}
	rec.Animations = anims
	rec.Visibility = vis
	rec.Effects = w.effects(nd, rec.Base)
	return []envelope.ElementRecord{rec}, nil
}

// container returns the records for a container element. Containers
// with animations or filters are collapsed into one record whose base
// is the envelope of their content.
func (w *Walker) container(ctx context.Context, nd *svg.Node, st *state, anims []anim.Animation, vis envelope.Visibility) ([]envelope.ElementRecord, error) {
	own := w.transform(nd)
	inner, content, err := w.enter(nd, st)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}
	_, filtered := nd.Property("filter")
	if len(anims) == 0 && !filtered {
		inner.chain = append(cloneChain(st.chain), svg.Transform{M: own})
		inner.chain = append(inner.chain, w.links(nd, st, nil)...)
		return w.children(ctx, content, inner)
	}

	// collapse: compute the content inside the container, then place
	// it with the container's links
	sub := *inner
	sub.chain = nil
	if animatesAny(anims, "visibility", "display") {
		sub.showsVisibility = true
	}
	recs, err := w.children(ctx, content, &sub)
	if err != nil {
		return nil, err
	}
	res, err := envelope.Compute(ctx, recs, w.Options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", w.label(nd, st), err)
	}
	cb := math32.B2Empty()
	if res.Envelope != (envelope.Rect{}) {
		cb = res.Envelope.Box()
	}
	base, frame := cb, w.frame(nd, st, cb)
	if frame != nil {
		base = frame.Bounds(w.segments())
	}
	rec := envelope.ElementRecord{
		ID:         w.label(nd, st),
		Base:       base,
		Chain:      cloneChain(st.chain),
		Transform:  own,
		Animations: anims,
		Visibility: vis,
	}
	rec.Shape = frame
	rec.Effects = w.effects(nd, base)
	slog.Debug("collapsed container", "element", rec.ID, "children", len(recs), "base", res.Envelope)
	return []envelope.ElementRecord{rec}, nil
}

// enter returns the state and the content elements inside a container,
// expanding use references.
func (w *Walker) enter(nd *svg.Node, st *state) (*state, []*svg.Node, error) {
	inner := *st
	switch nd.Name {
	case "svg":
		inner.viewport = math32.Vec2(nd.Length("width", st.viewport.X, st.viewport.X), nd.Length("height", st.viewport.Y, st.viewport.Y))
		if vb, ok := viewBox(nd); ok {
			inner.viewport = vb.Size
		}
		return &inner, nd.Children, nil
	case "use":
		ref := strings.TrimPrefix(strings.TrimSpace(nd.Attr("href")), "#")
		target := w.sv.FindNamedElement(ref)
		if target == nil {
			slog.Warn("ignoring use of missing element", "href", nd.Attr("href"))
			return nil, nil, nil
		}
		if slices.Contains(st.refs, ref) {
			return nil, nil, fmt.Errorf("%s: %w: #%s", w.label(nd, st), svg.ErrIndirectionCycle, ref)
		}
		inner.refs = append(slices.Clone(st.refs), ref)
		inner.prefix = st.prefix + w.label(nd, st) + "/"
		if target.Name == "symbol" {
			if vb, ok := viewBox(target); ok {
				inner.viewport = vb.Size
			}
			return &inner, target.Children, nil
		}
		return &inner, []*svg.Node{target}, nil
	}
	return &inner, nd.Children, nil
}

// frame returns the shape of a collapsed use or nested svg element
// whose content has bounds content in the coordinates inside its links,
// so that animations of x, y, width and height move and resize the
// content. It returns nil for other containers.
func (w *Walker) frame(nd *svg.Node, st *state, content math32.Box2) *shapes.Shape {
	if nd.Name != shapes.Use && nd.Name != shapes.SVG {
		return nil
	}
	sh := &shapes.Shape{Kind: nd.Name, Content: content}
	vp := st.viewport
	defSize := math32.Vector2{}
	if nd.Name == shapes.SVG {
		defSize = vp
	}
	sh.Attrs = map[string]float32{
		"x":      nd.Length("x", vp.X, 0),
		"y":      nd.Length("y", vp.Y, 0),
		"width":  nd.Length("width", vp.X, defSize.X),
		"height": nd.Length("height", vp.Y, defSize.Y),
	}
	at := *st
	sh.Frame = func(x, y, width, height float32) math32.Matrix2 {
		over := map[string]float32{"x": x, "y": y, "width": width, "height": height}
		return errors.Log1(w.links(nd, &at, over).Accumulate())
	}
	return sh
}

// links returns the chain links a container adds inside its own
// transform. Values in over replace the element's lengths of the
// same name.
func (w *Walker) links(nd *svg.Node, st *state, over map[string]float32) svg.Chain {
	length := func(name string, ref, def float32) float32 {
		if v, ok := over[name]; ok {
			return v
		}
		return nd.Length(name, ref, def)
	}
	switch nd.Name {
	case "svg":
		vp := svg.Viewport{
			Pos:  math32.Vec2(length("x", st.viewport.X, 0), length("y", st.viewport.Y, 0)),
			Size: math32.Vec2(length("width", st.viewport.X, st.viewport.X), length("height", st.viewport.Y, st.viewport.Y)),
		}
		if vb, ok := viewBox(nd); ok {
			vp.ViewBox = vb
		}
		return svg.Chain{vp}
	case "use":
		ref := strings.TrimPrefix(strings.TrimSpace(nd.Attr("href")), "#")
		u := svg.Use{
			Ref:  ref,
			Pos:  math32.Vec2(length("x", st.viewport.X, 0), length("y", st.viewport.Y, 0)),
			Size: math32.Vec2(length("width", st.viewport.X, 0), length("height", st.viewport.Y, 0)),
		}
		if target := w.sv.FindNamedElement(ref); target != nil && target.Name == "symbol" {
			vp := svg.Viewport{
				Size: math32.Vec2(target.Length("width", st.viewport.X, st.viewport.X), target.Length("height", st.viewport.Y, st.viewport.Y)),
			}
			if vb, ok := viewBox(target); ok {
				vp.ViewBox = vb
			}
			u.Symbol = &vp
		}
		return svg.Chain{u}
	}
	return nil
}

// children returns the records of the content elements.
func (w *Walker) children(ctx context.Context, content []*svg.Node, st *state) ([]envelope.ElementRecord, error) {
	var recs []envelope.ElementRecord
	for _, c := range content {
		r, err := w.walk(ctx, c, st)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r...)
	}
	return recs, nil
}

// viewBox returns the viewBox and preserveAspectRatio of an element.
func viewBox(nd *svg.Node) (*svg.ViewBox, bool) {
	s := nd.Attr("viewBox")
	if s == "" {
		return nil, false
	}
	vb := &svg.ViewBox{PreserveAspectRatio: svg.DefaultPreserveAspectRatio()}
	if errors.Warn(vb.SetString(s)) != nil {
		return nil, false
	}
	if pa := nd.Attr("preserveAspectRatio"); pa != "" {
		errors.Warn(vb.PreserveAspectRatio.SetString(pa))
	}
	return vb, true
}

// transform returns the transform of an element, from its transform
// attribute or property. Parsed values are memoized.
func (w *Walker) transform(nd *svg.Node) math32.Matrix2 {
	s, ok := nd.Property("transform")
	if !ok {
		return math32.Identity2()
	}
	return w.parseTransform(s, nd.Name)
}

// parseTransform parses a transform value, memoized.
func (w *Walker) parseTransform(s, element string) math32.Matrix2 {
	if s == "" {
		return math32.Identity2()
	}
	if m, ok := w.transforms[s]; ok {
		return m
	}
	m, err := math32.ParseTransform(s)
	errors.Warn(err, "element", element)
	w.transforms[s] = m
	return m
}

// label returns the id of an element for records and errors:
// its id attribute, or its name and the order in which it was reached.
func (w *Walker) label(nd *svg.Node, st *state) string {
	if nd.ID != "" {
		return st.prefix + nd.ID
	}
	nm, ok := w.names[nd]
	if !ok {
		nm = nd.Name + "-" + strconv.Itoa(len(w.names)+1)
		w.names[nd] = nm
	}
	return st.prefix + nm
}

// visibility returns the static display state of an element.
func (w *Walker) visibility(nd *svg.Node, st *state, anims []anim.Animation) envelope.Visibility {
	var v envelope.Visibility
	if d, ok := nd.Property("display"); ok && strings.TrimSpace(d) == "none" {
		v.Hidden = true
	}
	if !st.showsVisibility {
		if vs, ok := nd.InheritedProperty("visibility"); ok {
			switch strings.TrimSpace(vs) {
			case "hidden", "collapse":
				v.Invisible = true
			}
		}
	}
	if op, ok := nd.Property("opacity"); ok && isZero(op) {
		v.Transparent = true
	}
	return v
}

// isZero returns whether an opacity value is zero.
func isZero(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
	}
	v, err := math32.ParseFloat32(s)
	return err == nil && v <= 0
}

// animatesAny returns whether any animation targets one of the attributes.
func animatesAny(anims []anim.Animation, attrs ...string) bool {
	for _, a := range anims {
		if aa, ok := a.(*anim.AttributeAnimation); ok {
			for _, at := range attrs {
				if aa.Attr == at {
					return true
				}
			}
		}
	}
	return false
}

// animations returns the animations targeting an element: its
// animation children without an href, and those referring to it.
func (w *Walker) animations(nd *svg.Node) []anim.Animation {
	var srcs []*svg.Node
	for _, c := range nd.Children {
		if isAnimation(c.Name) && !c.HasAttr("href") {
			srcs = append(srcs, c)
		}
	}
	if nd.ID != "" {
		srcs = append(srcs, w.targets[nd.ID]...)
	}
	var anims []anim.Animation
	for _, an := range srcs {
		src := anim.Source{Element: an.Name, Attrs: an.Attrs}
		for _, c := range an.Children {
			if c.Name == "mpath" {
				if p := w.sv.FindURL(c.Attr("href")); p != nil {
					src.MotionPath = p.Attr("d")
				}
			}
		}
		a, err := anim.Parse(src, w.segments())
		errors.Warn(err, "element", nd.Name, "id", nd.ID)
		if a != nil {
			anims = append(anims, a)
		}
	}
	return anims
}

func (w *Walker) segments() int {
	if w.Options.Segments > 0 {
		return w.Options.Segments
	}
	return ppath.DefaultSegments
}

func cloneChain(c svg.Chain) svg.Chain {
	return append(svg.Chain(nil), c...)
}
