// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svgwalk

import (
	"strings"

	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/envelope"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
	"cogentcore.org/svgfit/shapes"
	"cogentcore.org/svgfit/svg"
)

// lengthAttrs are the length attributes of each shape, with whether
// percentages refer to the viewport width (x) or height (y).
var lengthAttrs = map[string][]string{
	shapes.Rect:     {"x", "y", "width", "height"},
	shapes.Image:    {"x", "y", "width", "height"},
	"foreignObject": {"x", "y", "width", "height"},
	shapes.Circle:   {"cx", "cy", "r"},
	shapes.Ellipse:  {"cx", "cy", "rx", "ry"},
	shapes.Line:     {"x1", "y1", "x2", "y2"},
	shapes.Text:     {"x", "y"},
}

// horizontal are the attributes whose percentages refer to the viewport width.
var horizontal = map[string]bool{"x": true, "width": true, "cx": true, "rx": true, "x1": true, "x2": true}

// leaf returns the record of a graphic element, or false if the
// element is not a graphic element.
func (w *Walker) leaf(nd *svg.Node, st *state) (envelope.ElementRecord, bool) {
	kind := nd.Name
	if _, ok := lengthAttrs[kind]; !ok {
		switch kind {
		case shapes.Path, shapes.Polyline, shapes.Polygon:
		default:
			return envelope.ElementRecord{}, false
		}
	}
	sh := shapes.Shape{Kind: kind, Attrs: map[string]float32{}}
	for _, a := range lengthAttrs[kind] {
		sh.Attrs[a] = w.length(nd, a, st)
	}
	switch kind {
	case shapes.Path:
		d, _ := nd.Property("d")
		p, err := ppath.Parse(d)
		if errors.Warn(err, "element", nd.ID) == nil {
			sh.Path = p
		}
	case shapes.Polyline, shapes.Polygon:
		pts := math32.ReadPoints(nd.Attr("points"))
		for i := 0; i+1 < len(pts); i += 2 {
			sh.Points = append(sh.Points, math32.Vec2(pts[i], pts[i+1]))
		}
	case shapes.Text:
		sh.Text = textContent(nd)
		sh.Attrs["font-size"] = nd.FontSize()
		sh.Anchor, _ = nd.InheritedProperty("text-anchor")
		// x and y may be lists: the first position anchors the text
		if xs := math32.ReadPoints(nd.Attr("x")); len(xs) > 1 {
			sh.Attrs["x"] = xs[0]
		}
		if ys := math32.ReadPoints(nd.Attr("y")); len(ys) > 1 {
			sh.Attrs["y"] = ys[0]
		}
	case shapes.Circle:
		if !nd.HasAttr("r") {
			sh.Attrs["r"] = 0
		}
	case shapes.Ellipse:
		// auto radii take each other's value
		if !nd.HasAttr("rx") {
			sh.Attrs["rx"] = sh.Attrs["ry"]
		}
		if !nd.HasAttr("ry") {
			sh.Attrs["ry"] = sh.Attrs["rx"]
		}
	}
	sh.Attrs["stroke-width"] = w.strokeWidth(nd, st)
	if sh.Attrs["stroke-width"] > 0 {
		sh.Join, _ = nd.InheritedProperty("stroke-linejoin")
		sh.Join = strings.TrimSpace(sh.Join)
		if ml, ok := nd.InheritedProperty("stroke-miterlimit"); ok {
			if v, err := math32.ParseFloat32(strings.TrimSpace(ml)); errors.Warn(err, "element", nd.ID) == nil {
				sh.Attrs["stroke-miterlimit"] = v
			}
		}
	}
	rec := envelope.ElementRecord{
		ID:        w.label(nd, st),
		Shape:     &sh,
		Base:      sh.Bounds(w.segments()),
		Chain:     cloneChain(st.chain),
		Transform: w.transform(nd),
	}
	if kind == shapes.Text && w.TextBounds != nil {
		if bb, ok := w.TextBounds(nd); ok {
			rec.Base = bb
			rec.Shape = nil
		}
	}
	return rec, true
}

// length returns a length attribute or property in px.
func (w *Walker) length(nd *svg.Node, name string, st *state) float32 {
	ref := st.viewport.Y
	if horizontal[name] {
		ref = st.viewport.X
	}
	if name == "r" {
		// percentages of r refer to the normalized diagonal
		ref = math32.Sqrt((st.viewport.X*st.viewport.X + st.viewport.Y*st.viewport.Y) / 2)
	}
	if v, ok := nd.Property(name); ok && !nd.HasAttr(name) {
		// geometry given as a CSS property
		tmp := &svg.Node{Attrs: map[string]string{name: v}, Parent: nd}
		return tmp.Length(name, ref, 0)
	}
	return nd.Length(name, ref, 0)
}

// strokeWidth returns the stroke width, 0 if there is no stroke.
func (w *Walker) strokeWidth(nd *svg.Node, st *state) float32 {
	stroke, ok := nd.InheritedProperty("stroke")
	if !ok || strings.TrimSpace(stroke) == "none" {
		return 0
	}
	sw, ok := nd.InheritedProperty("stroke-width")
	if !ok {
		return 1
	}
	tmp := &svg.Node{Attrs: map[string]string{"stroke-width": sw}, Parent: nd}
	ref := math32.Sqrt((st.viewport.X*st.viewport.X + st.viewport.Y*st.viewport.Y) / 2)
	return tmp.Length("stroke-width", ref, 1)
}

// textContent returns the characters of a text element and its spans.
func textContent(nd *svg.Node) string {
	var sb strings.Builder
	sb.WriteString(nd.Text)
	for _, c := range nd.Children {
		if c.Name == "tspan" || c.Name == "textPath" || c.Name == "a" {
			sb.WriteString(textContent(c))
		}
	}
	return strings.TrimSpace(sb.String())
}
