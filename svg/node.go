// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"slices"

	"cogentcore.org/svgfit/units"
)

// Node is one element in an SVG document tree.
type Node struct {

	// Name is the element name, e.g. rect, without namespace.
	Name string

	// ID is the id attribute, if any.
	ID string

	// Class contains the class names of the element.
	Class []string

	// Attrs are the attributes of the element, keyed by local name.
	Attrs map[string]string

	// Text is the character data directly inside the element.
	Text string

	// Parent is the parent element, nil for the root.
	Parent *Node

	// Children are the child elements, in document order.
	Children []*Node

	// style holds declarations from the style attribute.
	style map[string]string

	// sheet holds declarations matched from style sheets.
	sheet map[string]sheetDecl
}

// sheetDecl is a style sheet declaration with the specificity used
// to resolve conflicts. Among equal specificities the last one wins.
type sheetDecl struct {
	value       string
	specificity int
}

// Attr returns the attribute value, or "" if unset.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// HasAttr returns whether the attribute is set.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attrs[name]
	return ok
}

// Property returns the computed value of a presentation property on
// this element only: the style attribute wins over style sheets,
// which win over the presentation attribute.
func (n *Node) Property(name string) (string, bool) {
	if v, ok := n.style[name]; ok {
		return v, true
	}
	if d, ok := n.sheet[name]; ok {
		return d.value, true
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// InheritedProperty returns the computed value of an inherited
// property, looking up through the ancestors until it is set.
// The value "inherit" defers to the parent.
func (n *Node) InheritedProperty(name string) (string, bool) {
	for nd := n; nd != nil; nd = nd.Parent {
		if v, ok := nd.Property(name); ok && v != "inherit" {
			return v, true
		}
	}
	return "", false
}

// Length returns the named attribute as a length in px, with
// percentages relative to ref. It returns def if the attribute
// is unset or cannot be parsed.
func (n *Node) Length(name string, ref, def float32) float32 {
	s, ok := n.Attrs[name]
	if !ok {
		return def
	}
	var v units.Value
	if err := v.SetString(s); err != nil {
		return def
	}
	uc := units.Context{FontSize: n.FontSize(), RootFontSize: 16, Ref: ref}
	return v.ToPx(&uc)
}

// FontSize returns the computed font size in px.
func (n *Node) FontSize() float32 {
	fs := float32(16)
	for nd := n; nd != nil; nd = nd.Parent {
		v, ok := nd.Property("font-size")
		if !ok {
			continue
		}
		var uv units.Value
		if uv.SetString(v) != nil {
			continue
		}
		switch uv.Un {
		case units.UnitEm, units.UnitEx, units.UnitPct:
			// relative to the parent: resolve from there
			parent := float32(16)
			if nd.Parent != nil {
				parent = nd.Parent.FontSize()
			}
			uc := units.Context{FontSize: parent, RootFontSize: 16, Ref: parent}
			return uv.ToPx(&uc)
		}
		uc := units.Context{FontSize: fs, RootFontSize: 16}
		return uv.ToPx(&uc)
	}
	return fs
}

// Walk calls fun for the node and all of its descendants in document
// order, skipping the children of any node for which fun returns false.
func (n *Node) Walk(fun func(nd *Node) bool) {
	if !fun(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fun)
	}
}

// HasClass returns whether the element has the given class.
func (n *Node) HasClass(cls string) bool {
	return slices.Contains(n.Class, cls)
}
