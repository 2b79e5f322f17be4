// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"fmt"
	"io"
	"os"

	"cogentcore.org/svgfit/anim"
	"cogentcore.org/svgfit/base/errors"
	"cogentcore.org/svgfit/effects"
	"cogentcore.org/svgfit/math32"
	"cogentcore.org/svgfit/ppath"
	"cogentcore.org/svgfit/shapes"
	"cogentcore.org/svgfit/svg"
	"gopkg.in/yaml.v3"
)

// File is a list of elements as written in a YAML or JSON element file,
// for computing an envelope without walking SVG markup.
type File struct {
	Elements []ElementSpec `yaml:"elements" json:"elements"`
}

// ElementSpec is the written form of an [ElementRecord].
type ElementSpec struct {
	ID string `yaml:"id" json:"id"`

	// Bounds is the local bounding box as x, y, width, height.
	// If empty, it is computed from Shape.
	Bounds []float32 `yaml:"bounds,omitempty" json:"bounds,omitempty"`

	Shape *ShapeSpec `yaml:"shape,omitempty" json:"shape,omitempty"`

	// Transform is the element's own transform attribute.
	Transform string `yaml:"transform,omitempty" json:"transform,omitempty"`

	// Chain is the ancestor chain, from the root.
	Chain []LinkSpec `yaml:"chain,omitempty" json:"chain,omitempty"`

	Animations []AnimationSpec `yaml:"animations,omitempty" json:"animations,omitempty"`

	Effects []EffectSpec `yaml:"effects,omitempty" json:"effects,omitempty"`

	Visibility `yaml:",inline"`
}

// ShapeSpec is the written form of a [shapes.Shape].
type ShapeSpec struct {
	Kind   string             `yaml:"kind" json:"kind"`
	Attrs  map[string]float32 `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	D      string             `yaml:"d,omitempty" json:"d,omitempty"`
	Points string             `yaml:"points,omitempty" json:"points,omitempty"`
	Text   string             `yaml:"text,omitempty" json:"text,omitempty"`
	Anchor string             `yaml:"anchor,omitempty" json:"anchor,omitempty"`
	Join   string             `yaml:"join,omitempty" json:"join,omitempty"`
}

// LinkSpec is one step of an ancestor chain: exactly one of its fields is set.
type LinkSpec struct {
	Transform string        `yaml:"transform,omitempty" json:"transform,omitempty"`
	Viewport  *ViewportSpec `yaml:"viewport,omitempty" json:"viewport,omitempty"`
	Use       *UseSpec      `yaml:"use,omitempty" json:"use,omitempty"`
}

// ViewportSpec is the written form of an [svg.Viewport].
type ViewportSpec struct {
	X                   float32 `yaml:"x,omitempty" json:"x,omitempty"`
	Y                   float32 `yaml:"y,omitempty" json:"y,omitempty"`
	Width               float32 `yaml:"width,omitempty" json:"width,omitempty"`
	Height              float32 `yaml:"height,omitempty" json:"height,omitempty"`
	ViewBox             string  `yaml:"viewBox,omitempty" json:"viewBox,omitempty"`
	PreserveAspectRatio string  `yaml:"preserveAspectRatio,omitempty" json:"preserveAspectRatio,omitempty"`
}

// UseSpec is the written form of an [svg.Use].
type UseSpec struct {
	Ref    string        `yaml:"ref" json:"ref"`
	X      float32       `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float32       `yaml:"y,omitempty" json:"y,omitempty"`
	Width  float32       `yaml:"width,omitempty" json:"width,omitempty"`
	Height float32       `yaml:"height,omitempty" json:"height,omitempty"`
	Symbol *ViewportSpec `yaml:"symbol,omitempty" json:"symbol,omitempty"`
}

// AnimationSpec is an animation element: its name, attributes and
// the path data of its mpath child, if any.
type AnimationSpec struct {
	Element string            `yaml:"element" json:"element"`
	Attrs   map[string]string `yaml:"attrs" json:"attrs"`
	MPath   string            `yaml:"mpath,omitempty" json:"mpath,omitempty"`
}

// EffectSpec is one effect: exactly one of its fields is set.
type EffectSpec struct {

	// Filter is a CSS filter property value, such as "blur(2px)".
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`

	// Overflow are pattern overflow margins, in the CSS order,
	// for a pattern whose content bounds are not known.
	Overflow []float32 `yaml:"overflow,omitempty" json:"overflow,omitempty"`

	Pattern *PatternSpec `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	Mask     string `yaml:"mask,omitempty" json:"mask,omitempty"`
	ClipPath string `yaml:"clipPath,omitempty" json:"clipPath,omitempty"`
}

// PatternSpec is a pattern tile and the bounds of its content,
// both as x, y, width, height in tile coordinates.
type PatternSpec struct {
	ID      string    `yaml:"id,omitempty" json:"id,omitempty"`
	Tile    []float32 `yaml:"tile" json:"tile"`
	Content []float32 `yaml:"content" json:"content"`
}

// OpenElements reads the elements from a YAML (or JSON) element file.
func OpenElements(fname string, segments int) ([]ElementRecord, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	els, err := ReadElements(f, segments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return els, nil
}

// ReadElements reads the elements of a YAML (or JSON) element file.
func ReadElements(r io.Reader, segments int) ([]ElementRecord, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, err
	}
	return f.Records(segments)
}

// Records returns the element records, with curves flattened into the
// given number of segments. Malformed transforms, animations and
// effects are logged and recovered from.
func (f *File) Records(segments int) ([]ElementRecord, error) {
	els := make([]ElementRecord, len(f.Elements))
	for i := range f.Elements {
		el, err := f.Elements[i].Record(segments)
		if err != nil {
			return nil, err
		}
		els[i] = el
	}
	return els, nil
}

// Record returns the element record. It only fails for structural
// errors, such as a link with no step or bounds without four values.
func (es *ElementSpec) Record(segments int) (ElementRecord, error) {
	el := ElementRecord{ID: es.ID, Visibility: es.Visibility, Base: math32.B2Empty()}
	el.Transform = errors.Warn1(math32.ParseTransform(es.Transform))
	if es.Shape != nil {
		sh, err := es.Shape.shape()
		if err != nil {
			errors.Warn(err, "element", es.ID)
		}
		el.Shape = &sh
		el.Base = sh.Bounds(segments)
	}
	switch len(es.Bounds) {
	case 0:
	case 4:
		el.Base = math32.B2XYWH(es.Bounds[0], es.Bounds[1], es.Bounds[2], es.Bounds[3])
	default:
		return el, fmt.Errorf("element %q: bounds must have 4 values, not %d", es.ID, len(es.Bounds))
	}
	for _, ls := range es.Chain {
		l, err := ls.link()
		if err != nil {
			return el, fmt.Errorf("element %q: %w", es.ID, err)
		}
		el.Chain = append(el.Chain, l)
	}
	for _, as := range es.Animations {
		a, err := anim.Parse(anim.Source{Element: as.Element, Attrs: as.Attrs, MotionPath: as.MPath}, segments)
		errors.Warn(err, "element", es.ID)
		if a != nil {
			el.Animations = append(el.Animations, a)
		}
	}
	for _, fs := range es.Effects {
		ef, err := fs.effect()
		if err != nil {
			return el, fmt.Errorf("element %q: %w", es.ID, err)
		}
		el.Effects = append(el.Effects, ef...)
	}
	return el, nil
}

func (ss *ShapeSpec) shape() (shapes.Shape, error) {
	sh := shapes.Shape{Kind: ss.Kind, Attrs: ss.Attrs, Text: ss.Text, Anchor: ss.Anchor, Join: ss.Join}
	var err error
	if ss.D != "" {
		sh.Path, err = ppath.Parse(ss.D)
	}
	if ss.Points != "" {
		pts := math32.ReadPoints(ss.Points)
		for i := 0; i+1 < len(pts); i += 2 {
			sh.Points = append(sh.Points, math32.Vec2(pts[i], pts[i+1]))
		}
	}
	return sh, err
}

func (ls *LinkSpec) link() (svg.Link, error) {
	switch {
	case ls.Viewport != nil:
		return ls.Viewport.viewport(), nil
	case ls.Use != nil:
		u := svg.Use{
			Ref:  ls.Use.Ref,
			Pos:  math32.Vec2(ls.Use.X, ls.Use.Y),
			Size: math32.Vec2(ls.Use.Width, ls.Use.Height),
		}
		if ls.Use.Symbol != nil {
			vp := ls.Use.Symbol.viewport()
			u.Symbol = &vp
		}
		return u, nil
	case ls.Transform != "":
		return svg.Transform{M: errors.Warn1(math32.ParseTransform(ls.Transform))}, nil
	}
	return nil, fmt.Errorf("chain link without transform, viewport or use")
}

func (vs *ViewportSpec) viewport() svg.Viewport {
	vp := svg.Viewport{Pos: math32.Vec2(vs.X, vs.Y), Size: math32.Vec2(vs.Width, vs.Height)}
	if vs.ViewBox != "" {
		vb := &svg.ViewBox{PreserveAspectRatio: svg.DefaultPreserveAspectRatio()}
		if errors.Warn(vb.SetString(vs.ViewBox)) == nil {
			if vs.PreserveAspectRatio != "" {
				errors.Warn(vb.PreserveAspectRatio.SetString(vs.PreserveAspectRatio))
			}
			vp.ViewBox = vb
		}
	}
	return vp
}

func (fs *EffectSpec) effect() ([]effects.Effect, error) {
	switch {
	case fs.Filter != "":
		f, urls := effects.ParseFunctions(fs.Filter)
		if len(urls) > 0 {
			errors.Warn(fmt.Errorf("unresolved filter references %v", urls))
		}
		if f == nil {
			return nil, nil
		}
		return []effects.Effect{f}, nil
	case len(fs.Overflow) > 0:
		return []effects.Effect{effects.PatternOverflow{Extra: effects.NewMargins(fs.Overflow...)}}, nil
	case fs.Pattern != nil:
		if len(fs.Pattern.Tile) != 4 || len(fs.Pattern.Content) != 4 {
			return nil, fmt.Errorf("pattern %q: tile and content must have 4 values", fs.Pattern.ID)
		}
		t, c := fs.Pattern.Tile, fs.Pattern.Content
		return []effects.Effect{effects.NewPatternOverflow(fs.Pattern.ID,
			math32.B2XYWH(t[0], t[1], t[2], t[3]), math32.B2XYWH(c[0], c[1], c[2], c[3]))}, nil
	case fs.Mask != "":
		return []effects.Effect{effects.Mask{ID: fs.Mask}}, nil
	case fs.ClipPath != "":
		return []effects.Effect{effects.ClipPath{ID: fs.ClipPath}}, nil
	}
	return nil, fmt.Errorf("effect without filter, overflow, pattern, mask or clipPath")
}
