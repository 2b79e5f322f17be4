// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"strings"

	"cogentcore.org/svgfit/math32"
)

// ViewBox is used in SVG to define the coordinate system
// of a nested viewport.
type ViewBox struct {

	// Min is the offset or starting point of the source rectangle.
	Min math32.Vector2

	// Size is the size of the source rectangle.
	Size math32.Vector2

	// PreserveAspectRatio is how to scale the view box within the viewport.
	PreserveAspectRatio PreserveAspectRatio
}

// SetString sets the source rectangle from a viewBox attribute
// value: "min-x min-y width height".
func (vb *ViewBox) SetString(str string) error {
	pts := math32.ReadPoints(str)
	if len(pts) != 4 {
		return fmt.Errorf("svg: viewBox %q must have 4 numbers, has %d", str, len(pts))
	}
	vb.Min = math32.Vec2(pts[0], pts[1])
	vb.Size = math32.Vec2(pts[2], pts[3])
	return nil
}

// String returns the viewBox attribute value.
func (vb *ViewBox) String() string {
	return fmt.Sprintf("%g %g %g %g", vb.Min.X, vb.Min.Y, vb.Size.X, vb.Size.Y)
}

// Transform returns the transform that maps the source rectangle
// into a viewport of the given size, placed at the origin.
// The viewBox minimum maps to the viewport origin (plus alignment offset).
// An empty source or viewport gives the identity.
func (vb *ViewBox) Transform(viewport math32.Vector2) math32.Matrix2 {
	if !vb.validFor(viewport) {
		return math32.Identity2()
	}
	scale, offset := vb.PreserveAspectRatio.Fit(viewport, vb.Size)
	return math32.Translate2D(offset.X, offset.Y).Mul(math32.Scale2D(scale.X, scale.Y)).Mul(math32.Translate2D(-vb.Min.X, -vb.Min.Y))
}

func (vb *ViewBox) validFor(viewport math32.Vector2) bool {
	return vb.Size.X > 0 && vb.Size.Y > 0 && viewport.X > 0 && viewport.Y > 0
}

// Align defines values for the PreserveAspectRatio alignment factor.
// One X and one Y value are combined, unless it is [AlignNone].
type Align int32

const (
	// AlignNone does not preserve uniform scaling.
	AlignNone Align = 1 << iota

	// XMin aligns the source minimum x with the viewport minimum x.
	XMin

	// XMid aligns the source midpoint x with the viewport midpoint x.
	XMid

	// XMax aligns the source maximum x with the viewport maximum x.
	XMax

	// YMin aligns the source minimum y with the viewport minimum y.
	YMin

	// YMid aligns the source midpoint y with the viewport midpoint y.
	YMid

	// YMax aligns the source maximum y with the viewport maximum y.
	YMax

	// XMask is a mask for the X values.
	XMask = XMin | XMid | XMax

	// YMask is a mask for the Y values.
	YMask = YMin | YMid | YMax
)

var alignNames = map[string]Align{
	"none":     AlignNone,
	"xminymin": XMin | YMin, "xmidymin": XMid | YMin, "xmaxymin": XMax | YMin,
	"xminymid": XMin | YMid, "xmidymid": XMid | YMid, "xmaxymid": XMax | YMid,
	"xminymax": XMin | YMax, "xmidymax": XMid | YMax, "xmaxymax": XMax | YMax,
}

// String returns the SVG token for the alignment, such as xMidYMid.
func (a Align) String() string {
	if a&AlignNone != 0 {
		return "none"
	}
	var sb strings.Builder
	switch a & XMask {
	case XMin:
		sb.WriteString("xMin")
	case XMax:
		sb.WriteString("xMax")
	default:
		sb.WriteString("xMid")
	}
	switch a & YMask {
	case YMin:
		sb.WriteString("YMin")
	case YMax:
		sb.WriteString("YMax")
	default:
		sb.WriteString("YMid")
	}
	return sb.String()
}

// fraction returns the fraction of the free space placed before
// the source rectangle on each axis.
func (a Align) fraction() math32.Vector2 {
	var f math32.Vector2
	switch a & XMask {
	case XMin:
		f.X = 0
	case XMax:
		f.X = 1
	default:
		f.X = 0.5
	}
	switch a & YMask {
	case YMin:
		f.Y = 0
	case YMax:
		f.Y = 1
	default:
		f.Y = 0.5
	}
	return f
}

// MeetOrSlice defines values for the PreserveAspectRatio meet or slice factor.
type MeetOrSlice int32

const (
	// Meet means the entire ViewBox is visible within Viewport, and it is
	// scaled up as much as possible to meet the align constraints.
	Meet MeetOrSlice = iota

	// Slice means the entire Viewport is covered by the ViewBox, and the
	// ViewBox is scaled down as much as possible, while still meeting the
	// align constraints.
	Slice
)

func (ms MeetOrSlice) String() string {
	if ms == Slice {
		return "slice"
	}
	return "meet"
}

// PreserveAspectRatio determines how to scale the view box within the viewport.
// The zero value behaves as xMidYMid meet.
type PreserveAspectRatio struct {

	// Align is how to align x,y coordinates within the viewport.
	Align Align

	// MeetOrSlice is how to scale the view box relative to the viewport.
	MeetOrSlice MeetOrSlice
}

// DefaultPreserveAspectRatio returns xMidYMid meet.
func DefaultPreserveAspectRatio() PreserveAspectRatio {
	return PreserveAspectRatio{Align: XMid | YMid, MeetOrSlice: Meet}
}

// SetString sets from a preserveAspectRatio attribute value such as
// "xMinYMax slice". A leading "defer" is ignored. An unknown value
// leaves the default xMidYMid meet and returns an error.
func (pa *PreserveAspectRatio) SetString(str string) error {
	*pa = DefaultPreserveAspectRatio()
	flds := strings.Fields(strings.ToLower(str))
	if len(flds) > 0 && flds[0] == "defer" {
		flds = flds[1:]
	}
	if len(flds) == 0 {
		return nil
	}
	al, ok := alignNames[flds[0]]
	if !ok {
		return fmt.Errorf("svg: unknown preserveAspectRatio alignment %q", flds[0])
	}
	ms := Meet
	if len(flds) > 1 {
		switch flds[1] {
		case "meet":
		case "slice":
			ms = Slice
		default:
			return fmt.Errorf("svg: unknown preserveAspectRatio mode %q", flds[1])
		}
	}
	pa.Align = al
	pa.MeetOrSlice = ms
	return nil
}

func (pa PreserveAspectRatio) String() string {
	if pa.Align&AlignNone != 0 {
		return "none"
	}
	return pa.Align.String() + " " + pa.MeetOrSlice.String()
}

// Fit returns the scale and offset that map a source rectangle of the
// given size into a viewport of the given size. With [AlignNone] the
// axes scale independently and there is no offset. Otherwise the scale
// is uniform, the smaller ratio for [Meet] or the larger for [Slice],
// and the offset places the scaled source per the alignment.
// Zero or negative sizes give unit scale and zero offset.
func (pa PreserveAspectRatio) Fit(viewport, source math32.Vector2) (scale, offset math32.Vector2) {
	if viewport.X <= 0 || viewport.Y <= 0 || source.X <= 0 || source.Y <= 0 {
		return math32.Vec2(1, 1), math32.Vector2{}
	}
	ratio := math32.Vec2(viewport.X/source.X, viewport.Y/source.Y)
	if pa.Align&AlignNone != 0 {
		return ratio, math32.Vector2{}
	}
	s := math32.Min(ratio.X, ratio.Y)
	if pa.MeetOrSlice == Slice {
		s = math32.Max(ratio.X, ratio.Y)
	}
	f := pa.Align.fraction()
	free := viewport.Sub(source.MulScalar(s))
	return math32.Vec2(s, s), math32.Vec2(free.X*f.X, free.Y*f.Y)
}
